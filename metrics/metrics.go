package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StoreMetrics counts the checkout pipeline's observable events.
type StoreMetrics struct {
	CheckoutSessions *prometheus.CounterVec // mode: live|mock
	WebhookEvents    *prometheus.CounterVec // outcome: fulfilled|ignored|failed
	OrdersFulfilled  prometheus.Counter
}

// New registers the store metrics on reg. Tests pass a fresh
// prometheus.NewRegistry so parallel fixtures don't collide.
func New(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		CheckoutSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kmart",
			Name:      "checkout_sessions_total",
			Help:      "Checkout sessions created, by payment mode.",
		}, []string{"mode"}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kmart",
			Name:      "webhook_events_total",
			Help:      "Payment webhook deliveries, by outcome.",
		}, []string{"outcome"}),
		OrdersFulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kmart",
			Name:      "orders_fulfilled_total",
			Help:      "Orders successfully materialized from completed payments.",
		}),
	}
	reg.MustRegister(m.CheckoutSessions, m.WebhookEvents, m.OrdersFulfilled)
	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}
