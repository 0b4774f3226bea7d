package checkout

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/kmart-dev/kmart-api/metrics"
	"github.com/kmart-dev/kmart-api/models"
	"github.com/kmart-dev/kmart-api/stripegateway"
	"gorm.io/gorm"
)

// Service runs the checkout/fulfillment workflow. All collaborators are
// injected so tests can substitute fakes.
type Service struct {
	DB          *gorm.DB
	Gateway     stripegateway.Client // nil when no credentials are configured
	Mock        bool                 // bypass the gateway, fulfill inline
	FrontendURL string

	Metrics *metrics.StoreMetrics // optional
	Notify  func(models.Order)    // optional, called after each fulfilled order
}

// SessionRequest identifies the buyer. UserID empty means guest, in
// which case GuestEmail and GuestItems must be supplied.
type SessionRequest struct {
	UserID     string
	UserEmail  string
	GuestEmail string
	GuestItems []GuestItem
}

// SessionResult is what the client needs to continue payment.
type SessionResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (r SessionRequest) guest() bool { return r.UserID == "" }

// CreateSession aggregates the cart and either creates a hosted
// checkout session (live) or synthesizes one and fulfills immediately
// (mock).
func (s *Service) CreateSession(ctx context.Context, req SessionRequest) (SessionResult, error) {
	var lines []Line
	var err error
	if req.guest() {
		lines, err = AggregateGuestCart(s.DB, req.GuestItems)
	} else {
		lines, err = AggregateUserCart(s.DB, req.UserID)
	}
	if err != nil {
		return SessionResult{}, err
	}

	if s.Mock {
		return s.createMockSession(ctx, req, lines)
	}
	return s.createLiveSession(ctx, req, lines)
}

// createMockSession skips the gateway entirely: it fabricates a
// completed payment and runs fulfillment inline before returning.
func (s *Service) createMockSession(ctx context.Context, req SessionRequest, lines []Line) (SessionResult, error) {
	ref := uuid.NewString()
	event := PaymentEvent{
		SessionID:     "mock_session_" + ref,
		PaymentRef:    "mock_pi_" + ref,
		UserID:        req.UserID,
		GuestEmail:    req.GuestEmail,
		PaymentMethod: "mock",
		Lines:         lines,
	}
	if _, err := s.Fulfill(ctx, event); err != nil {
		return SessionResult{}, err
	}

	s.countSession("mock")
	return SessionResult{
		ID:  event.SessionID,
		URL: s.FrontendURL + "/payment-success?mock=true",
	}, nil
}

func (s *Service) createLiveSession(ctx context.Context, req SessionRequest, lines []Line) (SessionResult, error) {
	if s.Gateway == nil {
		return SessionResult{}, ErrGatewayDisabled
	}

	items := make([]stripegateway.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, stripegateway.LineItem{
			Name:        line.Product.Name,
			Description: line.Product.Description,
			ImageURL:    line.Product.ImageURL,
			UnitAmount:  toCents(EffectiveUnitPrice(line.Product)),
			Quantity:    line.Quantity,
			Currency:    "usd",
		})
	}

	email := req.UserEmail
	userMeta := req.UserID
	if req.guest() {
		email = req.GuestEmail
		userMeta = "guest"
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, stripegateway.SessionParams{
		LineItems:     items,
		SuccessURL:    s.FrontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.FrontendURL + "/cart",
		CustomerEmail: email,
		Metadata:      map[string]string{"userId": userMeta},
	})
	if err != nil {
		return SessionResult{}, err
	}

	// Guest line items cannot be reconstructed from the webhook alone,
	// so they are persisted now, keyed by the session id.
	if req.guest() {
		if err := s.storePendingCheckout(session.ID, req.GuestEmail, lines); err != nil {
			return SessionResult{}, err
		}
	}

	s.countSession("live")
	return SessionResult{ID: session.ID, URL: session.URL}, nil
}

func (s *Service) storePendingCheckout(sessionID, email string, lines []Line) error {
	items := make([]GuestItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, GuestItem{ProductID: line.Product.ID, Quantity: line.Quantity})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.DB.Create(&models.PendingCheckout{
		SessionID:  sessionID,
		GuestEmail: email,
		ItemsJSON:  string(data),
	}).Error
}

func (s *Service) countSession(mode string) {
	if s.Metrics != nil {
		s.Metrics.CheckoutSessions.WithLabelValues(mode).Inc()
	}
	log.Printf("✅ Checkout session created (mode=%s)", mode)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
