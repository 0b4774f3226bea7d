package stripegateway

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

var completedPayload = []byte(`{
	"id": "evt_1",
	"type": "checkout.session.completed",
	"data": {
		"object": {
			"id": "cs_1",
			"payment_intent": "pi_1",
			"amount_total": 897,
			"customer_email": "shopper@example.com",
			"metadata": {"userId": "user-1"}
		}
	}
}`)

func TestConstructEventValid(t *testing.T) {
	header := SignPayload(completedPayload, testSecret, time.Now())

	event, err := ConstructEvent(completedPayload, header, testSecret)
	if err != nil {
		t.Fatalf("ConstructEvent: %v", err)
	}
	if event.Type != "checkout.session.completed" {
		t.Errorf("type = %q", event.Type)
	}
	session := event.Data.Object
	if session.PaymentIntent != "pi_1" || session.AmountTotal != 897 {
		t.Errorf("session = %+v", session)
	}
	if session.Metadata["userId"] != "user-1" {
		t.Errorf("metadata = %v", session.Metadata)
	}
}

func TestConstructEventTamperedPayload(t *testing.T) {
	header := SignPayload(completedPayload, testSecret, time.Now())

	tampered := append([]byte{}, completedPayload...)
	tampered[len(tampered)-2] = ' '

	if _, err := ConstructEvent(tampered, header, testSecret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}
}

func TestConstructEventWrongSecret(t *testing.T) {
	header := SignPayload(completedPayload, "whsec_other", time.Now())

	if _, err := ConstructEvent(completedPayload, header, testSecret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}
}

func TestConstructEventStaleTimestamp(t *testing.T) {
	signedAt := time.Now().Add(-time.Hour)
	header := SignPayload(completedPayload, testSecret, signedAt)

	if _, err := ConstructEvent(completedPayload, header, testSecret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}
}

func TestConstructEventMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "t=notanumber,v1=abc", "v1=deadbeef", "t=123"} {
		if _, err := ConstructEvent(completedPayload, header, testSecret); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("header %q: got %v, want ErrInvalidSignature", header, err)
		}
	}
}
