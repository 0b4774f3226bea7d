package stripegateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// LineItem is one priced line of a hosted checkout session.
// UnitAmount is in the currency's minor unit (cents).
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64
	Quantity    int
	Currency    string
}

// SessionParams describes the checkout session to create.
type SessionParams struct {
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// Session is the subset of Stripe's checkout session the store cares about.
type Session struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentIntent   string            `json:"payment_intent"`
	AmountTotal     int64             `json:"amount_total"`
	CustomerEmail   string            `json:"customer_email"`
	Metadata        map[string]string `json:"metadata"`
	ShippingDetails json.RawMessage   `json:"shipping_details"`
}

// Client creates and retrieves hosted checkout sessions. The HTTP
// implementation talks to Stripe; tests substitute a fake.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}

type httpClient struct {
	apiURL    string
	secretKey string
	client    *http.Client
}

// New returns a Client backed by the Stripe REST API.
func New(apiURL, secretKey string) Client {
	return &httpClient{
		apiURL:    strings.TrimRight(apiURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{},
	}
}

func (c *httpClient) CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}
	for i, item := range params.LineItems {
		prefix := "line_items[" + strconv.Itoa(i) + "]"
		currency := item.Currency
		if currency == "" {
			currency = "usd"
		}
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", item.Description)
		}
		if item.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
}

func (c *httpClient) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

func (c *httpClient) do(ctx context.Context, method, path string, body io.Reader) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Stripe: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(data))
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse Stripe response: %w", err)
	}
	return &session, nil
}
