package checkout

import "errors"

var (
	// ErrEmptyCart means aggregation produced no purchasable lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrGatewayDisabled means live payments were requested but no
	// gateway credentials are configured.
	ErrGatewayDisabled = errors.New("payment gateway is not configured")

	// ErrInsufficientStock aborts fulfillment when a conditional stock
	// decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrGuestItemsUnavailable means a guest payment completed but no
	// persisted line items exist for its session, so the order cannot
	// be reconstructed.
	ErrGuestItemsUnavailable = errors.New("no stored line items for guest session")
)
