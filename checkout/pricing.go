package checkout

import (
	"math"

	"github.com/kmart-dev/kmart-api/models"
)

// EffectiveUnitPrice is the price a buyer is charged: the discount
// price whenever one is set, the regular price otherwise. This is the
// checkout rule; it does not require discount < price.
func EffectiveUnitPrice(p models.Product) float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasDiscount is the display rule for the "SAVE n%" badge: a discount
// price must exist and actually undercut the regular price.
func HasDiscount(p models.Product) bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}

// DiscountPercent returns the rounded savings percentage, 0 when the
// product has no displayable discount.
func DiscountPercent(p models.Product) int {
	if !HasDiscount(p) {
		return 0
	}
	return int(math.Round((p.Price - *p.DiscountPrice) / p.Price * 100))
}
