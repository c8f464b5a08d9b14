// Package pricing derives the payable total for a checkout. Pure computation,
// no I/O; the orchestrator re-derives the breakdown on every mutation of base
// price or discount so a stale total can never be charged.
package pricing

import (
	"github.com/shopspring/decimal"

	"fitpass/models"
)

// TaxRate is applied to the post-discount price.
const TaxRate = 0.05

// Compute derives the price breakdown from a base price and the two discount
// tracks. Only one track is ever non-zero; taking the max of the two is a
// defensive guard, not real contention. Taxes are rounded half-up to two
// decimals; the intermediate post-discount price is not rounded.
func Compute(basePrice, promoDiscount, couponDiscount float64) models.PriceBreakdown {
	discount := promoDiscount
	if couponDiscount > discount {
		discount = couponDiscount
	}
	if discount > basePrice {
		discount = basePrice
	}
	if discount < 0 {
		discount = 0
	}

	after := basePrice - discount
	taxes, _ := decimal.NewFromFloat(after).
		Mul(decimal.NewFromFloat(TaxRate)).
		Round(2).
		Float64()

	return models.PriceBreakdown{
		BasePrice:          basePrice,
		Discount:           discount,
		PriceAfterDiscount: after,
		Taxes:              taxes,
		FinalPrice:         after + taxes,
	}
}

// ForDiscounts recomputes the breakdown for an item under the given discount
// state.
func ForDiscounts(item models.BookableItem, d models.DiscountState) models.PriceBreakdown {
	return Compute(item.BasePrice, d.PromoDiscount(), d.CouponDiscount())
}
