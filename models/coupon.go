package models

// Discount types reported by the upstream coupon listing.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFlat       = "flat"
)

// Coupon is an available coupon as listed for an item. The discount shown next
// to it in the UI is a local estimate; the authoritative discount is always
// re-derived server-side when the coupon is applied.
type Coupon struct {
	ID                string   `json:"id"`
	Code              string   `json:"code"`
	Description       string   `json:"description,omitempty"`
	DiscountType      string   `json:"discountType"`
	DiscountValue     float64  `json:"discountValue"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount,omitempty"`
	// Scope is an applicability label: studio, event, class, all-events,
	// all-classes or all.
	Scope string `json:"scope,omitempty"`
}

// EstimateDiscount computes the display-only discount estimate for a base
// price. Percentage discounts are capped by MaxDiscountAmount when present.
// Never feed this into the price calculator.
func (c Coupon) EstimateDiscount(basePrice float64) float64 {
	var est float64
	switch c.DiscountType {
	case DiscountTypePercentage:
		est = basePrice * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && est > *c.MaxDiscountAmount {
			est = *c.MaxDiscountAmount
		}
	case DiscountTypeFlat:
		est = c.DiscountValue
	}
	if est > basePrice {
		est = basePrice
	}
	return est
}

// AppliedCoupon is the server-validated result of applying a coupon code.
type AppliedCoupon struct {
	CouponID        string  `json:"couponId"`
	Code            string  `json:"code"`
	DiscountApplied float64 `json:"discountApplied"`
	Descriptor      string  `json:"descriptor,omitempty"`
}

// AppliedPromoCode is the server-validated result of applying a promo code.
type AppliedPromoCode struct {
	PromoCodeID     string  `json:"promoCodeId"`
	Code            string  `json:"code"`
	DiscountApplied float64 `json:"discountApplied"`
}

// DiscountState tracks the two mutually exclusive discount tracks. Applying
// one track clears the other before the validation request is issued, so at
// most one of the pointers is ever non-nil.
type DiscountState struct {
	Coupon    *AppliedCoupon    `json:"coupon,omitempty"`
	PromoCode *AppliedPromoCode `json:"promoCode,omitempty"`
}

// CouponDiscount returns the active coupon discount, zero when none.
func (d DiscountState) CouponDiscount() float64 {
	if d.Coupon == nil {
		return 0
	}
	return d.Coupon.DiscountApplied
}

// PromoDiscount returns the active promo-code discount, zero when none.
func (d DiscountState) PromoDiscount() float64 {
	if d.PromoCode == nil {
		return 0
	}
	return d.PromoCode.DiscountApplied
}
