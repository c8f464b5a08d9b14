// Package discount resolves the two mutually exclusive discount tracks:
// studio coupons and promo codes. Listings carry a display-only estimate; the
// authoritative discount is always re-derived server-side on apply.
package discount

import (
	"context"

	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/upstream"
)

// UpstreamDiscountAPI is the slice of the aggregator API the resolver consumes.
type UpstreamDiscountAPI interface {
	GetAvailableCoupons(ctx context.Context, token string, q upstream.CouponQuery) ([]models.Coupon, error)
	ValidateCoupon(ctx context.Context, token string, req upstream.ValidateCouponRequest) (*upstream.ValidateCouponResponse, error)
	ValidatePromoCode(ctx context.Context, token string, req upstream.ValidatePromoCodeRequest) (*upstream.ValidatePromoCodeResponse, error)
}

// CouponOffer pairs an available coupon with its local display estimate.
type CouponOffer struct {
	models.Coupon
	EstimatedDiscount float64 `json:"estimatedDiscount"`
}

// Resolver validates discount codes against an item and maintains the
// exclusivity invariant between the coupon and promo-code tracks.
type Resolver interface {
	AvailableCoupons(ctx context.Context, token string, item models.BookableItem) ([]CouponOffer, error)
	ApplyCoupon(ctx context.Context, token, code string, item models.BookableItem, state models.DiscountState) (models.DiscountState, error)
	ApplyPromoCode(ctx context.Context, token, code, promoCodeType string, item models.BookableItem, state models.DiscountState) (models.DiscountState, error)
	RemoveCoupon(state models.DiscountState) models.DiscountState
}

// DefaultResolver implements Resolver against the upstream API.
type DefaultResolver struct {
	Upstream UpstreamDiscountAPI
	Logger   *zap.Logger
}

// AvailableCoupons lists coupons scoped to the item and annotates each with a
// display estimate. The estimate never feeds the price calculator.
func (r *DefaultResolver) AvailableCoupons(ctx context.Context, token string, item models.BookableItem) ([]CouponOffer, error) {
	q := upstream.CouponQuery{StudioID: item.StudioID, ClassID: item.ClassID}
	switch item.Kind {
	case models.KindSession:
		q.SessionID = item.ID
	case models.KindEvent:
		q.EventID = item.ID
	}

	coupons, err := r.Upstream.GetAvailableCoupons(ctx, token, q)
	if err != nil {
		return nil, err
	}
	offers := make([]CouponOffer, 0, len(coupons))
	for _, c := range coupons {
		offers = append(offers, CouponOffer{
			Coupon:            c,
			EstimatedDiscount: c.EstimateDiscount(item.BasePrice),
		})
	}
	return offers, nil
}

// ApplyCoupon validates a coupon code. The promo track is cleared before the
// request resolves; a rejection therefore leaves any previously applied
// coupon intact but never resurrects the promo code.
func (r *DefaultResolver) ApplyCoupon(ctx context.Context, token, code string, item models.BookableItem, state models.DiscountState) (models.DiscountState, error) {
	state.PromoCode = nil

	req := upstream.ValidateCouponRequest{
		Code:     code,
		Amount:   item.BasePrice,
		StudioID: item.StudioID,
		ClassID:  item.ClassID,
	}
	switch item.Kind {
	case models.KindSession:
		req.SessionID = item.ID
	case models.KindEvent:
		req.EventID = item.ID
	}

	resp, err := r.Upstream.ValidateCoupon(ctx, token, req)
	if err != nil {
		return state, err
	}

	state.Coupon = &models.AppliedCoupon{
		CouponID:        resp.CouponID,
		Code:            code,
		DiscountApplied: resp.DiscountApplied,
		Descriptor:      resp.Descriptor,
	}
	r.Logger.Info("coupon applied",
		zap.String("couponId", resp.CouponID),
		zap.Float64("discount", resp.DiscountApplied))
	return state, nil
}

// ApplyPromoCode validates a promo code, clearing the coupon track first.
func (r *DefaultResolver) ApplyPromoCode(ctx context.Context, token, code, promoCodeType string, item models.BookableItem, state models.DiscountState) (models.DiscountState, error) {
	state.Coupon = nil

	req := upstream.ValidatePromoCodeRequest{
		Code:          code,
		Amount:        item.BasePrice,
		StudioID:      item.StudioID,
		PromoCodeType: promoCodeType,
	}
	switch item.Kind {
	case models.KindSession:
		req.SessionID = item.ID
	case models.KindEvent:
		req.EventID = item.ID
	}

	resp, err := r.Upstream.ValidatePromoCode(ctx, token, req)
	if err != nil {
		return state, err
	}

	state.PromoCode = &models.AppliedPromoCode{
		PromoCodeID:     resp.PromoCodeID,
		Code:            code,
		DiscountApplied: resp.DiscountApplied,
	}
	r.Logger.Info("promo code applied",
		zap.String("promoCodeId", resp.PromoCodeID),
		zap.Float64("discount", resp.DiscountApplied))
	return state, nil
}

// RemoveCoupon resets the coupon track only. The tracks cannot coexist, so
// this never touches the promo side.
func (r *DefaultResolver) RemoveCoupon(state models.DiscountState) models.DiscountState {
	state.Coupon = nil
	return state
}
