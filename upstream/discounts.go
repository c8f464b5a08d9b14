package upstream

import (
	"context"
	"net/http"
	"net/url"

	"fitpass/models"
)

// CouponQuery scopes the available-coupon listing to an item.
type CouponQuery struct {
	StudioID  string
	SessionID string
	EventID   string
	ClassID   string
}

// GetAvailableCoupons lists coupons applicable to the given item scope.
func (c *Client) GetAvailableCoupons(ctx context.Context, token string, q CouponQuery) ([]models.Coupon, error) {
	query := url.Values{}
	if q.StudioID != "" {
		query.Set("studioId", q.StudioID)
	}
	if q.SessionID != "" {
		query.Set("sessionId", q.SessionID)
	}
	if q.EventID != "" {
		query.Set("eventId", q.EventID)
	}
	if q.ClassID != "" {
		query.Set("classId", q.ClassID)
	}
	var out struct {
		Coupons []models.Coupon `json:"coupons"`
	}
	if err := c.get(ctx, "/api/v1/coupons/getAvailableCoupons", query, token, &out); err != nil {
		return nil, err
	}
	return out.Coupons, nil
}

// ValidateCouponRequest asks the backend to validate a coupon code against an
// item. Exactly one of SessionID/EventID is set.
type ValidateCouponRequest struct {
	Code      string  `json:"code"`
	Amount    float64 `json:"amount"`
	StudioID  string  `json:"studioId"`
	SessionID string  `json:"sessionId,omitempty"`
	EventID   string  `json:"eventId,omitempty"`
	ClassID   string  `json:"classId,omitempty"`
}

// ValidateCouponResponse carries the authoritative discount for an accepted
// coupon code.
type ValidateCouponResponse struct {
	CouponID        string  `json:"couponId"`
	DiscountApplied float64 `json:"discountApplied"`
	Descriptor      string  `json:"descriptor"`
}

// ValidateCoupon validates a coupon code server-side.
func (c *Client) ValidateCoupon(ctx context.Context, token string, req ValidateCouponRequest) (*ValidateCouponResponse, error) {
	var out ValidateCouponResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/coupons/website/validateCoupon", nil, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidatePromoCodeRequest mirrors ValidateCouponRequest for the promo track.
type ValidatePromoCodeRequest struct {
	Code          string  `json:"code"`
	Amount        float64 `json:"amount"`
	StudioID      string  `json:"studioId"`
	SessionID     string  `json:"sessionId,omitempty"`
	EventID       string  `json:"eventId,omitempty"`
	PromoCodeType string  `json:"promoCodeType"`
}

// ValidatePromoCodeResponse carries the authoritative discount for an accepted
// promo code.
type ValidatePromoCodeResponse struct {
	PromoCodeID     string  `json:"promoCodeId"`
	DiscountApplied float64 `json:"discountApplied"`
}

// ValidatePromoCode validates a promo code server-side.
func (c *Client) ValidatePromoCode(ctx context.Context, token string, req ValidatePromoCodeRequest) (*ValidatePromoCodeResponse, error) {
	var out ValidatePromoCodeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/promo-code/website/validatePromoCode", nil, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
