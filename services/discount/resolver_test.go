package discount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/upstream"
)

type fakeDiscountAPI struct {
	coupons    []models.Coupon
	couponsErr error

	couponResp *upstream.ValidateCouponResponse
	couponErr  error
	couponReqs []upstream.ValidateCouponRequest

	promoResp *upstream.ValidatePromoCodeResponse
	promoErr  error
	promoReqs []upstream.ValidatePromoCodeRequest
}

func (f *fakeDiscountAPI) GetAvailableCoupons(_ context.Context, _ string, _ upstream.CouponQuery) ([]models.Coupon, error) {
	return f.coupons, f.couponsErr
}

func (f *fakeDiscountAPI) ValidateCoupon(_ context.Context, _ string, req upstream.ValidateCouponRequest) (*upstream.ValidateCouponResponse, error) {
	f.couponReqs = append(f.couponReqs, req)
	return f.couponResp, f.couponErr
}

func (f *fakeDiscountAPI) ValidatePromoCode(_ context.Context, _ string, req upstream.ValidatePromoCodeRequest) (*upstream.ValidatePromoCodeResponse, error) {
	f.promoReqs = append(f.promoReqs, req)
	return f.promoResp, f.promoErr
}

func newResolver(api *fakeDiscountAPI) *DefaultResolver {
	return &DefaultResolver{Upstream: api, Logger: zap.NewNop()}
}

func sessionItem() models.BookableItem {
	return models.BookableItem{
		Kind: models.KindSession, ID: "S1", StudioID: "ST1",
		ClassID: "CL1", ClassType: "yoga", BasePrice: 500, AvailableSlots: 3,
	}
}

func TestApplyCouponClearsPromoTrack(t *testing.T) {
	api := &fakeDiscountAPI{couponResp: &upstream.ValidateCouponResponse{
		CouponID: "C1", DiscountApplied: 50, Descriptor: "10% off",
	}}
	r := newResolver(api)

	state := models.DiscountState{PromoCode: &models.AppliedPromoCode{PromoCodeID: "P1", DiscountApplied: 30}}
	next, err := r.ApplyCoupon(context.Background(), "tok", "SAVE10", sessionItem(), state)
	require.NoError(t, err)

	assert.Nil(t, next.PromoCode)
	require.NotNil(t, next.Coupon)
	assert.Equal(t, "C1", next.Coupon.CouponID)
	assert.Equal(t, 50.0, next.CouponDiscount())
	assert.Equal(t, 0.0, next.PromoDiscount())
}

func TestApplyPromoClearsCouponTrack(t *testing.T) {
	api := &fakeDiscountAPI{promoResp: &upstream.ValidatePromoCodeResponse{
		PromoCodeID: "P1", DiscountApplied: 75,
	}}
	r := newResolver(api)

	state := models.DiscountState{Coupon: &models.AppliedCoupon{CouponID: "C1", DiscountApplied: 50}}
	next, err := r.ApplyPromoCode(context.Background(), "tok", "WELCOME", "website", sessionItem(), state)
	require.NoError(t, err)

	assert.Nil(t, next.Coupon)
	require.NotNil(t, next.PromoCode)
	assert.Equal(t, 75.0, next.PromoDiscount())
}

func TestDiscountTracksNeverBothNonZero(t *testing.T) {
	api := &fakeDiscountAPI{
		couponResp: &upstream.ValidateCouponResponse{CouponID: "C1", DiscountApplied: 50},
		promoResp:  &upstream.ValidatePromoCodeResponse{PromoCodeID: "P1", DiscountApplied: 60},
	}
	r := newResolver(api)
	item := sessionItem()

	state := models.DiscountState{}
	var err error
	state, err = r.ApplyCoupon(context.Background(), "tok", "SAVE10", item, state)
	require.NoError(t, err)
	state, err = r.ApplyPromoCode(context.Background(), "tok", "WELCOME", "website", item, state)
	require.NoError(t, err)
	assert.Zero(t, state.CouponDiscount())
	assert.Equal(t, 60.0, state.PromoDiscount())

	state, err = r.ApplyCoupon(context.Background(), "tok", "SAVE10", item, state)
	require.NoError(t, err)
	assert.Equal(t, 50.0, state.CouponDiscount())
	assert.Zero(t, state.PromoDiscount())
}

func TestApplyCouponFailurePreservesPreviousCoupon(t *testing.T) {
	api := &fakeDiscountAPI{couponErr: &upstream.APIError{StatusCode: 400, Message: "Coupon expired"}}
	r := newResolver(api)

	prev := &models.AppliedCoupon{CouponID: "C0", DiscountApplied: 25}
	state := models.DiscountState{Coupon: prev, PromoCode: nil}
	next, err := r.ApplyCoupon(context.Background(), "tok", "DEAD", sessionItem(), state)

	apiErr, ok := upstream.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Coupon expired", apiErr.Message)
	assert.Equal(t, prev, next.Coupon, "failed attempt keeps the applied coupon")
}

func TestApplyCouponFailureStillClearsPromo(t *testing.T) {
	api := &fakeDiscountAPI{couponErr: &upstream.APIError{StatusCode: 400, Message: "Invalid code"}}
	r := newResolver(api)

	state := models.DiscountState{PromoCode: &models.AppliedPromoCode{PromoCodeID: "P1", DiscountApplied: 30}}
	next, err := r.ApplyCoupon(context.Background(), "tok", "BAD", sessionItem(), state)

	require.Error(t, err)
	assert.Nil(t, next.PromoCode, "other track is cleared before the request resolves")
}

func TestCouponRequestScopedByItemKind(t *testing.T) {
	api := &fakeDiscountAPI{couponResp: &upstream.ValidateCouponResponse{CouponID: "C1", DiscountApplied: 10}}
	r := newResolver(api)

	_, err := r.ApplyCoupon(context.Background(), "tok", "X", sessionItem(), models.DiscountState{})
	require.NoError(t, err)
	req := api.couponReqs[0]
	assert.Equal(t, "S1", req.SessionID)
	assert.Empty(t, req.EventID)
	assert.Equal(t, 500.0, req.Amount, "amount is the base price")

	event := models.BookableItem{Kind: models.KindEvent, ID: "E1", StudioID: "ST1", BasePrice: 800}
	_, err = r.ApplyCoupon(context.Background(), "tok", "X", event, models.DiscountState{})
	require.NoError(t, err)
	req = api.couponReqs[1]
	assert.Equal(t, "E1", req.EventID)
	assert.Empty(t, req.SessionID)
}

func TestRemoveCouponResetsOnlyCouponTrack(t *testing.T) {
	r := newResolver(&fakeDiscountAPI{})
	state := models.DiscountState{Coupon: &models.AppliedCoupon{CouponID: "C1", DiscountApplied: 40}}

	next := r.RemoveCoupon(state)
	assert.Nil(t, next.Coupon)
	assert.Nil(t, next.PromoCode)
}

func TestAvailableCouponsEstimates(t *testing.T) {
	cap := 40.0
	api := &fakeDiscountAPI{coupons: []models.Coupon{
		{ID: "C1", Code: "TEN", DiscountType: models.DiscountTypePercentage, DiscountValue: 10},
		{ID: "C2", Code: "CAPPED", DiscountType: models.DiscountTypePercentage, DiscountValue: 20, MaxDiscountAmount: &cap},
		{ID: "C3", Code: "FLAT75", DiscountType: models.DiscountTypeFlat, DiscountValue: 75},
	}}
	r := newResolver(api)

	offers, err := r.AvailableCoupons(context.Background(), "tok", sessionItem())
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, 50.0, offers[0].EstimatedDiscount)
	assert.Equal(t, 40.0, offers[1].EstimatedDiscount, "percentage capped by maxDiscountAmount")
	assert.Equal(t, 75.0, offers[2].EstimatedDiscount)
}
