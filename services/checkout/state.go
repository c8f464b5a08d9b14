package checkout

import (
	"context"
	"encoding/json"

	"fitpass/models"
	"fitpass/services/analytics"
	"fitpass/services/discount"
	"fitpass/services/pricing"
)

// SetContact stores the contact form and recomputes the displayed price.
func (s *DefaultCheckoutService) SetContact(ctx context.Context, checkoutID string, contact models.ContactInfo) (*models.CheckoutState, error) {
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	state.Contact = contact
	state.Price = pricing.ForDiscounts(state.Item, state.Discounts)
	if err := s.Store.Save(ctx, *state); err != nil {
		return nil, err
	}
	return state, nil
}

// SaveClientState stores the SPA's opaque restore blob alongside the
// checkout. The payload is never inspected server-side.
func (s *DefaultCheckoutService) SaveClientState(ctx context.Context, checkoutID string, blob json.RawMessage) error {
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return err
	}
	state.ClientState = blob
	return s.Store.Save(ctx, *state)
}

// AvailableCoupons lists coupons applicable to the checkout's item, each with
// its estimated discount against the item's base price.
func (s *DefaultCheckoutService) AvailableCoupons(ctx context.Context, checkoutID string, session *models.UserSession) ([]discount.CouponOffer, error) {
	if session == nil || session.Token == "" {
		return nil, ErrAuthRequired
	}
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	return s.Discounts.AvailableCoupons(ctx, session.Token, state.Item)
}

// ApplyCoupon validates a coupon against the checkout's item and swaps it in,
// displacing any active promo code. The updated price is saved before the
// state is returned.
func (s *DefaultCheckoutService) ApplyCoupon(ctx context.Context, checkoutID, code string, session *models.UserSession) (*models.CheckoutState, error) {
	if session == nil || session.Token == "" {
		return nil, ErrAuthRequired
	}
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	next, applyErr := s.Discounts.ApplyCoupon(ctx, session.Token, code, state.Item, state.Discounts)
	state.Discounts = next
	state.Price = pricing.ForDiscounts(state.Item, state.Discounts)
	if err := s.Store.Save(ctx, *state); err != nil {
		return nil, err
	}
	if applyErr != nil {
		return state, applyErr
	}

	s.Analytics.Track(ctx, analytics.EventCouponApplied, state.CheckoutID, map[string]any{
		"code":     code,
		"discount": state.Discounts.CouponDiscount(),
	})
	return state, nil
}

// ApplyPromoCode mirrors ApplyCoupon for the promo track.
func (s *DefaultCheckoutService) ApplyPromoCode(ctx context.Context, checkoutID, code string, session *models.UserSession) (*models.CheckoutState, error) {
	if session == nil || session.Token == "" {
		return nil, ErrAuthRequired
	}
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	next, applyErr := s.Discounts.ApplyPromoCode(ctx, session.Token, code, s.PromoCodeType, state.Item, state.Discounts)
	state.Discounts = next
	state.Price = pricing.ForDiscounts(state.Item, state.Discounts)
	if err := s.Store.Save(ctx, *state); err != nil {
		return nil, err
	}
	if applyErr != nil {
		return state, applyErr
	}

	s.Analytics.Track(ctx, analytics.EventPromoCodeApplied, state.CheckoutID, map[string]any{
		"code":     code,
		"discount": state.Discounts.PromoDiscount(),
	})
	return state, nil
}

// RemoveCoupon clears the coupon track; an active promo code is untouched.
func (s *DefaultCheckoutService) RemoveCoupon(ctx context.Context, checkoutID string) (*models.CheckoutState, error) {
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	state.Discounts = s.Discounts.RemoveCoupon(state.Discounts)
	state.Price = pricing.ForDiscounts(state.Item, state.Discounts)
	if err := s.Store.Save(ctx, *state); err != nil {
		return nil, err
	}
	return state, nil
}
