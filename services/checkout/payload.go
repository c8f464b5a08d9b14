package checkout

import (
	"fitpass/models"
)

// buildBookingRequest assembles the creation payload for an item. The two
// shapes are disjoint types: a session request has no eventId field and vice
// versa, so the foreign key can never leak onto the wire. basePrice carries
// the post-discount amount; taxes come from the same breakdown.
func buildBookingRequest(state models.CheckoutState) models.BookingRequest {
	common := models.CommonBookingFields{
		StudioID:    state.Item.StudioID,
		BasePrice:   state.Price.PriceAfterDiscount,
		Taxes:       state.Price.Taxes,
		Name:        state.Contact.Name,
		Email:       state.Contact.Email,
		PhoneNumber: state.Contact.PhoneNumber,
	}

	// At most one discount id rides along. The tracks are exclusive by
	// construction; if both are somehow set, the promo code is dropped.
	if state.Discounts.Coupon != nil {
		common.CouponID = state.Discounts.Coupon.CouponID
	} else if state.Discounts.PromoCode != nil {
		common.PromoCodeID = state.Discounts.PromoCode.PromoCodeID
	}

	if state.Item.Kind == models.KindEvent {
		return models.EventBookingRequest{
			EventID:             state.Item.ID,
			BookingType:         "event",
			CommonBookingFields: common,
		}
	}

	bookingType := state.Item.ClassType
	if bookingType == "" {
		bookingType = "class"
	}
	return models.SessionBookingRequest{
		SessionID:           state.Item.ID,
		BookingType:         bookingType,
		CommonBookingFields: common,
	}
}
