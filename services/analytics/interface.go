package analytics

import "context"

// Event names emitted across the booking flow.
const (
	EventOTPRequested         = "otp_requested"
	EventLoginCompleted       = "login_completed"
	EventSignupCompleted      = "signup_completed"
	EventBookingInitiated     = "booking_initiated"
	EventBookingCreated       = "booking_created"
	EventPaymentModalOpened   = "payment_modal_opened"
	EventPaymentDismissed     = "payment_modal_dismissed"
	EventPaymentFailed        = "payment_failed"
	EventBookingCompleted     = "booking_completed"
	EventReconciliationFailed = "booking_reconciliation_failed"
	EventCouponApplied        = "coupon_applied"
	EventPromoCodeApplied     = "promo_code_applied"
)

// Client dispatches product analytics. Constructed once per application
// instance and injected; calls are fire-and-forget and must never block or
// fail the primary flow.
type Client interface {
	Track(ctx context.Context, event, distinctID string, props map[string]any)
	TrackPageView(ctx context.Context, page, distinctID string)
	Dispose()
}
