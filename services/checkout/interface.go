package checkout

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	recordsRepo "fitpass/database/repository/records"
	"fitpass/models"
	"fitpass/services/analytics"
	"fitpass/services/discount"
	"fitpass/upstream"
)

// UpstreamBookingAPI is the slice of the aggregator API the orchestrator
// consumes.
type UpstreamBookingAPI interface {
	CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*upstream.CreateBookingResponse, error)
	CompleteBooking(ctx context.Context, token, orderID, paymentID string) (*models.BookingRecord, error)
}

// ReconcileQueue schedules completion retries for paid bookings whose
// completion call failed.
type ReconcileQueue interface {
	EnqueueCompletion(bookingID, orderID, paymentID string) error
}

// PaymentResult is the terminal outcome surfaced to the SPA after a gateway
// success callback.
type PaymentResult struct {
	Booking *models.BookingRecord `json:"booking"`
	// Reconciled is false when the completion call failed after payment; the
	// user still sees success and the webhook settles the record later.
	Reconciled bool `json:"reconciled"`
}

// CheckoutService drives one booking modal: open, discount application,
// payment orchestration and the three gateway callbacks.
type CheckoutService interface {
	Open(ctx context.Context, item models.BookableItem) (*models.CheckoutState, error)
	Get(ctx context.Context, checkoutID string) (*models.CheckoutState, error)
	Close(ctx context.Context, checkoutID string) error

	SetContact(ctx context.Context, checkoutID string, contact models.ContactInfo) (*models.CheckoutState, error)
	SaveClientState(ctx context.Context, checkoutID string, blob json.RawMessage) error

	AvailableCoupons(ctx context.Context, checkoutID string, session *models.UserSession) ([]discount.CouponOffer, error)
	ApplyCoupon(ctx context.Context, checkoutID, code string, session *models.UserSession) (*models.CheckoutState, error)
	ApplyPromoCode(ctx context.Context, checkoutID, code string, session *models.UserSession) (*models.CheckoutState, error)
	RemoveCoupon(ctx context.Context, checkoutID string) (*models.CheckoutState, error)

	Pay(ctx context.Context, checkoutID string, session *models.UserSession) (*models.WidgetConfig, error)
	PaymentSucceeded(ctx context.Context, checkoutID string, session *models.UserSession, orderID, paymentID, signature string) (*PaymentResult, error)
	PaymentDismissed(ctx context.Context, checkoutID string) error
	PaymentFailed(ctx context.Context, checkoutID, reason string) error
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Store     Store
	Upstream  UpstreamBookingAPI
	Discounts discount.Resolver
	Gateway   PaymentGateway
	Records   recordsRepo.RecordsRepository
	// Queue is optional; when set, a failed completion after payment is
	// retried out-of-band.
	Queue     ReconcileQueue
	Analytics analytics.Client
	Logger    *zap.Logger
	// PromoCodeType tags promo validation requests (fixed per surface).
	PromoCodeType string
}
