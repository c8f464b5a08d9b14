package models

import (
	"encoding/json"
	"time"
)

// ContactInfo is the contact form attached to a checkout.
type ContactInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Booking statuses. A booking is created pending and becomes completed once
// payment is verified; there is no cancellation transition on this side.
const (
	BookingStatusPending   = "pending"
	BookingStatusCompleted = "completed"
)

// BookingRecord mirrors the server-side booking created by the upstream
// aggregator. Only the fields the checkout flow needs are held here.
type BookingRecord struct {
	BookingID string `json:"bookingId"`
	StudioID  string `json:"studioId"`
	SessionID string `json:"sessionId,omitempty"`
	EventID   string `json:"eventId,omitempty"`
	Status    string `json:"status"`
}

// PaymentOrder is the opaque gateway order returned alongside a created
// booking. It is passed through to the payment widget unmodified.
type PaymentOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Key      string  `json:"key"`
}

// BookingRequest is the tagged union of the two booking payload shapes. The
// two shapes are structurally disjoint: a session payload has no eventId field
// to serialize and vice versa, so no runtime key stripping is needed.
type BookingRequest interface {
	itemKind() ItemKind
}

// CommonBookingFields are shared by both payload shapes. Optional fields carry
// omitempty so empty values are omitted from the wire entirely.
type CommonBookingFields struct {
	StudioID    string  `json:"studioId"`
	BasePrice   float64 `json:"basePrice"`
	Taxes       float64 `json:"taxes"`
	Name        string  `json:"name,omitempty"`
	Email       string  `json:"email,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	PromoCodeID string  `json:"promoCodeId,omitempty"`
	CouponID    string  `json:"couponId,omitempty"`
}

// SessionBookingRequest books a class session. BookingType is derived from the
// session's class type.
type SessionBookingRequest struct {
	SessionID   string `json:"sessionId"`
	BookingType string `json:"bookingType"`
	CommonBookingFields
}

func (SessionBookingRequest) itemKind() ItemKind { return KindSession }

// EventBookingRequest books an event. BookingType is always "event".
type EventBookingRequest struct {
	EventID     string `json:"eventId"`
	BookingType string `json:"bookingType"`
	CommonBookingFields
}

func (EventBookingRequest) itemKind() ItemKind { return KindEvent }

// CheckoutPhase is the orchestrator state machine position of a checkout.
type CheckoutPhase string

const (
	PhaseIdle            CheckoutPhase = "idle"
	PhaseValidating      CheckoutPhase = "validating"
	PhaseCreatingBooking CheckoutPhase = "creating_booking"
	PhaseAwaitingPayment CheckoutPhase = "awaiting_payment"
	PhaseCompleted       CheckoutPhase = "completed"
)

// CheckoutState is the per-checkout record held in Redis. One checkout maps to
// one open booking modal in the SPA; the processing flag is the single-flag
// mutual exclusion that rejects concurrent attempts on the same checkout.
type CheckoutState struct {
	CheckoutID string         `json:"checkoutId"`
	Item       BookableItem   `json:"item"`
	Contact    ContactInfo    `json:"contact"`
	Discounts  DiscountState  `json:"discounts"`
	Price      PriceBreakdown `json:"price"`
	Phase      CheckoutPhase  `json:"phase"`
	Processing bool           `json:"processing"`

	// Set once booking creation succeeds.
	Booking *BookingRecord `json:"booking,omitempty"`
	Order   *PaymentOrder  `json:"order,omitempty"`

	// ClientState is an opaque SPA blob (scroll position and the like) saved
	// on close and returned verbatim on reopen.
	ClientState json.RawMessage `json:"clientState,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// WidgetConfig is handed to the SPA to open the payment widget.
type WidgetConfig struct {
	Key      string      `json:"key"`
	OrderID  string      `json:"orderId"`
	Amount   float64     `json:"amount"`
	Currency string      `json:"currency"`
	Prefill  ContactInfo `json:"prefill"`
}
