package models

import "time"

// Checkout audit outcomes.
const (
	AuditOutcomeCompleted = "completed"
	AuditOutcomeFailed    = "failed"
	AuditOutcomeDismissed = "dismissed"
)

// BookingAuditRecord is written once per terminal checkout transition so
// support can reconstruct what a user saw.
type BookingAuditRecord struct {
	ID         string    `bson:"id" json:"id"`
	CheckoutID string    `bson:"checkoutId" json:"checkoutId"`
	BookingID  string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	ItemKind   ItemKind  `bson:"itemKind" json:"itemKind"`
	ItemID     string    `bson:"itemId" json:"itemId"`
	StudioID   string    `bson:"studioId" json:"studioId"`
	Amount     float64   `bson:"amount" json:"amount"`
	Outcome    string    `bson:"outcome" json:"outcome"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReconciliationDiscrepancy records a completion call that failed after the
// gateway confirmed payment. The user saw success; the webhook is expected to
// reconcile the booking out-of-band, and this record is the evidence trail.
type ReconciliationDiscrepancy struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"bookingId" json:"bookingId"`
	OrderID   string    `bson:"orderId" json:"orderId"`
	PaymentID string    `bson:"paymentId" json:"paymentId"`
	Error     string    `bson:"error" json:"error"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	// Set when a later completion retry (or the webhook) settled the booking.
	ResolvedAt *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}
