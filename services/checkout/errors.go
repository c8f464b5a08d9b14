package checkout

import (
	"errors"
	"fmt"
)

// ErrAuthRequired signals that the caller must complete the auth flow before
// booking. Handlers translate it into the signal that reopens the auth modal.
var ErrAuthRequired = errors.New("authentication required")

// ErrSoldOut signals a booking attempt on an item with no available slots.
var ErrSoldOut = errors.New("this class is sold out")

// ErrProcessing signals a duplicate submission while a checkout attempt is
// already in flight.
var ErrProcessing = errors.New("a booking attempt is already in progress")

// ErrNotFound signals an expired or unknown checkout.
var ErrNotFound = errors.New("checkout session not found or expired")

// FieldError is a contact-form validation failure tied to one field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PaymentError carries the gateway's failure reason.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return e.Reason
}
