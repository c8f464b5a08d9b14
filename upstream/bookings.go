package upstream

import (
	"context"
	"net/http"

	"fitpass/models"
)

// CreateBookingResponse is the paired booking record and gateway payment order
// returned by a successful creation.
type CreateBookingResponse struct {
	Booking models.BookingRecord `json:"booking"`
	Order   models.PaymentOrder  `json:"order"`
}

// CreateBooking creates a pending booking and obtains a payment order. The
// request is one of the two disjoint payload shapes; serialization of the
// tagged type guarantees the foreign id key is absent, not null. Never
// retried: a duplicate would be a duplicate booking.
func (c *Client) CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*CreateBookingResponse, error) {
	var out CreateBookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/website/createBooking", nil, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteBooking finalizes a booking after the gateway reported payment
// success. Never retried automatically for the same reason as CreateBooking.
func (c *Client) CompleteBooking(ctx context.Context, token, orderID, paymentID string) (*models.BookingRecord, error) {
	body := map[string]any{
		"orderId":   orderID,
		"paymentId": paymentID,
	}
	var out struct {
		Booking models.BookingRecord `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/website/completeBooking", nil, token, body, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}
