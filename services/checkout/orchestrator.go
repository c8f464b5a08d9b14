package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/monitoring"
	"fitpass/services/analytics"
	"fitpass/services/pricing"
)

// Open creates a fresh checkout for an item in the idle phase.
func (s *DefaultCheckoutService) Open(ctx context.Context, item models.BookableItem) (*models.CheckoutState, error) {
	state := models.CheckoutState{
		CheckoutID: uuid.New().String(),
		Item:       item,
		Phase:      models.PhaseIdle,
		Price:      pricing.Compute(item.BasePrice, 0, 0),
		CreatedAt:  time.Now(),
	}
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Get returns the current checkout state.
func (s *DefaultCheckoutService) Get(ctx context.Context, checkoutID string) (*models.CheckoutState, error) {
	return s.Store.Get(ctx, checkoutID)
}

// Close discards a checkout. Before booking creation this is a pure local
// cleanup; once a booking exists the upstream record stays pending and is the
// backend's to reconcile.
func (s *DefaultCheckoutService) Close(ctx context.Context, checkoutID string) error {
	return s.Store.Delete(ctx, checkoutID)
}

// validateContact enforces the contact-form rules shared by the orchestrator
// preconditions.
func validateContact(contact models.ContactInfo) error {
	if strings.TrimSpace(contact.Name) == "" {
		return &FieldError{Field: "name", Message: "Please enter your name."}
	}
	if !strings.Contains(contact.Email, "@") {
		return &FieldError{Field: "email", Message: "Please enter a valid email address."}
	}
	digits := strings.TrimLeft(contact.PhoneNumber, "+")
	if len(digits) < 10 {
		return &FieldError{Field: "phoneNumber", Message: "Please enter a valid phone number."}
	}
	return nil
}

// Pay runs the checkout sequence: preconditions, booking creation, gateway
// readiness, widget handoff. Booking creation strictly precedes the widget
// config being returned; everything after that arrives via callbacks.
func (s *DefaultCheckoutService) Pay(ctx context.Context, checkoutID string, session *models.UserSession) (*models.WidgetConfig, error) {
	locked, err := s.Store.TryLock(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrProcessing
	}
	defer func() { _ = s.Store.Unlock(ctx, checkoutID) }()

	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	// Preconditions: fail fast, no upstream call issued on violation.
	state.Phase = models.PhaseValidating
	if session == nil || session.Token == "" {
		state.Phase = models.PhaseIdle
		_ = s.Store.Save(ctx, *state)
		return nil, ErrAuthRequired
	}
	if !state.Item.Bookable() {
		state.Phase = models.PhaseIdle
		_ = s.Store.Save(ctx, *state)
		return nil, ErrSoldOut
	}
	if err := validateContact(state.Contact); err != nil {
		state.Phase = models.PhaseIdle
		_ = s.Store.Save(ctx, *state)
		return nil, err
	}

	s.track(ctx, analytics.EventBookingInitiated, state)
	monitoring.CheckoutTransition("initiated")

	// Price is re-derived before the payload is built; a stale total must
	// never reach the wire.
	state.Price = pricing.ForDiscounts(state.Item, state.Discounts)
	state.Phase = models.PhaseCreatingBooking
	if err := s.Store.Save(ctx, *state); err != nil {
		return nil, err
	}

	resp, err := s.Upstream.CreateBooking(ctx, session.Token, buildBookingRequest(*state))
	if err != nil {
		// No partial booking state is retained.
		state.Phase = models.PhaseIdle
		state.Booking = nil
		state.Order = nil
		_ = s.Store.Save(ctx, *state)
		monitoring.UpstreamError("createBooking")
		monitoring.CheckoutTransition("create_failed")
		return nil, err
	}
	monitoring.CheckoutTransition("booking_created")
	s.track(ctx, analytics.EventBookingCreated, state)

	if err := s.Gateway.Ensure(); err != nil {
		state.Phase = models.PhaseIdle
		state.Booking = nil
		state.Order = nil
		_ = s.Store.Save(ctx, *state)
		s.Logger.Error("payment gateway unavailable", zap.Error(err))
		return nil, &PaymentError{Reason: "Payment is temporarily unavailable. Please try again."}
	}

	booking := resp.Booking
	order := resp.Order
	state.Booking = &booking
	state.Order = &order
	state.Phase = models.PhaseAwaitingPayment
	if err := s.Store.Save(ctx, *state); err != nil {
		return nil, err
	}

	monitoring.CheckoutTransition("widget_opened")
	s.track(ctx, analytics.EventPaymentModalOpened, state)

	key := order.Key
	if key == "" {
		key = s.Gateway.WidgetKey()
	}
	return &models.WidgetConfig{
		Key:      key,
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Prefill:  state.Contact,
	}, nil
}

// PaymentSucceeded handles the gateway's success callback. Once the signature
// checks out, the user-visible outcome is success no matter what the
// completion call does: the money has moved, and a failed confirmation is a
// reconciliation problem, not a payment failure.
func (s *DefaultCheckoutService) PaymentSucceeded(ctx context.Context, checkoutID string, session *models.UserSession, orderID, paymentID, signature string) (*PaymentResult, error) {
	locked, err := s.Store.TryLock(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrProcessing
	}
	defer func() { _ = s.Store.Unlock(ctx, checkoutID) }()

	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if state.Phase != models.PhaseAwaitingPayment || state.Booking == nil || state.Order == nil {
		return nil, ErrNotFound
	}
	if session == nil || session.Token == "" {
		return nil, ErrAuthRequired
	}
	// The callback must settle the order this checkout opened; a signature
	// minted for a different order proves nothing about this one.
	if orderID != state.Order.OrderID {
		return nil, ErrNotFound
	}
	if err := s.Gateway.VerifyPayment(orderID, paymentID, signature); err != nil {
		return nil, err
	}

	monitoring.PaymentOutcome("success")

	booking := *state.Booking
	booking.Status = models.BookingStatusCompleted
	reconciled := true

	confirmed, err := s.Upstream.CompleteBooking(ctx, session.Token, orderID, paymentID)
	if err != nil {
		// The payment already went through; surface success regardless and
		// leave a trail for the out-of-band webhook reconciliation.
		reconciled = false
		s.Logger.Error("booking completion failed after confirmed payment",
			zap.String("bookingId", booking.BookingID),
			zap.String("orderId", orderID),
			zap.String("paymentId", paymentID),
			zap.Error(err))
		monitoring.ReconciliationFailure()
		monitoring.UpstreamError("completeBooking")
		s.recordDiscrepancy(booking.BookingID, orderID, paymentID, err)
		s.track(ctx, analytics.EventReconciliationFailed, state)
		if s.Queue != nil {
			if qErr := s.Queue.EnqueueCompletion(booking.BookingID, orderID, paymentID); qErr != nil {
				s.Logger.Error("failed to schedule completion retry", zap.Error(qErr))
			}
		}
	} else {
		booking = *confirmed
	}

	state.Booking = &booking
	state.Phase = models.PhaseCompleted
	if err := s.Store.Save(ctx, *state); err != nil {
		s.Logger.Warn("failed to persist completed checkout", zap.Error(err))
	}

	monitoring.CheckoutTransition("completed")
	s.track(ctx, analytics.EventBookingCompleted, state)
	s.audit(state, booking.BookingID, models.AuditOutcomeCompleted, "")

	return &PaymentResult{Booking: &booking, Reconciled: reconciled}, nil
}

// PaymentDismissed handles the user closing the widget without paying: back
// to idle, no error, no booking mutation.
func (s *DefaultCheckoutService) PaymentDismissed(ctx context.Context, checkoutID string) error {
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return err
	}
	// Only an open payment can be dismissed; completed stays completed even
	// if a stray callback arrives late.
	if state.Phase != models.PhaseAwaitingPayment {
		return ErrNotFound
	}
	state.Phase = models.PhaseIdle
	state.Booking = nil
	state.Order = nil
	if err := s.Store.Save(ctx, *state); err != nil {
		return err
	}

	monitoring.PaymentOutcome("dismissed")
	monitoring.CheckoutTransition("dismissed")
	s.track(ctx, analytics.EventPaymentDismissed, state)
	s.audit(state, "", models.AuditOutcomeDismissed, "")
	return nil
}

// PaymentFailed handles a gateway-reported failure: the reason is surfaced
// and the checkout returns to a retryable idle state.
func (s *DefaultCheckoutService) PaymentFailed(ctx context.Context, checkoutID, reason string) error {
	state, err := s.Store.Get(ctx, checkoutID)
	if err != nil {
		return err
	}
	if state.Phase != models.PhaseAwaitingPayment {
		return ErrNotFound
	}
	state.Phase = models.PhaseIdle
	state.Booking = nil
	state.Order = nil
	if err := s.Store.Save(ctx, *state); err != nil {
		return err
	}

	monitoring.PaymentOutcome("failed")
	monitoring.CheckoutTransition("failed")
	s.track(ctx, analytics.EventPaymentFailed, state)
	s.audit(state, "", models.AuditOutcomeFailed, reason)

	if reason == "" {
		reason = "Payment failed. Please try again."
	}
	return &PaymentError{Reason: reason}
}

// track emits a fire-and-forget analytics event for a checkout transition.
func (s *DefaultCheckoutService) track(ctx context.Context, event string, state *models.CheckoutState) {
	s.Analytics.Track(ctx, event, state.CheckoutID, map[string]any{
		"itemKind":   string(state.Item.Kind),
		"itemId":     state.Item.ID,
		"studioId":   state.Item.StudioID,
		"finalPrice": state.Price.FinalPrice,
	})
}

// audit persists a terminal-transition audit record in the background.
func (s *DefaultCheckoutService) audit(state *models.CheckoutState, bookingID, outcome, reason string) {
	if s.Records == nil {
		return
	}
	record := models.BookingAuditRecord{
		CheckoutID: state.CheckoutID,
		BookingID:  bookingID,
		ItemKind:   state.Item.Kind,
		ItemID:     state.Item.ID,
		StudioID:   state.Item.StudioID,
		Amount:     state.Price.FinalPrice,
		Outcome:    outcome,
		Reason:     reason,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.Records.CreateAudit(ctx, record); err != nil {
			s.Logger.Warn("failed to write booking audit record", zap.Error(err))
		}
	}()
}

// recordDiscrepancy persists a reconciliation discrepancy in the background.
func (s *DefaultCheckoutService) recordDiscrepancy(bookingID, orderID, paymentID string, cause error) {
	if s.Records == nil {
		return
	}
	record := models.ReconciliationDiscrepancy{
		BookingID: bookingID,
		OrderID:   orderID,
		PaymentID: paymentID,
		Error:     cause.Error(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.Records.CreateDiscrepancy(ctx, record); err != nil {
			s.Logger.Error("failed to record reconciliation discrepancy", zap.Error(err))
		}
	}()
}
