package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitpass/middleware"
	"fitpass/models"
	"fitpass/utils"
)

// OpenCheckoutHandler opens a checkout for a catalog item. The item is
// fetched fresh so the modal never shows stale pricing or availability.
func (hb *HandlerBundle) OpenCheckoutHandler(c *gin.Context) {
	var req struct {
		ItemKind string `json:"itemKind"`
		ItemID   string `json:"itemId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var (
		item *models.BookableItem
		err  error
	)
	switch models.ItemKind(req.ItemKind) {
	case models.KindEvent:
		item, err = hb.Upstream.GetEventByID(c.Request.Context(), req.ItemID)
	case models.KindSession:
		item, err = hb.Upstream.GetSessionByID(c.Request.Context(), req.ItemID)
	default:
		utils.JSONFieldError(c, "itemKind", "itemKind must be \"session\" or \"event\".")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	state, err := hb.Checkout.Open(c.Request.Context(), *item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetCheckoutHandler returns the checkout state, including any saved client
// restore blob.
func (hb *HandlerBundle) GetCheckoutHandler(c *gin.Context) {
	state, err := hb.Checkout.Get(c.Request.Context(), c.Param("checkoutId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// CloseCheckoutHandler discards a checkout.
func (hb *HandlerBundle) CloseCheckoutHandler(c *gin.Context) {
	if err := hb.Checkout.Close(c.Request.Context(), c.Param("checkoutId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

// SetContactHandler stores the contact form and returns the recomputed state.
func (hb *HandlerBundle) SetContactHandler(c *gin.Context) {
	var contact models.ContactInfo
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state, err := hb.Checkout.SetContact(c.Request.Context(), c.Param("checkoutId"), contact)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SaveClientStateHandler stores the SPA's opaque restore blob verbatim.
func (hb *HandlerBundle) SaveClientStateHandler(c *gin.Context) {
	blob, err := c.GetRawData()
	if err != nil || !json.Valid(blob) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be valid JSON"})
		return
	}

	if err := hb.Checkout.SaveClientState(c.Request.Context(), c.Param("checkoutId"), blob); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// AvailableCouponsHandler lists coupons applicable to the checkout's item.
func (hb *HandlerBundle) AvailableCouponsHandler(c *gin.Context) {
	offers, err := hb.Checkout.AvailableCoupons(c.Request.Context(), c.Param("checkoutId"), middleware.SessionFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": offers})
}

// ApplyCouponHandler validates and applies a coupon, displacing any promo
// code. The response always carries the current state, also on rejection.
func (hb *HandlerBundle) ApplyCouponHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state, err := hb.Checkout.ApplyCoupon(c.Request.Context(), c.Param("checkoutId"), req.Code, middleware.SessionFromContext(c))
	if err != nil {
		if state != nil {
			if apiErr, ok := asUserError(err); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": apiErr, "state": state})
				return
			}
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ApplyPromoCodeHandler mirrors ApplyCouponHandler for the promo track.
func (hb *HandlerBundle) ApplyPromoCodeHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state, err := hb.Checkout.ApplyPromoCode(c.Request.Context(), c.Param("checkoutId"), req.Code, middleware.SessionFromContext(c))
	if err != nil {
		if state != nil {
			if apiErr, ok := asUserError(err); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": apiErr, "state": state})
				return
			}
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// RemoveCouponHandler clears the coupon track.
func (hb *HandlerBundle) RemoveCouponHandler(c *gin.Context) {
	state, err := hb.Checkout.RemoveCoupon(c.Request.Context(), c.Param("checkoutId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// PayHandler runs the checkout sequence and returns the payment widget
// config once the booking is created and the order is open.
func (hb *HandlerBundle) PayHandler(c *gin.Context) {
	widget, err := hb.Checkout.Pay(c.Request.Context(), c.Param("checkoutId"), middleware.SessionFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, widget)
}

// PaymentSuccessHandler handles the widget's success callback.
func (hb *HandlerBundle) PaymentSuccessHandler(c *gin.Context) {
	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Checkout.PaymentSucceeded(c.Request.Context(), c.Param("checkoutId"),
		middleware.SessionFromContext(c), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PaymentDismissedHandler handles the user closing the widget unpaid.
func (hb *HandlerBundle) PaymentDismissedHandler(c *gin.Context) {
	if err := hb.Checkout.PaymentDismissed(c.Request.Context(), c.Param("checkoutId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}

// PaymentFailedHandler records a gateway-reported failure and surfaces the
// reason back to the SPA.
func (hb *HandlerBundle) PaymentFailedHandler(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := hb.Checkout.PaymentFailed(c.Request.Context(), c.Param("checkoutId"), req.Reason)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"status": "failed"})
		return
	}
	respondServiceError(c, err)
}
