package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitpass/services/auth"
	"fitpass/services/checkout"
	"fitpass/upstream"
	"fitpass/utils"
)

// authRequiredCode tells the SPA to open the login modal before retrying.
const authRequiredCode = "AUTH_REQUIRED"

// respondServiceError maps a service-layer error to its HTTP shape. Backend
// messages pass through verbatim; transport failures collapse to the generic
// message.
func respondServiceError(c *gin.Context, err error) {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		if authErr.Field != "" {
			utils.JSONFieldError(c, authErr.Field, authErr.Message)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, utils.ErrorResponse{Message: authErr.Message})
		return
	}

	var fieldErr *checkout.FieldError
	if errors.As(err, &fieldErr) {
		utils.JSONFieldError(c, fieldErr.Field, fieldErr.Message)
		return
	}

	var payErr *checkout.PaymentError
	if errors.As(err, &payErr) {
		c.JSON(http.StatusPaymentRequired, utils.ErrorResponse{Message: payErr.Reason})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please log in to continue.", "code": authRequiredCode})
		return
	case errors.Is(err, checkout.ErrSoldOut):
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: "This class is sold out."})
		return
	case errors.Is(err, checkout.ErrProcessing):
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: "A booking attempt is already in progress."})
		return
	case errors.Is(err, checkout.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "Checkout session not found or expired."})
		return
	}

	if apiErr, ok := upstream.AsAPIError(err); ok {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, utils.ErrorResponse{Message: apiErr.Message})
		return
	}

	getLogger(c).Error("unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: upstream.GenericErrorMessage})
}

// asUserError extracts the backend's user-visible message from a rejection,
// if there is one.
func asUserError(err error) (string, bool) {
	if apiErr, ok := upstream.AsAPIError(err); ok && apiErr.StatusCode < 500 {
		return apiErr.Message, true
	}
	return "", false
}
