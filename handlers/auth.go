package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitpass/middleware"
	"fitpass/services/auth"
)

// StartPhoneHandler opens an auth flow for a phone number and triggers OTP
// delivery. Re-submitting a number always starts a fresh flow.
func (hb *HandlerBundle) StartPhoneHandler(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	flow, err := hb.Auth.StartPhone(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, flow)
}

// VerifyOTPHandler checks the submitted OTP. The response either carries a
// session (done) or the signup flow with prefilled profile fields.
func (hb *HandlerBundle) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		FlowID string `json:"flowId"`
		OTP    string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Auth.VerifyOTP(c.Request.Context(), req.FlowID, req.OTP)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChangePhoneHandler steps an OTP-stage flow back to phone entry.
func (hb *HandlerBundle) ChangePhoneHandler(c *gin.Context) {
	var req struct {
		FlowID string `json:"flowId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	flow, err := hb.Auth.ChangePhone(c.Request.Context(), req.FlowID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, flow)
}

// CompleteSignupHandler finishes a signup-stage flow with the profile form
// and returns the persisted session.
func (hb *HandlerBundle) CompleteSignupHandler(c *gin.Context) {
	var req struct {
		FlowID string `json:"flowId"`
		auth.SignupRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := hb.Auth.CompleteSignup(c.Request.Context(), req.FlowID, req.SignupRequest)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// MeHandler returns the session resolved by the auth middleware. The SPA
// calls it on load to restore a logged-in state from a stored token.
func (hb *HandlerBundle) MeHandler(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please log in to continue.", "code": authRequiredCode})
		return
	}
	c.JSON(http.StatusOK, session)
}

// LogoutHandler destroys the stored session for the presented token.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Authorization header"})
		return
	}
	token := strings.TrimPrefix(header, prefix)

	if err := hb.Auth.Logout(c.Request.Context(), token); err != nil {
		getLogger(c).Warn("logout failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
