package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitpass/upstream"
	"fitpass/utils"
)

// ContactLeadHandler forwards a newsletter/contact email to the backend.
func (hb *HandlerBundle) ContactLeadHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !strings.Contains(req.Email, "@") {
		utils.JSONFieldError(c, "email", "Please enter a valid email address.")
		return
	}

	if err := hb.Upstream.Contact(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// InquiryHandler forwards a studio inquiry form to the backend.
func (hb *HandlerBundle) InquiryHandler(c *gin.Context) {
	var req upstream.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.JSONFieldError(c, "name", "Please enter your name.")
		return
	}
	if !strings.Contains(req.Email, "@") {
		utils.JSONFieldError(c, "email", "Please enter a valid email address.")
		return
	}

	if err := hb.Upstream.Inquiry(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
