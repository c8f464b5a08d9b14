package upstream

import (
	"context"
	"net/http"
)

// Contact captures a newsletter/email signup.
func (c *Client) Contact(ctx context.Context, email string) error {
	body := map[string]any{"email": email}
	return c.do(ctx, http.MethodPost, "/api/v1/common/website/contact", nil, "", body, nil)
}

// InquiryRequest is a studio-join lead.
type InquiryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	StudioName  string `json:"studioName,omitempty"`
	City        string `json:"city,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Inquiry submits a studio-join lead.
func (c *Client) Inquiry(ctx context.Context, req InquiryRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/common/website/inquiry", nil, "", req, nil)
}
