package upstream

import (
	"context"
	"net/http"

	"fitpass/models"
)

// GenerateOTP requests an OTP for the given internationally formatted number.
func (c *Client) GenerateOTP(ctx context.Context, phoneNumber string, isMock bool) error {
	body := map[string]any{
		"phoneNumber": phoneNumber,
		"isMock":      isMock,
	}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/generateOtp", nil, "", body, nil)
}

// ValidateOTPResponse is the outcome of an OTP validation attempt.
type ValidateOTPResponse struct {
	IsOtpValidated bool               `json:"isOtpValidated"`
	Token          string             `json:"token"`
	User           models.UserProfile `json:"user"`
}

// ValidateOTP verifies an OTP against the backend.
func (c *Client) ValidateOTP(ctx context.Context, phoneNumber, otp string) (*ValidateOTPResponse, error) {
	body := map[string]any{
		"phoneNumber": phoneNumber,
		"otp":         otp,
	}
	var out ValidateOTPResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/validateOtp", nil, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate carries the profile-completion fields.
type ProfileUpdate struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// UpdateUserProfile completes the user profile via an authenticated PATCH.
func (c *Client) UpdateUserProfile(ctx context.Context, token string, update ProfileUpdate) (*models.UserProfile, error) {
	var out struct {
		User models.UserProfile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/v1/users/updateUserProfile", nil, token, update, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
