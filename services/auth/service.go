package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/services/analytics"
	"fitpass/upstream"
)

// UpstreamAuthAPI is the slice of the aggregator API the auth flow consumes.
type UpstreamAuthAPI interface {
	GenerateOTP(ctx context.Context, phoneNumber string, isMock bool) error
	ValidateOTP(ctx context.Context, phoneNumber, otp string) (*upstream.ValidateOTPResponse, error)
	UpdateUserProfile(ctx context.Context, token string, update upstream.ProfileUpdate) (*models.UserProfile, error)
}

// SignupRequest carries the profile-completion form.
type SignupRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// VerifyResult is the outcome of an OTP verification: either the flow is done
// and a session exists, or the signup step is required first.
type VerifyResult struct {
	Done    bool                `json:"done"`
	Session *models.UserSession `json:"session,omitempty"`
	Flow    *Flow               `json:"flow,omitempty"`
}

// AuthService runs the phone -> otp -> signup -> done state machine that
// gates the booking orchestrator.
type AuthService interface {
	StartPhone(ctx context.Context, localPhone string) (*Flow, error)
	VerifyOTP(ctx context.Context, flowID, otp string) (*VerifyResult, error)
	ChangePhone(ctx context.Context, flowID string) (*Flow, error)
	CompleteSignup(ctx context.Context, flowID string, req SignupRequest) (*models.UserSession, error)
	Restore(ctx context.Context, token string) (*models.UserSession, error)
	Logout(ctx context.Context, token string) error
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Upstream    UpstreamAuthAPI
	Flows       FlowStore
	Sessions    SessionStore
	Analytics   analytics.Client
	Logger      *zap.Logger
	PhonePrefix string
	MockOTP     bool
}

// StartPhone validates the local number, requests an OTP and opens a fresh
// flow. Starting over with a new number always resets all flow-local state.
func (s *DefaultAuthService) StartPhone(ctx context.Context, localPhone string) (*Flow, error) {
	if !isNumeric(localPhone) || len(localPhone) < 10 {
		return nil, NewFieldError("phoneNumber", "Please enter a valid phone number.")
	}

	formatted := s.PhonePrefix + localPhone
	if err := s.Upstream.GenerateOTP(ctx, formatted, s.MockOTP); err != nil {
		return nil, err
	}

	flow := Flow{
		FlowID:      uuid.New().String(),
		State:       StateOTP,
		LocalPhone:  localPhone,
		PhoneNumber: formatted,
		CreatedAt:   time.Now(),
	}
	if err := s.Flows.Save(ctx, flow); err != nil {
		return nil, err
	}

	s.Analytics.Track(ctx, analytics.EventOTPRequested, flow.FlowID, map[string]any{
		"phoneNumber": formatted,
	})
	return &flow, nil
}

// VerifyOTP checks the submitted digits. On success the flow either finishes
// with a persisted session or moves to signup when the returned profile is
// missing any of name, email, age or gender.
func (s *DefaultAuthService) VerifyOTP(ctx context.Context, flowID, otp string) (*VerifyResult, error) {
	flow, err := s.Flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.State != StateOTP {
		return nil, &AuthError{Message: "No OTP verification in progress."}
	}
	if len(otp) != OTPLength || !isNumeric(otp) {
		return nil, NewFieldError("otp", "Please enter the 4-digit OTP.")
	}

	resp, err := s.Upstream.ValidateOTP(ctx, flow.PhoneNumber, otp)
	if err != nil {
		return nil, err
	}
	if !resp.IsOtpValidated {
		return nil, NewFieldError("otp", "Incorrect OTP. Please try again.")
	}

	user := resp.User
	if user.PhoneNumber == "" {
		user.PhoneNumber = flow.PhoneNumber
	}

	if !user.Complete() {
		flow.State = StateSignup
		flow.Token = resp.Token
		flow.User = user
		if err := s.Flows.Save(ctx, *flow); err != nil {
			return nil, err
		}
		return &VerifyResult{Done: false, Flow: flow}, nil
	}

	session := models.UserSession{Token: resp.Token, User: user, CreatedAt: time.Now()}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	_ = s.Flows.Delete(ctx, flowID)

	s.Analytics.Track(ctx, analytics.EventLoginCompleted, flow.FlowID, map[string]any{
		"phoneNumber": flow.PhoneNumber,
	})
	return &VerifyResult{Done: true, Session: &session}, nil
}

// ChangePhone returns the flow to the phone step, clearing entered digits and
// the previous target number.
func (s *DefaultAuthService) ChangePhone(ctx context.Context, flowID string) (*Flow, error) {
	flow, err := s.Flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	flow.State = StatePhone
	flow.LocalPhone = ""
	flow.PhoneNumber = ""
	flow.Token = ""
	flow.User = models.UserProfile{}
	if err := s.Flows.Save(ctx, *flow); err != nil {
		return nil, err
	}
	return flow, nil
}

var genders = map[string]bool{"male": true, "female": true, "other": true}

// CompleteSignup finishes the profile and closes the flow with a session.
func (s *DefaultAuthService) CompleteSignup(ctx context.Context, flowID string, req SignupRequest) (*models.UserSession, error) {
	flow, err := s.Flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.State != StateSignup {
		return nil, &AuthError{Message: "No signup in progress."}
	}

	if req.Name == "" {
		return nil, NewFieldError("name", "Please enter your name.")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, NewFieldError("email", "Please enter a valid email address.")
	}
	if req.Age <= 0 {
		return nil, NewFieldError("age", "Please enter a valid age.")
	}
	if !genders[req.Gender] {
		return nil, NewFieldError("gender", "Please select a gender.")
	}

	updated, err := s.Upstream.UpdateUserProfile(ctx, flow.Token, upstream.ProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		return nil, err
	}

	user := mergeProfile(flow.User, *updated)
	session := models.UserSession{Token: flow.Token, User: user, CreatedAt: time.Now()}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	_ = s.Flows.Delete(ctx, flowID)

	s.Analytics.Track(ctx, analytics.EventSignupCompleted, flow.FlowID, map[string]any{
		"phoneNumber": flow.PhoneNumber,
	})
	return &session, nil
}

// Restore loads the persisted session for a token, best-effort.
func (s *DefaultAuthService) Restore(ctx context.Context, token string) (*models.UserSession, error) {
	return s.Sessions.Get(ctx, token)
}

// Logout destroys the persisted session.
func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, token)
}

// mergeProfile overlays non-empty fields of update onto base.
func mergeProfile(base, update models.UserProfile) models.UserProfile {
	if update.Name != "" {
		base.Name = update.Name
	}
	if update.Email != "" {
		base.Email = update.Email
	}
	if update.PhoneNumber != "" {
		base.PhoneNumber = update.PhoneNumber
	}
	if update.Age > 0 {
		base.Age = update.Age
	}
	if update.Gender != "" {
		base.Gender = update.Gender
	}
	return base
}
