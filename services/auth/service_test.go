package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/services/analytics"
	"fitpass/upstream"
)

type fakeUpstream struct {
	generatedFor []string
	generateErr  error

	validateResp *upstream.ValidateOTPResponse
	validateErr  error

	updateResp *models.UserProfile
	updateErr  error
}

func (f *fakeUpstream) GenerateOTP(_ context.Context, phoneNumber string, _ bool) error {
	f.generatedFor = append(f.generatedFor, phoneNumber)
	return f.generateErr
}

func (f *fakeUpstream) ValidateOTP(_ context.Context, _, _ string) (*upstream.ValidateOTPResponse, error) {
	return f.validateResp, f.validateErr
}

func (f *fakeUpstream) UpdateUserProfile(_ context.Context, _ string, _ upstream.ProfileUpdate) (*models.UserProfile, error) {
	return f.updateResp, f.updateErr
}

type memFlowStore struct {
	flows map[string]Flow
}

func newMemFlowStore() *memFlowStore {
	return &memFlowStore{flows: make(map[string]Flow)}
}

func (s *memFlowStore) Save(_ context.Context, flow Flow) error {
	s.flows[flow.FlowID] = flow
	return nil
}

func (s *memFlowStore) Get(_ context.Context, flowID string) (*Flow, error) {
	flow, ok := s.flows[flowID]
	if !ok {
		return nil, &AuthError{Message: "Your session has expired. Please start again."}
	}
	return &flow, nil
}

func (s *memFlowStore) Delete(_ context.Context, flowID string) error {
	delete(s.flows, flowID)
	return nil
}

type memSessionStore struct {
	sessions map[string]models.UserSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]models.UserSession)}
}

func (s *memSessionStore) Save(_ context.Context, session models.UserSession) error {
	s.sessions[session.Token] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*models.UserSession, error) {
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestService(up *fakeUpstream) (*DefaultAuthService, *memFlowStore, *memSessionStore) {
	flows := newMemFlowStore()
	sessions := newMemSessionStore()
	svc := &DefaultAuthService{
		Upstream:    up,
		Flows:       flows,
		Sessions:    sessions,
		Analytics:   analytics.Noop{},
		Logger:      zap.NewNop(),
		PhonePrefix: "+91",
	}
	return svc, flows, sessions
}

func TestStartPhoneRejectsInvalidNumbers(t *testing.T) {
	svc, _, _ := newTestService(&fakeUpstream{})

	for _, phone := range []string{"", "12345", "98765abc43", "987 654321"} {
		_, err := svc.StartPhone(context.Background(), phone)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr, "phone %q", phone)
		assert.Equal(t, "phoneNumber", authErr.Field)
	}
}

func TestStartPhoneFormatsAndOpensFlow(t *testing.T) {
	up := &fakeUpstream{}
	svc, flows, _ := newTestService(up)

	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Equal(t, []string{"+919876543210"}, up.generatedFor)
	assert.Equal(t, StateOTP, flow.State)
	assert.Equal(t, "9876543210", flow.LocalPhone)
	assert.Contains(t, flows.flows, flow.FlowID)
}

func TestStartPhoneSurfacesUpstreamRejection(t *testing.T) {
	up := &fakeUpstream{generateErr: &upstream.APIError{StatusCode: 400, Message: "Number is blocked"}}
	svc, flows, _ := newTestService(up)

	_, err := svc.StartPhone(context.Background(), "9876543210")
	apiErr, ok := upstream.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Number is blocked", apiErr.Message)
	assert.Empty(t, flows.flows, "no flow opened on rejection")
}

func TestVerifyOTPRejectsMalformedDigits(t *testing.T) {
	up := &fakeUpstream{}
	svc, _, _ := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	for _, otp := range []string{"", "123", "12345", "12a4"} {
		_, err := svc.VerifyOTP(context.Background(), flow.FlowID, otp)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr, "otp %q", otp)
		assert.Equal(t, "otp", authErr.Field)
	}
}

func TestVerifyOTPCompleteProfileFinishesFlow(t *testing.T) {
	up := &fakeUpstream{validateResp: &upstream.ValidateOTPResponse{
		IsOtpValidated: true,
		Token:          "token-1",
		User: models.UserProfile{
			Name: "Asha", Email: "asha@example.com", Age: 28, Gender: "female",
		},
	}}
	svc, flows, sessions := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	res, err := svc.VerifyOTP(context.Background(), flow.FlowID, "1234")
	require.NoError(t, err)

	assert.True(t, res.Done)
	require.NotNil(t, res.Session)
	assert.Equal(t, "token-1", res.Session.Token)
	assert.Contains(t, sessions.sessions, "token-1")
	assert.NotContains(t, flows.flows, flow.FlowID, "flow deleted once done")
}

func TestVerifyOTPIncompleteProfileRequiresSignup(t *testing.T) {
	up := &fakeUpstream{validateResp: &upstream.ValidateOTPResponse{
		IsOtpValidated: true,
		Token:          "token-2",
		User:           models.UserProfile{Name: "Ravi"}, // missing email, age, gender
	}}
	svc, _, sessions := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	res, err := svc.VerifyOTP(context.Background(), flow.FlowID, "1234")
	require.NoError(t, err)

	assert.False(t, res.Done)
	require.NotNil(t, res.Flow)
	assert.Equal(t, StateSignup, res.Flow.State)
	assert.Equal(t, "Ravi", res.Flow.User.Name, "partial profile prefilled")
	assert.Empty(t, sessions.sessions, "no session before signup completes")
}

func TestVerifyOTPRejectionKeepsFlowInOTPState(t *testing.T) {
	up := &fakeUpstream{validateResp: &upstream.ValidateOTPResponse{IsOtpValidated: false}}
	svc, flows, _ := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	_, err = svc.VerifyOTP(context.Background(), flow.FlowID, "1234")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "otp", authErr.Field)
	assert.Equal(t, StateOTP, flows.flows[flow.FlowID].State)
}

func TestChangePhoneClearsFlowState(t *testing.T) {
	up := &fakeUpstream{}
	svc, flows, _ := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	back, err := svc.ChangePhone(context.Background(), flow.FlowID)
	require.NoError(t, err)

	assert.Equal(t, StatePhone, back.State)
	assert.Empty(t, back.PhoneNumber)
	assert.Empty(t, back.LocalPhone)
	assert.Equal(t, StatePhone, flows.flows[flow.FlowID].State)
}

func TestCompleteSignupValidation(t *testing.T) {
	up := &fakeUpstream{validateResp: &upstream.ValidateOTPResponse{
		IsOtpValidated: true, Token: "token-3", User: models.UserProfile{},
	}}
	svc, _, _ := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	_, err = svc.VerifyOTP(context.Background(), flow.FlowID, "1234")
	require.NoError(t, err)

	tests := []struct {
		name  string
		req   SignupRequest
		field string
	}{
		{"empty name", SignupRequest{Email: "a@b.c", Age: 30, Gender: "male"}, "name"},
		{"email without at", SignupRequest{Name: "A", Email: "not-an-email", Age: 30, Gender: "male"}, "email"},
		{"zero age", SignupRequest{Name: "A", Email: "a@b.c", Gender: "male"}, "age"},
		{"unknown gender", SignupRequest{Name: "A", Email: "a@b.c", Age: 30, Gender: "robot"}, "gender"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteSignup(context.Background(), flow.FlowID, tt.req)
			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.field, authErr.Field)
		})
	}
}

func TestCompleteSignupMergesAndPersists(t *testing.T) {
	up := &fakeUpstream{
		validateResp: &upstream.ValidateOTPResponse{
			IsOtpValidated: true, Token: "token-4",
			User: models.UserProfile{Name: "Ravi"},
		},
		updateResp: &models.UserProfile{
			Name: "Ravi K", Email: "ravi@example.com", Age: 31, Gender: "male",
		},
	}
	svc, flows, sessions := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	_, err = svc.VerifyOTP(context.Background(), flow.FlowID, "1234")
	require.NoError(t, err)

	session, err := svc.CompleteSignup(context.Background(), flow.FlowID, SignupRequest{
		Name: "Ravi K", Email: "ravi@example.com", Age: 31, Gender: "male",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-4", session.Token)
	assert.Equal(t, "Ravi K", session.User.Name)
	assert.Equal(t, "+919876543210", session.User.PhoneNumber, "phone carried from the OTP step")
	assert.True(t, session.User.Complete())
	assert.Contains(t, sessions.sessions, "token-4")
	assert.NotContains(t, flows.flows, flow.FlowID)
}

func TestLogoutDestroysSession(t *testing.T) {
	up := &fakeUpstream{validateResp: &upstream.ValidateOTPResponse{
		IsOtpValidated: true, Token: "token-5",
		User: models.UserProfile{Name: "A", Email: "a@b.c", Age: 20, Gender: "other"},
	}}
	svc, _, sessions := newTestService(up)
	flow, err := svc.StartPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	_, err = svc.VerifyOTP(context.Background(), flow.FlowID, "1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "token-5"))
	assert.Empty(t, sessions.sessions)

	restored, err := svc.Restore(context.Background(), "token-5")
	require.NoError(t, err)
	assert.Nil(t, restored)
}
