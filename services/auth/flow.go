package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"fitpass/models"
	"fitpass/utils"
)

// Auth flow states. "done" is implicit: the flow record is deleted and the
// session handed back to the caller.
const (
	StatePhone  = "phone"
	StateOTP    = "otp"
	StateSignup = "signup"
)

// Flow is the transient state of one OTP authentication attempt.
type Flow struct {
	FlowID      string             `json:"flowId"`
	State       string             `json:"state"`
	LocalPhone  string             `json:"localPhone"`
	PhoneNumber string             `json:"phoneNumber"` // international format
	Token       string             `json:"token,omitempty"`
	User        models.UserProfile `json:"user,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// FlowStore persists in-progress auth flows with a TTL.
type FlowStore interface {
	Save(ctx context.Context, flow Flow) error
	Get(ctx context.Context, flowID string) (*Flow, error)
	Delete(ctx context.Context, flowID string) error
}

type redisFlowStore struct {
	client *redis.Client
}

// NewRedisFlowStore builds the Redis-backed flow store.
func NewRedisFlowStore(client *redis.Client) FlowStore {
	return &redisFlowStore{client: client}
}

func (s *redisFlowStore) Save(ctx context.Context, flow Flow) error {
	flow.UpdatedAt = time.Now()
	data, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("failed to marshal auth flow: %w", err)
	}
	if err := s.client.Set(ctx, utils.AuthFlowKeyPrefix+flow.FlowID, data, utils.AuthFlowTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth flow: %w", err)
	}
	return nil
}

func (s *redisFlowStore) Get(ctx context.Context, flowID string) (*Flow, error) {
	data, err := s.client.Get(ctx, utils.AuthFlowKeyPrefix+flowID).Result()
	if err == redis.Nil {
		return nil, &AuthError{Message: "Your session has expired. Please start again."}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load auth flow: %w", err)
	}
	var flow Flow
	if err := json.Unmarshal([]byte(data), &flow); err != nil {
		return nil, fmt.Errorf("failed to parse auth flow: %w", err)
	}
	return &flow, nil
}

func (s *redisFlowStore) Delete(ctx context.Context, flowID string) error {
	return s.client.Del(ctx, utils.AuthFlowKeyPrefix+flowID).Err()
}
