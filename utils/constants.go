// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis user-session keys.
const SessionKeyPrefix = "session:"

// CheckoutKeyPrefix is the prefix used for Redis checkout-state keys.
const CheckoutKeyPrefix = "checkout:"

// AuthFlowKeyPrefix is the prefix used for Redis OTP auth-flow keys.
const AuthFlowKeyPrefix = "authFlow:"

// AuthFlowTTL is the time-to-live for an in-progress OTP auth flow.
const AuthFlowTTL = 10 * time.Minute

// CheckoutTTL is the time-to-live for an open checkout session.
const CheckoutTTL = 30 * time.Minute
