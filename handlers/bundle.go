package handlers

import (
	"fitpass/services/auth"
	"fitpass/services/checkout"
	"fitpass/upstream"
)

// HandlerBundle groups the endpoint handlers and the services they close
// over. Routes receive one bundle and pick the handlers they need.
type HandlerBundle struct {
	Auth     auth.AuthService
	Checkout checkout.CheckoutService
	Upstream *upstream.Client
	Sessions auth.SessionStore
}
