package auth

import "fmt"

// AuthError is a validation or verification failure in the auth flow. Field
// names the offending form field when the failure is field-specific.
type AuthError struct {
	Field   string
	Message string
}

func (e *AuthError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError builds a field-scoped auth error.
func NewFieldError(field, msg string) error {
	return &AuthError{Field: field, Message: msg}
}
