package auth

import "strings"

// OTPLength is the number of digits in a one-time password.
const OTPLength = 4

// OTPInput models the four-field OTP entry widget: one digit per field with
// auto-advancing focus, backspace-to-previous, and bulk paste distribution.
// The SPA mirrors this behavior; keeping the rules here lets both sides agree
// on what a completed entry looks like.
type OTPInput struct {
	Digits [OTPLength]string `json:"digits"`
	Focus  int               `json:"focus"`
}

// EnterDigit places a single digit in the focused field and advances focus.
// Non-digit input is ignored.
func (in *OTPInput) EnterDigit(s string) {
	if len(s) != 1 || !isNumeric(s) {
		return
	}
	in.Digits[in.Focus] = s
	if in.Focus < OTPLength-1 {
		in.Focus++
	}
}

// Backspace clears the focused field, or moves to and clears the previous
// field when the focused one is already empty.
func (in *OTPInput) Backspace() {
	if in.Digits[in.Focus] != "" {
		in.Digits[in.Focus] = ""
		return
	}
	if in.Focus > 0 {
		in.Focus--
		in.Digits[in.Focus] = ""
	}
}

// Paste distributes a pasted numeric string one digit per field starting from
// the first field, leaving focus on the last filled field. A non-numeric
// paste is a no-op.
func (in *OTPInput) Paste(s string) {
	s = strings.TrimSpace(s)
	if s == "" || !isNumeric(s) {
		return
	}
	n := len(s)
	if n > OTPLength {
		n = OTPLength
	}
	for i := 0; i < n; i++ {
		in.Digits[i] = string(s[i])
	}
	in.Focus = n - 1
}

// Clear resets all fields, e.g. when the user goes back to change the phone
// number.
func (in *OTPInput) Clear() {
	for i := range in.Digits {
		in.Digits[i] = ""
	}
	in.Focus = 0
}

// Code returns the concatenated digits.
func (in *OTPInput) Code() string {
	return strings.Join(in.Digits[:], "")
}

// Complete reports whether all fields are filled.
func (in *OTPInput) Complete() bool {
	for _, d := range in.Digits {
		if d == "" {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
