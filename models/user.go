package models

import "time"

// UserProfile holds the profile fields returned by the upstream aggregator.
type UserProfile struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Age         int    `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// Complete reports whether the profile carries everything a booking-eligible
// session needs. An incomplete profile forces the signup step of the auth flow.
func (p UserProfile) Complete() bool {
	return p.Name != "" && p.Email != "" && p.Age > 0 && p.Gender != ""
}

// UserSession is the persisted session of record: the opaque upstream bearer
// token plus the profile it authenticates. Written only by the auth flow's
// login/logout operations; every other component reads it fresh per request.
type UserSession struct {
	Token     string      `json:"token"`
	User      UserProfile `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}
