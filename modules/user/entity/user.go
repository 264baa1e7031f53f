package entity

import (
	"go-events-api/core/records"
)

// User is an account record in the records store. Provider credentials live
// on the user record so every provider call is scoped to the owning account.
type User struct {
	RecordID string `json:"id"`

	Name      string `json:"name"`
	Email     string `json:"email"`
	TimeZone  string `json:"timeZone,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"` // UTC RFC-3339

	// Payments provider
	PaymentsSecretKey string `json:"-"`

	// Conferencing provider OAuth state
	ConfAccessToken  string `json:"-"`
	ConfRefreshToken string `json:"-"`
	ConfTokenExpires string `json:"-"` // UTC RFC-3339
}

func FromRecord(rec records.Record) *User {
	f := rec.Fields
	return &User{
		RecordID:          rec.ID,
		Name:              f.Str("name"),
		Email:             f.Str("email"),
		TimeZone:          f.Str("timeZone"),
		LastLogin:         f.Str("lastLogin"),
		PaymentsSecretKey: f.Str("stripeSecretKey"),
		ConfAccessToken:   f.Str("zoomAccessToken"),
		ConfRefreshToken:  f.Str("zoomRefreshToken"),
		ConfTokenExpires:  f.Str("zoomTokenExpires"),
	}
}
