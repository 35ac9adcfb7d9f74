package users

import (
	"strings"
)

// Kind is returned by account activation and tells the caller which client the account is for.
type Kind string

const (
	KindProvider Kind = "provider" // Service professional, signs in on the web host
	KindUser     Kind = "user"     // Client, books appointments from the mobile host
)

// User is the profile the API returns with a session and from profile updates. It is replaced
// whole, never patched field by field.
type User struct {
	ID      string  `json:"id"`                // UUID assigned by the API
	Name    string  `json:"name"`              // First name
	Surname string  `json:"surname"`           // Last name
	Email   string  `json:"email"`             // Login e-mail
	Avatar  string  `json:"avatar,omitempty"`  // Absolute avatar URL (the API falls back to ui-avatars)
	Address *string `json:"address,omitempty"` // Shop address, only providers have one
}

func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// IsProvider mirrors the API rule: an account with an address is a provider.
func (u User) IsProvider() bool {
	return u.Address != nil && strings.TrimSpace(*u.Address) != ""
}

func (u User) Kind() Kind {
	if u.IsProvider() {
		return KindProvider
	}
	return KindUser
}

// IsZero reports whether u carries no identity.
func (u User) IsZero() bool {
	return u.ID == ""
}
