package forms

import (
	"time"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/internal/utils"
)

type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUp registers a client, or a provider when Provider is set and an address is given.
type SignUp struct {
	Name            string `json:"name" validate:"required"`
	Surname         string `json:"surname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Address         string `json:"address" validate:"required_if=Provider true"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Provider        bool   `json:"-"`
}

func (s SignUp) Request() api.NewUser {
	u := api.NewUser{
		Name:            s.Name,
		Surname:         s.Surname,
		Email:           s.Email,
		Password:        s.Password,
		ConfirmPassword: s.ConfirmPassword,
	}
	if s.Provider {
		u.Address = utils.OptionalString(s.Address)
	}
	return u
}

type Forgot struct {
	Email string `json:"email" validate:"required,email"`
}

type Reset struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}

func (r Reset) Request() api.PasswordReset {
	return api.PasswordReset{Token: r.Token, NewPassword: r.NewPassword, ConfirmPassword: r.ConfirmPassword}
}

// Profile edits the signed-in user. The password fields are only checked when OldPassword is
// filled in.
type Profile struct {
	Name            string `json:"name" validate:"required"`
	Surname         string `json:"surname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Address         string `json:"address" validate:"required_if=Provider true"`
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password" validate:"required_with=OldPassword,omitempty,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
	Provider        bool   `json:"-"`
}

// Update is the profile request. Only providers send an address.
func (p Profile) Update() api.ProfileUpdate {
	u := api.ProfileUpdate{
		Name:    p.Name,
		Surname: p.Surname,
		Email:   p.Email,
	}
	if p.Provider {
		u.Address = utils.OptionalString(p.Address)
	}
	return u
}

// PasswordChange returns the password request and whether the form asks for one.
func (p Profile) PasswordChange() (api.PasswordChange, bool) {
	if p.OldPassword == "" {
		return api.PasswordChange{}, false
	}
	return api.PasswordChange{
		OldPassword:     p.OldPassword,
		NewPassword:     p.NewPassword,
		ConfirmPassword: p.ConfirmPassword,
	}, true
}

// Password changes the signed-in user's password without touching the profile.
type Password struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}

func (p Password) Request() api.PasswordChange {
	return api.PasswordChange{OldPassword: p.OldPassword, NewPassword: p.NewPassword, ConfirmPassword: p.ConfirmPassword}
}

// Booking is the appointment being assembled: a provider, a day and an hour of that day. Hour
// zero means no hour was picked yet.
type Booking struct {
	ProviderID string    `json:"provider_id" validate:"required,uuid"`
	Date       time.Time `json:"date" validate:"required"`
	Hour       int       `json:"hour" validate:"required,min=8,max=17"`
}
