package api

import (
	"context"
	"io"
	"net/http"

	"github.com/jrsteele09/go-barber-client/users"
)

// NewUser is the sign-up payload. Providers send an address, clients leave it nil.
type NewUser struct {
	Name            string  `json:"name"`
	Surname         string  `json:"surname"`
	Email           string  `json:"email"`
	Address         *string `json:"address,omitempty"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
}

// ProfileUpdate replaces the signed-in user's profile. A nil address keeps the stored one.
type ProfileUpdate struct {
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Email   string  `json:"email"`
	Address *string `json:"address,omitempty"`
}

type PasswordChange struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// CreateUser registers an account and returns the API's message about the activation e-mail.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (string, error) {
	var d Detail
	if err := c.doPublic(ctx, http.MethodPost, RouteUsers, u, &d); err != nil {
		return "", err
	}
	return d.Detail, nil
}

// Activate confirms an account with the token from the activation e-mail.
func (c *Client) Activate(ctx context.Context, token string) (users.Kind, error) {
	var out struct {
		Type users.Kind `json:"type"`
	}
	body := struct {
		Token string `json:"token"`
	}{Token: token}
	if err := c.doPublic(ctx, http.MethodPut, RouteUserActivate, body, &out); err != nil {
		return "", err
	}
	return out.Type, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) (users.User, error) {
	var u users.User
	if err := c.doJSON(ctx, http.MethodPut, RouteUsers, nil, p, &u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (c *Client) ChangePassword(ctx context.Context, p PasswordChange) error {
	return c.doJSON(ctx, http.MethodPut, RouteUserPassword, nil, p, nil)
}

// UploadAvatar sends r as the multipart "file" field and returns the updated user.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (users.User, error) {
	var u users.User
	if err := c.doMultipart(ctx, http.MethodPut, RouteUserAvatar, "file", filename, r, &u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

// UserAppointments lists the signed-in client's bookings.
func (c *Client) UserAppointments(ctx context.Context) ([]UserAppointment, error) {
	var out []UserAppointment
	if err := c.getJSON(ctx, RouteUserSchedules, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
