package api

import (
	"context"
	"net/http"
)

// Host tells the API which client is signing in; the web host only admits providers.
type Host string

const (
	HostWeb    Host = "web"
	HostMobile Host = "mobile"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Host     Host   `json:"host"`
}

type PasswordReset struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AccessToken exchanges credentials for a token and the user's profile.
func (c *Client) AccessToken(ctx context.Context, creds Credentials) (Session, error) {
	var s Session
	if err := c.doPublic(ctx, http.MethodPost, RouteAccessToken, creds, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// ForgotPassword asks the API to e-mail a reset link and returns its confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var d Detail
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	if err := c.doPublic(ctx, http.MethodPost, RouteForgotPassword, body, &d); err != nil {
		return "", err
	}
	return d.Detail, nil
}

func (c *Client) ResetPassword(ctx context.Context, reset PasswordReset) (string, error) {
	var d Detail
	if err := c.doPublic(ctx, http.MethodPost, RouteResetPassword, reset, &d); err != nil {
		return "", err
	}
	return d.Detail, nil
}
