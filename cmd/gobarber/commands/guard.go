package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/forms"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/routes"
	"github.com/jrsteele09/go-barber-client/schedule"
)

const dayLayout = "2006-01-02"

// screen binds a command to the web route and the mobile screen it stands for.
type screen struct {
	web    string
	mobile routes.Screen
}

var (
	signInScreen    = screen{routes.RouteSignIn, routes.ScreenSignIn}
	signUpScreen    = screen{routes.RouteSignUp, routes.ScreenSignUp}
	forgotScreen    = screen{routes.RouteForgot, routes.ScreenForgot}
	resetScreen     = screen{routes.RouteReset, routes.ScreenForgot}
	activateScreen  = screen{routes.RouteActivate, routes.ScreenUserCreated}
	dashboardScreen = screen{routes.RouteDashboard, routes.ScreenDashboard}
	providersScreen = screen{routes.RouteDashboard, routes.ScreenSelectProvider}
	dateScreen      = screen{routes.RouteDashboard, routes.ScreenSelectDate}
	bookingScreen   = screen{routes.RouteDashboard, routes.ScreenAppointmentCreated}
	profileScreen   = screen{routes.RouteProfile, routes.ScreenProfile}
)

// descriptor is the route the guard checks: the mobile screen on the mobile host, the web route
// otherwise.
func (c *cli) descriptor(s screen) routes.Descriptor {
	if c.app.Host() == api.HostMobile {
		if d, ok := routes.ScreenDescriptor(s.mobile); ok {
			return d
		}
	}
	return routes.MustLookup(s.web)
}

type runFunc func(cmd *cobra.Command, args []string) error

// guarded runs the command only when the route allows the current session state. A signed-out
// user is asked to sign in; a signed-in user is sent to the dashboard instead. On the mobile host
// the fallback is the first screen of the stack mounted for the session.
func (c *cli) guarded(s screen, run runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		hasSession := c.app.Sessions.HasSession()
		d := routes.Resolve(c.descriptor(s), hasSession)
		if d.Allowed {
			return run(cmd, args)
		}
		toSignIn := d.ToSignIn()
		if c.app.Host() == api.HostMobile {
			fallback, _ := routes.Navigate(s.mobile, hasSession)
			toSignIn = fallback == routes.AuthStack.Initial()
			c.app.Log.Debug().Str("screen", string(s.mobile)).Str("fallback", string(fallback)).Msg("screen guarded")
		} else {
			c.app.Log.Debug().Str("from", d.From).Str("redirect", d.Redirect).Msg("route guarded")
		}
		if toSignIn {
			return apperrors.ErrSignInRequired
		}
		c.app.Out.Info(c.msg.alreadySignedIn)
		return c.renderDashboard(cmd.Context(), time.Time{})
	}
}

// bound is a context that ends with the session, so sign-out abandons the call.
func (c *cli) bound(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return c.app.Sessions.Bind(cmd.Context())
}

// day parses a YYYY-MM-DD flag in the presentation zone. Empty means today.
func (c *cli) day(field, value string) (time.Time, error) {
	loc := c.app.Format.Location()
	if value == "" {
		now := schedule.NowTimeFunc().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	d, err := time.ParseInLocation(dayLayout, value, loc)
	if err != nil {
		return time.Time{}, forms.Errors{field: c.msg.badDate}
	}
	return d, nil
}

// secret returns value, prompting for it on the terminal when it was not given as a flag.
func (c *cli) secret(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !apperrors.Is(err, io.EOF) {
		return "", apperrors.Wrapf(err, "read input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
