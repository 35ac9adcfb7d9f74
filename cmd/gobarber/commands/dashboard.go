package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/schedule"
)

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: c.guarded(dashboardScreen, func(cmd *cobra.Command, args []string) error {
			sess, ok := c.app.Sessions.Current()
			if !ok {
				return apperrors.ErrNoSession
			}
			claims, err := sess.Claims()
			c.app.Out.Profile(sess.User, claims, err)
			return nil
		}),
	}
}

func (c *cli) dashboardCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Providers see the day's schedule, clients their appointments",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show as YYYY-MM-DD (default today)")

	cmd.RunE = c.guarded(dashboardScreen, func(cmd *cobra.Command, args []string) error {
		var day time.Time
		if date != "" {
			var err error
			if day, err = c.day("date", date); err != nil {
				return err
			}
		}
		return c.renderDashboard(cmd.Context(), day)
	})
	return cmd
}

func (c *cli) appointmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "appointments",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE: c.guarded(dashboardScreen, func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.bound(cmd)
			defer cancel()
			return c.renderAppointments(ctx)
		}),
	}
}

// renderDashboard shows the landing screen for the signed-in user. A zero day means now.
func (c *cli) renderDashboard(ctx context.Context, day time.Time) error {
	user, ok := c.app.Sessions.User()
	if !ok {
		return apperrors.ErrNoSession
	}
	ctx, cancel := c.app.Sessions.Bind(ctx)
	defer cancel()

	c.app.Out.Welcome(user)
	if !user.IsProvider() {
		return c.renderAppointments(ctx)
	}

	if day.IsZero() {
		day = c.app.Format.In(schedule.NowTimeFunc())
	}
	appts, err := c.app.API.ProviderAppointments(ctx, day)
	if err != nil {
		return err
	}
	c.app.Out.ProviderDay(c.app.Format.ProviderDay(day, appts))
	return nil
}

func (c *cli) renderAppointments(ctx context.Context) error {
	appts, err := c.app.API.UserAppointments(ctx)
	if err != nil {
		return err
	}
	c.app.Out.ClientAppointments(c.app.Format.ClientAppointments(appts))
	return nil
}
