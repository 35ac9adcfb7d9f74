package commands

import (
	"github.com/spf13/cobra"

	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/schedule"
)

func (c *cli) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List booking notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: c.guarded(dashboardScreen, func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.bound(cmd)
			defer cancel()

			list, err := c.app.API.Notifications(ctx)
			if err != nil {
				return err
			}
			c.app.Out.Notifications(c.app.Format.Notifications(list))
			if !schedule.HasUnread(list) {
				c.app.Out.Info(c.msg.noUnread)
			}
			return nil
		}),
	}
	cmd.AddCommand(c.readNotificationCmd())
	return cmd
}

func (c *cli) readNotificationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(dashboardScreen, func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.bound(cmd)
			defer cancel()

			list, err := c.app.API.Notifications(ctx)
			if err != nil {
				return err
			}
			if !schedule.MarkRead(list, args[0]) {
				return apperrors.Wrapf(apperrors.ErrNotFound, "notification %s", args[0])
			}
			if err := c.app.API.MarkNotificationRead(ctx, args[0]); err != nil {
				return err
			}
			c.app.Out.Success(c.msg.notificationRead)
			c.app.Out.Notifications(c.app.Format.Notifications(list))
			return nil
		}),
	}
}
