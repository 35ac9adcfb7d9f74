package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-barber-client/forms"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/utils"
)

// profileCmd edits the profile. Flags left out keep the current values. When --old-password is
// given only the password is changed and the other fields are left alone.
func (c *cli) profileCmd() *cobra.Command {
	var form forms.Profile
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Args:  cobra.NoArgs,
	}
	flags := cmd.Flags()
	flags.StringVar(&form.Name, "name", "", "first name")
	flags.StringVar(&form.Surname, "surname", "", "last name")
	flags.StringVar(&form.Email, "email", "", "account e-mail")
	flags.StringVar(&form.Address, "address", "", "shop address (providers)")
	flags.StringVar(&form.OldPassword, "old-password", "", "current password, to change it")
	flags.StringVar(&form.NewPassword, "new-password", "", "new password")
	flags.StringVar(&form.ConfirmPassword, "confirm", "", "new password confirmation")

	cmd.RunE = c.guarded(profileScreen, func(cmd *cobra.Command, args []string) error {
		user, ok := c.app.Sessions.User()
		if !ok {
			return apperrors.ErrNoSession
		}
		if !anyChanged(flags, "name", "surname", "email", "address", "old-password", "new-password", "confirm") {
			sess, _ := c.app.Sessions.Current()
			claims, err := sess.Claims()
			c.app.Out.Profile(user, claims, err)
			return nil
		}

		if !flags.Changed("name") {
			form.Name = user.Name
		}
		if !flags.Changed("surname") {
			form.Surname = user.Surname
		}
		if !flags.Changed("email") {
			form.Email = user.Email
		}
		if !flags.Changed("address") {
			form.Address = utils.Value(user.Address)
		}
		form.Provider = user.IsProvider()
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}

		ctx, cancel := c.bound(cmd)
		defer cancel()

		if change, ok := form.PasswordChange(); ok {
			if err := c.app.API.ChangePassword(ctx, change); err != nil {
				return err
			}
			c.app.Out.Success(c.msg.passwordChanged)
			return nil
		}

		updated, err := c.app.API.UpdateProfile(ctx, form.Update())
		if err != nil {
			return err
		}
		if err := c.app.Sessions.UpdateUser(ctx, updated); err != nil {
			return err
		}
		c.app.Out.Success(c.msg.profileUpdated)
		sess, _ := c.app.Sessions.Current()
		claims, err := sess.Claims()
		c.app.Out.Profile(updated, claims, err)
		return nil
	})
	return cmd
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

func (c *cli) passwordCmd() *cobra.Command {
	var form forms.Password
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&form.OldPassword, "old", "", "current password (prompted when omitted)")
	cmd.Flags().StringVar(&form.NewPassword, "new", "", "new password (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "new password confirmation (prompted when omitted)")

	cmd.RunE = c.guarded(profileScreen, func(cmd *cobra.Command, args []string) error {
		var err error
		if form.OldPassword, err = c.secret(form.OldPassword, c.msg.oldPassword); err != nil {
			return err
		}
		if form.NewPassword, err = c.secret(form.NewPassword, c.msg.newPassword); err != nil {
			return err
		}
		if form.ConfirmPassword, err = c.secret(form.ConfirmPassword, c.msg.confirmPassword); err != nil {
			return err
		}
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}

		ctx, cancel := c.bound(cmd)
		defer cancel()
		if err := c.app.API.ChangePassword(ctx, form.Request()); err != nil {
			return err
		}
		c.app.Out.Success(c.msg.passwordChanged)
		return nil
	})
	return cmd
}

func (c *cli) avatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar FILE",
		Short: "Upload a new avatar image",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(profileScreen, func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return apperrors.Wrapf(err, "open avatar")
			}
			defer f.Close()

			ctx, cancel := c.bound(cmd)
			defer cancel()

			updated, err := c.app.API.UploadAvatar(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			if err := c.app.Sessions.UpdateUser(ctx, updated); err != nil {
				return err
			}
			c.app.Out.Success(c.msg.avatarUpdated)
			return nil
		}),
	}
}
