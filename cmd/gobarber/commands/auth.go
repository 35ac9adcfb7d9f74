package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-barber-client/forms"
	"github.com/jrsteele09/go-barber-client/users"
)

func (c *cli) signInCmd() *cobra.Command {
	var form forms.SignIn
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and keep the session for later commands",
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (prompted when omitted)")

	cmd.RunE = c.guarded(signInScreen, func(cmd *cobra.Command, args []string) error {
		var err error
		if form.Password, err = c.secret(form.Password, c.msg.password); err != nil {
			return err
		}
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}
		if err := c.app.Sessions.SignIn(cmd.Context(), form.Email, form.Password, c.app.Host()); err != nil {
			return err
		}
		return c.renderDashboard(cmd.Context(), time.Time{})
	})
	return cmd
}

// signOutCmd is not guarded: signing out is always allowed and does nothing when signed out.
func (c *cli) signOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Sessions.SignOut(cmd.Context())
			c.app.Out.Success(c.msg.signedOut)
			return nil
		},
	}
}

func (c *cli) signUpCmd() *cobra.Command {
	var form forms.SignUp
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; --provider with --address registers a provider",
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "first name")
	cmd.Flags().StringVar(&form.Surname, "surname", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation (prompted when omitted)")
	cmd.Flags().BoolVar(&form.Provider, "provider", false, "register as a service provider")
	cmd.Flags().StringVar(&form.Address, "address", "", "shop address, required for providers")

	cmd.RunE = c.guarded(signUpScreen, func(cmd *cobra.Command, args []string) error {
		var err error
		if form.Password, err = c.secret(form.Password, c.msg.password); err != nil {
			return err
		}
		if form.ConfirmPassword, err = c.secret(form.ConfirmPassword, c.msg.confirmPassword); err != nil {
			return err
		}
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}
		detail, err := c.app.API.CreateUser(cmd.Context(), form.Request())
		if err != nil {
			return err
		}
		c.app.Out.Success(detail)
		return nil
	})
	return cmd
}

func (c *cli) forgotCmd() *cobra.Command {
	var form forms.Forgot
	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Send a password recovery e-mail",
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account e-mail")

	cmd.RunE = c.guarded(forgotScreen, func(cmd *cobra.Command, args []string) error {
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}
		detail, err := c.app.API.ForgotPassword(cmd.Context(), form.Email)
		if err != nil {
			return err
		}
		c.app.Out.Success(detail)
		return nil
	})
	return cmd
}

func (c *cli) resetCmd() *cobra.Command {
	var form forms.Reset
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Choose a new password with the token from the recovery e-mail",
	}
	cmd.Flags().StringVar(&form.Token, "token", "", "recovery token")
	cmd.Flags().StringVar(&form.NewPassword, "password", "", "new password (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "new password confirmation (prompted when omitted)")

	cmd.RunE = c.guarded(resetScreen, func(cmd *cobra.Command, args []string) error {
		var err error
		if form.NewPassword, err = c.secret(form.NewPassword, c.msg.newPassword); err != nil {
			return err
		}
		if form.ConfirmPassword, err = c.secret(form.ConfirmPassword, c.msg.confirmPassword); err != nil {
			return err
		}
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}
		detail, err := c.app.API.ResetPassword(cmd.Context(), form.Request())
		if err != nil {
			return err
		}
		c.app.Out.Success(detail)
		return nil
	})
	return cmd
}

func (c *cli) activateCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Verify a new account with the token from the confirmation e-mail",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&token, "token", "", "activation token")
	_ = cmd.MarkFlagRequired("token")

	cmd.RunE = c.guarded(activateScreen, func(cmd *cobra.Command, args []string) error {
		kind, err := c.app.API.Activate(cmd.Context(), token)
		if err != nil {
			return err
		}
		if kind == users.KindProvider {
			c.app.Out.Success(c.msg.activatedProvider)
		} else {
			c.app.Out.Success(c.msg.activatedUser)
		}
		return nil
	})
	return cmd
}
