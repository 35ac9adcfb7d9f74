package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-barber-client/internal/app"
	"github.com/jrsteele09/go-barber-client/internal/config"
)

// cli holds what one invocation shares between its commands. The app, and with it the session,
// is built in PersistentPreRunE and handed to every command through this struct.
type cli struct {
	app *app.App
	msg messages
	out io.Writer
	in  *bufio.Reader

	configPath  string
	showMetrics bool
	appOpts     []app.Option
}

// Run executes one command line. Errors are reported to out before being returned.
func Run(ctx context.Context, out io.Writer, in io.Reader, args []string, opts ...app.Option) error {
	c := &cli{out: out, in: bufio.NewReader(in), appOpts: opts}

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	if err != nil {
		c.report(err)
	}
	if c.app == nil {
		return err
	}
	if c.showMetrics {
		if merr := c.app.Out.Metrics(c.app.Metrics); merr != nil {
			c.app.Log.Warn().Err(merr).Msg("metrics unavailable")
		}
	}
	if cerr := c.app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gobarber",
		Short:         "GoBarber appointment booking client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg, c.out, c.appOpts...)
			if err != nil {
				return err
			}
			c.app = a
			c.msg = messagesFor(cfg.GetLocale())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/gobarber/config.yaml)")
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print API request counters after the command")

	root.AddCommand(
		c.signInCmd(),
		c.signOutCmd(),
		c.signUpCmd(),
		c.forgotCmd(),
		c.resetCmd(),
		c.activateCmd(),
		c.whoamiCmd(),
		c.dashboardCmd(),
		c.appointmentsCmd(),
		c.providersCmd(),
		c.availabilityCmd(),
		c.bookCmd(),
		c.notificationsCmd(),
		c.profileCmd(),
		c.passwordCmd(),
		c.avatarCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) report(err error) {
	if c.app == nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}
	c.app.Log.Debug().Err(err).Msg("command failed")
	c.app.Out.Fail(err)
}
