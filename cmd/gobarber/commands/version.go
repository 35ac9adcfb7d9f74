package commands

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-barber-client/internal/config"
)

// Version is set at build time with -ldflags "-X .../commands.Version=...".
var Version = "dev"

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		// The version needs neither storage nor the API.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			fmt.Fprint(c.out, figure.NewFigure(cfg.GetAppName(), "cybermedium", true).String())
			fmt.Fprintln(c.out)
			fmt.Fprintf(c.out, "%s %s\n", cfg.GetAppName(), Version)
			return nil
		},
	}
}
