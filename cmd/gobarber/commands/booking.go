package commands

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-barber-client/forms"
	"github.com/jrsteele09/go-barber-client/schedule"
)

func (c *cli) providersCmd() *cobra.Command {
	var selected string
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the providers you can book",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&selected, "selected", "", "provider id to list first")

	cmd.RunE = c.guarded(providersScreen, func(cmd *cobra.Command, args []string) error {
		ctx, cancel := c.bound(cmd)
		defer cancel()

		providers, err := c.app.API.Providers(ctx)
		if err != nil {
			return err
		}
		c.app.Out.Providers(schedule.OrderProviders(providers, selected), selected)
		return nil
	})
	return cmd
}

func (c *cli) availabilityCmd() *cobra.Command {
	var providerID, date string
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show a provider's free days and hours",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&providerID, "provider", "", "provider id")
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("provider")

	cmd.RunE = c.guarded(dateScreen, func(cmd *cobra.Command, args []string) error {
		day, err := c.day("date", date)
		if err != nil {
			return err
		}
		ctx, cancel := c.bound(cmd)
		defer cancel()

		month, err := c.app.API.MonthAvailability(ctx, providerID, day.Year(), day.Month())
		if err != nil {
			return err
		}
		hours, err := c.app.API.DayAvailability(ctx, providerID, day)
		if err != nil {
			return err
		}
		c.app.Out.Availability(day, schedule.DisabledDays(day.Year(), day.Month(), month), hours)
		return nil
	})
	return cmd
}

func (c *cli) bookCmd() *cobra.Command {
	var form forms.Booking
	var date string
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment with a provider",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&form.ProviderID, "provider", "", "provider id")
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD")
	cmd.Flags().IntVar(&form.Hour, "hour", 0, "hour of the day, 8 to 17")

	cmd.RunE = c.guarded(bookingScreen, func(cmd *cobra.Command, args []string) error {
		if date != "" {
			day, err := c.day("date", date)
			if err != nil {
				return err
			}
			form.Date = day
		}
		if err := c.app.Forms.Check(form); err != nil {
			return err
		}

		ctx, cancel := c.bound(cmd)
		defer cancel()

		providers, err := c.app.API.Providers(ctx)
		if err != nil {
			return err
		}
		booked, err := c.app.Booker.Submit(ctx, providers, form.ProviderID, form.Date, form.Hour)
		if err != nil {
			return err
		}
		c.app.Out.Booked(booked)
		return nil
	})
	return cmd
}
