package commands

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/calendar"
	"github.com/tartampluch/go-petcare/internal/config"
)

func (c *cli) addCalendar(topLevel *cobra.Command) {
	var month string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   config.CmdShortCalendar,
		Long: `Without --month the calendar opens on the month of the next upcoming
appointment, else the earliest one, else the current month.`,
		Example: `
petcarectl calendar
petcarectl calendar --month 2025-04
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			list, err := s.store.List(cmd.Context())
			if err != nil {
				return err
			}

			year, m := calendar.InitialViewMonth(list, c.rt.Clock.Now())
			if month != "" {
				if year, m, err = parseMonth(month); err != nil {
					return err
				}
			}

			printCalendar(c.rt.Out, list, year, m)
			printAppointments(c.rt.Out, calendar.InViewedMonth(list, year, m), c.rt.Clock.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&month, config.FlagMonth, "", config.FlagDescMonth)
	topLevel.AddCommand(cmd)
}
