package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/calendar"
	"github.com/tartampluch/go-petcare/internal/config"
)

func (c *cli) addBook(topLevel *cobra.Command) {
	req := appointment.BookingRequest{}

	cmd := &cobra.Command{
		Use:   "book",
		Short: config.CmdShortBook,
		Example: `
petcarectl book --date 2025-03-12 --time "10:00 AM" --reason "Rabies booster"
petcarectl book --date 2025-03-12 --reason Checkup --urgency low
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			a, err := s.store.Book(cmd.Context(), req, c.rt.Clock.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.rt.Out, config.MsgBooked, a.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Date, config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().StringVar(&req.Time, config.FlagTime, config.DefaultTimeOfDay, config.FlagDescTime)
	cmd.Flags().StringVar(&req.Provider, config.FlagProvider, config.DefaultProvider, config.FlagDescProvider)
	cmd.Flags().StringVar(&req.Reason, config.FlagReason, "", config.FlagDescReason)
	cmd.Flags().StringVar(&req.Urgency, config.FlagUrgency, "", config.FlagDescUrgency)

	topLevel.AddCommand(cmd)
}

func (c *cli) addList(topLevel *cobra.Command) {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: config.CmdShortList,
		Example: `
petcarectl list
petcarectl list --month 2025-03
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
			if month != "" {
				year, m, err := parseMonth(month)
				if err != nil {
					return err
				}
				list = calendar.InViewedMonth(list, year, m)
			}
			printAppointments(c.rt.Out, list, c.rt.Clock.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&month, config.FlagMonth, "", config.FlagDescMonth)
	topLevel.AddCommand(cmd)
}

func (c *cli) addEdit(topLevel *cobra.Command) {
	var (
		date, tod, provider, reason, urgency string
		clearUrgency                         bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: config.CmdShortEdit,
		Example: `
petcarectl edit 1741597200000-a1b2c3 --time "11:30 AM"
petcarectl edit 1741597200000-a1b2c3 --clear-urgency
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}

			var p appointment.Patch
			flags := cmd.Flags()
			if flags.Changed(config.FlagDate) {
				p.Date = &date
			}
			if flags.Changed(config.FlagTime) {
				p.Time = &tod
			}
			if flags.Changed(config.FlagProvider) {
				p.Provider = &provider
			}
			if flags.Changed(config.FlagReason) {
				p.Reason = &reason
			}
			switch {
			case clearUrgency:
				none := appointment.UrgencyNone
				p.Urgency = &none
			case flags.Changed(config.FlagUrgency):
				u := appointment.Urgency(urgency)
				p.Urgency = &u
			}

			a, err := s.rec.Reschedule(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.rt.Out, config.MsgUpdated, a.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().StringVar(&tod, config.FlagTime, "", config.FlagDescTime)
	cmd.Flags().StringVar(&provider, config.FlagProvider, "", config.FlagDescProvider)
	cmd.Flags().StringVar(&reason, config.FlagReason, "", config.FlagDescReason)
	cmd.Flags().StringVar(&urgency, config.FlagUrgency, "", config.FlagDescUrgency)
	cmd.Flags().BoolVar(&clearUrgency, config.FlagClearUrgency, false, config.FlagDescClearUrgency)

	topLevel.AddCommand(cmd)
}

func (c *cli) addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   config.CmdShortDelete,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			if err := s.rec.Drop(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.rt.Out, config.MsgDeleted, args[0])
			return err
		},
	}

	topLevel.AddCommand(cmd)
}

// parseMonth reads a --month value.
func parseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse(config.MonthFlagLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", config.ErrMonthFlag, err)
	}
	return t.Year(), t.Month(), nil
}
