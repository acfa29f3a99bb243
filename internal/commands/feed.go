package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/feed"
	"github.com/tartampluch/go-petcare/internal/server"
)

func (c *cli) addFeed(topLevel *cobra.Command) {
	var (
		serve bool
		port  string
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: config.CmdShortFeed,
		Example: `
petcarectl feed > appointments.ics
petcarectl feed --serve --port 18081
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			list, err := s.store.List(ctx)
			if err != nil {
				return err
			}
			format := func(a appointment.Appointment) (string, string) {
				_, body := s.tr.ReminderText(a)
				return a.Reason, body
			}
			data, err := feed.Render(ctx, list, c.rt.Clock.Now(), format)
			if err != nil {
				return err
			}

			if !serve {
				_, err = c.rt.Out.Write(data)
				return err
			}

			srv := server.NewCalendarServer(port)
			srv.Update(data)
			_, _ = fmt.Fprintf(c.rt.Out, config.MsgServing, config.LocalhostBindAddr, port, config.RouteFeed)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().BoolVar(&serve, config.FlagServe, false, config.FlagDescServe)
	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	topLevel.AddCommand(cmd)
}
