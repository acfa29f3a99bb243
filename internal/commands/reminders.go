package commands

import (
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/engine"
)

// consoleSender prints delivered reminders; it stands in for the desktop
// notification center.
type consoleSender struct {
	out   io.Writer
	clock engine.Clock
}

func (s consoleSender) SendNotification(n *fyne.Notification) {
	title := color.New(color.FgHiCyan, color.Bold).Sprint(n.Title)
	_, _ = fmt.Fprintf(s.out, config.FormatConsoleNotif, s.clock.Now().Format(config.ConsoleTimeLayout), title, n.Content)
}

func (c *cli) addReconcile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: config.CmdShortReconcile,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			n, err := s.rec.EnsureScheduled(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.rt.Out, config.MsgReconciled, n)
			return err
		},
	}

	topLevel.AddCommand(cmd)
}

func (c *cli) addRun(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: config.CmdShortRun,
		Long: `Re-arms reminders persisted by earlier invocations, schedules the ones
still missing and prints each reminder when it fires. Reminders that came due
while nothing was running are shown at once if they are less than 12 hours late.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := s.notifier.Start(ctx); err != nil {
				return err
			}
			n, err := s.rec.EnsureScheduled(ctx)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(c.rt.Out, config.MsgReconciled, n); err != nil {
				return err
			}
			slog.Info(config.MsgRunWaiting, config.LogKeyComponent, config.CompCLI)
			_, _ = fmt.Fprintln(c.rt.Out, faint.Sprint(config.MsgWaiting))

			<-ctx.Done()
			s.notifier.Stop()
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
