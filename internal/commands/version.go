package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/config"
)

func (c *cli) addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(c.rt.Out, config.MsgVersionOutput, config.CLIName, config.Version, runtime.GOOS, runtime.GOARCH)
		},
	}

	topLevel.AddCommand(cmd)
}
