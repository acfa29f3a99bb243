package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/directory"
)

func (c *cli) addVets(topLevel *cobra.Command) {
	var file, url, user string

	cmd := &cobra.Command{
		Use:   "vets",
		Short: config.CmdShortVets,
		Example: `
petcarectl vets --file ~/Contacts/vets.vcf
petcarectl vets --url https://dav.example.com/addressbooks/clinic/ --user clinic
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (file == "") == (url == "") {
				return errors.New(config.ErrVetsSource)
			}

			src := directory.Source{Mode: config.SourceModeLocal, LocalPath: file}
			if url != "" {
				src = directory.Source{
					Mode: config.SourceModeWeb,
					URL:  url,
					User: user,
					Pass: directory.PasswordFor(user),
				}
			}

			loader := &directory.Loader{Fetcher: c.rt.Fetcher}
			vets, err := loader.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			printVets(c.rt.Out, vets)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, config.FlagFile, "", config.FlagDescFile)
	cmd.Flags().StringVar(&url, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	topLevel.AddCommand(cmd)
}
