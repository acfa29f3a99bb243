package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/pets"
)

func (c *cli) addPet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pet",
		Short: config.CmdShortPet,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	c.addPetAdd(cmd)
	c.addPetList(cmd)
	topLevel.AddCommand(cmd)
}

func (c *cli) addPetAdd(parent *cobra.Command) {
	in := pets.NewPet{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: config.CmdShortPetAdd,
		Example: `
petcarectl pet add --name Luna --vaccines "Rabies 2025-01"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			p, err := s.pets.Add(cmd.Context(), in, c.rt.Clock.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.rt.Out, config.MsgPetAddedID, p.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&in.Name, config.FlagName, "", config.FlagDescName)
	cmd.Flags().StringVar(&in.Vaccines, config.FlagVaccines, "", config.FlagDescVaccines)
	cmd.Flags().StringVar(&in.Consults, config.FlagConsults, "", config.FlagDescConsults)
	cmd.Flags().StringVar(&in.Treatments, config.FlagTreatments, "", config.FlagDescTreatments)
	cmd.Flags().StringVar(&in.ImageURI, config.FlagImage, "", config.FlagDescImage)
	parent.AddCommand(cmd)
}

func (c *cli) addPetList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: config.CmdShortPetList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			list, err := s.pets.List(cmd.Context())
			if err != nil {
				return err
			}
			printPets(c.rt.Out, list)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
