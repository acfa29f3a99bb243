package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
)

var visitReasons = []string{
	"Vaccination",
	"Annual checkup",
	"Dental cleaning",
	"Deworming",
	"Grooming",
	"Surgery follow-up",
	"Skin allergy",
	"Blood test",
}

var urgencyChoices = []string{"", string(appointment.UrgencyHigh), string(appointment.UrgencyLow)}

// demoRequest draws a booking within the next two months during clinic hours.
func demoRequest(f *gofakeit.Faker, now time.Time) appointment.BookingRequest {
	day := f.DateRange(now, now.AddDate(0, 2, 0))
	slot := time.Date(day.Year(), day.Month(), day.Day(), f.Number(8, 17), 30*f.Number(0, 1), 0, 0, now.Location())

	return appointment.BookingRequest{
		Date:     slot.Format(config.DateLayout),
		Time:     appointment.FormatTimeOfDay(slot),
		Provider: "Dr. " + f.LastName(),
		Reason:   fmt.Sprintf("%s for %s", f.RandomString(visitReasons), f.PetName()),
		Urgency:  f.RandomString(urgencyChoices),
	}
}

func (c *cli) addSeed(topLevel *cobra.Command) {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: config.CmdShortSeed,
		Example: `
petcarectl seed --count 20
petcarectl seed --seed 42
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}

			f := gofakeit.New(seed)
			now := c.rt.Clock.Now()
			for i := 0; i < count; i++ {
				if _, err := s.store.Book(cmd.Context(), demoRequest(f, now), now); err != nil {
					return err
				}
			}

			slog.Info(config.MsgSeeded, config.LogKeyComponent, config.CompCLI, config.LogKeyCount, count)
			_, err = fmt.Fprintf(c.rt.Out, config.MsgSeededCount, count)
			return err
		},
	}

	cmd.Flags().IntVar(&count, config.FlagCount, config.DefaultSeedCount, config.FlagDescCount)
	cmd.Flags().Uint64Var(&seed, config.FlagSeed, 0, config.FlagDescSeed)
	topLevel.AddCommand(cmd)
}
