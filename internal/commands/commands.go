// Package commands implements petcarectl, the command-line front end over an
// on-disk store.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/directory"
	"github.com/tartampluch/go-petcare/internal/engine"
	"github.com/tartampluch/go-petcare/internal/kvstore"
	"github.com/tartampluch/go-petcare/internal/locale"
	"github.com/tartampluch/go-petcare/internal/logging"
	"github.com/tartampluch/go-petcare/internal/notify"
	"github.com/tartampluch/go-petcare/internal/pets"
)

// Runtime carries the process-level collaborators. Zero fields get defaults.
type Runtime struct {
	Out     io.Writer
	Clock   engine.Clock
	Fetcher directory.Fetcher
}

// session is the set of services opened on the store for one invocation.
type session struct {
	kv       *kvstore.Disk
	store    *appointment.Store
	pets     *pets.Store
	notifier *notify.Local
	rec      *engine.Reconciler
	tr       *locale.Translator
}

type cli struct {
	rt        Runtime
	v         *viper.Viper
	sess      *session
	logCloser io.Closer
}

// New builds the petcarectl command tree.
func New(rt Runtime) *cobra.Command {
	if rt.Out == nil {
		rt.Out = os.Stdout
	}
	if rt.Clock == nil {
		rt.Clock = engine.RealClock{}
	}
	if rt.Fetcher == nil {
		rt.Fetcher = directory.NewHTTPFetcher()
	}
	c := &cli{rt: rt, v: viper.New()}

	cmd := &cobra.Command{
		Use:               config.CLIName,
		Short:             config.CmdShortRoot,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			c.close()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(rt.Out)

	flags := cmd.PersistentFlags()
	flags.String(config.FlagStore, config.DefaultStore, config.FlagDescStore)
	flags.String(config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flags.Bool(config.FlagDebug, false, config.FlagDescDebug)
	_ = c.v.BindPFlags(flags)

	c.addCommands(cmd)
	return cmd
}

func (c *cli) addCommands(topLevel *cobra.Command) {
	c.addBook(topLevel)
	c.addList(topLevel)
	c.addEdit(topLevel)
	c.addDelete(topLevel)
	c.addReconcile(topLevel)
	c.addRun(topLevel)
	c.addCalendar(topLevel)
	c.addFeed(topLevel)
	c.addVets(topLevel)
	c.addPet(topLevel)
	c.addSeed(topLevel)
	c.addVersion(topLevel)
}

// setup loads .env and the optional config file, then starts logging next to
// the store.
func (c *cli) setup(*cobra.Command, []string) error {
	_ = godotenv.Load()

	c.v.SetEnvPrefix(config.EnvPrefix)
	c.v.AutomaticEnv()
	c.v.SetConfigName(config.ConfigFileName)
	c.v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		c.v.AddConfigPath(home)
	}
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	storePath, err := homedir.Expand(c.v.GetString(config.FlagStore))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStorePath, err)
	}

	var console io.Writer
	if c.v.GetBool(config.FlagDebug) {
		console = os.Stderr
	}
	c.logCloser = logging.Setup(logging.Options{
		Debug:   c.v.GetBool(config.FlagDebug),
		Console: console,
		Dir:     storePath,
	})
	logging.StartupInfo(config.CompCLI)
	return nil
}

func (c *cli) close() {
	if c.sess != nil {
		c.sess.notifier.Stop()
	}
	if c.logCloser != nil {
		_ = c.logCloser.Close()
		c.logCloser = nil
	}
}

// session opens the store on first use.
func (c *cli) session() (*session, error) {
	if c.sess != nil {
		return c.sess, nil
	}

	kv, err := kvstore.NewDisk(c.v.GetString(config.FlagStore))
	if err != nil {
		return nil, err
	}

	slog.Debug(config.MsgStoreOpened, config.LogKeyComponent, config.CompCLI, config.LogKeyStore, kv.BasePath())

	tr := locale.New(c.v.GetString(config.FlagLang))
	store := appointment.NewStore(kv)
	notifier := notify.NewLocal(kv, consoleSender{out: c.rt.Out, clock: c.rt.Clock}, c.rt.Clock)

	rec := engine.NewReconciler(store, kv, notifier, c.rt.Clock)
	rec.FormatReminder = tr.ReminderText

	c.sess = &session{
		kv:       kv,
		store:    store,
		pets:     pets.NewStore(kv),
		notifier: notifier,
		rec:      rec,
		tr:       tr,
	}
	return c.sess, nil
}
