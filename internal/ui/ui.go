package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/calendar"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/directory"
	"github.com/tartampluch/go-petcare/internal/engine"
	"github.com/tartampluch/go-petcare/internal/feed"
	"github.com/tartampluch/go-petcare/internal/kvstore"
	"github.com/tartampluch/go-petcare/internal/locale"
	"github.com/tartampluch/go-petcare/internal/notify"
	"github.com/tartampluch/go-petcare/internal/server"
)

//go:embed Icon.svg
var appIconData []byte

// PetCareApp holds the desktop session: preferences, services and windows.
type PetCareApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Tr          *locale.Translator
	Ctx         context.Context

	Server     *server.CalendarServer
	Store      *appointment.Store
	Reconciler *engine.Reconciler
	Notifier   *notify.Local
	Directory  *directory.Loader
	Clock      engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem       *fyne.MenuItem
	TrayAppointmentsItem *fyne.MenuItem
	TrayBookItem         *fyne.MenuItem
	TrayRefreshItem      *fyne.MenuItem
	TraySettingsItem     *fyne.MenuItem

	// Appointments State
	ApptMut      sync.RWMutex
	Appointments []appointment.Appointment
	Vets         []string

	viewYear           int
	viewMonth          time.Month
	viewChosen         bool
	appointmentsWindow fyne.Window
	bookingWindow      fyne.Window
}

// NewPetCareApp wires the session services on top of the fyne preferences.
func NewPetCareApp(a fyne.App, ctx context.Context, srv *server.CalendarServer, fetcher directory.Fetcher) *PetCareApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	prefs := a.Preferences()
	kv := kvstore.NewPreferences(prefs)
	clock := engine.RealClock{}
	store := appointment.NewStore(kv)
	notifier := notify.NewLocal(kv, a, clock)
	tr := locale.New(prefs.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	rec := engine.NewReconciler(store, kv, notifier, clock)
	rec.FormatReminder = tr.ReminderText

	return &PetCareApp{
		App:         a,
		Preferences: prefs,
		Tr:          tr,
		Ctx:         ctx,
		Server:      srv,
		Store:       store,
		Reconciler:  rec,
		Notifier:    notifier,
		Directory:   &directory.Loader{Fetcher: fetcher},
		Clock:       clock,
	}
}

// UseClock swaps the clock of every time-dependent service.
func (app *PetCareApp) UseClock(c engine.Clock) {
	app.Clock = c
	app.Reconciler.Clock = c
	app.Notifier.Clock = c
}

// GetMsg translates key in the active language.
func (app *PetCareApp) GetMsg(key string) string {
	return app.Tr.Msg(key)
}

// Run launches the application services and the main UI loop.
func (app *PetCareApp) Run() {
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if err := app.Notifier.Start(app.Ctx); err != nil {
		slog.Error(config.ErrQueueWrite, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.Refresh()
	go app.loadDirectory()

	app.App.Lifecycle().SetOnStopped(app.Notifier.Stop)
	app.App.Run()
}

// setupTrayMenu constructs the system tray menu.
func (app *PetCareApp) setupTrayMenu() {
	// The status line opens the calendar too.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowAppointmentsWindow()
	})

	app.TrayAppointmentsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuAppointments), func() {
		app.ShowAppointmentsWindow()
	})

	app.TrayBookItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuBook), func() {
		app.ShowBookingWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		slog.Info(config.MsgRefreshReq, config.LogKeyComponent, config.CompUI)
		go func() {
			app.Refresh()
			app.loadDirectory()
		}()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayAppointmentsItem,
		app.TrayBookItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *PetCareApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayAppointmentsItem.Label = app.GetMsg(config.TKeyMenuAppointments)
	app.TrayBookItem.Label = app.GetMsg(config.TKeyMenuBook)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.updateTrayStatus()
}

// Refresh reloads the appointments, republishes the feed and updates the tray.
func (app *PetCareApp) Refresh() {
	list, err := app.Store.List(app.Ctx)
	if err != nil {
		slog.Error(config.ErrStoreRead, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}

	app.ApptMut.Lock()
	app.Appointments = list
	app.ApptMut.Unlock()

	app.publishFeed(list)
	app.updateTrayStatus()
}

func (app *PetCareApp) publishFeed(list []appointment.Appointment) {
	data, err := feed.Render(app.Ctx, list, app.Clock.Now(), app.feedFormatter())
	if err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}
	app.Server.Update(data)
}

// feedFormatter localizes event texts the same way as the reminders.
func (app *PetCareApp) feedFormatter() feed.Formatter {
	return func(a appointment.Appointment) (string, string) {
		_, body := app.Tr.ReminderText(a)
		return a.Reason, body
	}
}

// snapshot returns a copy of the cached appointments.
func (app *PetCareApp) snapshot() []appointment.Appointment {
	app.ApptMut.RLock()
	defer app.ApptMut.RUnlock()
	out := make([]appointment.Appointment, len(app.Appointments))
	copy(out, app.Appointments)
	return out
}

// updateTrayStatus shows the next upcoming appointment in the tray.
func (app *PetCareApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = app.trayStatusLabel()
	app.Menu.Refresh()
}

func (app *PetCareApp) trayStatusLabel() string {
	next, ok := calendar.NextUpcoming(app.snapshot(), app.Clock.Now())
	if !ok {
		label := app.GetMsg(config.TKeyTrayNextNone)
		if label == config.TKeyTrayNextNone {
			label = config.FallbackTrayNone
		}
		return label
	}
	return app.Tr.MsgData(config.TKeyTrayNext, map[string]any{
		"Reason": next.Reason,
		"Date":   next.Date,
		"Time":   next.Time,
	}, config.FallbackTrayNext, next.Reason, next.Date, next.Time)
}

// directorySource assembles the directory source from preferences and keyring.
func (app *PetCareApp) directorySource() directory.Source {
	src := directory.Source{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		URL:       app.Preferences.String(config.PrefCardDAVURL),
		User:      app.Preferences.String(config.PrefUsername),
	}
	src.Pass = directory.PasswordFor(src.User)
	return src
}

// loadDirectory refreshes the provider suggestions. An unconfigured directory is not an error.
func (app *PetCareApp) loadDirectory() {
	src := app.directorySource()
	if src.Mode == "" || (src.LocalPath == "" && src.URL == "") {
		return
	}
	vets, err := app.Directory.Load(app.Ctx, src)
	if err != nil {
		slog.Warn(config.ErrVCardParse, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}
	app.ApptMut.Lock()
	app.Vets = directory.Names(vets)
	app.ApptMut.Unlock()
}

// providerOptions lists the directory names, or the default provider when empty.
func (app *PetCareApp) providerOptions() []string {
	app.ApptMut.RLock()
	defer app.ApptMut.RUnlock()
	if len(app.Vets) == 0 {
		return []string{config.DefaultProvider}
	}
	return append([]string(nil), app.Vets...)
}
