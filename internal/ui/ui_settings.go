package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/directory"
)

// settingsWidgets holds the inputs read back on save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
	entryPort  *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *PetCareApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.Window = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	directoryCard := app.buildDirectoryCard(w, sw, onLayoutChange)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(app.Tr.MsgData(config.TKeyLblFooter,
		map[string]any{"Version": config.Version}, config.AppName+" %s", config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		directoryCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets builds the inputs prefilled from preferences and keyring.
func (app *PetCareApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Tr.Languages(), nil)
	sw.langSelect.SetSelected(app.Tr.Language())

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		sw.passEntry.SetText(directory.PasswordFor(user))
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	return sw
}

// validatePort accepts a port number between 1 and 65535.
func (app *PetCareApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildDirectoryCard constructs the veterinarian directory source UI.
func (app *PetCareApp) buildDirectoryCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyMode := func(label string) {
		local := app.sourceMode(label) == config.SourceModeLocal
		webForm.Hidden = local
		localForm.Hidden = !local
		webForm.Refresh()
		localForm.Refresh()
	}

	current := config.TKeyModeCardDAV
	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		current = config.TKeyModeLocal
	}
	sw.modeSelect.SetSelected(app.GetMsg(current))
	applyMode(sw.modeSelect.Selected)

	sw.modeSelect.OnChanged = func(label string) {
		applyMode(label)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblDirectory), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// sourceMode maps the selected label back to the stored mode value.
func (app *PetCareApp) sourceMode(label string) string {
	if label == app.GetMsg(config.TKeyModeLocal) {
		return config.SourceModeLocal
	}
	return config.SourceModeWeb
}

// saveSettings persists the preferences and applies them to the running session.
func (app *PetCareApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	prefs := map[string]string{
		config.PrefLanguage:   sw.langSelect.Selected,
		config.PrefSourceMode: app.sourceMode(sw.modeSelect.Selected),
		config.PrefCardDAVURL: sw.urlEntry.Text,
		config.PrefUsername:   sw.userEntry.Text,
		config.PrefLocalPath:  sw.pathEntry.Text,
	}
	if sw.entryPort.Text != "" {
		prefs[config.PrefServerPort] = sw.entryPort.Text
	}
	for key, value := range prefs {
		app.Preferences.SetString(key, value)
	}

	if user, pass := sw.userEntry.Text, sw.passEntry.Text; user != "" && pass != "" {
		if err := directory.SavePassword(user, pass); err != nil {
			slog.Error("Could not store directory password", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.Tr.SetLanguage(sw.langSelect.Selected)
	app.RefreshTrayMenu()
	app.Refresh()
	go app.loadDirectory()
}
