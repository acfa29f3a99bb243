package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/calendar"
	"github.com/tartampluch/go-petcare/internal/config"
)

// ShowAppointmentsWindow displays the month calendar and the appointments of
// the viewed month. Opening it reloads the list and makes sure this session's
// reminders are scheduled. If the window is already open, it requests focus.
func (app *PetCareApp) ShowAppointmentsWindow() {
	app.focusAppointments()

	if app.appointmentsWindow != nil {
		app.appointmentsWindow.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenWin, config.LogKeyComponent, config.CompUIAppt)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinAppointments))
	app.appointmentsWindow = w
	w.Resize(fyne.NewSize(config.AppointmentsWinWidth, config.AppointmentsWinHeight))

	w.SetContent(app.buildAppointmentsContent(w))
	w.SetOnClosed(func() {
		app.appointmentsWindow = nil
	})
	w.Show()
}

// focusAppointments reloads the list, runs the once-per-session scheduling and
// picks the initial month the first time.
func (app *PetCareApp) focusAppointments() {
	app.Refresh()

	if _, err := app.Reconciler.EnsureScheduled(app.Ctx); err != nil {
		slog.Error(config.ErrScheduleFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUIAppt)
	}

	if !app.viewChosen {
		app.viewYear, app.viewMonth = calendar.InitialViewMonth(app.snapshot(), app.Clock.Now())
		app.viewChosen = true
	}
}

// shiftMonth moves the viewed month by delta.
func (app *PetCareApp) shiftMonth(delta int) {
	app.viewYear, app.viewMonth = calendar.Shift(app.viewYear, app.viewMonth, delta)
}

// monthAppointments returns the appointments of the viewed month.
func (app *PetCareApp) monthAppointments() []appointment.Appointment {
	return calendar.InViewedMonth(app.snapshot(), app.viewYear, app.viewMonth)
}

// editAppointment applies p and replaces the reminder.
func (app *PetCareApp) editAppointment(id string, p appointment.Patch) error {
	if _, err := app.Reconciler.Reschedule(app.Ctx, id, p); err != nil {
		return err
	}
	app.Refresh()
	return nil
}

// deleteAppointment removes the appointment and its reminder.
func (app *PetCareApp) deleteAppointment(id string) error {
	if err := app.Reconciler.Drop(app.Ctx, id); err != nil {
		return err
	}
	app.Refresh()
	return nil
}

// rerender rebuilds the window content after a change.
func (app *PetCareApp) rerender(w fyne.Window) {
	w.SetContent(app.buildAppointmentsContent(w))
}

func (app *PetCareApp) buildAppointmentsContent(w fyne.Window) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(
		time.Date(app.viewYear, app.viewMonth, 1, 0, 0, 0, 0, time.Local).Format(config.MonthTitleLayout),
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		app.shiftMonth(-1)
		app.rerender(w)
	})
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		app.shiftMonth(1)
		app.rerender(w)
	})
	book := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnBook), theme.ContentAddIcon(), func() {
		app.ShowBookingWindow()
	})
	header := container.NewBorder(nil, nil, prev, container.NewHBox(next, book), title)

	month := app.monthAppointments()
	grid := app.buildMonthGrid(month)

	var list fyne.CanvasObject
	if len(month) == 0 {
		list = widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblEmptyMonth), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	} else {
		list = app.buildAppointmentList(w, month)
	}

	return container.NewBorder(container.NewVBox(header, grid, widget.NewSeparator()), nil, nil, nil, list)
}

// buildMonthGrid renders the weekday header and day cells; days holding an
// appointment are bold.
func (app *PetCareApp) buildMonthGrid(month []appointment.Appointment) *fyne.Container {
	marked := calendar.DaysWithAppointments(month, app.viewYear, app.viewMonth)

	cells := make([]fyne.CanvasObject, 0, config.CalendarColumns*7)
	for _, wd := range calendar.Weekdays {
		cells = append(cells, widget.NewLabelWithStyle(wd, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
	}
	for _, week := range calendar.MonthGrid(app.viewYear, app.viewMonth) {
		for _, c := range week {
			text := config.BlankCell
			if !c.Blank() {
				text = strconv.Itoa(c.Day)
			}
			cells = append(cells, widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Bold: marked[c.Day]}))
		}
	}
	return container.NewGridWithColumns(config.CalendarColumns, cells...)
}

func (app *PetCareApp) buildAppointmentList(w fyne.Window, month []appointment.Appointment) *widget.List {
	now := app.Clock.Now()

	return widget.NewList(
		func() int { return len(month) },
		func() fyne.CanvasObject {
			swatch := canvas.NewRectangle(color.Transparent)
			swatch.SetMinSize(fyne.NewSize(8, 8))
			edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil)
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, swatch, container.NewHBox(edit, del), widget.NewLabel(config.ListPlaceholder))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(month) {
				return
			}
			a := month[id]
			row := o.(*fyne.Container)

			// Border layout keeps the center object first, then the edges in order.
			label := row.Objects[0].(*widget.Label)
			swatch := row.Objects[1].(*canvas.Rectangle)
			actions := row.Objects[2].(*fyne.Container)

			label.SetText(fmt.Sprintf("%s %s · %s · %s", a.Date, a.Time, a.Reason, a.Provider))
			swatch.FillColor = hexColor(appointment.Color(appointment.Classify(a, now)))
			swatch.Refresh()

			actions.Objects[0].(*widget.Button).OnTapped = func() { app.showEditDialog(w, a) }
			actions.Objects[1].(*widget.Button).OnTapped = func() {
				dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), app.GetMsg(config.TKeyConfirmDelete), func(ok bool) {
					if !ok {
						return
					}
					if err := app.deleteAppointment(a.ID); err != nil {
						dialog.ShowError(err, w)
						return
					}
					app.rerender(w)
				}, w)
			}
		},
	)
}

// showEditDialog edits time, reason, provider and urgency of a.
func (app *PetCareApp) showEditDialog(w fyne.Window, a appointment.Appointment) {
	timeEntry := widget.NewEntry()
	timeEntry.SetText(a.Time)
	reasonEntry := widget.NewEntry()
	reasonEntry.SetText(a.Reason)
	providerEntry := widget.NewSelectEntry(app.providerOptions())
	providerEntry.SetText(a.Provider)
	urgency := app.newUrgencySelect(a.Urgency)

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblTime), timeEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblReason), reasonEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblProvider), providerEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUrgency), urgency),
	}

	dialog.ShowForm(app.GetMsg(config.TKeyBtnEdit), app.GetMsg(config.TKeyBtnSave), app.GetMsg(config.TKeyBtnCancel), items, func(ok bool) {
		if !ok {
			return
		}
		level := app.urgencyFromLabel(urgency.Selected)
		patch := appointment.Patch{
			Time:     &timeEntry.Text,
			Reason:   &reasonEntry.Text,
			Provider: &providerEntry.Text,
			Urgency:  &level,
		}
		if err := app.editAppointment(a.ID, patch); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.rerender(w)
	}, w)
}

// newUrgencySelect offers automatic, high and low.
func (app *PetCareApp) newUrgencySelect(current appointment.Urgency) *widget.Select {
	s := widget.NewSelect([]string{
		app.GetMsg(config.TKeyUrgencyAuto),
		app.GetMsg(config.TKeyUrgencyHigh),
		app.GetMsg(config.TKeyUrgencyLow),
	}, nil)
	switch current {
	case appointment.UrgencyHigh:
		s.SetSelected(app.GetMsg(config.TKeyUrgencyHigh))
	case appointment.UrgencyLow:
		s.SetSelected(app.GetMsg(config.TKeyUrgencyLow))
	default:
		s.SetSelected(app.GetMsg(config.TKeyUrgencyAuto))
	}
	return s
}

func (app *PetCareApp) urgencyFromLabel(label string) appointment.Urgency {
	switch label {
	case app.GetMsg(config.TKeyUrgencyHigh):
		return appointment.UrgencyHigh
	case app.GetMsg(config.TKeyUrgencyLow):
		return appointment.UrgencyLow
	default:
		return appointment.UrgencyNone
	}
}

// hexColor parses "#rrggbb".
func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Transparent
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
