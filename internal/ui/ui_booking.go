package ui

import (
	"errors"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
)

// ShowBookingWindow displays the booking form. The date defaults to today and
// the time to the usual opening slot.
func (app *PetCareApp) ShowBookingWindow() {
	if app.bookingWindow != nil {
		app.bookingWindow.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenBooking, config.LogKeyComponent, config.CompUIAppt)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinBooking))
	app.bookingWindow = w

	dateEntry := widget.NewEntry()
	dateEntry.SetText(app.Clock.Now().Format(config.DateFormatDisplay))
	dateEntry.PlaceHolder = config.DateLayout

	timeEntry := widget.NewEntry()
	timeEntry.SetText(config.DefaultTimeOfDay)

	providerEntry := widget.NewSelectEntry(app.providerOptions())
	providerEntry.SetText(config.DefaultProvider)

	reasonEntry := widget.NewEntry()
	urgency := app.newUrgencySelect(appointment.UrgencyNone)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblDate), dateEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTime), timeEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblProvider), providerEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblReason), reasonEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUrgency), urgency),
	)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnBook), theme.ConfirmIcon(), func() {
		req := appointment.BookingRequest{
			Date:     dateEntry.Text,
			Time:     timeEntry.Text,
			Provider: providerEntry.Text,
			Reason:   reasonEntry.Text,
			Urgency:  string(app.urgencyFromLabel(urgency.Selected)),
		}
		if _, err := app.bookAppointment(req); err != nil {
			dialog.ShowError(app.bookingError(err), w)
			return
		}
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	w.SetContent(container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
	)))
	w.Resize(fyne.NewSize(config.BookingWinWidth, w.Content().MinSize().Height))
	w.SetOnClosed(func() { app.bookingWindow = nil })
	w.Show()
}

// bookAppointment stores a new pending appointment. The reminder is scheduled
// by the next reconciliation.
func (app *PetCareApp) bookAppointment(req appointment.BookingRequest) (appointment.Appointment, error) {
	a, err := app.Store.Book(app.Ctx, req, app.Clock.Now())
	if err != nil {
		return appointment.Appointment{}, err
	}

	app.App.SendNotification(fyne.NewNotification(
		app.GetMsg(config.TKeyNotifBooked),
		a.Reason+" · "+a.Date+" "+a.Time))

	app.Refresh()
	if app.appointmentsWindow != nil {
		app.rerender(app.appointmentsWindow)
	}
	return a, nil
}

// bookingError turns a validation failure into a translated message.
func (app *PetCareApp) bookingError(err error) error {
	var verr *appointment.ValidationError
	if !errors.As(err, &verr) {
		return errors.New(app.GetMsg(config.TKeyErrSave))
	}
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	joined := strings.Join(fields, ", ")
	return errors.New(app.Tr.MsgData(config.TKeyErrValidation,
		map[string]any{"Fields": joined},
		config.ErrValidation+": %s", joined))
}
