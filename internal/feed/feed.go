// Package feed exports appointments as an iCalendar feed.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
)

// Formatter produces the event summary and description for an appointment.
type Formatter func(a appointment.Appointment) (summary, description string)

// Render builds a VCALENDAR with one VEVENT per appointment whose date and
// time can be read. format may be nil.
func Render(ctx context.Context, appts []appointment.Appointment, now time.Time, format Formatter) ([]byte, error) {
	cal := newCalendar()

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(now.UTC())

	for _, a := range appts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fire, err := a.FireInstant(now.Location())
		if err != nil {
			slog.Debug(config.MsgSkippedTime,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyAppointment, a.ID)
			continue
		}

		event := newEvent(a, fire, now, format)
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// calendarHeader lists the VCALENDAR text properties in output order.
var calendarHeader = [][2]string{
	{config.PropVersion, config.ICalVersion},
	{config.PropProdid, config.ICalProdid},
	{config.PropXWRCalName, config.ICalCalName},
	{config.PropCalScale, config.ICalScale},
	{config.PropMethod, config.ICalMethod},
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	for _, kv := range calendarHeader {
		cal.Props.SetText(kv[0], kv[1])
	}
	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)
	return cal
}

func newEvent(a appointment.Appointment, fire, now time.Time, format Formatter) *ical.Event {
	summary, description := defaultTexts(a)
	if format != nil {
		summary, description = format(a)
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, a.ID+"@"+config.ICalDomain)
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropDescription, description)

	start := ical.NewProp(config.PropDTStart)
	start.SetDateTime(fire.UTC())
	event.Props.Set(start)

	end := ical.NewProp(config.PropDTEnd)
	end.SetDateTime(fire.Add(config.AppointmentDuration).UTC())
	event.Props.Set(end)

	priority := config.ICalPriorityLow
	if appointment.Classify(a, now) == appointment.UrgencyHigh {
		priority = config.ICalPriorityHigh
	}
	priorityProp := ical.NewProp(config.PropPriority)
	priorityProp.Value = fmt.Sprint(priority)
	event.Props.Set(priorityProp)

	status := config.ICalStatusConfirmed
	if a.Status == appointment.StatusCancelled {
		status = config.ICalStatusCancelled
	}
	event.Props.SetText(config.PropStatus, status)

	if a.IsPending() && fire.After(now) {
		addAlarm(event, description)
	}
	return event
}

// addAlarm appends a DISPLAY alarm firing at the event start.
func addAlarm(event *ical.Event, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value keeps the encoder from adding VALUE=TEXT.
	trigger := ical.NewProp(config.PropTrigger)
	trigger.Value = config.ICalTriggerAt
	alarm.Props.Set(trigger)

	event.Children = append(event.Children, alarm)
}

func defaultTexts(a appointment.Appointment) (string, string) {
	return a.Reason, fmt.Sprintf(config.FallbackNotifBody, a.Reason, a.Provider, a.Time)
}
