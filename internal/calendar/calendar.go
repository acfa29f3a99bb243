// Package calendar derives the month grid and the month-scoped views shown
// by the appointments screen.
package calendar

import (
	"time"

	"github.com/tartampluch/go-petcare/internal/appointment"
)

// Weekdays are the grid column headers, Sunday first.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one grid slot. Day is 0 for padding cells.
type Cell struct {
	Day int
}

// Blank reports whether the cell pads the grid.
func (c Cell) Blank() bool { return c.Day == 0 }

// Week is one row of the grid.
type Week [7]Cell

// MonthGrid lays the days of month out in Sunday-first weeks.
// Leading blanks equal the weekday of the 1st; trailing blanks fill the last week.
func MonthGrid(year int, month time.Month) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	weeks := make([]Week, 0, (lead+days+6)/7)
	var w Week
	col := lead
	for d := 1; d <= days; d++ {
		w[col] = Cell{Day: d}
		col++
		if col == len(w) {
			weeks = append(weeks, w)
			w = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, w)
	}
	return weeks
}

// Shift moves (year, month) by delta months.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// InViewedMonth keeps the appointments dated in year/month, in their given order.
// Appointments with unreadable dates are dropped.
func InViewedMonth(appts []appointment.Appointment, year int, month time.Month) []appointment.Appointment {
	var out []appointment.Appointment
	for _, a := range appts {
		d, err := appointment.ParseDate(a.Date, time.UTC)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			out = append(out, a)
		}
	}
	return out
}

// DaysWithAppointments returns the set of days in year/month that hold at least one appointment.
func DaysWithAppointments(appts []appointment.Appointment, year int, month time.Month) map[int]bool {
	days := make(map[int]bool)
	for _, a := range InViewedMonth(appts, year, month) {
		if d, err := appointment.ParseDate(a.Date, time.UTC); err == nil {
			days[d.Day()] = true
		}
	}
	return days
}

// NextUpcoming returns the appointment with the earliest fire instant not before now.
func NextUpcoming(appts []appointment.Appointment, now time.Time) (appointment.Appointment, bool) {
	var (
		best     appointment.Appointment
		bestTime time.Time
		found    bool
	)
	for _, a := range appts {
		fire, err := a.FireInstant(now.Location())
		if err != nil || fire.Before(now) {
			continue
		}
		if !found || fire.Before(bestTime) {
			best, bestTime, found = a, fire, true
		}
	}
	return best, found
}

// InitialViewMonth picks the month the calendar opens on: the month of the
// next upcoming appointment, else of the earliest one, else the current month.
func InitialViewMonth(appts []appointment.Appointment, now time.Time) (int, time.Month) {
	if a, ok := NextUpcoming(appts, now); ok {
		fire, _ := a.FireInstant(now.Location())
		return fire.Year(), fire.Month()
	}

	var earliest time.Time
	for _, a := range appts {
		fire, err := a.FireInstant(now.Location())
		if err != nil {
			continue
		}
		if earliest.IsZero() || fire.Before(earliest) {
			earliest = fire
		}
	}
	if !earliest.IsZero() {
		return earliest.Year(), earliest.Month()
	}
	return now.Year(), now.Month()
}
