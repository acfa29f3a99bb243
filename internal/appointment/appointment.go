// Package appointment models veterinary appointments, their persisted
// collection, booking validation and urgency classification.
package appointment

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-petcare/internal/config"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Urgency is the display priority of an appointment. The zero value means
// the level is derived from the time left (see Classify).
type Urgency string

const (
	UrgencyNone Urgency = ""
	UrgencyHigh Urgency = "high"
	UrgencyLow  Urgency = "low"
)

// Valid reports whether u is unset or one of the known levels.
func (u Urgency) Valid() bool {
	return u == UrgencyNone || u == UrgencyHigh || u == UrgencyLow
}

// Appointment is a single booked visit.
type Appointment struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Provider  string    `json:"provider"`
	Reason    string    `json:"reason"`
	Urgency   Urgency   `json:"urgency,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Status    Status    `json:"status"`
}

// IsPending reports whether the appointment still expects a reminder.
// Records written before statuses existed count as pending.
func (a Appointment) IsPending() bool {
	return a.Status == StatusPending || a.Status == ""
}

// FireInstant combines Date and Time into the wall-clock instant in loc.
func (a Appointment) FireInstant(loc *time.Location) (time.Time, error) {
	d, err := ParseDate(a.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	mins, err := ParseTimeOfDay(a.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), mins/60, mins%60, 0, 0, loc), nil
}

// ParseDate parses a canonical YYYY-MM-DD date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(config.DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return t, nil
}

// ParseTimeOfDay returns the minutes since midnight of a value such as
// "8:00 AM", "12:30 pm" or "14:05". Without a meridiem the hour is read on a
// 24-hour clock; missing minutes default to zero.
func ParseTimeOfDay(value string) (int, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%s: %q", config.ErrTimeParse, value)
	}

	hourPart, minPart, hasMin := strings.Cut(fields[0], ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrTimeParse, err)
	}
	minute := 0
	if hasMin {
		if minute, err = strconv.Atoi(minPart); err != nil {
			return 0, fmt.Errorf("%s: %w", config.ErrTimeParse, err)
		}
	}

	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case config.MeridiemPM:
			if hour != 12 {
				hour += 12
			}
		case config.MeridiemAM:
			if hour == 12 {
				hour = 0
			}
		default:
			return 0, fmt.Errorf("%s: %q", config.ErrTimeParse, value)
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, errors.New(config.ErrTimeParse)
	}
	return hour*60 + minute, nil
}

// FormatTimeOfDay renders a time in the canonical "3:04 PM" form.
func FormatTimeOfDay(t time.Time) string {
	return t.Format(config.TimeLayout)
}

// minutesKey orders times within a day; unparsable times go last.
func minutesKey(value string) int {
	m, err := ParseTimeOfDay(value)
	if err != nil {
		return config.MinutesPerDay
	}
	return m
}

// Sort orders appointments by date, then by time of day. Ties keep their order.
func Sort(appts []Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return minutesKey(appts[i].Time) < minutesKey(appts[j].Time)
	})
}
