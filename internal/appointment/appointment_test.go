package appointment_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"8:00 AM", 8 * 60, false},
		{"8:30 pm", 20*60 + 30, false},
		{"12:00 PM", 12 * 60, false},
		{"12:15 AM", 15, false},
		{"14:05", 14*60 + 5, false},
		{"9 AM", 9 * 60, false},
		{"  7:45   PM ", 19*60 + 45, false},
		{"", 0, true},
		{"noon", 0, true},
		{"8:00 XM", 0, true},
		{"25:00", 0, true},
		{"13:00 PM", 0, true},
		{"8:75 AM", 0, true},
		{"8:00 AM extra", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := appointment.ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFireInstant(t *testing.T) {
	loc := time.FixedZone("Test", -5*3600)

	a := appointment.Appointment{Date: "2025-03-10", Time: "2:30 PM"}
	got, err := a.FireInstant(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, loc), got)

	_, err = appointment.Appointment{Date: "10/03/2025", Time: "2:30 PM"}.FireInstant(loc)
	assert.Error(t, err, "non canonical dates are rejected")

	_, err = appointment.Appointment{Date: "2025-03-10", Time: "later"}.FireInstant(loc)
	assert.Error(t, err)
}

func TestSort_Chronological(t *testing.T) {
	appts := []appointment.Appointment{
		{ID: "c", Date: "2025-03-10", Time: "10:00 AM"},
		{ID: "bad", Date: "2025-03-10", Time: "whenever"},
		{ID: "b", Date: "2025-03-10", Time: "9:00 AM"},
		{ID: "d", Date: "2025-03-10", Time: "1:00 PM"},
		{ID: "a", Date: "2025-03-09", Time: "11:00 PM"},
		{ID: "d2", Date: "2025-03-10", Time: "13:00"},
	}
	appointment.Sort(appts)

	var ids []string
	for _, a := range appts {
		ids = append(ids, a.ID)
	}
	// "10:00 AM" must come after "9:00 AM" and "1:00 PM" after both.
	assert.Equal(t, []string{"a", "b", "c", "d", "d2", "bad"}, ids)
}

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id1 := appointment.NewID(now)
	id2 := appointment.NewID(now)

	assert.True(t, strings.HasPrefix(id1, "1700000000123-"))
	assert.Len(t, strings.TrimPrefix(id1, "1700000000123-"), config.IDSuffixLength)
	assert.NotEqual(t, id1, id2, "ids created in the same millisecond must differ")
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		appt appointment.Appointment
		want appointment.Urgency
	}{
		{"WithinWindow", appointment.Appointment{Date: "2025-03-11", Time: "9:00 AM"}, appointment.UrgencyHigh},
		{"ExactlyAtWindow", appointment.Appointment{Date: "2025-03-12", Time: "9:00 AM"}, appointment.UrgencyHigh},
		{"BeyondWindow", appointment.Appointment{Date: "2025-03-12", Time: "9:01 AM"}, appointment.UrgencyLow},
		{"PastCountsAsHigh", appointment.Appointment{Date: "2025-03-01", Time: "9:00 AM"}, appointment.UrgencyHigh},
		{"ExplicitLowWins", appointment.Appointment{Date: "2025-03-10", Time: "10:00 AM", Urgency: appointment.UrgencyLow}, appointment.UrgencyLow},
		{"ExplicitHighWins", appointment.Appointment{Date: "2026-01-01", Time: "10:00 AM", Urgency: appointment.UrgencyHigh}, appointment.UrgencyHigh},
		{"UnparsableIsLow", appointment.Appointment{Date: "2025-03-10", Time: "soon"}, appointment.UrgencyLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appointment.Classify(tt.appt, now))
		})
	}
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#ff3b30", appointment.Color(appointment.UrgencyHigh))
	assert.Equal(t, "#00c780", appointment.Color(appointment.UrgencyLow))
}
