package feed_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/feed"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func decode(t *testing.T, data []byte) *ical.Calendar {
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func TestRender_Empty(t *testing.T) {
	data, err := feed.Render(context.Background(), nil, now, nil)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestRender_Events(t *testing.T) {
	cancelled := appointment.Appointment{ID: "c", Date: "2025-03-20", Time: "9:00 AM", Reason: "Bath", Provider: "Groomer", Status: appointment.StatusCancelled}
	appts := []appointment.Appointment{
		{ID: "soon", Date: "2025-03-11", Time: "9:00 AM", Reason: "Checkup", Provider: "Dr. Vet", Status: appointment.StatusPending},
		{ID: "later", Date: "2025-04-01", Time: "2:30 PM", Reason: "Vaccine", Provider: "Dr. Vet", Status: appointment.StatusPending},
		{ID: "broken", Date: "2025-04-01", Time: "whenever"},
		cancelled,
	}

	data, err := feed.Render(context.Background(), appts, now, nil)
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.Len(t, events, 3, "one VEVENT per readable appointment")

	byUID := map[string]ical.Event{}
	for _, e := range events {
		uid, err := e.Props.Text(config.PropUID)
		require.NoError(t, err)
		byUID[uid] = e
	}

	soon := byUID["soon@go-petcare"]
	start, err := soon.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "1", soon.Props.Get(config.PropPriority).Value)
	assert.Len(t, soon.Children, 1, "future pending appointments carry an alarm")

	later := byUID["later@go-petcare"]
	assert.Equal(t, "9", later.Props.Get(config.PropPriority).Value)
	summary, _ := later.Props.Text(config.PropSummary)
	assert.Equal(t, "Vaccine", summary)

	c := byUID["c@go-petcare"]
	status, _ := c.Props.Text(config.PropStatus)
	assert.Equal(t, config.ICalStatusCancelled, status)
	assert.Empty(t, c.Children)
}

func TestRender_Formatter(t *testing.T) {
	appts := []appointment.Appointment{{ID: "1", Date: "2025-03-11", Time: "9:00 AM", Reason: "Checkup", Provider: "Dr. Vet"}}
	data, err := feed.Render(context.Background(), appts, now, func(a appointment.Appointment) (string, string) {
		return "Cita: " + a.Reason, "desc"
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "SUMMARY:Cita: Checkup"))
}
