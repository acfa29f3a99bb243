package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
)

// TestDue verifies the pure selection rule behind Reconcile.
func TestDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		appt      appointment.Appointment
		scheduled map[string]string
		want      bool
	}{
		{"FuturePending", appointment.Appointment{ID: "1", Date: "2025-06-15", Time: "10:01 AM", Status: appointment.StatusPending}, nil, true},
		{"LegacyWithoutStatus", appointment.Appointment{ID: "1", Date: "2025-06-16", Time: "9:00 AM"}, nil, true},
		{"ExactlyNow", appointment.Appointment{ID: "1", Date: "2025-06-15", Time: "10:00 AM"}, nil, false},
		{"Past", appointment.Appointment{ID: "1", Date: "2025-06-14", Time: "11:00 PM"}, nil, false},
		{"AlreadyMapped", appointment.Appointment{ID: "1", Date: "2025-06-16", Time: "9:00 AM"}, map[string]string{"1": "h"}, false},
		{"Completed", appointment.Appointment{ID: "1", Date: "2025-06-16", Time: "9:00 AM", Status: appointment.StatusCompleted}, nil, false},
		{"Unparsable", appointment.Appointment{ID: "1", Date: "2025-06-16", Time: "soon"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Due([]appointment.Appointment{tt.appt}, tt.scheduled, now)
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestScheduledMap_MalformedReadsEmpty(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(config.KeyScheduledMap, `["not","a","map"]`))

	m := NewScheduledMap(kv)
	entries, err := m.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSessionGate(t *testing.T) {
	var g SessionGate
	assert.False(t, g.HasReconciledThisSession(), "a new session starts unreconciled")
	g.MarkReconciled()
	assert.True(t, g.HasReconciledThisSession())
}

func TestDefaultReminderText(t *testing.T) {
	title, body := DefaultReminderText(appointment.Appointment{Reason: "Vaccine", Provider: "Dr. Pollo", Time: "8:00 AM"})
	assert.Equal(t, config.FallbackNotifTitle, title)
	assert.Equal(t, "Vaccine with Dr. Pollo - 8:00 AM", body)
}
