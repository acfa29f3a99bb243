package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
	"golang.org/x/sync/singleflight"
)

// AppointmentStore is the part of appointment.Store the Reconciler needs.
type AppointmentStore interface {
	List(ctx context.Context) ([]appointment.Appointment, error)
	Update(ctx context.Context, id string, p appointment.Patch) (appointment.Appointment, error)
	Remove(ctx context.Context, id string) error
}

// Reconciler keeps the scheduled reminders in line with the stored appointments.
type Reconciler struct {
	Store    AppointmentStore
	Map      *ScheduledMap
	Notifier Notifier
	Clock    Clock
	Gate     *SessionGate

	// FormatReminder allows the UI to inject localized reminder texts.
	FormatReminder func(a appointment.Appointment) (title, body string)

	flight singleflight.Group
}

// NewReconciler wires a Reconciler with a fresh session gate.
func NewReconciler(store AppointmentStore, kv kvstore.Store, n Notifier, clock Clock) *Reconciler {
	return &Reconciler{
		Store:    store,
		Map:      NewScheduledMap(kv),
		Notifier: n,
		Clock:    clock,
		Gate:     &SessionGate{},
	}
}

// Due returns the appointments a reconciliation at now would schedule:
// pending, not yet mapped, with a readable fire instant strictly after now.
func Due(appts []appointment.Appointment, scheduled map[string]string, now time.Time) []appointment.Appointment {
	var out []appointment.Appointment
	for _, a := range appts {
		if _, ok, _ := fireIfDue(a, scheduled, now); ok {
			out = append(out, a)
		}
	}
	return out
}

func fireIfDue(a appointment.Appointment, scheduled map[string]string, now time.Time) (time.Time, bool, error) {
	if !a.IsPending() {
		return time.Time{}, false, nil
	}
	if _, ok := scheduled[a.ID]; ok {
		return time.Time{}, false, nil
	}
	fire, err := a.FireInstant(now.Location())
	if err != nil {
		return time.Time{}, false, err
	}
	return fire, fire.After(now), nil
}

// Reconcile requests a reminder for every due appointment and returns how
// many were scheduled. Notifier failures are logged and skipped.
func (r *Reconciler) Reconcile(ctx context.Context) (int, error) {
	appts, err := r.Store.List(ctx)
	if err != nil {
		return 0, err
	}
	return r.reconcile(ctx, appts)
}

func (r *Reconciler) reconcile(ctx context.Context, appts []appointment.Appointment) (int, error) {
	start := time.Now()
	now := r.Clock.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	added := 0
	err := r.Map.Mutate(ctx, func(entries map[string]string) bool {
		for _, a := range appts {
			if ctx.Err() != nil {
				break
			}
			fire, due, err := fireIfDue(a, entries, now)
			if err != nil {
				log.WarnContext(ctx, config.MsgSkippedTime,
					config.LogKeyAppointment, a.ID,
					config.LogKeyError, err)
				continue
			}
			if !due {
				continue
			}
			if handle, ok := r.schedule(ctx, a, fire); ok {
				entries[a.ID] = handle
				added++
			}
		}
		return added > 0
	})

	if err != nil {
		if !errors.Is(err, ErrMapWrite) {
			return added, err
		}
		log.ErrorContext(ctx, config.ErrMapWrite, config.LogKeyError, err)
	}
	if ctx.Err() != nil {
		return added, ctx.Err()
	}

	log.InfoContext(ctx, config.MsgReconcileDone,
		config.LogKeyScheduled, added,
		config.LogKeyCount, len(appts),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return added, nil
}

// EnsureScheduled reconciles at most once per session. Concurrent callers
// share a single pass. An empty appointment list leaves the session open.
func (r *Reconciler) EnsureScheduled(ctx context.Context) (int, error) {
	if r.Gate.HasReconciledThisSession() {
		slog.DebugContext(ctx, config.MsgReconcileSkip, config.LogKeyComponent, config.CompEngine)
		return 0, nil
	}

	v, err, _ := r.flight.Do(config.ReconcileFlightKey, func() (any, error) {
		if r.Gate.HasReconciledThisSession() {
			return 0, nil
		}
		appts, err := r.Store.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(appts) == 0 {
			slog.DebugContext(ctx, config.MsgReconcileEmpty, config.LogKeyComponent, config.CompEngine)
			return 0, nil
		}
		defer r.Gate.MarkReconciled()
		return r.reconcile(ctx, appts)
	})
	n, _ := v.(int)
	return n, err
}

// Reschedule edits an appointment and replaces its reminder.
// Reminder failures are logged; the edit itself is never rolled back.
func (r *Reconciler) Reschedule(ctx context.Context, id string, p appointment.Patch) (appointment.Appointment, error) {
	updated, err := r.Store.Update(ctx, id, p)
	if err != nil {
		return appointment.Appointment{}, err
	}

	now := r.Clock.Now()
	err = r.Map.Mutate(ctx, func(entries map[string]string) bool {
		if handle, ok := entries[id]; ok {
			r.cancel(ctx, id, handle)
			delete(entries, id)
		}
		if fire, due, _ := fireIfDue(updated, entries, now); due {
			if handle, ok := r.schedule(ctx, updated, fire); ok {
				entries[id] = handle
			}
		}
		return true
	})
	if err != nil {
		slog.ErrorContext(ctx, config.ErrMapWrite,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyAppointment, id,
			config.LogKeyError, err)
	}
	return updated, nil
}

// Drop deletes an appointment and cancels its reminder if one was requested.
func (r *Reconciler) Drop(ctx context.Context, id string) error {
	if err := r.Store.Remove(ctx, id); err != nil {
		return err
	}

	err := r.Map.Mutate(ctx, func(entries map[string]string) bool {
		handle, ok := entries[id]
		if !ok {
			return false
		}
		r.cancel(ctx, id, handle)
		delete(entries, id)
		return true
	})
	if err != nil {
		slog.ErrorContext(ctx, config.ErrMapWrite,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyAppointment, id,
			config.LogKeyError, err)
	}
	return nil
}

// schedule requests the reminder for a at fire. It reports false when the
// notifier refused.
func (r *Reconciler) schedule(ctx context.Context, a appointment.Appointment, fire time.Time) (string, bool) {
	title, body := r.texts(a)
	handle, err := r.Notifier.Schedule(ctx, Notification{
		FireAt:        fire,
		Title:         title,
		Body:          body,
		AppointmentID: a.ID,
	})
	if err != nil {
		slog.WarnContext(ctx, config.ErrScheduleFailed,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyAppointment, a.ID,
			config.LogKeyError, err)
		return "", false
	}
	slog.DebugContext(ctx, config.MsgReminderSet,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyAppointment, a.ID,
		config.LogKeyHandle, handle,
		config.LogKeyFireAt, fire)
	return handle, true
}

func (r *Reconciler) cancel(ctx context.Context, id, handle string) {
	if err := r.Notifier.Cancel(ctx, handle); err != nil {
		slog.WarnContext(ctx, config.ErrCancelFailed,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyAppointment, id,
			config.LogKeyHandle, handle,
			config.LogKeyError, err)
		return
	}
	slog.DebugContext(ctx, config.MsgReminderCancel,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyAppointment, id)
}

func (r *Reconciler) texts(a appointment.Appointment) (string, string) {
	if r.FormatReminder != nil {
		return r.FormatReminder(a)
	}
	return DefaultReminderText(a)
}

// DefaultReminderText is the untranslated reminder title and body.
func DefaultReminderText(a appointment.Appointment) (string, string) {
	return config.FallbackNotifTitle, fmt.Sprintf(config.FallbackNotifBody, a.Reason, a.Provider, a.Time)
}
