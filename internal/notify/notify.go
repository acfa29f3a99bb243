// Package notify delivers one-shot reminders from inside the running process.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/engine"
	"github.com/tartampluch/go-petcare/internal/kvstore"
)

var (
	// ErrUnknownHandle is returned by Cancel for handles it never issued or already fired.
	ErrUnknownHandle = errors.New(config.ErrUnknownHandle)
	// ErrPastTrigger is returned by Schedule for fire times not in the future.
	ErrPastTrigger = errors.New(config.ErrPastTrigger)
)

// Sender shows a notification to the user. fyne.App satisfies it.
type Sender interface {
	SendNotification(n *fyne.Notification)
}

// Request is a persisted, not yet delivered notification.
type Request struct {
	Handle string `json:"handle"`
	engine.Notification
}

var _ engine.Notifier = (*Local)(nil)

// Local implements engine.Notifier with in-process timers. Requests are
// persisted so a later Start can re-arm them.
type Local struct {
	KV          kvstore.Store
	Sender      Sender
	Clock       engine.Clock
	MissedGrace time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewLocal creates a notifier delivering through sender.
func NewLocal(kv kvstore.Store, sender Sender, clock engine.Clock) *Local {
	return &Local{
		KV:          kv,
		Sender:      sender,
		Clock:       clock,
		MissedGrace: config.MissedGrace,
		timers:      make(map[string]*time.Timer),
	}
}

// Schedule persists n and arms its timer.
func (l *Local) Schedule(ctx context.Context, n engine.Notification) (string, error) {
	now := l.Clock.Now()
	if !n.FireAt.After(now) {
		return "", ErrPastTrigger
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := Request{Handle: uuid.NewString(), Notification: n}

	l.mu.Lock()
	defer l.mu.Unlock()

	queue, err := l.load(ctx)
	if err != nil {
		return "", err
	}
	queue = append(queue, req)
	if err := l.save(queue); err != nil {
		return "", err
	}
	l.arm(req, n.FireAt.Sub(now))
	return req.Handle, nil
}

// Cancel disarms and forgets the request behind handle.
func (l *Local) Cancel(ctx context.Context, handle string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[handle]; ok {
		t.Stop()
		delete(l.timers, handle)
	}

	queue, err := l.load(ctx)
	if err != nil {
		return err
	}
	before := len(queue)
	queue = slices.DeleteFunc(queue, func(r Request) bool { return r.Handle == handle })
	if len(queue) == before {
		return ErrUnknownHandle
	}
	return l.save(queue)
}

// Pending returns the requests not delivered yet, soonest first.
func (l *Local) Pending(ctx context.Context) ([]Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Start re-arms persisted requests. Requests that came due while the process
// was down are delivered at once if within MissedGrace and dropped otherwise.
func (l *Local) Start(ctx context.Context) error {
	now := l.Clock.Now()
	log := slog.With(config.LogKeyComponent, config.CompNotify)

	l.mu.Lock()
	queue, err := l.load(ctx)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	var late []Request
	kept := queue[:0]
	for _, r := range queue {
		switch {
		case r.FireAt.After(now):
			if _, armed := l.timers[r.Handle]; !armed {
				l.arm(r, r.FireAt.Sub(now))
			}
			kept = append(kept, r)
		case now.Sub(r.FireAt) <= l.MissedGrace:
			late = append(late, r)
		default:
			log.WarnContext(ctx, config.MsgNotifMissed,
				config.LogKeyHandle, r.Handle,
				config.LogKeyAppointment, r.AppointmentID,
				config.LogKeyFireAt, r.FireAt)
		}
	}
	if len(kept) != len(queue) || len(late) > 0 {
		if err := l.save(kept); err != nil {
			l.mu.Unlock()
			return err
		}
	}
	l.mu.Unlock()

	for _, r := range late {
		l.deliver(r)
	}
	log.InfoContext(ctx, config.MsgNotifRestored,
		config.LogKeyCount, len(kept),
		config.LogKeyScheduled, len(late))
	return nil
}

// Stop disarms every timer. Persisted requests survive for the next Start.
func (l *Local) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}

// arm must be called with l.mu held.
func (l *Local) arm(r Request, d time.Duration) {
	l.timers[r.Handle] = time.AfterFunc(d, func() { l.fire(r.Handle) })
}

func (l *Local) fire(handle string) {
	l.mu.Lock()
	delete(l.timers, handle)
	queue, err := l.load(context.Background())
	if err != nil {
		l.mu.Unlock()
		slog.Error(config.ErrQueueWrite, config.LogKeyComponent, config.CompNotify, config.LogKeyError, err)
		return
	}
	idx := slices.IndexFunc(queue, func(r Request) bool { return r.Handle == handle })
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	req := queue[idx]
	if err := l.save(slices.Delete(queue, idx, idx+1)); err != nil {
		slog.Error(config.ErrQueueWrite, config.LogKeyComponent, config.CompNotify, config.LogKeyError, err)
	}
	l.mu.Unlock()

	l.deliver(req)
}

func (l *Local) deliver(r Request) {
	slog.Info(config.MsgNotifFired,
		config.LogKeyComponent, config.CompNotify,
		config.LogKeyHandle, r.Handle,
		config.LogKeyAppointment, r.AppointmentID)
	if l.Sender != nil {
		l.Sender.SendNotification(fyne.NewNotification(r.Title, r.Body))
	}
}

func (l *Local) load(ctx context.Context) ([]Request, error) {
	var queue []Request
	ok, err := kvstore.LoadJSON(ctx, l.KV, config.KeyNotifications, &queue)
	if err != nil || !ok {
		return nil, err
	}
	slices.SortStableFunc(queue, func(a, b Request) int { return a.FireAt.Compare(b.FireAt) })
	return queue, nil
}

func (l *Local) save(queue []Request) error {
	if queue == nil {
		queue = []Request{}
	}
	if err := kvstore.SaveJSON(l.KV, config.KeyNotifications, queue); err != nil {
		return fmt.Errorf("%s: %w", config.ErrQueueWrite, err)
	}
	return nil
}
