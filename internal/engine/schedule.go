package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
)

// ErrMapWrite wraps failures to persist the scheduled map.
var ErrMapWrite = errors.New(config.ErrMapWrite)

// ScheduledMap persists appointment id -> notification handle.
// An entry exists iff a reminder was requested and not cancelled since.
type ScheduledMap struct {
	KV kvstore.Store

	mu sync.Mutex
}

// NewScheduledMap binds the map to a key-value backend.
func NewScheduledMap(kv kvstore.Store) *ScheduledMap {
	return &ScheduledMap{KV: kv}
}

// Snapshot returns a copy of the current entries.
func (m *ScheduledMap) Snapshot(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Mutate runs fn over the loaded entries under the map lock and persists the
// result when fn reports a change.
func (m *ScheduledMap) Mutate(ctx context.Context, fn func(entries map[string]string) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load(ctx)
	if err != nil {
		return err
	}
	if !fn(entries) {
		return nil
	}
	if err := kvstore.SaveJSON(m.KV, config.KeyScheduledMap, entries); err != nil {
		return fmt.Errorf("%w: %w", ErrMapWrite, err)
	}
	return nil
}

func (m *ScheduledMap) load(ctx context.Context) (map[string]string, error) {
	var entries map[string]string
	ok, err := kvstore.LoadJSON(ctx, m.KV, config.KeyScheduledMap, &entries)
	if err != nil {
		return nil, err
	}
	if !ok || entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}

// SessionGate records whether reminders were reconciled during the current
// session. A new session starts unreconciled.
type SessionGate struct {
	done atomic.Bool
}

func (g *SessionGate) HasReconciledThisSession() bool {
	return g.done.Load()
}

func (g *SessionGate) MarkReconciled() {
	g.done.Store(true)
}
