package appointment

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
)

// ErrNotFound is returned when no appointment carries the requested id.
var ErrNotFound = errors.New(config.ErrNotFound)

// Patch lists the fields an edit may change. Nil fields are left alone, and
// so are text fields that are blank after trimming. Urgency pointing at
// UrgencyNone clears an explicit level.
type Patch struct {
	Date     *string
	Time     *string
	Provider *string
	Reason   *string
	Urgency  *Urgency
}

// Store persists the appointment collection as one JSON list.
// Every mutation rewrites the whole, sorted collection.
type Store struct {
	KV kvstore.Store

	mu sync.Mutex
}

// NewStore binds a Store to a key-value backend.
func NewStore(kv kvstore.Store) *Store {
	return &Store{KV: kv}
}

// List returns every appointment in date/time order.
func (s *Store) List(ctx context.Context) ([]Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns the appointment with the given id.
func (s *Store) Get(ctx context.Context, id string) (Appointment, error) {
	list, err := s.List(ctx)
	if err != nil {
		return Appointment{}, err
	}
	for _, a := range list {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, ErrNotFound
}

// Append adds a to the collection.
func (s *Store) Append(ctx context.Context, a Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	list = append(list, a)
	if err := s.save(list); err != nil {
		return err
	}
	slog.InfoContext(ctx, config.MsgAppointmentAdded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyAppointment, a.ID)
	return nil
}

// Update applies p to the appointment with the given id and returns the result.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Appointment, error) {
	if err := p.validate(); err != nil {
		return Appointment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return Appointment{}, err
	}
	idx := slices.IndexFunc(list, func(a Appointment) bool { return a.ID == id })
	if idx < 0 {
		return Appointment{}, ErrNotFound
	}

	updated := p.apply(list[idx])
	list[idx] = updated
	if err := s.save(list); err != nil {
		return Appointment{}, err
	}
	slog.InfoContext(ctx, config.MsgAppointmentEdit,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyAppointment, id)
	return updated, nil
}

// Remove deletes the appointment with the given id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	before := len(list)
	kept := slices.DeleteFunc(list, func(a Appointment) bool { return a.ID == id })
	if len(kept) == before {
		return nil
	}
	if err := s.save(kept); err != nil {
		return err
	}
	slog.InfoContext(ctx, config.MsgAppointmentDrop,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyAppointment, id)
	return nil
}

// Book validates req and appends the resulting pending appointment.
// Nothing is written when validation fails.
func (s *Store) Book(ctx context.Context, req BookingRequest, now time.Time) (Appointment, error) {
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return Appointment{}, err
	}
	a := Appointment{
		ID:        NewID(now),
		Date:      req.Date,
		Time:      req.Time,
		Provider:  req.Provider,
		Reason:    req.Reason,
		Urgency:   Urgency(req.Urgency),
		CreatedAt: now,
		Status:    StatusPending,
	}
	if err := s.Append(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Store) load(ctx context.Context) ([]Appointment, error) {
	var list []Appointment
	ok, err := kvstore.LoadJSON(ctx, s.KV, config.KeyAppointments, &list)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	Sort(list)
	return list, nil
}

func (s *Store) save(list []Appointment) error {
	if list == nil {
		list = []Appointment{}
	}
	Sort(list)
	return kvstore.SaveJSON(s.KV, config.KeyAppointments, list)
}

func (p Patch) validate() error {
	var fields []FieldError
	if v := trimmed(p.Date); v != "" {
		if _, err := ParseDate(v, time.Local); err != nil {
			fields = append(fields, FieldError{Field: "date", Tag: tagDate})
		}
	}
	if v := trimmed(p.Time); v != "" {
		if _, err := ParseTimeOfDay(v); err != nil {
			fields = append(fields, FieldError{Field: "time", Tag: tagTimeOfDay})
		}
	}
	if p.Urgency != nil && !p.Urgency.Valid() {
		fields = append(fields, FieldError{Field: "urgency", Tag: tagOneOf})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (p Patch) apply(a Appointment) Appointment {
	if v := trimmed(p.Date); v != "" {
		a.Date = v
	}
	if v := trimmed(p.Time); v != "" {
		a.Time = v
	}
	if v := trimmed(p.Provider); v != "" {
		a.Provider = v
	}
	if v := trimmed(p.Reason); v != "" {
		a.Reason = v
	}
	if p.Urgency != nil {
		a.Urgency = *p.Urgency
	}
	return a
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
