// Package pets stores the user's pet records.
package pets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
)

// Pet is one persisted pet record.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Vaccines   string `json:"vaccines"`
	Consults   string `json:"consults"`
	Treatments string `json:"treatments"`
	ImageURI   string `json:"imageUri,omitempty"`
}

// NewPet is the input of the add-pet form.
type NewPet struct {
	Name       string `validate:"required"`
	Vaccines   string
	Consults   string
	Treatments string
	ImageURI   string `validate:"omitempty,uri"`
}

// ErrValidation is wrapped by every rejected NewPet.
var ErrValidation = errors.New(config.ErrPetValidation)

var validate = validator.New()

// Store persists pets as one JSON list.
type Store struct {
	KV kvstore.Store

	mu sync.Mutex
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{KV: kv}
}

// List returns every pet in insertion order.
func (s *Store) List(ctx context.Context) ([]Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add validates p and appends it.
func (s *Store) Add(ctx context.Context, p NewPet, now time.Time) (Pet, error) {
	p = NewPet{
		Name:       strings.TrimSpace(p.Name),
		Vaccines:   strings.TrimSpace(p.Vaccines),
		Consults:   strings.TrimSpace(p.Consults),
		Treatments: strings.TrimSpace(p.Treatments),
		ImageURI:   strings.TrimSpace(p.ImageURI),
	}
	if err := validate.Struct(p); err != nil {
		return Pet{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	pet := Pet{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		Name:       p.Name,
		Vaccines:   p.Vaccines,
		Consults:   p.Consults,
		Treatments: p.Treatments,
		ImageURI:   p.ImageURI,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return Pet{}, err
	}
	if err := kvstore.SaveJSON(s.KV, config.KeyPets, append(list, pet)); err != nil {
		return Pet{}, err
	}
	slog.InfoContext(ctx, config.MsgPetAdded,
		config.LogKeyComponent, config.CompPets,
		config.LogKeyName, pet.Name)
	return pet, nil
}

func (s *Store) load(ctx context.Context) ([]Pet, error) {
	var list []Pet
	ok, err := kvstore.LoadJSON(ctx, s.KV, config.KeyPets, &list)
	if err != nil || !ok {
		return nil, err
	}
	return list, nil
}
