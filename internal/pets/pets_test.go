package pets_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
	"github.com/tartampluch/go-petcare/internal/pets"
)

func TestStore_Add(t *testing.T) {
	ctx := context.Background()
	s := pets.NewStore(kvstore.NewMemory())
	now := time.UnixMilli(1700000000000)

	p, err := s.Add(ctx, pets.NewPet{Name: "  Luna ", Vaccines: " Rabies ", Consults: "", Treatments: "Deworming"}, now)
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", p.ID)
	assert.Equal(t, "Luna", p.Name)
	assert.Equal(t, "Rabies", p.Vaccines)

	_, err = s.Add(ctx, pets.NewPet{Name: "Milo"}, now.Add(time.Second))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Luna", list[0].Name)
	assert.Equal(t, "Milo", list[1].Name)
}

func TestStore_AddRequiresName(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	s := pets.NewStore(kv)

	_, err := s.Add(ctx, pets.NewPet{Name: "   ", Vaccines: "Rabies"}, time.Now())
	assert.ErrorIs(t, err, pets.ErrValidation)

	_, ok, _ := kv.Get(config.KeyPets)
	assert.False(t, ok, "rejected pets are never written")
}

func TestStore_ListMalformed(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(config.KeyPets, "nope"))

	list, err := pets.NewStore(kv).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
