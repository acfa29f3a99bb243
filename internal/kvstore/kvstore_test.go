package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/tartampluch/go-petcare/internal/kvstore"
)

type record struct {
	Name string `json:"name"`
}

// backends returns every Store implementation, freshly initialized.
func backends(t *testing.T) map[string]kvstore.Store {
	disk, err := kvstore.NewDisk(t.TempDir())
	require.NoError(t, err)

	a := test.NewApp()
	t.Cleanup(a.Quit)

	return map[string]kvstore.Store{
		"memory":      kvstore.NewMemory(),
		"disk":        disk,
		"preferences": kvstore.NewPreferences(a.Preferences()),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(config.KeyAppointments)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store must not hold the key")

			require.NoError(t, s.Set(config.KeyAppointments, `[]`))
			v, ok, err := s.Get(config.KeyAppointments)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v)

			require.NoError(t, s.Remove(config.KeyAppointments))
			_, ok, err = s.Get(config.KeyAppointments)
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, s.Remove(config.KeyAppointments), "removing an absent key is not an error")
		})
	}
}

func TestDisk_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := kvstore.NewDisk(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.BasePath())

	require.NoError(t, s.Set(config.KeyScheduledMap, `{}`))

	b, err := os.ReadFile(filepath.Join(dir, "reminders", "scheduled"))
	require.NoError(t, err, "namespaced keys must map to nested files")
	assert.Equal(t, `{}`, string(b))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemory()

	t.Run("Absent", func(t *testing.T) {
		var r record
		ok, err := kvstore.LoadJSON(ctx, s, config.KeyPets, &r)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, kvstore.SaveJSON(s, config.KeyPets, record{Name: "Luna"}))
		var r record
		ok, err := kvstore.LoadJSON(ctx, s, config.KeyPets, &r)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Luna", r.Name)
	})

	t.Run("Malformed", func(t *testing.T) {
		require.NoError(t, s.Set(config.KeyPets, "{not json"))
		var r record
		ok, err := kvstore.LoadJSON(ctx, s, config.KeyPets, &r)
		require.NoError(t, err, "malformed data is not an error")
		assert.False(t, ok)
	})
}
