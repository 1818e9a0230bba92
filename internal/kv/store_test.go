// ABOUTME: Contract tests run against every local Store backend.
// ABOUTME: Covers get/set/delete/keys and the not-found mapping.
package kv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	b, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "treino.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"badger": b,
		"sqlite": s,
	}
}

func TestStoreContract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get("currentWorkout")
			assert.True(t, errors.Is(err, ErrNotFound), "missing key should map to ErrNotFound, got %v", err)

			require.NoError(t, store.Set("currentWorkout", []byte(`{"id":"a"}`)))
			require.NoError(t, store.Set("mesoCycles", []byte(`[]`)))

			got, err := store.Get("currentWorkout")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"a"}`, string(got))

			// Overwrite replaces the whole record.
			require.NoError(t, store.Set("currentWorkout", []byte(`{"id":"b"}`)))
			got, err = store.Get("currentWorkout")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"b"}`, string(got))

			keys, err := store.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"currentWorkout", "mesoCycles"}, keys)

			require.NoError(t, store.Delete("currentWorkout"))
			_, err = store.Get("currentWorkout")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting a missing key is not an error.
			assert.NoError(t, store.Delete("never-written"))
		})
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treino.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("user", []byte(`{"email":"a@b.c"}`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get("user")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"a@b.c"}`, string(got))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("postgres", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestOpenMemoryBackend(t *testing.T) {
	s, err := Open(BackendMemory, "")
	require.NoError(t, err)
	_, ok := s.(*Memory)
	assert.True(t, ok)
}
