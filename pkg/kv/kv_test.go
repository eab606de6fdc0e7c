package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends opens a fresh store of every kind plus a reopen func for the persistent ones.
func backends(t *testing.T) map[string]func() Store {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file", "history.bin")
	sqliteDir := filepath.Join(dir, "sqlite")

	return map[string]func() Store{
		BackendMemory: func() Store { return NewMemory() },
		BackendFile: func() Store {
			s, err := OpenFile(filePath)
			require.NoError(t, err)
			return s
		},
		BackendSQLite: func() Store {
			s, err := OpenSQLite(sqliteDir)
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_PutGetPreservesOrder(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			values := []string{"zeta", "alpha", "mike"}
			require.NoError(t, s.PutSet("EMAIL", values))

			got, err := s.GetSet("EMAIL")
			require.NoError(t, err)
			assert.Equal(t, values, got)

			missing, err := s.GetSet("PHONE")
			require.NoError(t, err)
			assert.Empty(t, missing)
		})
	}
}

func TestStore_PutReplacesAndEmptyDeletes(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			require.NoError(t, s.PutSet("CITY", []string{"a", "b"}))
			require.NoError(t, s.PutSet("CITY", []string{"c"}))
			got, err := s.GetSet("CITY")
			require.NoError(t, err)
			assert.Equal(t, []string{"c"}, got)

			require.NoError(t, s.PutSet("ZIP", []string{"12345"}))
			require.NoError(t, s.PutSet("CITY", nil))
			keys, err := s.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"ZIP"}, keys)
		})
	}
}

func TestStore_ReturnedSliceIsACopy(t *testing.T) {
	s := NewMemory()
	in := []string{"one", "two"}
	require.NoError(t, s.PutSet("K", in))
	in[0] = "mutated"

	got, err := s.GetSet("K")
	require.NoError(t, err)
	got[1] = "mutated"

	again, err := s.GetSet("K")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, again)
}

func TestStore_SurvivesReopen(t *testing.T) {
	for _, name := range []string{BackendFile, BackendSQLite} {
		t.Run(name, func(t *testing.T) {
			open := backends(t)[name]

			s := open()
			require.NoError(t, s.PutSet("USERNAME", []string{"v1", "v2", "v3"}))
			require.NoError(t, s.Close())

			s = open()
			defer s.Close()
			got, err := s.GetSet("USERNAME")
			require.NoError(t, err)
			assert.Equal(t, []string{"v1", "v2", "v3"}, got)
		})
	}
}

func TestStore_Closed(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			require.NoError(t, s.Close())

			_, err := s.GetSet("K")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.PutSet("K", []string{"v"}), ErrClosed)
		})
	}
}

func TestFile_SeesOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.bin")
	a, err := OpenFile(path)
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenFile(path)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.PutSet("EMAIL", []string{"x@y.com"}))
	require.NoError(t, b.PutSet("PHONE", []string{"5551234"}))

	// b reloaded before writing, so a's key survived
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"EMAIL", "PHONE"}, keys)
}

func TestOpen(t *testing.T) {
	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open("redis", "")
	assert.Error(t, err)

	_, err = Open(BackendFile, "")
	assert.Error(t, err)
}
