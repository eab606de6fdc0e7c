package autofill

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bastiangx/kbserve/internal/logger"
	"github.com/bastiangx/kbserve/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyKV wraps a memory store and fails on demand.
type flakyKV struct {
	*kv.Memory
	failPut bool
	failGet bool
}

var errBackend = errors.New("backend unavailable")

func (f *flakyKV) GetSet(key string) ([]string, error) {
	if f.failGet {
		return nil, errBackend
	}
	return f.Memory.GetSet(key)
}

func (f *flakyKV) PutSet(key string, values []string) error {
	if f.failPut {
		return errBackend
	}
	return f.Memory.PutSet(key, values)
}

func newTestStore(t *testing.T) (*Store, *flakyKV) {
	t.Helper()
	backend := &flakyKV{Memory: kv.NewMemory()}
	return NewStore(backend, WithLogger(logger.Discard())), backend
}

func TestStore_Dedup(t *testing.T) {
	s, _ := newTestStore(t)

	require.True(t, s.Insert(Email, "A@B.com"))
	require.True(t, s.Insert(Email, "a@b.com "))

	got := s.Get(Email)
	require.Len(t, got, 1)
	assert.Equal(t, "a@b.com ", got[0], "last write wins")
}

func TestStore_DedupCollapsesWhitespace(t *testing.T) {
	s, _ := newTestStore(t)

	s.Insert(FullName, "John   Smith")
	s.Insert(City, "Boston")
	s.Insert(FullName, "john smith")

	assert.Equal(t, []string{"john smith"}, s.Get(FullName))
}

func TestStore_BoundedEviction(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 1; i <= 9; i++ {
		require.True(t, s.Insert(Username, fmt.Sprintf("v%d", i)))
	}

	assert.Equal(t, []string{"v9", "v8", "v7", "v6", "v5", "v4", "v3", "v2"}, s.Get(Username))
}

func TestStore_ReinsertMovesToFront(t *testing.T) {
	s, _ := newTestStore(t)

	s.Insert(City, "Paris")
	s.Insert(City, "Rome")
	s.Insert(City, "paris")

	assert.Equal(t, []string{"paris", "Rome"}, s.Get(City))
}

func TestStore_ValidityFilterIndependentOfStorage(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.Insert(Email, "abcdef"))
	assert.Empty(t, s.Get(Email))
	assert.False(t, s.Has(Email))

	raw, err := s.Raw(Email)
	require.NoError(t, err)
	assert.Equal(t, []string{"abcdef"}, raw)
}

func TestStore_RejectsShortAndUnknown(t *testing.T) {
	s, backend := newTestStore(t)

	assert.False(t, s.Insert(City, " a "))
	assert.False(t, s.Insert(Unknown, "something"))
	assert.Empty(t, s.Get(Unknown))

	keys, err := backend.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_PersistenceFailure(t *testing.T) {
	s, backend := newTestStore(t)

	require.True(t, s.Insert(Company, "Acme"))

	backend.failPut = true
	assert.False(t, s.Insert(Company, "Globex"))
	assert.Equal(t, []string{"Acme"}, s.Get(Company), "failed write is not visible")

	backend.failPut = false
	assert.True(t, s.Insert(Company, "Globex"))
	assert.Equal(t, []string{"Globex", "Acme"}, s.Get(Company))
}

func TestStore_ReadFailureServesSnapshot(t *testing.T) {
	s, backend := newTestStore(t)

	s.Insert(Phone, "555-1234")
	backend.failGet = true

	assert.Equal(t, []string{"555-1234"}, s.Get(Phone))
	assert.False(t, s.Insert(Phone, "555-9999"))
}

func TestStore_MaxEntriesOption(t *testing.T) {
	s := NewStore(kv.NewMemory(), WithMaxEntries(2), WithLogger(logger.Discard()))
	s.Insert(State, "CA")
	s.Insert(State, "NY")
	s.Insert(State, "TX")
	assert.Equal(t, []string{"TX", "NY"}, s.Get(State))
}

func TestStore_ClearAndSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	s.Insert(City, "Oslo")
	s.Insert(Zip, "0150")
	s.Insert(Email, "nope")

	snap := s.Snapshot()
	assert.Equal(t, map[Category][]string{City: {"Oslo"}, Zip: {"0150"}}, snap)

	require.NoError(t, s.Clear(City))
	assert.Empty(t, s.Get(City))
}
