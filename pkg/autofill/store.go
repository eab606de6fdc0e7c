package autofill

import (
	"strings"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/kv"
	"github.com/charmbracelet/log"
)

const (
	// MaxEntries is the default history size per category.
	MaxEntries = 8
	// MinValueLength is the shortest trimmed value worth keeping.
	MinValueLength = 2
)

// Store keeps a bounded, deduplicated, recency ordered history per category on top of a kv.Store.
//
// The kv store is authoritative. snapshot caches the last successful read or
// write per category and is only served when the kv store cannot be read.
type Store struct {
	kv         kv.Store
	maxEntries int
	snapshot   map[Category][]string
	log        *log.Logger
}

// StoreOption tweaks a Store at construction.
type StoreOption func(*Store)

// WithMaxEntries overrides the per category cap. Values below 1 are ignored.
func WithMaxEntries(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithLogger replaces the store's logger.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func NewStore(backend kv.Store, opts ...StoreOption) *Store {
	s := &Store{
		kv:         backend,
		maxEntries: MaxEntries,
		snapshot:   make(map[Category][]string),
		log:        log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert records value under category and reports whether the write was persisted.
// Unknown categories and values shorter than MinValueLength are dropped without error.
func (s *Store) Insert(category Category, value string) bool {
	if category == Unknown {
		return false
	}
	if utils.RuneLen(strings.TrimSpace(value)) < MinValueLength {
		s.log.Debug("value rejected, too short", "category", category, "value", value)
		return false
	}

	entries, err := s.read(category)
	if err != nil {
		s.log.Warnf("Reading %s before insert: %v", category, err)
		return false
	}

	norm := utils.NormalizeKey(value)
	next := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		if utils.NormalizeKey(e) == norm {
			s.log.Debug("replacing duplicate", "category", category, "old", e)
			continue
		}
		next = append(next, e)
	}
	next = append(next, value)

	if len(next) > s.maxEntries {
		next = next[len(next)-s.maxEntries:]
	}

	if err := s.kv.PutSet(category.String(), next); err != nil {
		s.log.Warnf("Persisting %s failed: %v", category, err)
		// force the next Get to go back to the kv store
		delete(s.snapshot, category)
		return false
	}

	s.snapshot[category] = next
	s.log.Debug("stored suggestion", "category", category, "value", value, "count", len(next))
	return true
}

// Get returns surfaced suggestions for category, most recent first.
func (s *Store) Get(category Category) []string {
	if category == Unknown {
		return nil
	}

	entries, err := s.read(category)
	if err != nil {
		s.log.Warnf("Reading %s failed, serving last snapshot: %v", category, err)
		entries = s.snapshot[category]
	}

	out := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if IsValid(category, entries[i]) {
			out = append(out, entries[i])
		} else {
			s.log.Debug("filtered invalid suggestion", "category", category, "value", entries[i])
		}
	}
	return out
}

// Has is len(Get(category)) > 0.
func (s *Store) Has(category Category) bool {
	return len(s.Get(category)) > 0
}

// Raw returns everything stored for category in insertion order, valid or not.
func (s *Store) Raw(category Category) ([]string, error) {
	return s.read(category)
}

// Clear drops the history of category.
func (s *Store) Clear(category Category) error {
	if err := s.kv.PutSet(category.String(), nil); err != nil {
		return err
	}
	delete(s.snapshot, category)
	return nil
}

// Snapshot returns the surfaced suggestions of every category that has any.
func (s *Store) Snapshot() map[Category][]string {
	out := make(map[Category][]string)
	for _, c := range Categories() {
		if items := s.Get(c); len(items) > 0 {
			out[c] = items
		}
	}
	return out
}

func (s *Store) read(category Category) ([]string, error) {
	entries, err := s.kv.GetSet(category.String())
	if err != nil {
		return nil, err
	}
	s.snapshot[category] = entries
	return entries, nil
}
