package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"
)

// File stores every set in one msgpack encoded map on disk.
// Each PutSet rewrites the whole file while holding an exclusive flock on
// a sibling ".lock" file, so two kbserve processes never interleave writes.
type File struct {
	path string
	lock *flock.Flock

	mu     sync.Mutex
	data   map[string][]string
	closed bool
}

// OpenFile loads path (creating its directory if needed). A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: file backend needs a path")
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("kv: create dir for %s: %w", path, err)
	}

	f := &File{
		path: path,
		lock: flock.New(path + ".lock"),
		data: make(map[string][]string),
	}

	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("kv: lock %s: %w", path, err)
	}
	defer f.lock.Unlock()

	if err := f.load(); err != nil {
		return nil, err
	}
	log.Debugf("kv: opened file store %s with %d keys", path, len(f.data))
	return f, nil
}

// load replaces the in-memory map with the file contents. Caller holds the flock.
func (f *File) load() error {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		f.data = make(map[string][]string)
		return nil
	}
	if err != nil {
		return fmt.Errorf("kv: read %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		f.data = make(map[string][]string)
		return nil
	}

	data := make(map[string][]string)
	if err := msgpack.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("kv: decode %s: %w", f.path, err)
	}
	f.data = data
	return nil
}

func (f *File) GetSet(key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	return clone(f.data[key]), nil
}

func (f *File) PutSet(key string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("kv: lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	// pick up writes from other processes before rewriting the file
	if err := f.load(); err != nil {
		return err
	}

	next := make(map[string][]string, len(f.data)+1)
	for k, v := range f.data {
		next[k] = v
	}
	if len(values) == 0 {
		delete(next, key)
	} else {
		next[key] = clone(values)
	}

	raw, err := msgpack.Marshal(next)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", f.path, err)
	}
	if err := utils.WriteFileAtomic(f.path, raw, 0600); err != nil {
		return fmt.Errorf("kv: write %s: %w", f.path, err)
	}

	f.data = next
	return nil
}

func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.lock.Close()
}
