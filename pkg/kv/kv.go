/*
Package kv persists string sets under string keys for the suggestion history.

A "set" here keeps its members in insertion order: backends must hand back
exactly the slice they were given. The autofill store relies on that order
for recency, so a backend that sorted or shuffled values would break eviction.

Three backends are provided:

	kv.NewMemory()              // process lifetime only
	kv.OpenFile("history.bin")  // msgpack file, flock guarded
	kv.OpenSQLite("data/")      // sqlite, WAL

Writes are synchronous: PutSet returns once the value is durable (or failed).
*/
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned by every operation on a closed store.
var ErrClosed = errors.New("kv: store closed")

// Store is a string keyed, ordered string set valued table.
type Store interface {
	// GetSet returns the members stored under key, or an empty slice.
	GetSet(key string) ([]string, error)
	// PutSet replaces the members stored under key.
	PutSet(key string, values []string) error
	// Keys lists the keys holding at least one member.
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open picks a backend by name. path is a file for "file" and a
// directory for "sqlite"; it is ignored for "memory".
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", backend)
	}
}

func clone(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
