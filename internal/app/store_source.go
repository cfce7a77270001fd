package app

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/corey/termcheck/internal/adapters/bbolt"
	"github.com/corey/termcheck/internal/ports"
)

// storeSource serves custom lists from the bbolt file at path. The database is
// opened read-only for each Locate so a running server never holds the lock
// that `terms add` needs. Locate reads the list in the same transaction and
// keeps it for the following Read, so a concurrent `terms drop` cannot leave
// a located list unreadable.
type storeSource struct {
	path string

	mu      sync.Mutex
	located map[string][]byte // id -> list content as of the last Locate
}

func newStoreSource(path string) *storeSource {
	return &storeSource{path: path, located: make(map[string][]byte)}
}

func (s *storeSource) Locate(language string) (string, bool) {
	if _, err := os.Stat(s.path); err != nil {
		return "", false
	}
	store, err := bbolt.OpenReadOnly(s.path)
	if err != nil {
		return "", false
	}
	defer store.Close()

	id, ok := store.Locate(language)
	var data []byte
	if ok {
		if data, err = store.Read(id); err != nil {
			ok = false
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		delete(s.located, language)
		return "", false
	}
	s.located[id] = data
	return id, true
}

// Read returns the content captured by the last Locate of id, falling back to
// a fresh read when id was never located.
func (s *storeSource) Read(id string) ([]byte, error) {
	s.mu.Lock()
	data, ok := s.located[id]
	s.mu.Unlock()
	if ok {
		return data, nil
	}

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("custom terms %s: %w", id, ports.ErrNotFound)
	}
	store, err := bbolt.OpenReadOnly(s.path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Read(id)
}
