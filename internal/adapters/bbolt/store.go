// Package bbolt implements ports.TermStore using bbolt (embedded B+ tree).
// A top-level "languages" bucket holds one sub-bucket per language; each term
// is a key whose value records when it was added. Writes are transactional, so
// a crash mid-write cannot corrupt previously committed data.
//
// Store also implements ports.TermSource, so custom lists can be chained in
// front of the embedded ones.
package bbolt

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/termcheck/internal/domain/terms"
	"github.com/corey/termcheck/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var bucketLanguages = []byte("languages")

// Entry is one stored term.
type Entry struct {
	Term    string
	AddedAt time.Time
}

// Store implements ports.TermStore and ports.TermSource backed by bbolt.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	return open(path, false)
}

// OpenReadOnly opens an existing database with a shared lock. Several
// read-only handles may coexist; writers are locked out while any is open.
func OpenReadOnly(path string) (*Store, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// normalize returns the bucket name and normalized terms for a write.
func normalize(language string, in []string) ([]byte, []string, error) {
	lang := terms.NormalizeLanguage(language)
	if strings.ContainsAny(lang, `/\.`) {
		return nil, nil, fmt.Errorf("invalid language %q", language)
	}
	n := terms.NewNormalizer(lang)
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = n.Term(t); t != "" {
			out = append(out, t)
		}
	}
	return []byte(lang), out, nil
}

// AddTerms inserts terms and returns how many were new.
func (s *Store) AddTerms(language string, in []string) (int, error) {
	name, list, err := normalize(language, in)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, nil
	}
	stamp := encodeAddedAt(s.now())

	added := 0
	err = s.db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(bucketLanguages)
		if err != nil {
			return err
		}
		lb, err := root.CreateBucketIfNotExists(name)
		if err != nil {
			return err
		}
		for _, t := range list {
			key := []byte(t)
			if lb.Get(key) != nil {
				continue
			}
			if err := lb.Put(key, stamp); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("add terms: %w", err)
	}
	return added, nil
}

// RemoveTerms deletes terms and returns how many were present. A language
// left with no terms is dropped.
func (s *Store) RemoveTerms(language string, in []string) (int, error) {
	name, list, err := normalize(language, in)
	if err != nil {
		return 0, err
	}

	removed := 0
	err = s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketLanguages)
		if root == nil {
			return nil
		}
		lb := root.Bucket(name)
		if lb == nil {
			return nil
		}
		for _, t := range list {
			key := []byte(t)
			if lb.Get(key) == nil {
				continue
			}
			if err := lb.Delete(key); err != nil {
				return err
			}
			removed++
		}
		if k, _ := lb.Cursor().First(); k == nil {
			return root.DeleteBucket(name)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("remove terms: %w", err)
	}
	return removed, nil
}

// Entries returns the stored terms for a language with their timestamps,
// sorted by term. Returns nil, nil if nothing is stored.
func (s *Store) Entries(language string) ([]Entry, error) {
	name := []byte(terms.NormalizeLanguage(language))
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketLanguages)
		if root == nil {
			return nil
		}
		lb := root.Bucket(name)
		if lb == nil {
			return nil
		}
		return lb.ForEach(func(k, v []byte) error {
			// string(k) copies; bbolt slices are only valid within tx
			out = append(out, Entry{Term: string(k), AddedAt: decodeAddedAt(v)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Terms returns the stored terms for a language, sorted.
// Returns nil, nil if nothing is stored.
func (s *Store) Terms(language string) ([]string, error) {
	entries, err := s.Entries(language)
	if err != nil || entries == nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	return out, nil
}

// Languages returns every language with a stored list, sorted.
func (s *Store) Languages() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketLanguages)
		if root == nil {
			return nil
		}
		return root.ForEach(func(k, v []byte) error {
			if v == nil { // nested bucket
				out = append(out, string(k))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteLanguage removes a language's list.
// Idempotent: deleting a nonexistent language is not an error.
func (s *Store) DeleteLanguage(language string) error {
	name := []byte(terms.NormalizeLanguage(language))
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketLanguages)
		if root == nil {
			return nil
		}
		if err := root.DeleteBucket(name); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}

// Locate reports a language as present when it has at least one stored term.
// The identifier is the language code itself.
func (s *Store) Locate(language string) (string, bool) {
	found := false
	_ = s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketLanguages)
		if root == nil {
			return nil
		}
		if lb := root.Bucket([]byte(language)); lb != nil {
			k, _ := lb.Cursor().First()
			found = k != nil
		}
		return nil
	})
	if !found {
		return "", false
	}
	return language, true
}

// Read renders a stored list one term per line.
func (s *Store) Read(id string) ([]byte, error) {
	list, err := s.Terms(id)
	if err != nil {
		return nil, fmt.Errorf("read stored list %s: %w", id, err)
	}
	if list == nil {
		return nil, fmt.Errorf("stored list %s: %w", id, ports.ErrNotFound)
	}
	return []byte(strings.Join(list, "\n") + "\n"), nil
}
