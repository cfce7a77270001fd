// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "errors"

// ErrNotFound is returned when an identifier or language does not resolve to
// any stored term list.
var ErrNotFound = errors.New("not found")

// TermSource supplies raw per-language term lists, one term per line.
// Resolving and reading are split so the caller can fall back to another
// language before any I/O happens.
type TermSource interface {
	// Locate returns the identifier of the list for a normalized language
	// code (e.g. "en", "es-mx"). ok is false when the source has no list for
	// that language. Locate must not fail for malformed codes; it reports
	// them as absent.
	Locate(language string) (id string, ok bool)

	// Read returns the raw content of the list named by id. The id must come
	// from a prior Locate on the same source.
	Read(id string) ([]byte, error)
}
