package ports

// TermStore persists custom per-language term lists.
// The backing store (bbolt) keeps one namespace per language. Terms are stored
// normalized, so adding "Hell" and "hell" yields one entry.
//
// Crash safety: every mutation is a single transaction. A crash mid-write
// must not corrupt previously committed data.
type TermStore interface {
	// AddTerms inserts terms into the language's list and returns how many
	// were new. Empty terms are skipped.
	AddTerms(language string, terms []string) (int, error)

	// RemoveTerms deletes terms from the language's list and returns how many
	// were present.
	RemoveTerms(language string, terms []string) (int, error)

	// Terms returns the stored terms for a language in sorted order.
	// Returns nil, nil if nothing is stored for the language.
	Terms(language string) ([]string, error)

	// Languages returns every language with a stored list, sorted.
	Languages() ([]string, error)

	// DeleteLanguage removes a language's list entirely.
	// Idempotent: deleting a nonexistent language is not an error.
	DeleteLanguage(language string) error
}
