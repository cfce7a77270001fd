// Package ahocorasick provides multi-pattern substring matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching.
package ahocorasick

import (
	"errors"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// ErrEmptyTerm is returned by Rebuild when a term is the empty string.
var ErrEmptyTerm = errors.New("empty term")

// Matcher implements ports.PatternMatcher for embedded-term scanning.
// Build() compiles an automaton; Match() returns matching terms.
// Match is safe for concurrent use; Rebuild is not and must be serialized
// against Match by the caller.
type Matcher struct {
	automaton aho.AhoCorasick
	terms     []string
	built     bool
}

// New returns an empty matcher. Match reports nothing until Rebuild.
func New() *Matcher {
	return &Matcher{}
}

// Build compiles the Aho-Corasick automaton from the given terms.
func (m *Matcher) Build(terms []string) {
	m.terms = make([]string, len(terms))
	copy(m.terms, terms)
	m.built = true
	if len(m.terms) == 0 {
		return
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	m.automaton = builder.Build(m.terms)
}

// Match returns the distinct terms found in content, in order of first
// occurrence. Overlapping occurrences all count: "hellish" with terms
// ["hell", "hellish"] yields both.
func (m *Matcher) Match(content string) []string {
	if !m.built || len(m.terms) == 0 || content == "" {
		return nil
	}

	iter := m.automaton.IterOverlappingByte([]byte(content))
	seen := make(map[int]bool)
	var result []string
	for next := iter.Next(); next != nil; next = iter.Next() {
		idx := next.Pattern()
		if seen[idx] {
			continue
		}
		seen[idx] = true
		result = append(result, m.terms[idx])
	}
	return result
}

// Rebuild replaces the automaton with a new set of terms.
func (m *Matcher) Rebuild(terms []string) error {
	for _, t := range terms {
		if t == "" {
			return ErrEmptyTerm
		}
	}
	m.Build(terms)
	return nil
}

// Len returns the number of terms in the automaton.
func (m *Matcher) Len() int {
	return len(m.terms)
}
