package ports

// PatternMatcher finds terms embedded anywhere in content using multi-pattern
// matching (Aho-Corasick). A single pass over the content finds every term at
// once, regardless of how many terms are in the set: O(n + m + z) where
// n=content length, m=total pattern length, z=number of matches.
//
// Unlike whole-word lookup, a pattern matcher reports "hell" inside "hellish".
// It backs the explicitly named embedded-term scan, never the word check.
type PatternMatcher interface {
	// Match returns the distinct terms found in content, in order of first
	// occurrence. Returns nil if nothing matches. Content is matched as-is
	// (caller normalizes case).
	Match(content string) []string

	// Rebuild replaces the entire term set and reconstructs the automaton.
	// Previous terms are discarded. Returns an error if any term is empty.
	Rebuild(terms []string) error
}
