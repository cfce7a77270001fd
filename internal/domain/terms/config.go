package terms

import "strings"

// DefaultLanguage is used when no language is configured and as the fallback
// when the configured language has no list.
const DefaultLanguage = "en"

// Config selects the list a Matcher loads.
type Config struct {
	// Language is an ISO-639 style code ("en", "es", "pt-BR").
	// Empty means DefaultLanguage.
	Language string

	// Quiet suppresses diagnostic warnings (fallback, load failures).
	// Intended for tests and scripted use.
	Quiet bool
}

// NormalizeLanguage canonicalizes a language code for lookup: trimmed,
// lower-cased, with "_" replaced by "-". Empty input yields DefaultLanguage.
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, "_", "-")
	if code == "" {
		return DefaultLanguage
	}
	return code
}
