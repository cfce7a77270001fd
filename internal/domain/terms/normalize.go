package terms

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer lower-cases and segments text using the casing rules of one
// language (Turkish dotless i, Greek final sigma, etc.). The zero value uses
// the root locale.
type Normalizer struct {
	tag language.Tag
}

// NewNormalizer returns a Normalizer for a language code. Unknown codes fall
// back to root casing rules.
func NewNormalizer(code string) Normalizer {
	return Normalizer{tag: language.Make(code)}
}

// Lower lower-cases s. A fresh Caser is used per call because Casers carry
// state and must not be shared between goroutines.
func (n Normalizer) Lower(s string) string {
	return cases.Lower(n.tag).String(s)
}

// Term normalizes a single term or query: trimmed and lower-cased.
func (n Normalizer) Term(s string) string {
	return n.Lower(strings.TrimSpace(s))
}

// Tokens lower-cases text and splits it on runs of whitespace or punctuation.
// Empty tokens are discarded. Symbols (category S) are not separators, so
// "$hit" stays one token.
//
// Scripts written without spaces (Chinese, Japanese) are only split at
// punctuation; an unsegmented run is one token.
func (n Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(n.Lower(text), isSeparator)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// Tokenize splits text into normalized word tokens using root casing rules.
func Tokenize(text string) []string {
	return Normalizer{}.Tokens(text)
}
