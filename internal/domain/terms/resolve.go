package terms

import (
	"fmt"
	"strings"

	"github.com/corey/termcheck/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Resolution records which list a Matcher loaded.
type Resolution struct {
	Requested string // normalized language the caller asked for
	Language  string // language whose list was located
	ID        string // source identifier of that list
	Fallback  bool   // true when Language is DefaultLanguage standing in for Requested
}

// candidates returns the lookup order for a normalized code: the code itself,
// then its base language when the code carries a region or script subtag.
func candidates(code string) []string {
	out := []string{code}
	if !strings.Contains(code, "-") {
		return out
	}
	base, conf := language.Make(code).Base()
	if conf != language.Exact {
		return out
	}
	if b := base.String(); b != code && b != "und" {
		out = append(out, b)
	}
	return out
}

// Resolve locates the list for code in src. Regional codes silently fall back
// to their base language ("es-mx" -> "es"). Anything else that is missing
// resolves to DefaultLanguage and logs a warning on log. The error is non-nil
// only when the default list is missing as well.
func Resolve(src ports.TermSource, code string, log *zap.Logger) (Resolution, error) {
	requested := NormalizeLanguage(code)
	res := Resolution{Requested: requested}

	for _, c := range candidates(requested) {
		if id, ok := src.Locate(c); ok {
			res.Language = c
			res.ID = id
			return res, nil
		}
	}

	if requested == DefaultLanguage {
		return res, fmt.Errorf("locate %s list: %w", DefaultLanguage, ports.ErrNotFound)
	}

	log.Warn("term list not found, using fallback",
		zap.String("language", requested),
		zap.String("fallback", DefaultLanguage))

	id, ok := src.Locate(DefaultLanguage)
	if !ok {
		return res, fmt.Errorf("locate %s list: %w", DefaultLanguage, ports.ErrNotFound)
	}
	res.Language = DefaultLanguage
	res.ID = id
	res.Fallback = true
	return res, nil
}
