package app

import (
	"sort"
	"sync"

	"github.com/corey/termcheck/internal/adapters/ahocorasick"
	"github.com/corey/termcheck/internal/domain/terms"
	"github.com/corey/termcheck/internal/ports"
	"go.uber.org/zap"
)

// maxWarnedCodes bounds how many distinct unknown codes are remembered for
// once-per-code fallback warnings. Past it, further unknown codes fall back
// silently until the next ResetAll.
const maxWarnedCodes = 1024

// Registry hands out matchers keyed by the list a language code resolves to,
// so "zz", "zz1" and "en" all share the en matcher and "es-mx" shares es.
// The number of matchers is bounded by the lists the source can locate.
// It implements web.Registry.
type Registry struct {
	src   ports.TermSource
	quiet bool
	log   *zap.Logger

	mu       sync.Mutex
	matchers map[string]*terms.Matcher // resolved language -> matcher
	warned   map[string]struct{}       // unknown codes already reported
}

// NewRegistry creates an empty registry.
func NewRegistry(src ports.TermSource, quiet bool, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		src:      src,
		quiet:    quiet,
		log:      log.With(zap.String("component", "registry")),
		matchers: make(map[string]*terms.Matcher),
		warned:   make(map[string]struct{}),
	}
}

// Get returns the matcher serving language.
func (r *Registry) Get(language string) *terms.Matcher {
	m, _ := r.Lookup(language)
	return m
}

// Lookup resolves language against the source and returns the shared matcher
// for the resolved list, creating it on first use, plus how the code resolved.
// Creating a matcher does no I/O; the list loads on its first query.
func (r *Registry) Lookup(language string) (*terms.Matcher, terms.Resolution) {
	lang := terms.NormalizeLanguage(language)
	res, err := terms.Resolve(r.src, lang, zap.NewNop())
	key := res.Language
	if err != nil {
		// The default itself is missing; its matcher reports the load failure.
		key = terms.DefaultLanguage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Fallback {
		r.warnFallback(lang)
	}
	if m, ok := r.matchers[key]; ok {
		return m, res
	}
	m := terms.New(terms.Config{Language: key, Quiet: r.quiet}, r.src,
		terms.WithLogger(r.log),
		terms.WithPatternMatcher(ahocorasick.New()))
	r.matchers[key] = m
	return m, res
}

// warnFallback logs the fallback once per unknown code. Requires r.mu.
func (r *Registry) warnFallback(lang string) {
	if r.quiet {
		return
	}
	if _, seen := r.warned[lang]; seen || len(r.warned) >= maxWarnedCodes {
		return
	}
	r.warned[lang] = struct{}{}
	r.log.Warn("term list not found, using fallback",
		zap.String("language", lang),
		zap.String("fallback", terms.DefaultLanguage))
}

// Languages returns the resolved languages with a matcher, sorted.
func (r *Registry) Languages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.matchers))
	for lang := range r.matchers {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// ResetAll drops every loaded list; each matcher reloads on its next query.
// Fallback warnings fire again afterwards.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matchers {
		m.Reset()
	}
	r.warned = make(map[string]struct{})
}
