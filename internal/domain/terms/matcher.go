// Package terms implements flagged-term matching for one language.
//
// A Matcher owns a normalized term list loaded lazily from a ports.TermSource
// on first use. Word queries (HasCurseWords, GetCurseWords) compare whole
// tokens against a hash set, so "hell" never matches inside "hellish".
// Substring detection is a separate operation, FindEmbeddedTerms.
//
// Nothing here fails the caller: a missing list falls back to DefaultLanguage,
// and a failed load leaves an empty term set.
package terms

import (
	"os"
	"strings"
	"sync"

	"github.com/corey/termcheck/internal/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type state int

const (
	stateUninitialized state = iota
	stateInitialized
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the diagnostics logger. Ignored in quiet mode.
func WithLogger(log *zap.Logger) Option {
	return func(m *Matcher) {
		if log != nil {
			m.log = log
		}
	}
}

// WithPatternMatcher sets the automaton used by FindEmbeddedTerms. It is
// rebuilt on every load. Without one, FindEmbeddedTerms scans the term list
// linearly.
func WithPatternMatcher(pm ports.PatternMatcher) Option {
	return func(m *Matcher) {
		m.patterns = pm
	}
}

// Matcher answers flagged-term queries for one configured language.
// Safe for concurrent use. Loading happens once, on the first query, and
// concurrent first callers share that single load.
type Matcher struct {
	cfg      Config
	src      ports.TermSource
	log      *zap.Logger
	patterns ports.PatternMatcher

	mu       sync.RWMutex
	state    state
	terms    []string            // normalized list, file order, may hold duplicates
	unique   []string            // distinct terms, first-seen order
	set      map[string]struct{} // membership over unique
	norm     Normalizer
	resolved Resolution
}

// New creates a Matcher reading from src. No I/O happens until the first query.
func New(cfg Config, src ports.TermSource, opts ...Option) *Matcher {
	cfg.Language = NormalizeLanguage(cfg.Language)
	m := &Matcher{
		cfg: cfg,
		src: src,
		log: defaultLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if cfg.Quiet {
		m.log = zap.NewNop()
	}
	m.log = m.log.With(zap.String("component", "terms"))
	return m
}

// defaultLogger writes warnings to stderr in console format.
func defaultLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.WarnLevel,
	)
	return zap.New(core)
}

// Config returns the normalized configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Initialize loads the term list if it has not been loaded yet. Idempotent.
// Calling it is optional; every query initializes on demand.
func (m *Matcher) Initialize() {
	m.acquire()
	m.mu.RUnlock()
}

// acquire returns with m.mu read-locked and the matcher initialized. The first
// caller to find it uninitialized performs the load under the write lock;
// everyone else waits for that load and then reads the result.
func (m *Matcher) acquire() {
	for {
		m.mu.RLock()
		if m.state == stateInitialized {
			return
		}
		m.mu.RUnlock()

		m.mu.Lock()
		if m.state != stateInitialized {
			m.load()
		}
		m.mu.Unlock()
		// A Reset may slip in before the read lock is retaken; loop.
	}
}

// load must be called with m.mu write-locked. It always leaves the matcher
// initialized, with an empty set if anything failed.
func (m *Matcher) load() {
	m.state = stateInitialized
	m.norm = NewNormalizer(m.cfg.Language)

	res, err := Resolve(m.src, m.cfg.Language, m.log)
	m.resolved = res
	if err != nil {
		m.log.Warn("failed to initialize term list", zap.Error(err))
		m.setTerms([]string{})
		return
	}

	raw, err := m.src.Read(res.ID)
	if err != nil {
		m.log.Warn("failed to initialize term list",
			zap.String("id", res.ID), zap.Error(err))
		m.setTerms([]string{})
		return
	}

	m.norm = NewNormalizer(res.Language)
	m.setTerms(ParseList(raw, m.norm))
	m.log.Debug("term list loaded",
		zap.String("language", res.Language),
		zap.String("id", res.ID),
		zap.Int("terms", len(m.unique)))
}

func (m *Matcher) setTerms(list []string) {
	m.terms = list
	m.set = make(map[string]struct{}, len(list))
	m.unique = make([]string, 0, len(list))
	for _, t := range list {
		if _, dup := m.set[t]; dup {
			continue
		}
		m.set[t] = struct{}{}
		m.unique = append(m.unique, t)
	}
	if m.patterns != nil {
		if err := m.patterns.Rebuild(m.unique); err != nil {
			m.log.Warn("failed to build pattern matcher", zap.Error(err))
		}
	}
}

// All returns a copy of the loaded term list in file order.
// Mutating the result never affects the matcher.
func (m *Matcher) All() []string {
	m.acquire()
	defer m.mu.RUnlock()

	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Len returns the number of distinct terms.
func (m *Matcher) Len() int {
	m.acquire()
	defer m.mu.RUnlock()
	return len(m.set)
}

// Resolved reports which list was loaded.
func (m *Matcher) Resolved() Resolution {
	m.acquire()
	defer m.mu.RUnlock()
	return m.resolved
}

// Search reports whether term, trimmed and lower-cased, is exactly a flagged
// term. It does not look for term inside longer entries.
func (m *Matcher) Search(term string) bool {
	m.acquire()
	defer m.mu.RUnlock()

	t := m.norm.Term(term)
	if t == "" {
		return false
	}
	_, ok := m.set[t]
	return ok
}

// HasCurseWords reports whether any whitespace or punctuation delimited token
// of text is a flagged term.
func (m *Matcher) HasCurseWords(text string) bool {
	m.acquire()
	defer m.mu.RUnlock()

	for _, tok := range m.norm.Tokens(text) {
		if _, ok := m.set[tok]; ok {
			return true
		}
	}
	return false
}

// GetCurseWords returns the distinct flagged tokens of text in order of first
// appearance. The result is empty, not nil, when nothing matches.
func (m *Matcher) GetCurseWords(text string) []string {
	m.acquire()
	defer m.mu.RUnlock()

	found := []string{}
	seen := make(map[string]struct{})
	for _, tok := range m.norm.Tokens(text) {
		if _, ok := m.set[tok]; !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		found = append(found, tok)
	}
	return found
}

// FindEmbeddedTerms returns the distinct flagged terms that occur anywhere in
// text as raw substrings, word boundaries ignored: "hell" is found in
// "hellish". It exists for callers that want containment semantics and is
// deliberately separate from HasCurseWords.
func (m *Matcher) FindEmbeddedTerms(text string) []string {
	m.acquire()
	defer m.mu.RUnlock()

	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	lowered := m.norm.Lower(text)

	if m.patterns != nil {
		found := m.patterns.Match(lowered)
		if found == nil {
			return []string{}
		}
		return found
	}

	found := []string{}
	for _, t := range m.unique {
		if strings.Contains(lowered, t) {
			found = append(found, t)
		}
	}
	return found
}

// Reset drops the loaded list. The next query loads it again.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = stateUninitialized
	m.terms = nil
	m.unique = nil
	m.set = nil
	m.resolved = Resolution{}
}
