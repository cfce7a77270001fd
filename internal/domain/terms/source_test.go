package terms

import (
	"errors"
	"sync/atomic"
)

// memSource is an in-memory ports.TermSource that counts reads.
type memSource struct {
	lists   map[string]string
	readErr error
	reads   atomic.Int32
}

func newMemSource(lists map[string]string) *memSource {
	return &memSource{lists: lists}
}

func (s *memSource) Locate(language string) (string, bool) {
	if _, ok := s.lists[language]; !ok {
		return "", false
	}
	return language + ".txt", true
}

func (s *memSource) Read(id string) ([]byte, error) {
	s.reads.Add(1)
	if s.readErr != nil {
		return nil, s.readErr
	}
	lang := id[:len(id)-len(".txt")]
	content, ok := s.lists[lang]
	if !ok {
		return nil, errors.New("no such list")
	}
	return []byte(content), nil
}

// recordingPatterns is a ports.PatternMatcher that records rebuilds.
type recordingPatterns struct {
	rebuilt [][]string
	result  []string
}

func (p *recordingPatterns) Match(content string) []string {
	return p.result
}

func (p *recordingPatterns) Rebuild(terms []string) error {
	cp := make([]string, len(terms))
	copy(cp, terms)
	p.rebuilt = append(p.rebuilt, cp)
	return nil
}

const (
	testEnglish = "hell\ndamn\nshit\nson of a bitch\n"
	testSpanish = "mierda\r\nputa\r\n\r\n  Joder  \r\n"
)

func testLists() map[string]string {
	return map[string]string{
		"en": testEnglish,
		"es": testSpanish,
		"zh": "傻逼\n王八蛋\n",
		"ar": "كلب\nحمار\n",
	}
}
