// Package web serves the term matching JSON API over HTTP.
// Binds to localhost by default; no auth.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/corey/termcheck/internal/domain/terms"
)

// DefaultMaxBodyBytes caps request bodies when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1 << 20

// Registry hands out matchers. Codes that resolve to the same list share a
// matcher, so arbitrary client codes never grow the registry.
type Registry interface {
	// Lookup returns the matcher serving a language, creating it on first
	// use, and how the code resolved.
	Lookup(language string) (*terms.Matcher, terms.Resolution)
	// Languages returns the resolved languages with a matcher, sorted.
	Languages() []string
}

// Options configures a Server.
type Options struct {
	DefaultLanguage string // used when a request names no language
	MaxBodyBytes    int64  // request body limit; DefaultMaxBodyBytes when zero
	PortFile        string // where the bound port is written for discovery; optional
}

// Server serves the JSON API over HTTP.
type Server struct {
	reg      Registry
	opts     Options
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates an HTTP server over reg.
func NewServer(reg Registry, opts Options) *Server {
	opts.DefaultLanguage = terms.NormalizeLanguage(opts.DefaultLanguage)
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		reg:     reg,
		opts:    opts,
		started: time.Now(),
	}
}

// DefaultPort computes a project-specific port: 19000 + (hash(abs_path) % 1000).
func DefaultPort(projectRoot string) int {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	// Use first 4 bytes as uint32
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 19000 + int(n%1000)
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/check", s.handleCheck)
	mux.HandleFunc("POST /api/embedded", s.handleEmbedded)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/terms", s.handleTerms)
	return mux
}

// Start begins listening on addr ("127.0.0.1:8080", ":0"). Writes the bound
// port to the port file when one is configured.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	if s.opts.PortFile != "" {
		if err := os.WriteFile(s.opts.PortFile, []byte(fmt.Sprintf("%d", port)), 0644); err != nil {
			ln.Close()
			return fmt.Errorf("write port file: %w", err)
		}
	}

	s.listener = ln
	s.port = port
	s.started = time.Now()
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.httpSrv.Serve(ln)
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
		if s.opts.PortFile != "" {
			os.Remove(s.opts.PortFile)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the API base URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) language(requested string) string {
	if requested == "" {
		return s.opts.DefaultLanguage
	}
	return terms.NormalizeLanguage(requested)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	langs := s.reg.Languages()
	if langs == nil {
		langs = []string{}
	}
	writeJSON(w, http.StatusOK, HealthResult{
		Status:    "ok",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Default:   s.opts.DefaultLanguage,
		Languages: langs,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCheck(w, r)
	if !ok {
		return
	}
	lang := s.language(req.Language)
	m, _ := s.reg.Lookup(lang)
	words := m.GetCurseWords(req.Text)
	writeJSON(w, http.StatusOK, CheckResult{
		Language: lang,
		Flagged:  len(words) > 0,
		Words:    words,
	})
}

func (s *Server) handleEmbedded(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCheck(w, r)
	if !ok {
		return
	}
	lang := s.language(req.Language)
	m, _ := s.reg.Lookup(lang)
	words := m.FindEmbeddedTerms(req.Text)
	writeJSON(w, http.StatusOK, CheckResult{
		Language: lang,
		Flagged:  len(words) > 0,
		Words:    words,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("term")
	lang := s.language(q.Get("language"))
	m, _ := s.reg.Lookup(lang)
	writeJSON(w, http.StatusOK, SearchResult{
		Language: lang,
		Term:     term,
		Found:    m.Search(term),
	})
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	lang := s.language(r.URL.Query().Get("language"))
	m, res := s.reg.Lookup(lang)
	all := m.All()
	writeJSON(w, http.StatusOK, TermsResult{
		Language: lang,
		Resolved: res.Language,
		Fallback: res.Fallback,
		Count:    len(all),
		Terms:    all,
	})
}

// decodeCheck reads a CheckRequest, writing a 4xx response on failure.
func (s *Server) decodeCheck(w http.ResponseWriter, r *http.Request) (CheckRequest, bool) {
	var req CheckRequest
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResult{Error: "request body too large"})
			return req, false
		}
		writeJSON(w, http.StatusBadRequest, ErrorResult{Error: "invalid JSON: " + err.Error()})
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; an encode error means the client went away.
	_ = json.NewEncoder(w).Encode(v)
}
