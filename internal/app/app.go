// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the termcheck server: create, start, stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	fsw "github.com/corey/termcheck/internal/adapters/fsnotify"
	"github.com/corey/termcheck/internal/adapters/termfile"
	"github.com/corey/termcheck/internal/adapters/web"
	"github.com/corey/termcheck/internal/domain/terms"
	"github.com/corey/termcheck/internal/ports"
	"go.uber.org/zap"
)

// App holds the resolved configuration and the matchers built from it.
type App struct {
	ProjectRoot string
	Paths       *Paths
	Config      Config
	Log         *zap.Logger
	Source      ports.TermSource
	Registry    *Registry

	sourceNames []string // parallel to the source chain

	WebServer *web.Server
	Watcher   ports.Watcher
}

// New creates an App with all dependencies wired. Does not start services.
//
// Lists are looked up in order: custom terms in the bbolt store, then
// <language>.txt files in terms_dir, then the embedded defaults.
func New(projectRoot string, cfg Config, log *zap.Logger) (*App, error) {
	if projectRoot == "" {
		return nil, errors.New("project root required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	src, names := newSourceChain(cfg)

	a := &App{
		ProjectRoot: projectRoot,
		Paths:       NewPaths(projectRoot),
		Config:      cfg,
		Log:         log,
		Source:      src,
		Registry:    NewRegistry(src, cfg.Quiet, log),
		sourceNames: names,
	}
	a.WebServer = web.NewServer(a.Registry, web.Options{
		DefaultLanguage: cfg.Language,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		PortFile:        a.Paths.PortFile,
	})
	return a, nil
}

func newSourceChain(cfg Config) (termfile.Chain, []string) {
	var chain termfile.Chain
	var names []string
	if cfg.DBPath != "" {
		chain = append(chain, newStoreSource(cfg.DBPath))
		names = append(names, cfg.DBPath)
	}
	if cfg.TermsDir != "" {
		chain = append(chain, termfile.Dir(cfg.TermsDir))
		names = append(names, cfg.TermsDir)
	}
	chain = append(chain, termfile.Embedded())
	names = append(names, "embedded")
	return chain, names
}

// DescribeSource turns a list identifier from Resolution.ID into a readable
// location: "embedded/en.txt", "/proj/.termcheck/lists/fr.txt", "/proj/.termcheck/terms.db#en".
func (a *App) DescribeSource(id string) string {
	idx, inner, ok := strings.Cut(id, ":")
	if !ok {
		return id
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(a.sourceNames) {
		return id
	}
	name := a.sourceNames[i]
	if i == 0 && a.Config.DBPath != "" {
		return name + "#" + inner
	}
	return filepath.Join(name, inner)
}

// Matcher returns the matcher for language, or for the configured default
// when language is empty.
func (a *App) Matcher(language string) *terms.Matcher {
	m, _ := a.Lookup(language)
	return m
}

// Lookup is Matcher plus how language resolved.
func (a *App) Lookup(language string) (*terms.Matcher, terms.Resolution) {
	if language == "" {
		language = a.Config.Language
	}
	return a.Registry.Lookup(language)
}

// Start begins serving the HTTP API and, when configured, watching terms_dir.
func (a *App) Start() error {
	if err := os.MkdirAll(a.Paths.RunDir, 0755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}
	if err := a.WebServer.Start(a.Config.ListenAddress); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	switch {
	case !a.Config.Watch:
	case !isDir(a.Config.TermsDir):
		// Nothing to watch until the directory exists (config init creates it).
		a.Log.Debug("file watcher skipped, terms_dir absent",
			zap.String("dir", a.Config.TermsDir))
	default:
		// Non-fatal: the API works without hot reload.
		if err := a.startWatcher(); err != nil {
			a.Log.Warn("file watcher unavailable",
				zap.String("dir", a.Config.TermsDir), zap.Error(err))
		}
	}
	a.Log.Info("serving",
		zap.String("url", a.WebServer.URL()),
		zap.Bool("watch", a.Watcher != nil))
	return nil
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (a *App) startWatcher() error {
	if a.Config.TermsDir == "" {
		return errors.New("terms_dir not configured")
	}
	w, err := fsw.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Watch(a.Config.TermsDir, a.onListChanged); err != nil {
		w.Stop()
		return err
	}
	a.Watcher = w
	return nil
}

// Serve starts the App and blocks until ctx is done, then stops it.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return a.Stop()
}

// Reload drops every loaded list; each matcher reloads on its next query.
func (a *App) Reload() {
	a.Registry.ResetAll()
}

// Stop shuts down the watcher and the HTTP server. Idempotent.
func (a *App) Stop() error {
	var err error
	if a.Watcher != nil {
		err = a.Watcher.Stop()
	}
	a.WebServer.Stop()
	a.Paths.CleanEphemeral()
	return err
}
