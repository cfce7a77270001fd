package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .termcheck/ project directory.
// All fields are pre-computed strings, zero-alloc access after construction.
type Paths struct {
	Root     string // .termcheck/
	Config   string // .termcheck/config.yaml
	DB       string // .termcheck/terms.db
	TermsDir string // .termcheck/lists/

	RunDir   string // .termcheck/run/
	PortFile string // .termcheck/run/http.port
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".termcheck")
	return &Paths{
		Root:     root,
		Config:   filepath.Join(root, "config.yaml"),
		DB:       filepath.Join(root, "terms.db"),
		TermsDir: filepath.Join(root, "lists"),

		RunDir:   filepath.Join(root, "run"),
		PortFile: filepath.Join(root, "run", "http.port"),
	}
}

// EnsureDirs creates all subdirectories under .termcheck/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.TermsDir, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes ephemeral runtime files (the port file).
// Called on clean server shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PortFile)
}
