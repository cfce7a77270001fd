package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/corey/termcheck/internal/adapters/web"
	"github.com/corey/termcheck/internal/domain/terms"
	"gopkg.in/yaml.v3"
)

// Config is the project configuration, stored as .termcheck/config.yaml.
// Relative paths are resolved against the project root.
type Config struct {
	Language      string `yaml:"language"`       // default language for queries
	Quiet         bool   `yaml:"quiet"`          // suppress diagnostic warnings
	TermsDir      string `yaml:"terms_dir"`      // directory of <language>.txt overrides
	DBPath        string `yaml:"db_path"`        // bbolt store of custom terms
	ListenAddress string `yaml:"listen_address"` // serve address
	MaxBodyBytes  int64  `yaml:"max_body_bytes"` // HTTP request body limit
	Watch         bool   `yaml:"watch"`          // reload lists when terms_dir changes
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig(projectRoot string) Config {
	p := NewPaths(projectRoot)
	return Config{
		Language:      terms.DefaultLanguage,
		TermsDir:      p.TermsDir,
		DBPath:        p.DB,
		ListenAddress: fmt.Sprintf("127.0.0.1:%d", web.DefaultPort(projectRoot)),
		MaxBodyBytes:  web.DefaultMaxBodyBytes,
		Watch:         true,
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
// Environment overrides (TERMCHECK_LANGUAGE, TERMCHECK_QUIET) apply last.
func LoadConfig(path, projectRoot string) (Config, error) {
	cfg := DefaultConfig(projectRoot)

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(projectRoot)
	cfg.Language = terms.NormalizeLanguage(cfg.Language)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("TERMCHECK_LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("TERMCHECK_QUIET"); v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TERMCHECK_QUIET: %w", err)
		}
		c.Quiet = quiet
	}
	return nil
}

func (c *Config) resolvePaths(projectRoot string) {
	if c.TermsDir != "" && !filepath.IsAbs(c.TermsDir) {
		c.TermsDir = filepath.Join(projectRoot, c.TermsDir)
	}
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(projectRoot, c.DBPath)
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.ContainsAny(c.Language, `/\. `) {
		return fmt.Errorf("language %q is not a language code", c.Language)
	}
	if strings.TrimSpace(c.ListenAddress) == "" {
		return errors.New("listen_address is required")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	return nil
}

// RelativeTo rewrites paths under root as relative paths, for writing a
// config that survives moving the project.
func (c Config) RelativeTo(root string) Config {
	rel := func(p string) string {
		if p == "" || !filepath.IsAbs(p) {
			return p
		}
		r, err := filepath.Rel(root, p)
		if err != nil || strings.HasPrefix(r, "..") {
			return p
		}
		return r
	}
	c.TermsDir = rel(c.TermsDir)
	c.DBPath = rel(c.DBPath)
	return c
}
