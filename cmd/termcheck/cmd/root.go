package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/corey/termcheck/internal/app"
	"github.com/corey/termcheck/internal/domain/terms"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	langFlag     string
	quietFlag    bool
	verboseFlag  bool
	termsDirFlag string
	dbFlag       string
)

var rootCmd = &cobra.Command{
	Use:   "termcheck",
	Short: "termcheck: offensive word detection",
	Long:  "Checks text against per-language term lists. Embedded lists for en, es, fr, ga, ar and zh; project overrides in .termcheck/.",
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default .termcheck/config.yaml)")
	pf.StringVar(&langFlag, "lang", "", "Language code (default from config, else en)")
	pf.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress diagnostic warnings")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Debug diagnostics")
	pf.StringVar(&termsDirFlag, "terms-dir", "", "Directory of <language>.txt lists")
	pf.StringVar(&dbFlag, "db", "", "Custom terms database")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file for the project and applies flag overrides.
// Flags beat env vars, which beat the file.
func loadConfig() (string, app.Config, error) {
	root := projectRoot()
	path := configPath
	if path == "" {
		path = app.NewPaths(root).Config
	}
	cfg, err := app.LoadConfig(path, root)
	if err != nil {
		return "", app.Config{}, err
	}
	if langFlag != "" {
		cfg.Language = terms.NormalizeLanguage(langFlag)
	}
	if quietFlag {
		cfg.Quiet = true
	}
	if termsDirFlag != "" {
		cfg.TermsDir = absPath(termsDirFlag)
	}
	if dbFlag != "" {
		cfg.DBPath = absPath(dbFlag)
	}
	return root, cfg, cfg.Validate()
}

// newApp builds an App from the effective configuration.
func newApp() (*app.App, error) {
	root, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := app.NewLogger(cfg.Quiet, verboseFlag)
	if err != nil {
		return nil, err
	}
	return app.New(root, cfg, log)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
