package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/corey/termcheck/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the effective configuration after the config file, TERMCHECK_* env vars and flags.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and create .termcheck/",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config")
	configCmd.AddCommand(configInitCmd)
}

func configFile(root string) string {
	if configPath != "" {
		return configPath
	}
	return app.NewPaths(root).Config
}

func runConfig(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatConfig(root, configFile(root), cfg, isTTY(out)))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	path := configFile(root)

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := app.NewPaths(root).EnsureDirs(); err != nil {
		return fmt.Errorf("create .termcheck: %w", err)
	}
	if err := app.DefaultConfig(root).RelativeTo(root).Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ wrote %s\n", path)
	return nil
}
