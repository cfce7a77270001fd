package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/corey/termcheck/internal/adapters/bbolt"
	"github.com/spf13/cobra"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Manage custom terms",
	Long:  "Custom terms live in the project database and replace the list for their language.",
}

var termsAddCmd = &cobra.Command{
	Use:   "add <language> <term> [term ...]",
	Short: "Add custom terms for a language",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTermsAdd,
}

var termsRemoveCmd = &cobra.Command{
	Use:   "remove <language> <term> [term ...]",
	Short: "Remove custom terms",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTermsRemove,
}

var termsListCmd = &cobra.Command{
	Use:   "list [language]",
	Short: "List custom terms, or the languages that have them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTermsList,
}

var termsDropForce bool

var termsDropCmd = &cobra.Command{
	Use:   "drop <language>",
	Short: "Delete every custom term for a language",
	Args:  cobra.ExactArgs(1),
	RunE:  runTermsDrop,
}

func init() {
	termsDropCmd.Flags().BoolVar(&termsDropForce, "force", false, "Skip confirmation prompt")

	termsCmd.AddCommand(termsAddCmd)
	termsCmd.AddCommand(termsRemoveCmd)
	termsCmd.AddCommand(termsListCmd)
	termsCmd.AddCommand(termsDropCmd)
}

// openStore opens the custom terms database for writing, creating it when
// create is set. A missing database with create unset yields nil, nil.
func openStore(create bool) (*bbolt.Store, error) {
	_, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.DBPath); errors.Is(err, os.ErrNotExist) && !create {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		if isDBLockError(err) {
			return nil, errors.New(diagnoseDBLock(cfg.DBPath))
		}
		return nil, err
	}
	return store, nil
}

func runTermsAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.AddTerms(args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d term(s) to %s\n", n, args[0])
	return nil
}

func runTermsRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no custom terms")
		return nil
	}
	defer store.Close()

	n, err := store.RemoveTerms(args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d term(s) from %s\n", n, args[0])
	return nil
}

func runTermsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if store == nil {
		fmt.Fprintln(out, "no custom terms")
		return nil
	}
	defer store.Close()

	if len(args) == 0 {
		langs, err := store.Languages()
		if err != nil {
			return err
		}
		if len(langs) == 0 {
			fmt.Fprintln(out, "no custom terms")
		}
		for _, lang := range langs {
			fmt.Fprintln(out, lang)
		}
		return nil
	}

	entries, err := store.Entries(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(out, formatEntries(args[0], entries, isTTY(out)))
	return nil
}

func runTermsDrop(cmd *cobra.Command, args []string) error {
	lang := args[0]
	out := cmd.OutOrStdout()

	if !termsDropForce {
		fmt.Fprintf(out, "This will delete all custom %s terms. Continue? [y/N] ", lang)
		if !confirm(cmd) {
			fmt.Fprintln(out, "cancelled")
			return nil
		}
	}

	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(out, "no custom terms")
		return nil
	}
	defer store.Close()

	if err := store.DeleteLanguage(lang); err != nil {
		return err
	}
	fmt.Fprintf(out, "dropped custom %s terms\n", lang)
	return nil
}
