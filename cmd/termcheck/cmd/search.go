package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Report whether a term is on the list",
	Long: "Exact lookup of one term, case-insensitive. Partial entries do not match.\n" +
		"Exit status: 0 found, 1 not found, 2 error.",
	Args:          cobra.ExactArgs(1),
	RunE:          runSearch,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return failCmd(cmd, err)
	}
	if !a.Matcher("").Search(args[0]) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", args[0])
		return exitError{code: 1}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: found\n", args[0])
	return nil
}
