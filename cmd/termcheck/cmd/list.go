package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listInfo   bool
	listUnique bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the term list for a language",
	Long:  "Prints the resolved list in file order, one term per line. --info prints where it came from instead.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listInfo, "info", false, "Show resolution details instead of terms")
	listCmd.Flags().BoolVarP(&listUnique, "unique", "u", false, "Drop duplicate entries")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	m, res := a.Lookup("")
	out := cmd.OutOrStdout()

	if listInfo {
		fmt.Fprint(out, formatResolution(res, a.DescribeSource(res.ID), m.Len(), isTTY(out)))
		return nil
	}

	seen := make(map[string]struct{})
	for _, t := range m.All() {
		if listUnique {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
		}
		fmt.Fprintln(out, t)
	}
	return nil
}
