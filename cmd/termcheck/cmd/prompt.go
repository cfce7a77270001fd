package cmd

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

// confirm reads one line from stdin and reports whether it is y or yes.
func confirm(cmd *cobra.Command) bool {
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
