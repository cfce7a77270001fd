package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	checkEmbedded bool
	checkCount    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [text ...]",
	Short: "Check text for flagged words",
	Long: "Prints each distinct flagged word, one per line. Reads stdin when no text is given.\n" +
		"Exit status: 0 clean, 1 flagged, 2 error.",
	Args:          cobra.ArbitraryArgs,
	RunE:          runCheck,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	f := checkCmd.Flags()
	f.BoolVar(&checkEmbedded, "embedded", false, "Match terms inside words (\"hell\" in \"hellish\")")
	f.BoolVarP(&checkCount, "count", "c", false, "Print only the number of flagged words")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := checkInput(cmd, args)
	if err != nil {
		return failCmd(cmd, err)
	}
	a, err := newApp()
	if err != nil {
		return failCmd(cmd, err)
	}

	m := a.Matcher("")
	var words []string
	if checkEmbedded {
		words = m.FindEmbeddedTerms(text)
	} else {
		words = m.GetCurseWords(text)
	}

	out := cmd.OutOrStdout()
	if checkCount {
		fmt.Fprintln(out, len(words))
	} else {
		useColor := isTTY(out)
		for _, w := range words {
			if useColor {
				fmt.Fprintf(out, "%s%s%s\n", colorRed, w, colorReset)
			} else {
				fmt.Fprintln(out, w)
			}
		}
	}

	if len(words) > 0 {
		return exitError{code: 1}
	}
	return nil
}

// checkInput joins args, or reads all of stdin when there are none.
func checkInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

// failCmd reports err on stderr and maps it to exit status 2.
func failCmd(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Name(), err)
	return exitError{code: 2, err: err}
}
