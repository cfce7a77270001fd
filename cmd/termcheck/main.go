// termcheck flags offensive words in text.
// Single binary, zero config: embedded lists for several languages, optional
// per-project overrides, a CLI and a JSON API.
package main

import (
	"os"

	"github.com/corey/termcheck/cmd/termcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
