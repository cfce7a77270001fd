// Package lists embeds the default flagged-term lists shipped with termcheck.
// Each file is named <language>.txt and holds one term per line.
package lists

import "embed"

// FS holds the embedded lists. en.txt is the fallback list and must exist.
//
//go:embed *.txt
var FS embed.FS
