package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/termcheck/internal/adapters/bbolt"
	"github.com/corey/termcheck/internal/app"
	"github.com/corey/termcheck/internal/domain/terms"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// palette returns the color codes, or empty strings when color is off.
func palette(useColor bool) (bold, cyan, green, yellow, gray, reset string) {
	if !useColor {
		return
	}
	return colorBold, colorCyan, colorGreen, colorYellow, colorGray, colorReset
}

// formatResolution describes which list a matcher loaded.
//
//	⚡ es-mx → es
//	  Source:   embedded/es.txt
//	  Terms:    42
func formatResolution(res terms.Resolution, source string, count int, useColor bool) string {
	bold, cyan, green, yellow, _, reset := palette(useColor)

	var sb strings.Builder
	switch {
	case res.ID == "":
		sb.WriteString(fmt.Sprintf("%s⚡ %s%s  %sno list available%s\n", bold, res.Requested, reset, yellow, reset))
	case res.Language != res.Requested:
		sb.WriteString(fmt.Sprintf("%s⚡ %s → %s%s", bold, res.Requested, res.Language, reset))
		if res.Fallback {
			sb.WriteString(fmt.Sprintf("  %sfallback%s", yellow, reset))
		}
		sb.WriteString("\n")
	default:
		sb.WriteString(fmt.Sprintf("%s⚡ %s%s\n", bold, res.Language, reset))
	}
	if res.ID != "" {
		sb.WriteString(fmt.Sprintf("  Source:   %s%s%s\n", cyan, source, reset))
	}
	sb.WriteString(fmt.Sprintf("  Terms:    %s%d%s\n", green, count, reset))
	return sb.String()
}

// formatEntries renders stored custom terms with the time they were added.
func formatEntries(language string, entries []bbolt.Entry, useColor bool) string {
	bold, _, _, _, gray, reset := palette(useColor)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s: %d custom terms%s\n", bold, language, len(entries), reset))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s  %s%s%s\n", e.Term, gray, e.AddedAt.Format(time.DateTime), reset))
	}
	return sb.String()
}

// formatConfig renders the effective configuration.
func formatConfig(root, path string, cfg app.Config, useColor bool) string {
	bold, cyan, _, _, _, reset := palette(useColor)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ termcheck config%s\n", bold, reset))
	sb.WriteString(fmt.Sprintf("  Root:       %s\n", root))
	sb.WriteString(fmt.Sprintf("  File:       %s\n", path))
	sb.WriteString(fmt.Sprintf("  Language:   %s%s%s\n", cyan, cfg.Language, reset))
	sb.WriteString(fmt.Sprintf("  Quiet:      %t\n", cfg.Quiet))
	sb.WriteString(fmt.Sprintf("  Terms dir:  %s\n", cfg.TermsDir))
	sb.WriteString(fmt.Sprintf("  DB:         %s\n", cfg.DBPath))
	sb.WriteString(fmt.Sprintf("  Listen:     %s\n", cfg.ListenAddress))
	sb.WriteString(fmt.Sprintf("  Body limit: %d bytes\n", cfg.MaxBodyBytes))
	sb.WriteString(fmt.Sprintf("  Watch:      %t\n", cfg.Watch))
	return sb.String()
}
