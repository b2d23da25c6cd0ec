// Package report renders analysis results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

// Write renders r in the given format
func Write(w io.Writer, format string, r *analytics.Report, topN int) error {
	switch format {
	case config.FormatJSON:
		return FormatJSON(w, r)
	case config.FormatText, "":
		return FormatText(w, r, topN)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// FormatText writes the five answers, one per line.
func FormatText(w io.Writer, r *analytics.Report, topN int) error {
	for _, answer := range r.Answers(topN) {
		if _, err := fmt.Fprintln(w, answer); err != nil {
			return err
		}
	}
	return nil
}

// FormatJSON writes the report as indented JSON.
func FormatJSON(w io.Writer, r *analytics.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
