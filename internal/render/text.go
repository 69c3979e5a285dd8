// Package render implements the engine's two output collaborators: a
// line-oriented text renderer and an optional Arrow IPC renderer for
// downstream columnar tooling. Neither touches the engine's hot path;
// both run once, after the merge and sort are complete.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/stationwx/brc/internal/engine"
)

// Text writes one "name=min/mean/max" line per record, each value
// formatted with a single fractional digit via strconv's round-half-to-
// even.
type Text struct {
	Writer io.Writer
}

// Render implements engine.Renderer.
func (t Text) Render(records []engine.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(t.Writer, "%s=%s/%s/%s\n",
			r.Name, formatOneDecimal(r.Min), formatOneDecimal(r.Mean), formatOneDecimal(r.Max)); err != nil {
			return fmt.Errorf("render text: %w", err)
		}
	}
	return nil
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
