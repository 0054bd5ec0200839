package sink

import (
	"bufio"
	"context"
	"io"

	"github.com/pterm/pterm"
)

// DefaultPreviewLimit is how many words Display prints.
const DefaultPreviewLimit = 100

// Display previews the first words of a run and reports the total.
type Display struct {
	w     io.Writer
	buf   *bufio.Writer
	limit int
	total int64
}

// NewDisplay returns a preview sink writing to w. A limit below 1 uses
// DefaultPreviewLimit.
func NewDisplay(w io.Writer, limit int) *Display {
	if limit < 1 {
		limit = DefaultPreviewLimit
	}
	return &Display{w: w, buf: bufio.NewWriter(w), limit: limit}
}

// Accept prints word while the preview has room and counts it either way.
func (d *Display) Accept(word string) error {
	if d.total == 0 {
		pterm.Fprintln(d.buf, pterm.LightCyan("Generated words:"))
	}
	d.total++
	if d.total > int64(d.limit) {
		return nil
	}
	_, err := d.buf.WriteString(word + "\n")
	return err
}

// Close prints the truncation notice and total.
func (d *Display) Close(context.Context) error {
	if d.total > int64(d.limit) {
		pterm.Fprintln(d.buf, pterm.Gray(pterm.Sprintf("... (only first %d words displayed)", d.limit)))
	}
	pterm.Fprintln(d.buf, pterm.Sprintf("Total words: %s", pterm.Green(d.total)))
	return d.buf.Flush()
}

// Total returns the number of words accepted so far.
func (d *Display) Total() int64 { return d.total }
