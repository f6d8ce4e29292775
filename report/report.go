// Package report writes fitted polynomials as one equation per line.
//
// A degree-1 line looks like
//
//	        0 <= x <        30; y_0     =         61.0000 +          0.6333x; interpolation
//
// x_min and x_max are the bounds of the fit in seconds and the y index is
// the sample number of x_min.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/polyfit"
)

// FormatLine renders p as a single newline-terminated equation. Terms past
// x^1 are appended as " + c x^k" in the same column width.
func FormatLine(p polyfit.Polynomial, sampleRate float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%9.0f <= x < %9.0f; y_%-5.0f = %15.4f + %15.4fx",
		p.XMin, p.XMax, p.XMin/sampleRate, p.Coefficient(0), p.Coefficient(1))
	for k := 2; k <= p.Degree(); k++ {
		fmt.Fprintf(&sb, " + %15.4fx^%d", p.Coefficient(k), k)
	}
	fmt.Fprintf(&sb, "; %s\n", p.Method)
	return sb.String()
}

// Writer buffers equation lines for one output file.
type Writer struct {
	w          *bufio.Writer
	sampleRate float64
	lines      int
}

// NewWriter returns a Writer that formats lines for the given sample rate.
func NewWriter(w io.Writer, sampleRate float64) *Writer {
	return &Writer{w: bufio.NewWriter(w), sampleRate: sampleRate}
}

// Write appends the line for p.
func (w *Writer) Write(p polyfit.Polynomial) error {
	if _, err := w.w.WriteString(FormatLine(p, w.sampleRate)); err != nil {
		return errors.Wrap(err, "write equation")
	}
	w.lines++
	return nil
}

// WriteAll appends one line per polynomial in order.
func (w *Writer) WriteAll(polys []polyfit.Polynomial) error {
	for _, p := range polys {
		if err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int { return w.lines }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return errors.Wrap(w.w.Flush(), "flush report")
}
