// =============================================================================
// PayPal to QuickBooks Converter - IIF Row Writer
// =============================================================================
//
// IIF is a tab-separated, row-typed text format: the first field of every
// row marks its shape (!TRNS, TRNS, SPL, ENDTRNS, !CUST, ...). QuickBooks'
// legacy importer additionally expects every physical row of a block to be
// padded with empty trailing fields to that block's fixed column count; the
// padding is a hard compatibility requirement, not cosmetic.
//
// Rows are joined and written directly rather than through encoding/csv:
// the importer chokes on quoted fields, and csv.Writer quotes any field
// with a leading space (the TRNSID placeholder is exactly that). No field
// ever legitimately contains a tab or newline, so joining is safe.
//
// =============================================================================

package iif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Writer emits padded tab-separated rows to a single underlying stream.
// It is the sole writer of the output file; stages append in strict order.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter wraps w in an IIF row writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteRow writes one row, right-padded with empty fields to width columns.
// Rows already at or beyond width are written as-is. Fields containing a tab
// or newline would corrupt the row framing and are rejected.
func (w *Writer) WriteRow(fields []string, width int) error {
	if len(fields) < width {
		padded := make([]string, width)
		copy(padded, fields)
		fields = padded
	}
	for _, f := range fields {
		if strings.ContainsAny(f, "\t\r\n") {
			return fmt.Errorf("field %q contains a row delimiter", f)
		}
	}
	if _, err := w.bw.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

// Flush writes any buffered rows to the underlying stream.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
