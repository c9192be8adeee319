// =============================================================================
// PayPal to QuickBooks Converter - Export Loader
// =============================================================================
//
// This module loads a raw PayPal export into headers plus row maps, before
// any normalization. Two physical formats are supported:
//
//   - CSV  : the classic "Download history" export
//   - XLSX : the same report downloaded as a spreadsheet (first sheet)
//
// ENCODING:
//   PayPal's CSV downloads are not always UTF-8; exports produced on Windows
//   arrive as Windows-1252. When the raw bytes are not valid UTF-8 the whole
//   input is transcoded in memory from the configured fallback encoding and
//   parsing proceeds. The file on disk is left untouched.
//
// =============================================================================

package paypal

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// =============================================================================
// RAW EXPORT STRUCTURE
// =============================================================================

// RawExport is the parsed-but-not-normalized input file.
type RawExport struct {
	// Headers contains the trimmed column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value. Ragged rows
	// are padded with empty strings.
	Rows []map[string]string

	// SourceFile is the path the export was loaded from.
	SourceFile string

	// Transcoded reports whether the input had to be converted from the
	// fallback encoding to UTF-8.
	Transcoded bool
}

// =============================================================================
// LOADING
// =============================================================================

// LoadExport reads a PayPal export from path. The format is chosen by file
// extension: .xlsx is read with excelize, everything else as CSV.
func LoadExport(path, fallbackEncoding string) (*RawExport, error) {
	var (
		rows       [][]string
		transcoded bool
		err        error
	)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = loadXLSX(path)
	} else {
		rows, transcoded, err = loadCSV(path, fallbackEncoding)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("export file %s is empty", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	dataRows := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				m[h] = row[i]
			} else {
				m[h] = ""
			}
		}
		dataRows = append(dataRows, m)
	}

	return &RawExport{
		Headers:    headers,
		Rows:       dataRows,
		SourceFile: path,
		Transcoded: transcoded,
	}, nil
}

// loadCSV reads a CSV export, transcoding from the fallback encoding when the
// raw bytes are not valid UTF-8.
func loadCSV(path, fallbackEncoding string) ([][]string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open export: %w", err)
	}

	transcoded := false
	if !utf8.Valid(data) {
		dec, err := decoderFor(fallbackEncoding)
		if err != nil {
			return nil, false, err
		}
		data, _, err = transform.Bytes(dec, data)
		if err != nil {
			return nil, false, fmt.Errorf("failed to transcode export from %s: %w", fallbackEncoding, err)
		}
		transcoded = true
	}

	// Strip a UTF-8 BOM; PayPal prepends one on some exports.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	// PayPal exports are occasionally ragged on the last columns.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, transcoded, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, transcoded, nil
}

// loadXLSX reads the first sheet of an XLSX export.
func loadXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("export file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// decoderFor maps a fallback encoding name to its decoder.
func decoderFor(name string) (transform.Transformer, error) {
	var enc *encoding.Decoder
	switch name {
	case "", "windows-1252":
		enc = charmap.Windows1252.NewDecoder()
	case "iso-8859-1":
		enc = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported fallback encoding %q", name)
	}
	return enc, nil
}
