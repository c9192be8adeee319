// =============================================================================
// PayPal to QuickBooks Converter - Record Normalizer
// =============================================================================
//
// This module turns a RawExport into a Dataset of typed Records:
//
//   - Header names are trimmed and a handful of unwieldy export headers are
//     renamed to the short names the rest of the engine uses.
//   - Dates are parsed from PayPal's MM/DD/YYYY format.
//   - Money and quantity columns are stripped of thousands separators and
//     parsed as decimals.
//   - Phone numbers are reduced to bare digits; QuickBooks rejects imports
//     with formatted phone numbers.
//
// A date or amount that fails to parse is fatal: the dataset cannot be
// trusted beyond that point.
//
// =============================================================================

package paypal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// headerRenames maps raw export headers to the names the engine uses.
// Applied after trimming, by exact string equality.
var headerRenames = map[string]string{
	// Sales receipts:
	"From Email Address": "Email",
	"To Email Address":   "To Email",
	// Invoices, payments:
	"Contact Phone Number": "Phone",
	"Zip/Postal Code":      "Postal Code",
	"State/Province/Region/County/Territory/Prefecture/Republic": "Province",
	"Address Line 2/District/Neighborhood":                       "Address Line 2",
}

// requiredColumns must be present after renaming; without them no row can be
// classified.
var requiredColumns = []string{
	"Date", "Type", "Status", "Name", "Gross", "Fee", "Transaction ID",
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize converts a raw export into a typed Dataset.
func Normalize(raw *RawExport) (Dataset, error) {
	rename := func(h string) string {
		if to, ok := headerRenames[h]; ok {
			return to
		}
		return h
	}

	present := make(map[string]bool, len(raw.Headers))
	for _, h := range raw.Headers {
		present[rename(h)] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("export is missing required columns: %s", strings.Join(missing, ", "))
	}

	out := make(Dataset, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		// Row numbers in errors are 1-based file lines, header included.
		line := i + 2

		get := func(name string) string {
			for from, to := range headerRenames {
				if to == name {
					if v, ok := row[from]; ok {
						return v
					}
				}
			}
			return row[name]
		}

		date, err := time.Parse(DateLayout, get("Date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: unparsable date %q: %w", line, get("Date"), err)
		}

		gross, err := parseAmount(get("Gross"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Gross: %w", line, err)
		}
		fee, err := parseAmount(get("Fee"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Fee: %w", line, err)
		}
		qty, err := parseAmount(get("Quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad Quantity: %w", line, err)
		}

		out = append(out, Record{
			Date:          date,
			Type:          get("Type"),
			Status:        get("Status"),
			Name:          get("Name"),
			Email:         get("Email"),
			ToEmail:       get("To Email"),
			Gross:         gross,
			Fee:           fee,
			Quantity:      qty,
			TransactionID: get("Transaction ID"),
			ItemTitle:     get("Item Title"),
			ItemID:        get("Item ID"),
			AddressLine1:  get("Address Line 1"),
			AddressLine2:  get("Address Line 2"),
			TownCity:      get("Town/City"),
			Province:      get("Province"),
			PostalCode:    get("Postal Code"),
			Country:       get("Country"),
			Phone:         digitsOnly(get("Phone")),
		})
	}
	return out, nil
}

// parseAmount parses a money or quantity cell. Thousands separators are
// stripped first ("1,000.00" -> "1000.00"). An empty cell is zero; PayPal
// leaves amount columns blank on rows they do not apply to.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("non-numeric amount %q", s)
	}
	return d, nil
}

// digitsOnly strips every non-digit rune from a phone number.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
