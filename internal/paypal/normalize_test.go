package paypal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawExport builds a RawExport from a header list and rows given as values
// in header order.
func rawExport(headers []string, rows ...[]string) *RawExport {
	raw := &RawExport{Headers: headers, SourceFile: "test.csv"}
	for _, row := range rows {
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				m[h] = row[i]
			} else {
				m[h] = ""
			}
		}
		raw.Rows = append(raw.Rows, m)
	}
	return raw
}

var baseHeaders = []string{
	"Date", "Type", "Status", "Name", "Gross", "Fee", "Transaction ID",
}

func TestNormalize(t *testing.T) {
	t.Run("parses core columns", func(t *testing.T) {
		raw := rawExport(baseHeaders,
			[]string{"03/31/2015", "Shopping Cart Payment Received", "Completed", "Jane Doe", "113.00", "-3.57", "TX1"},
		)

		ds, err := Normalize(raw)

		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, time.Date(2015, 3, 31, 0, 0, 0, 0, time.UTC), ds[0].Date)
		assert.Equal(t, TypeCartPayment, ds[0].Type)
		assert.Equal(t, StatusCompleted, ds[0].Status)
		assert.Equal(t, "Jane Doe", ds[0].Name)
		assert.True(t, ds[0].Gross.Equal(dec("113.00")), "gross = %s", ds[0].Gross)
		assert.True(t, ds[0].Fee.Equal(dec("-3.57")), "fee = %s", ds[0].Fee)
		assert.Equal(t, "TX1", ds[0].TransactionID)
	})

	t.Run("renames unwieldy export headers", func(t *testing.T) {
		headers := append([]string{}, baseHeaders...)
		headers = append(headers,
			"From Email Address", "To Email Address", "Contact Phone Number",
			"Zip/Postal Code",
			"State/Province/Region/County/Territory/Prefecture/Republic",
			"Address Line 2/District/Neighborhood",
		)
		raw := rawExport(headers,
			[]string{"03/31/2015", "Payment Sent", "Completed", "Jane Doe", "1.00", "0.00", "TX1",
				"jane@example.org", "fees@platform.example", "403-555-9195",
				"t2p 0a1", "Alberta", "Suite 4"},
		)

		ds, err := Normalize(raw)

		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, "jane@example.org", ds[0].Email)
		assert.Equal(t, "fees@platform.example", ds[0].ToEmail)
		assert.Equal(t, "t2p 0a1", ds[0].PostalCode)
		assert.Equal(t, "Alberta", ds[0].Province)
		assert.Equal(t, "Suite 4", ds[0].AddressLine2)
	})

	t.Run("strips phone numbers to digits", func(t *testing.T) {
		headers := append(append([]string{}, baseHeaders...), "Contact Phone Number")
		raw := rawExport(headers,
			[]string{"03/31/2015", "Payment Sent", "Completed", "Jane Doe", "1.00", "0.00", "TX1", "(403) 555-9195"},
		)

		ds, err := Normalize(raw)

		require.NoError(t, err)
		assert.Equal(t, "4035559195", ds[0].Phone)
	})

	t.Run("strips thousands separators from amounts", func(t *testing.T) {
		raw := rawExport(baseHeaders,
			[]string{"03/31/2015", "Payment Sent", "Completed", "Jane Doe", "1,000.00", "-29.30", "TX1"},
		)

		ds, err := Normalize(raw)

		require.NoError(t, err)
		assert.True(t, ds[0].Gross.Equal(dec("1000.00")), "gross = %s", ds[0].Gross)
	})

	t.Run("empty amount cells parse as zero", func(t *testing.T) {
		raw := rawExport(baseHeaders,
			[]string{"03/31/2015", "Cancelled Fee", "Completed", "PayPal", "", "", "TX1"},
		)

		ds, err := Normalize(raw)

		require.NoError(t, err)
		assert.True(t, ds[0].Gross.IsZero())
		assert.True(t, ds[0].Fee.IsZero())
	})

	t.Run("unparsable date is fatal", func(t *testing.T) {
		raw := rawExport(baseHeaders,
			[]string{"31/03/2015", "Payment Sent", "Completed", "Jane Doe", "1.00", "0.00", "TX1"},
		)

		_, err := Normalize(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unparsable date")
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("non-numeric amount is fatal", func(t *testing.T) {
		raw := rawExport(baseHeaders,
			[]string{"03/31/2015", "Payment Sent", "Completed", "Jane Doe", "so much", "0.00", "TX1"},
		)

		_, err := Normalize(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-numeric amount")
	})

	t.Run("missing required columns are reported", func(t *testing.T) {
		raw := rawExport([]string{"Date", "Type", "Status"})

		_, err := Normalize(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required columns")
		assert.Contains(t, err.Error(), "Gross")
		assert.Contains(t, err.Error(), "Transaction ID")
	})
}
