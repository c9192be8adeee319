// =============================================================================
// PayPal to QuickBooks Converter - Customer Ledger Builder
// =============================================================================
//
// QuickBooks wants every counterparty declared as a name record before any
// transaction that references it. This builder derives the !CUST block from
// the post-cancellation dataset: one row per distinct customer, emitted
// before all transaction entries.
//
// SELECTION:
//   - Cart item and invoice item rows are skipped; their names are already
//     on the payment rows.
//   - The "Bank Account" sentinel row is skipped; it is PayPal's own ledger
//     line, not a customer.
//   - Duplicates are dropped on the full source-field tuple (name, emails,
//     address fields, phone, and transaction direction).
//
// DIRECTION:
//   For money received (cart payments) the customer's own email is on the
//   record; for everything else the counterparty is on the "To" side.
//
// =============================================================================

package qb

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/paypal-to-qb/internal/iif"
	"github.com/ginjaninja78/paypal-to-qb/internal/paypal"
)

// customerSuffix marks converter-created names so they cannot collide with
// vendor records already in QuickBooks.
const customerSuffix = " (c)"

// bankAccountSentinel is the literal name on PayPal's own balance rows.
const bankAccountSentinel = "Bank Account"

// customerFields is the declared field order of the !CUST block.
var customerFields = []string{
	"!CUST", "NAME", "BADDR1", "BADDR2", "BADDR3", "BADDR4", "BADDR5",
	"SADDR1", "SADDR2", "SADDR3", "SADDR4", "SADDR5",
	"PHONE1", "PHONE2", "FAXNUM", "EMAIL", "NOTE", "CONT1", "CONT2",
	"CTYPE", "TERMS", "TAXABLE", "LIMIT", "RESALENUM", "REP", "TAXITEM",
	"NOTEPAD", "SALUTATION", "COMPANYNAME", "FIRSTNAME", "MIDINIT", "LASTNAME",
}

// isFromCustomer reports whether the money flowed from the customer to us,
// which decides whose email address the record carries.
func isFromCustomer(r paypal.Record) bool {
	return r.Type == paypal.TypeCartPayment
}

// AppendCustomers writes the customer block (header row plus one row per
// distinct customer) and returns the number of customers written. The input
// dataset is not consumed; the ledger is a side derivation.
func AppendCustomers(w *iif.Writer, d paypal.Dataset) (int, error) {
	title := cases.Title(language.Und)

	// The names on item rows are already on their payments.
	names := d.Where(func(r paypal.Record) bool {
		return r.Type != paypal.TypeInvoiceItem && r.Type != paypal.TypeCartItem
	})

	names = names.DistinctBy(func(r paypal.Record) string {
		dir := "0"
		if isFromCustomer(r) {
			dir = "1"
		}
		return strings.Join([]string{
			r.Name, r.Email, r.ToEmail,
			r.AddressLine1, r.AddressLine2, r.TownCity, r.Province,
			r.PostalCode, r.Country, r.Phone, dir,
		}, "\x1f")
	})

	names = names.Where(func(r paypal.Record) bool {
		return r.Name != bankAccountSentinel
	})

	spec := RowSpec{
		Fields: customerFields,
		Rules: map[string]FieldRule{
			"!CUST": constant("CUST"),
			"NAME": func(r paypal.Record) string {
				return title.String(r.Name) + customerSuffix
			},
			"BADDR1": func(r paypal.Record) string {
				return title.String(r.Name)
			},
			"BADDR2": func(r paypal.Record) string {
				if r.AddressLine1 == "" && r.AddressLine2 == "" {
					return ""
				}
				return r.AddressLine1 + " " + r.AddressLine2
			},
			"BADDR3": func(r paypal.Record) string {
				if r.TownCity == "" && r.Province == "" && r.PostalCode == "" {
					return ""
				}
				return title.String(r.TownCity) + ", " +
					title.String(r.Province) + " " +
					strings.ToUpper(r.PostalCode)
			},
			"BADDR4": func(r paypal.Record) string {
				return r.Country
			},
			"PHONE1": func(r paypal.Record) string {
				return r.Phone
			},
			"EMAIL": func(r paypal.Record) string {
				if isFromCustomer(r) {
					return r.Email
				}
				return r.ToEmail
			},
			"TAXABLE": constant("N"),
			"FIRSTNAME": func(r paypal.Record) string {
				return firstToken(r.Name)
			},
			"LASTNAME": func(r paypal.Record) string {
				return lastToken(r.Name)
			},
		},
	}

	if err := w.WriteRow(customerFields, len(customerFields)); err != nil {
		return 0, err
	}
	for _, r := range names {
		if err := w.WriteRow(spec.Row(r), len(customerFields)); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// lastToken returns the last whitespace-delimited token of s.
func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
