package qb

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/paypal-to-qb/internal/config"
	"github.com/ginjaninja78/paypal-to-qb/internal/iif"
)

// dec parses a decimal literal or panics; for test fixtures only.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	testDate    = time.Date(2015, 3, 31, 0, 0, 0, 0, time.UTC)
	testEpsilon = dec("0.01")
)

// testAccounts is a fixed chart of accounts for emitter tests.
var testAccounts = config.Accounts{
	Deposit:       "PayPal Account",
	SaleFee:       "Competition Expenses:Sales:Ticketing:PayPal Fees",
	Discount:      "Competition Expenses:Advertising & Sponsorship:Promotions:Early Bird",
	PlatformPayee: "TicketLeap",
	PlatformFee:   "Operational Expenses:Association Administration:Bank Fees:PayPal Fees",
	PlatformClass: "Other",
}

// capture runs emit against a fresh writer and returns the emitted rows as
// tab-split fields, one slice per line.
func capture(t *testing.T, emit func(w *iif.Writer) error) [][]string {
	t.Helper()
	var buf bytes.Buffer
	w := iif.NewWriter(&buf)
	require.NoError(t, emit(w))
	require.NoError(t, w.Flush())

	out := buf.String()
	if out == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, "\t")
	}
	return rows
}

// rowsOfType filters captured rows by their leading field.
func rowsOfType(rows [][]string, typ string) [][]string {
	var out [][]string
	for _, r := range rows {
		if len(r) > 0 && r[0] == typ {
			out = append(out, r)
		}
	}
	return out
}

// fieldIndex locates a field name in a block's declared field list.
func fieldIndex(t *testing.T, fields []string, name string) int {
	t.Helper()
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	t.Fatalf("field %s not declared", name)
	return -1
}
