package paypal

import (
	"time"

	"github.com/shopspring/decimal"
)

// dec parses a decimal literal or panics; for test fixtures only.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testDate is an arbitrary fixed date for fixtures.
var testDate = time.Date(2015, 3, 31, 0, 0, 0, 0, time.UTC)

// row builds a minimal record for resolver tests.
func row(typ, status, name, gross, fee string) Record {
	return Record{
		Date:   testDate,
		Type:   typ,
		Status: status,
		Name:   name,
		Gross:  dec(gross),
		Fee:    dec(fee),
	}
}
