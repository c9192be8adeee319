// =============================================================================
// PayPal to QuickBooks Converter - PayPal Record Model
// =============================================================================
//
// This module defines the normalized shape of one row of a PayPal transaction
// export. The raw export carries several dozen columns; only the ones the
// classifiers, the cancellation resolver, and the customer ledger builder
// actually read are captured here. Everything else is dropped at
// normalization time.
//
// =============================================================================

package paypal

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format PayPal exports use ("MM/DD/YYYY") and the
// format QuickBooks expects back.
const DateLayout = "01/02/2006"

// Row types that carry classification meaning. The export uses free-form
// strings; these are the ones the engine matches on, by exact equality.
const (
	TypeCartPayment        = "Shopping Cart Payment Received"
	TypeCartItem           = "Shopping Cart Item"
	TypePreapprovedPayment = "Preapproved Payment Sent"
	TypePaymentSent        = "Payment Sent"
	TypeCancelledPayment   = "Cancelled Payment"
	TypeCancelledFee       = "Cancelled Fee"
	TypeRefund             = "Refund"
	TypeInvoiceSent        = "Invoice Sent"
	TypeInvoiceItem        = "Invoice item"
)

// Row statuses the engine matches on.
const (
	StatusCompleted = "Completed"
	StatusCanceled  = "Canceled"
	StatusRefunded  = "Refunded"
)

// PayPalName is the counterparty name on PayPal's own fee rows.
const PayPalName = "PayPal"

// =============================================================================
// RECORD
// =============================================================================

// Record is one normalized row of the PayPal export.
//
// TransactionID correlates exactly one summary row (a payment or a fee) with
// zero or more detail rows (cart items) belonging to the same logical
// transaction.
type Record struct {
	Date          time.Time
	Type          string
	Status        string
	Name          string
	Email         string
	ToEmail       string
	Gross         decimal.Decimal
	Fee           decimal.Decimal
	Quantity      decimal.Decimal
	TransactionID string
	ItemTitle     string
	ItemID        string

	// Contact fields, used only by the customer ledger builder.
	AddressLine1 string
	AddressLine2 string
	TownCity     string
	Province     string
	PostalCode   string
	Country      string
	Phone        string
}

// DumpColumns is the column order for the unprocessed-rows CSV dump.
var DumpColumns = []string{
	"Date", "Type", "Status", "Name", "Email", "To Email",
	"Gross", "Fee", "Quantity", "Transaction ID", "Item Title", "Item ID",
	"Address Line 1", "Address Line 2", "Town/City", "Province",
	"Postal Code", "Country", "Phone",
}

// DumpRow renders the record in DumpColumns order.
func (r Record) DumpRow() []string {
	return []string{
		r.Date.Format(DateLayout),
		r.Type,
		r.Status,
		r.Name,
		r.Email,
		r.ToEmail,
		r.Gross.StringFixed(2),
		r.Fee.StringFixed(2),
		r.Quantity.String(),
		r.TransactionID,
		r.ItemTitle,
		r.ItemID,
		r.AddressLine1,
		r.AddressLine2,
		r.TownCity,
		r.Province,
		r.PostalCode,
		r.Country,
		r.Phone,
	}
}
