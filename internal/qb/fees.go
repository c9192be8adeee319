// =============================================================================
// PayPal to QuickBooks Converter - Platform Fee Emitter
// =============================================================================
//
// The ticketing platform collects its usage fees by preapproved PayPal
// payment; each shows up as a single self-contained "Preapproved Payment
// Sent" row. This stage emits one CHECK-shaped entry per row:
//
//   TRNS    header, amount = -|Gross|  (the importer wants check totals
//           negative and their items positive)
//   SPL     amount = +|Gross| against the bank-fees expense account
//   ENDTRNS
//
// No grouping or joining is needed. Rows are padded to the fee block's own
// column count, which differs from the deposit block's.
//
// =============================================================================

package qb

import (
	"github.com/ginjaninja78/paypal-to-qb/internal/config"
	"github.com/ginjaninja78/paypal-to-qb/internal/iif"
	"github.com/ginjaninja78/paypal-to-qb/internal/paypal"
)

// feeRowWidth is the fee block's fixed column count. The per-transaction
// terminator is written bare, exactly as the legacy importer expects.
const feeRowWidth = 32

// feeTrnsFields is the header-line shape of the fee block.
var feeTrnsFields = []string{
	"!TRNS", "TRNSID", "TRNSTYPE", "DATE", "ACCNT", "NAME",
	"CLASS", "AMOUNT", "DOCNUM", "CLEAR", "TOPRINT",
	"NAMEISTAXABLE", "ADDR1", "ADDR2", "ADDR3", "ADDR4", "ADDR5",
}

// feeSplFields is the split-line shape of the fee block.
var feeSplFields = []string{
	"!SPL", "SPLID", "TRNSTYPE", "DATE", "ACCNT", "NAME",
	"CLASS", "AMOUNT", "DOCNUM", "CLEAR", "QNTY", "PRICE",
	"INVITEM", "PAYMETH", "TAXABLE", "VALADJ", "REIMBEXP",
}

// AppendPlatformFees emits one payable-check entry per preapproved platform
// payment and consumes those rows. With no matching rows the stage writes
// nothing and passes its input through.
func AppendPlatformFees(w *iif.Writer, d paypal.Dataset, accts config.Accounts) (*StageResult, error) {
	isPlatformFee := func(r paypal.Record) bool {
		return r.Type == paypal.TypePreapprovedPayment
	}

	fees := d.Where(isPlatformFee)
	if len(fees) == 0 {
		return &StageResult{Remainder: d}, nil
	}

	trnsSpec := RowSpec{
		Fields: feeTrnsFields,
		Rules: map[string]FieldRule{
			"!TRNS":         constant("TRNS"),
			"TRNSID":        constant(" "),
			"DOCNUM":        constant(" "),
			"NAMEISTAXABLE": constant(" "),
			"NAME":          constant(accts.PlatformPayee),
			"TRNSTYPE":      constant("CHECK"),
			"DATE":          recordDate,
			"ACCNT":         constant(accts.Deposit),
			"CLASS":         constant(accts.PlatformClass),
			"AMOUNT": func(r paypal.Record) string {
				return r.Gross.Abs().Neg().Round(2).StringFixed(2)
			},
			"CLEAR":   constant("N"),
			"TOPRINT": constant("N"),
		},
	}

	splSpec := RowSpec{
		Fields: feeSplFields,
		Rules: map[string]FieldRule{
			"!SPL":     constant("SPL"),
			"SPLID":    constant(" "),
			"TRNSTYPE": constant("CHECK"),
			"DATE":     recordDate,
			"ACCNT":    constant(accts.PlatformFee),
			"CLASS":    constant(accts.PlatformClass),
			"AMOUNT": func(r paypal.Record) string {
				return r.Gross.Abs().Round(2).StringFixed(2)
			},
			"CLEAR":    constant("N"),
			"REIMBEXP": constant("NOTHING"),
		},
	}

	if err := w.WriteRow(feeTrnsFields, feeRowWidth); err != nil {
		return nil, err
	}
	if err := w.WriteRow(feeSplFields, feeRowWidth); err != nil {
		return nil, err
	}
	if err := w.WriteRow([]string{"!ENDTRNS"}, feeRowWidth); err != nil {
		return nil, err
	}

	for _, fee := range fees {
		if err := w.WriteRow(trnsSpec.Row(fee), feeRowWidth); err != nil {
			return nil, err
		}
		if err := w.WriteRow(splSpec.Row(fee), feeRowWidth); err != nil {
			return nil, err
		}
		if err := w.WriteRow([]string{"ENDTRNS"}, 1); err != nil {
			return nil, err
		}
	}

	rest := d.Where(func(r paypal.Record) bool { return !isPlatformFee(r) })
	return &StageResult{
		Remainder: rest,
		Entries:   len(fees),
		Consumed:  len(fees),
	}, nil
}
