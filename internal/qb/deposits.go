// =============================================================================
// PayPal to QuickBooks Converter - Sales Deposit Emitter
// =============================================================================
//
// Ticket sales arrive in the export as one summary row (the cart payment)
// plus one row per purchased item, correlated by Transaction ID. For every
// completed cart payment this stage emits one balanced DEPOSIT entry:
//
//   TRNS    header, amount = round(Gross - |Fee|, 2)
//   SPL     the PayPal fee,   amount = round(|Fee|, 2)
//   SPL     one per cart item, amount = round(-|Gross item|, 2)
//   SPL     a synthetic discount carrying the residual, when the natural
//           splits do not balance the header within epsilon
//   ENDTRNS
//
// The discount split exists because PayPal reports discounts nowhere; the
// only evidence is the gap between the payment total and the itemized
// splits. Inserting the residual makes the balance invariant
// (header + sum(splits) == 0) hold by construction for every entry.
//
// The class on the fee and discount lines comes from the first cart item:
// carts are assumed to hold items from a single competition, and if that
// assumption fails the only damage is a partly misallocated fee, never a
// wrong line-item sales amount.
//
// =============================================================================

package qb

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/paypal-to-qb/internal/config"
	"github.com/ginjaninja78/paypal-to-qb/internal/iif"
	"github.com/ginjaninja78/paypal-to-qb/internal/paypal"
)

// StageResult reports what one classifier stage did with its input.
type StageResult struct {
	// Remainder is the input minus the rows this stage consumed.
	Remainder paypal.Dataset

	// Entries is the number of accounting entries emitted.
	Entries int

	// Consumed is the number of input rows this stage removed.
	Consumed int
}

// Column widths of the deposit block. Every data row is padded to
// depositRowWidth; the terminator rows are one column narrower. Both counts
// are fixed by the legacy importer this format targets.
const (
	depositRowWidth = 34
	depositEndWidth = 33
)

// depositTrnsFields is the header-line shape of the deposit block.
var depositTrnsFields = []string{
	"!TRNS", "TRNSID", "TRNSTYPE", "DATE", "ACCNT", "NAME",
	"CLASS", "AMOUNT", "DOCNUM", "MEMO", "CLEAR", "PAYMETH",
}

// depositSplFields is the split-line shape of the deposit block.
var depositSplFields = []string{
	"!SPL", "SPLID", "TRNSTYPE", "DATE", "ACCNT", "NAME",
	"CLASS", "AMOUNT", "DOCNUM", "MEMO", "CLEAR", "PAYMETH",
}

// AppendSalesDeposits emits one balanced deposit entry per completed cart
// payment and consumes the payment and cart-item rows. With no completed
// cart payments the stage writes nothing and passes its input through.
func AppendSalesDeposits(w *iif.Writer, d paypal.Dataset, accts config.Accounts, epsilon decimal.Decimal) (*StageResult, error) {
	isCartPayment := func(r paypal.Record) bool {
		return r.Type == paypal.TypeCartPayment && r.Status == paypal.StatusCompleted
	}
	isCartItem := func(r paypal.Record) bool {
		return r.Type == paypal.TypeCartItem
	}

	cartPayments := d.Where(isCartPayment)
	if len(cartPayments) == 0 {
		return &StageResult{Remainder: d}, nil
	}
	cartItems := d.Where(isCartItem)

	saleMemo := accts.PlatformPayee + " ticket sale"
	feeMemo := "Standard PayPal $0.30 + 2.9% for " + accts.PlatformPayee + " ticket sale fulfillment"

	trnsSpec := RowSpec{
		Fields: depositTrnsFields,
		Rules: map[string]FieldRule{
			"!TRNS":    constant("TRNS"),
			"TRNSID":   constant(" "),
			"TRNSTYPE": constant("DEPOSIT"),
			"DATE":     recordDate,
			"ACCNT":    constant(accts.Deposit),
			"NAME":     recordName,
			// The real class lives in the split items.
			"CLASS": constant(""),
			"AMOUNT": func(r paypal.Record) string {
				return depositHeaderAmount(r).StringFixed(2)
			},
			"MEMO":  constant(saleMemo),
			"CLEAR": constant("N"),
		},
	}

	saleSpec := RowSpec{
		Fields: depositSplFields,
		Rules: map[string]FieldRule{
			"!SPL":     constant("SPL"),
			"TRNSTYPE": constant("DEPOSIT"),
			"DATE":     recordDate,
			"NAME":     recordName,
			"MEMO": func(r paypal.Record) string {
				return r.ItemTitle + " " + r.ItemID
			},
			// QuickBooks wants the sale amounts negative and the fee
			// (below) positive.
			"AMOUNT": func(r paypal.Record) string {
				return r.Gross.Abs().Neg().Round(2).StringFixed(2)
			},
			"CLASS": func(r paypal.Record) string {
				return ClassifyItem(r.ItemTitle).Class
			},
			"ACCNT": func(r paypal.Record) string {
				return ClassifyItem(r.ItemTitle).Account
			},
			"CLEAR":   constant("N"),
			"PAYMETH": constant("Paypal"),
		},
	}

	// Block banner: the two row-shape declarations, then the terminator
	// marker row.
	if err := w.WriteRow(depositTrnsFields, depositRowWidth); err != nil {
		return nil, err
	}
	if err := w.WriteRow(depositSplFields, depositRowWidth); err != nil {
		return nil, err
	}
	if err := w.WriteRow([]string{"!ENDTRNS"}, depositEndWidth); err != nil {
		return nil, err
	}

	ids, paymentsByID := cartPayments.GroupBy(transactionID)
	_, itemsByID := cartItems.GroupBy(transactionID)

	entries := 0
	for _, id := range ids {
		group := paymentsByID[id]
		// One summary row per transaction, or the export is unusable.
		if len(group) != 1 {
			return nil, fmt.Errorf("%w: transaction %s has %d cart payment rows, want exactly 1",
				paypal.ErrIntegrity, id, len(group))
		}
		payment := group[0]
		items := itemsByID[id]

		// The fee and discount lines share the first item's class.
		groupClass := defaultClass
		if len(items) > 0 {
			groupClass = ClassifyItem(items[0].ItemTitle).Class
		}

		feeSpec := RowSpec{
			Fields: depositSplFields,
			Rules: map[string]FieldRule{
				"!SPL":     constant("SPL"),
				"TRNSTYPE": constant("DEPOSIT"),
				"DATE":     recordDate,
				"ACCNT":    constant(accts.SaleFee),
				"CLASS":    constant(groupClass),
				"MEMO":     constant(feeMemo),
				"AMOUNT": func(r paypal.Record) string {
					return r.Fee.Abs().Round(2).StringFixed(2)
				},
				"CLEAR":   constant("N"),
				"PAYMETH": constant("Paypal"),
			},
		}

		if err := w.WriteRow(trnsSpec.Row(payment), depositRowWidth); err != nil {
			return nil, err
		}
		trnsTotal := depositHeaderAmount(payment)

		if err := w.WriteRow(feeSpec.Row(payment), depositRowWidth); err != nil {
			return nil, err
		}
		splTotal := payment.Fee.Abs().Round(2)

		for _, item := range items {
			if err := w.WriteRow(saleSpec.Row(item), depositRowWidth); err != nil {
				return nil, err
			}
			splTotal = splTotal.Add(item.Gross.Abs().Neg().Round(2))
		}

		// PayPal gives no discount field; the residual between the payment
		// and its splits is the discount.
		residual := trnsTotal.Add(splTotal)
		if residual.Abs().GreaterThanOrEqual(epsilon) {
			discountSpec := RowSpec{
				Fields: depositSplFields,
				Rules: map[string]FieldRule{
					"!SPL":     constant("SPL"),
					"TRNSTYPE": constant("DEPOSIT"),
					"DATE":     recordDate,
					"ACCNT":    constant(accts.Discount),
					"CLASS":    constant(groupClass),
					"NAME":     recordName,
					"MEMO":     constant("Discount for buying early"),
					"AMOUNT":   constant(residual.Round(2).Neg().StringFixed(2)),
					"CLEAR":    constant("N"),
					"PAYMETH":  constant("Paypal"),
				},
			}
			if err := w.WriteRow(discountSpec.Row(payment), depositRowWidth); err != nil {
				return nil, err
			}
		}

		if err := w.WriteRow([]string{"ENDTRNS"}, depositEndWidth); err != nil {
			return nil, err
		}
		entries++
	}

	// Consume the payment and item rows so later stages never see them.
	// Every cart-item row goes, matched to a payment or not; an orphaned
	// item has no summary to be emitted under.
	rest := d.Where(func(r paypal.Record) bool {
		return !isCartPayment(r) && !isCartItem(r)
	})

	return &StageResult{
		Remainder: rest,
		Entries:   entries,
		Consumed:  len(d) - len(rest),
	}, nil
}

// depositHeaderAmount is the deposit header amount: the gross payment less
// the absolute PayPal fee, rounded to cents.
func depositHeaderAmount(r paypal.Record) decimal.Decimal {
	return r.Gross.Sub(r.Fee.Abs()).Round(2)
}

// transactionID keys a record by its correlation ID.
func transactionID(r paypal.Record) string {
	return r.TransactionID
}
