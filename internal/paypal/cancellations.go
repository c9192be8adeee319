// =============================================================================
// PayPal to QuickBooks Converter - Cancellation Resolver
// =============================================================================
//
// Cancelled and refunded transactions appear in the export as pairs of rows
// that net to zero against each other. They carry no accounting meaning, so
// the resolver removes them before classification — and then proves, by
// summing what it removed, that it only removed things that actually net out.
//
// MATCHING PASSES (in order; a row removed by an earlier pass is invisible
// to later ones):
//   1. {Payment Sent, Canceled}                          with {Cancelled Payment, Completed}
//   2. {Cart Payment or Payment Sent, Refunded}          with {Refund, Completed}
//   3. {Invoice Sent / Invoice item, Canceled}           vanish silently
//   4. {Shopping Cart Item, Canceled or Refunded}        vanish silently
//
// The netting checks run over the rows removed by passes 1 and 2 only.
// Passes 3 and 4 remove rows that never net against anything: cancelled
// invoices must simply not appear, and cancelled/refunded cart items would
// double-count their cart payment.
//
// RESIDUAL FEE:
//   PayPal does not reverse the $0.30 per-transaction portion of its fee on
//   a refund. That charge survives as a {Cancelled Fee, PayPal, Completed}
//   row, whose Fee is forced to exactly the residual amount and whose Gross
//   is forced to zero. The fee netting check accounts for one residual per
//   such surviving row.
//
// =============================================================================

package paypal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrIntegrity marks a fatal data-integrity failure: the export is
// internally inconsistent and no output may be emitted.
var ErrIntegrity = errors.New("export integrity violation")

// CancellationResult is the outcome of resolving cancellations.
type CancellationResult struct {
	// Remainder is the surviving dataset, with residual-fee rows adjusted.
	Remainder Dataset

	// Netted holds the rows removed by the pair-matching passes; the netting
	// checks have been verified over this set.
	Netted Dataset

	// Discarded holds the rows removed silently (cancelled invoices,
	// cancelled/refunded cart items).
	Discarded Dataset

	// ResidualFeeCount is the number of surviving residual-fee rows.
	ResidualFeeCount int
}

// isResidualFeeRow identifies the surviving fee-on-refund charge.
func isResidualFeeRow(r Record) bool {
	return r.Type == TypeCancelledFee && r.Name == PayPalName && r.Status == StatusCompleted
}

// ResolveCancellations removes matched cancellation pairs from the dataset
// and verifies the removed set nets to zero. residualFee is the signed
// per-refund fee PayPal keeps (-0.30); epsilon is the netting tolerance.
//
// A failed netting check returns an error wrapping ErrIntegrity.
func ResolveCancellations(d Dataset, residualFee, epsilon decimal.Decimal) (*CancellationResult, error) {
	rest := d
	var netted Dataset

	remove := func(pred func(Record) bool) {
		var matched Dataset
		matched, rest = rest.Partition(pred)
		netted = append(netted, matched...)
	}

	// Pass 1: cancelled outgoing payments net against their cancellation row.
	remove(func(r Record) bool {
		return r.Status == StatusCanceled && r.Type == TypePaymentSent
	})
	remove(func(r Record) bool {
		return r.Status == StatusCompleted && r.Type == TypeCancelledPayment
	})

	// Pass 2: refunded payments net against their refund row.
	remove(func(r Record) bool {
		return r.Status == StatusRefunded &&
			(r.Type == TypeCartPayment || r.Type == TypePaymentSent)
	})
	remove(func(r Record) bool {
		return r.Status == StatusCompleted && r.Type == TypeRefund
	})

	// Force the surviving residual-fee rows to exactly the residual amount.
	// The pair removal above leaves their Fee at whatever PayPal reported;
	// only the unreversed per-transaction portion is real.
	residualCount := 0
	for i := range rest {
		if isResidualFeeRow(rest[i]) {
			rest[i].Fee = residualFee
			rest[i].Gross = decimal.Zero
			residualCount++
		}
	}

	// Netting check 1: the removed rows' gross amounts cancel out.
	grossSum := netted.SumGross()
	if grossSum.Abs().GreaterThanOrEqual(epsilon) {
		return nil, fmt.Errorf("%w: removed cancellations have gross sum %s, want 0 within %s",
			ErrIntegrity, grossSum, epsilon)
	}

	// Netting check 2: the removed rows' fees cancel out except for one
	// residual per surviving residual-fee row.
	expectedFee := residualFee.Mul(decimal.NewFromInt(int64(residualCount)))
	feeSum := netted.SumFee()
	if feeSum.Sub(expectedFee).Abs().GreaterThanOrEqual(epsilon) {
		return nil, fmt.Errorf("%w: removed cancellations have fee sum %s, want %s within %s",
			ErrIntegrity, feeSum, expectedFee, epsilon)
	}

	var discarded Dataset
	discard := func(pred func(Record) bool) {
		var matched Dataset
		matched, rest = rest.Partition(pred)
		discarded = append(discarded, matched...)
	}

	// Pass 3: cancelled invoices never net against anything; they must not
	// appear against the balance at all.
	discard(func(r Record) bool {
		return r.Status == StatusCanceled &&
			(r.Type == TypeInvoiceSent || r.Type == TypeInvoiceItem)
	})

	// Pass 4: cancelled/refunded cart items double-count against their cart
	// payment (already removed in pass 2), so they vanish too.
	discard(func(r Record) bool {
		return r.Type == TypeCartItem &&
			(r.Status == StatusCanceled || r.Status == StatusRefunded)
	})

	return &CancellationResult{
		Remainder:        rest,
		Netted:           netted,
		Discarded:        discarded,
		ResidualFeeCount: residualCount,
	}, nil
}
