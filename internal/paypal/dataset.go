// =============================================================================
// PayPal to QuickBooks Converter - Dataset Operations
// =============================================================================
//
// A Dataset is an immutable-by-convention sequence of Records. Pipeline
// stages never mutate their input; each operation returns a fresh slice, so
// the driver can hold the original dataset and any stage's output at the
// same time without aliasing hazards.
//
// The operations mirror the small set of tabular verbs the engine needs:
// filter, filter-with-complement, group-by-key, and dedup.
//
// =============================================================================

package paypal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dataset is a sequence of Records in export row order.
type Dataset []Record

// Where returns the records matching pred, in order.
func (d Dataset) Where(pred func(Record) bool) Dataset {
	var out Dataset
	for _, r := range d {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Partition splits the dataset into the records matching pred and the rest,
// both in order. It is the one-pass equivalent of a filter plus its
// complement.
func (d Dataset) Partition(pred func(Record) bool) (matched, rest Dataset) {
	for _, r := range d {
		if pred(r) {
			matched = append(matched, r)
		} else {
			rest = append(rest, r)
		}
	}
	return matched, rest
}

// GroupBy buckets records by key. Keys are returned in first-appearance
// order so emission order follows export row order.
func (d Dataset) GroupBy(key func(Record) string) ([]string, map[string]Dataset) {
	var keys []string
	groups := make(map[string]Dataset)
	for _, r := range d {
		k := key(r)
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	return keys, groups
}

// DistinctBy drops records whose key has been seen before, keeping the first
// occurrence.
func (d Dataset) DistinctBy(key func(Record) string) Dataset {
	seen := make(map[string]bool, len(d))
	var out Dataset
	for _, r := range d {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// SumGross returns the signed sum of the Gross column.
func (d Dataset) SumGross() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range d {
		sum = sum.Add(r.Gross)
	}
	return sum
}

// SumFee returns the signed sum of the Fee column.
func (d Dataset) SumFee() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range d {
		sum = sum.Add(r.Fee)
	}
	return sum
}

// BetweenDates keeps records within the inclusive [start, end] bounds.
// A nil bound is open.
func (d Dataset) BetweenDates(start, end *time.Time) Dataset {
	return d.Where(func(r Record) bool {
		if start != nil && r.Date.Before(*start) {
			return false
		}
		if end != nil && r.Date.After(*end) {
			return false
		}
		return true
	})
}
