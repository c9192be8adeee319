// =============================================================================
// PayPal to QuickBooks Converter - Field Mapping Tables
// =============================================================================
//
// Every IIF row shape is declared as a RowSpec: the full ordered field list
// for the block, plus a rule per field that derives its value from one
// normalized PayPal record. Fields without a rule default to the empty
// string, so each shape declares only what differs.
//
// Rules are pure functions of the record; anything that depends on
// group-level state (the class shared by a cart's fee and discount lines)
// is bound when the per-transaction spec is built.
//
// =============================================================================

package qb

import (
	"github.com/ginjaninja78/paypal-to-qb/internal/paypal"
)

// FieldRule derives one output field from one normalized record.
type FieldRule func(r paypal.Record) string

// RowSpec declares one IIF row shape: its ordered field list and the rules
// for the fields that carry values.
type RowSpec struct {
	Fields []string
	Rules  map[string]FieldRule
}

// Row evaluates the spec against a record, in declared field order.
// Fields without a rule are emitted as empty strings.
func (s RowSpec) Row(r paypal.Record) []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		if rule, ok := s.Rules[f]; ok {
			out[i] = rule(r)
		}
	}
	return out
}

// constant returns a rule that ignores the record.
func constant(v string) FieldRule {
	return func(paypal.Record) string { return v }
}

// recordDate formats the record date the way QuickBooks expects.
func recordDate(r paypal.Record) string {
	return r.Date.Format(paypal.DateLayout)
}

// recordName emits the record's counterparty name.
func recordName(r paypal.Record) string {
	return r.Name
}
