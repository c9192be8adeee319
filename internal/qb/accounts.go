// =============================================================================
// PayPal to QuickBooks Converter - Item Account Classifier
// =============================================================================
//
// Cart items carry no account information; the only signal is the item's
// title text. ClassifyItem maps title keywords to a (class, account) pair.
//
// The keyword lists are deliberately kept as one explicit table rather than
// scattered conditionals, so behaviour changes stay auditable. This
// classifier is only guaranteed to work for ticketing-platform sales, not
// PayPal invoices.
//
// =============================================================================

package qb

import "strings"

// ItemClass is the classification of one cart item.
type ItemClass struct {
	// Class is the QuickBooks class (which competition the sale belongs to).
	Class string

	// Account is the income account the sale posts to.
	Account string
}

// Income accounts the classifier routes to.
const (
	registrationAccount  = "Competition Income:Competitors:Amateur Registration Fees"
	advanceTicketAccount = "Competition Income:Sales:Tickets:Advance Tickets"
)

// classKeywords maps title substrings to the class for the sale. The first
// matching entry wins; titles matching nothing fall through to defaultClass.
var classKeywords = []struct {
	Substring string
	Class     string
}{
	{"Northern", "NLC"},
	{"NLC", "NLC"},
}

// defaultClass is the class for titles without a regional marker.
const defaultClass = "CCC"

// accountKeywords maps title substrings to the income account. The first
// matching entry wins; titles matching nothing are advance ticket sales.
var accountKeywords = []struct {
	Substring string
	Account   string
}{
	{"Competitor", registrationAccount},
}

// ClassifyItem returns the QuickBooks class and income account for a cart
// item title. Every item is classified independently, even though a cart's
// shared fee and discount lines only ever use the first item's class.
func ClassifyItem(title string) ItemClass {
	ic := ItemClass{Class: defaultClass, Account: advanceTicketAccount}
	for _, k := range classKeywords {
		if strings.Contains(title, k.Substring) {
			ic.Class = k.Class
			break
		}
	}
	for _, k := range accountKeywords {
		if strings.Contains(title, k.Substring) {
			ic.Account = k.Account
			break
		}
	}
	return ic
}
