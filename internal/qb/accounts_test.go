package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyItem(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		class   string
		account string
	}{
		{
			name:    "northern ticket",
			title:   "Northern Lights Classic 2015 Weekend Pass",
			class:   "NLC",
			account: advanceTicketAccount,
		},
		{
			name:    "abbreviated northern ticket",
			title:   "NLC 2015 Adult Day Pass",
			class:   "NLC",
			account: advanceTicketAccount,
		},
		{
			name:    "northern competitor registration",
			title:   "NLC 2015 Amateur Competitor Registration",
			class:   "NLC",
			account: registrationAccount,
		},
		{
			name:    "unmarked competitor registration",
			title:   "2015 Amateur Competitor Registration",
			class:   defaultClass,
			account: registrationAccount,
		},
		{
			name:    "unmarked ticket",
			title:   "2015 Adult Weekend Pass",
			class:   defaultClass,
			account: advanceTicketAccount,
		},
		{
			name:    "empty title",
			title:   "",
			class:   defaultClass,
			account: advanceTicketAccount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyItem(tt.title)

			assert.Equal(t, tt.class, got.Class)
			assert.Equal(t, tt.account, got.Account)
		})
	}
}
