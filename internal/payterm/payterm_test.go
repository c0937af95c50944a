package payterm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fiscaldoc/internal/payterm"
)

func TestLookup_KnownCodes(t *testing.T) {
	tests := []struct {
		name          string
		code          payterm.Code
		easyfatt      string
		fatturaPACode string
	}{
		{"rimessa diretta", payterm.RimessaDiretta, "Rimessa diretta", "MP05"},
		{"bonifico 30gg", payterm.Bonifico30GGFM, "Bonifico 30 gg F.M.", "MP05"},
		{"bonifico 60gg", payterm.Bonifico60GGFM, "Bonifico 60 gg F.M.", "MP05"},
		{"riba 30gg", payterm.RiBa30GGFM, "Ri.Ba. 30 gg F.M.", "MP12"},
		{"riba 60gg", payterm.RiBa60GGFM, "Ri.Ba. 60 gg F.M.", "MP12"},
		{"carta", payterm.CartaDiCredito, "Carta di credito", "MP08"},
		{"contanti", payterm.Contanti, "Contanti", "MP01"},
		{"assegno", payterm.Assegno, "Assegno", "MP02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := payterm.Lookup(tt.code)
			assert.Equal(t, tt.code, term.Code)
			assert.Equal(t, tt.easyfatt, term.EasyfattName)
			assert.Equal(t, tt.fatturaPACode, term.FatturaPACode)
		})
	}
}

// Every internal code maps to a non-empty value in every facet
func TestAll_Complete(t *testing.T) {
	all := payterm.All()
	require.Len(t, all, 8)

	seen := make(map[payterm.Code]bool)
	for _, term := range all {
		assert.NotEmpty(t, term.Label, "label for %s", term.Code)
		assert.NotEmpty(t, term.EasyfattName, "easyfatt name for %s", term.Code)
		assert.NotEmpty(t, term.FatturaPACode, "fatturapa code for %s", term.Code)
		assert.Regexp(t, `^MP\d{2}$`, term.FatturaPACode)
		assert.False(t, seen[term.Code], "duplicate code %s", term.Code)
		seen[term.Code] = true
	}
}

// An unrecognized code maps to the documented lenient default instead of
// failing: raw code as label, bank transfer in both external vocabularies.
func TestLookup_UnknownFallsBackToBankTransfer(t *testing.T) {
	term := payterm.Lookup(payterm.Code("PAYPAL"))

	assert.Equal(t, "PAYPAL", term.Label)
	assert.Equal(t, "Bonifico", term.EasyfattName)
	assert.Equal(t, "MP05", term.FatturaPACode)
}
