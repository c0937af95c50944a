// Package fiscallib provides the public API for generating the agency's
// regulatory documents: the INPS agibilità communication, FatturaPA v1.2
// electronic invoices and Danea Easyfatt exports.
//
// Example usage:
//
//	eng := fiscallib.NewEngine(sender)
//	result, err := eng.GenerateFatturaPA(invoice)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Document, 0644)
package fiscallib

import (
	"github.com/rezonia/fiscaldoc/internal/engine"
	"github.com/rezonia/fiscaldoc/internal/fiscalcode"
	"github.com/rezonia/fiscaldoc/internal/model"
	"github.com/rezonia/fiscaldoc/internal/payterm"
)

// Re-export core types for public API
type (
	Sender      = model.Sender
	Person      = model.Person
	Event       = model.Event
	Party       = model.Party
	LineItem    = model.LineItem
	Deduction   = model.Deduction
	Invoice     = model.Invoice
	Format      = model.Format
	Engine      = engine.Engine
	Result      = engine.Result
	Decoded     = fiscalcode.Decoded
	PaymentTerm = payterm.Term
)

// Re-export format constants
const (
	FormatINPS      = model.FormatINPS
	FormatFatturaPA = model.FormatFatturaPA
	FormatEasyfatt  = model.FormatEasyfatt
)

// Re-export document types
const (
	DocumentInvoice    = model.DocumentInvoice
	DocumentCreditNote = model.DocumentCreditNote
)

// Re-export error types
type (
	SerializeError    = model.SerializeError
	ValidationError   = model.ValidationError
	MissingFieldError = model.MissingFieldError
)

// NewEngine creates a document engine for one sender identity
func NewEngine(sender Sender) *Engine {
	return engine.New(sender)
}

// ValidateFiscalCode reports whether code is a valid codice fiscale
func ValidateFiscalCode(code string) bool {
	return fiscalcode.Validate(code)
}

// DecodeFiscalCode decodes a valid codice fiscale; the second return is
// false when the code does not validate
func DecodeFiscalCode(code string) (Decoded, bool) {
	return fiscalcode.Decode(code)
}

// LookupPaymentTerm returns the three-facet mapping for an internal
// payment-term code, with the documented bank-transfer fallback for
// unrecognized codes
func LookupPaymentTerm(code string) PaymentTerm {
	return payterm.Lookup(payterm.Code(code))
}
