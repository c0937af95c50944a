// Package model holds the plain domain records consumed by the document
// serializers. Records are read-only views translated by the caller from its
// own storage; nothing in this package touches persistence.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/fiscaldoc/internal/decimal"
	"github.com/rezonia/fiscaldoc/internal/payterm"
)

// Format identifies a target document dialect
type Format string

const (
	FormatINPS      Format = "inps"
	FormatFatturaPA Format = "fatturapa"
	FormatEasyfatt  Format = "easyfatt"
	FormatUnknown   Format = "unknown"
)

// DocumentType distinguishes invoices from credit notes
type DocumentType string

const (
	DocumentInvoice    DocumentType = "invoice"
	DocumentCreditNote DocumentType = "credit_note"
)

// Sender is the agency's own fiscal identity, injected once from
// configuration and passed explicitly into every serializer call.
type Sender struct {
	FiscalCode string
	Name       string
	VATNumber  string
	Address    string
	PostalCode string
	City       string
	Province   string
	Country    string

	// FatturaPA transmission identity
	TransmitterCountry string
	TransmitterCode    string
	CodiceDestinatario string
}

// Person is an artist record as needed by the INPS communication
type Person struct {
	FirstName  string
	LastName   string
	FiscalCode string
	BirthDate  *time.Time
	BirthCity  string
	Address    string
	City       string
	PostalCode string
}

// Event is a single engagement. The source model carries one date only;
// downstream start and end dates both render it.
type Event struct {
	Date              time.Time
	Venue             string
	ActivityType      string
	GrossCompensation decimal.Decimal
}

// Party is the invoice counterpart (payer)
type Party struct {
	Name       string
	FiscalCode string
	VATNumber  string
	Address    string
	PostalCode string
	City       string
	Province   string
	Country    string
}

// LineItem is one invoice line. Amount() is the rounded line amount;
// totals are built by summing rounded lines, never by rounding a raw sum.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// Amount returns quantity * unit price rounded to cents
func (li LineItem) Amount() decimal.Decimal {
	return dec.Round2(li.Quantity.Mul(li.UnitPrice))
}

// Deduction is a withholding or contribution subtracted from the gross
// total (ritenuta d'acconto, ex-ENPALS contribution share).
type Deduction struct {
	Description string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is an invoice or credit-note record ready for serialization
type Invoice struct {
	Type        DocumentType
	Number      string
	Date        time.Time
	Counterpart Party
	Items       []LineItem
	Deductions  []Deduction
	PaymentTerm payterm.Code
	DueDate     *time.Time
}

// GrossTotal sums the rounded line amounts
func (inv *Invoice) GrossTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for _, li := range inv.Items {
		amounts = append(amounts, li.Amount())
	}
	return dec.SumRounded(amounts)
}

// DeductionTotal sums the rounded deduction amounts
func (inv *Invoice) DeductionTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(inv.Deductions))
	for _, d := range inv.Deductions {
		amounts = append(amounts, d.Amount)
	}
	return dec.SumRounded(amounts)
}

// NetTotal is gross minus deductions, both already rounded
func (inv *Invoice) NetTotal() decimal.Decimal {
	return inv.GrossTotal().Sub(inv.DeductionTotal())
}
