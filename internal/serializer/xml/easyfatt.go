package xml

import (
	"encoding/xml"
	"fmt"

	dec "github.com/rezonia/fiscaldoc/internal/decimal"
	"github.com/rezonia/fiscaldoc/internal/model"
	"github.com/rezonia/fiscaldoc/internal/payterm"
)

// Danea Easyfatt exchange structures. Flatter than FatturaPA: one Document
// element per invoice, all under a single export root.
type efDocuments struct {
	XMLName    xml.Name       `xml:"EasyfattDocuments"`
	AppVersion string         `xml:"AppVersion,attr"`
	Creator    string         `xml:"Creator,attr"`
	Documents  efDocumentList `xml:"Documents"`
}

type efDocumentList struct {
	Documents []efDocument `xml:"Document"`
}

type efDocument struct {
	DocumentType       string `xml:"DocumentType"`
	Date               string `xml:"Date"`
	Number             string `xml:"Number"`
	CustomerName       string `xml:"CustomerName"`
	CustomerFiscalCode string `xml:"CustomerFiscalCode,omitempty"`
	CustomerVatCode    string `xml:"CustomerVatCode,omitempty"`
	CustomerAddress    string `xml:"CustomerAddress,omitempty"`
	CustomerPostcode   string `xml:"CustomerPostcode,omitempty"`
	CustomerCity       string `xml:"CustomerCity,omitempty"`
	CustomerProvince   string `xml:"CustomerProvince,omitempty"`
	CustomerCountry    string `xml:"CustomerCountry,omitempty"`
	PaymentName        string `xml:"PaymentName"`
	Rows               efRows `xml:"Rows"`
	WithholdingAmount  string `xml:"WithholdingTaxAmount,omitempty"`
	Total              string `xml:"Total"`
}

type efRows struct {
	Rows []efRow `xml:"Row"`
}

type efRow struct {
	Description string `xml:"Description"`
	Qty         string `xml:"Qty"`
	Price       string `xml:"Price"`
	VatCode     string `xml:"VatCode"`
	Total       string `xml:"Total"`
}

// EasyfattSerializer produces Danea Easyfatt export documents, single or
// batched under one root.
type EasyfattSerializer struct{}

// NewEasyfattSerializer creates a new Easyfatt serializer
func NewEasyfattSerializer() *EasyfattSerializer {
	return &EasyfattSerializer{}
}

// Format returns the target format
func (s *EasyfattSerializer) Format() model.Format {
	return model.FormatEasyfatt
}

// Serialize produces one export document containing every given invoice.
// Rounding and date rules are shared with the FatturaPA serializer; the
// payment term renders through the Easyfatt name facet instead of the
// regulatory MP code.
func (s *EasyfattSerializer) Serialize(sender model.Sender, invoices []*model.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, model.NewMissingFieldError(model.FormatEasyfatt, "invoices")
	}

	docs := make([]efDocument, 0, len(invoices))
	for i, inv := range invoices {
		doc, err := s.convert(inv)
		if err != nil {
			return nil, model.NewSerializeError(model.FormatEasyfatt, fmt.Sprintf("document %d", i+1), "cannot convert invoice", err)
		}
		docs = append(docs, doc)
	}

	root := efDocuments{
		AppVersion: "2",
		Creator:    sender.Name,
		Documents:  efDocumentList{Documents: docs},
	}

	out, err := envelope(root)
	if err != nil {
		return nil, model.NewSerializeError(model.FormatEasyfatt, "document", "failed to marshal export", err)
	}
	return out, nil
}

// SerializeOne exports a single invoice
func (s *EasyfattSerializer) SerializeOne(sender model.Sender, inv *model.Invoice) ([]byte, error) {
	return s.Serialize(sender, []*model.Invoice{inv})
}

// Filename returns the export file name
func (s *EasyfattSerializer) Filename(batchID string) string {
	return fmt.Sprintf("easyfatt_export_%s.xml", batchID)
}

func (s *EasyfattSerializer) convert(inv *model.Invoice) (efDocument, error) {
	if inv.Number == "" {
		return efDocument{}, model.NewMissingFieldError(model.FormatEasyfatt, "invoice number")
	}
	if inv.Date.IsZero() {
		return efDocument{}, model.NewMissingFieldError(model.FormatEasyfatt, "invoice date")
	}
	if inv.Counterpart.Name == "" {
		return efDocument{}, model.NewMissingFieldError(model.FormatEasyfatt, "counterpart name")
	}

	term := payterm.Lookup(inv.PaymentTerm)

	rows := make([]efRow, 0, len(inv.Items))
	for _, li := range inv.Items {
		rows = append(rows, efRow{
			Description: li.Description,
			Qty:         li.Quantity.StringFixed(2),
			Price:       dec.Format2(li.UnitPrice),
			VatCode:     li.VATRate.StringFixed(0),
			Total:       dec.Format2(li.Amount()),
		})
	}

	doc := efDocument{
		DocumentType:       efDocumentType(inv.Type),
		Date:               formatDate(inv.Date),
		Number:             inv.Number,
		CustomerName:       inv.Counterpart.Name,
		CustomerFiscalCode: inv.Counterpart.FiscalCode,
		CustomerVatCode:    inv.Counterpart.VATNumber,
		CustomerAddress:    inv.Counterpart.Address,
		CustomerPostcode:   inv.Counterpart.PostalCode,
		CustomerCity:       inv.Counterpart.City,
		CustomerProvince:   inv.Counterpart.Province,
		CustomerCountry:    inv.Counterpart.Country,
		PaymentName:        term.EasyfattName,
		Rows:               efRows{Rows: rows},
		Total:              dec.Format2(inv.GrossTotal()),
	}
	if !inv.DeductionTotal().IsZero() {
		doc.WithholdingAmount = dec.Format2(inv.DeductionTotal())
	}
	return doc, nil
}

// efDocumentType maps to Easyfatt's document type vocabulary: I = issued
// invoice, NC = credit note.
func efDocumentType(t model.DocumentType) string {
	if t == model.DocumentCreditNote {
		return "NC"
	}
	return "I"
}
