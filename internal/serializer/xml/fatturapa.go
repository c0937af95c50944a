package xml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/fiscaldoc/internal/decimal"
	"github.com/rezonia/fiscaldoc/internal/model"
	"github.com/rezonia/fiscaldoc/internal/payterm"
)

// FatturaPA v1.2 namespace and transmission format
const (
	fpaNamespace = "http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2"
	fpaVersione  = "FPR12"
)

// FatturaPA document structures. Field order follows the fixed schema
// sequence; the receiving system validates element order, not just content.
type fpaFattura struct {
	XMLName  xml.Name  `xml:"p:FatturaElettronica"`
	Versione string    `xml:"versione,attr"`
	XmlnsP   string    `xml:"xmlns:p,attr"`
	Header   fpaHeader `xml:"FatturaElettronicaHeader"`
	Body     fpaBody   `xml:"FatturaElettronicaBody"`
}

type fpaHeader struct {
	DatiTrasmissione       fpaDatiTrasmissione `xml:"DatiTrasmissione"`
	CedentePrestatore      fpaParte            `xml:"CedentePrestatore"`
	CessionarioCommittente fpaParte            `xml:"CessionarioCommittente"`
}

type fpaDatiTrasmissione struct {
	IdTrasmittente      fpaIdFiscale `xml:"IdTrasmittente"`
	ProgressivoInvio    string       `xml:"ProgressivoInvio"`
	FormatoTrasmissione string       `xml:"FormatoTrasmissione"`
	CodiceDestinatario  string       `xml:"CodiceDestinatario"`
}

type fpaIdFiscale struct {
	IdPaese  string `xml:"IdPaese"`
	IdCodice string `xml:"IdCodice"`
}

type fpaParte struct {
	DatiAnagrafici fpaDatiAnagrafici `xml:"DatiAnagrafici"`
	Sede           fpaSede           `xml:"Sede"`
}

type fpaDatiAnagrafici struct {
	IdFiscaleIVA  *fpaIdFiscale `xml:"IdFiscaleIVA,omitempty"`
	CodiceFiscale string        `xml:"CodiceFiscale,omitempty"`
	Anagrafica    fpaAnagrafica `xml:"Anagrafica"`
	RegimeFiscale string        `xml:"RegimeFiscale,omitempty"`
}

type fpaAnagrafica struct {
	Denominazione string `xml:"Denominazione"`
}

type fpaSede struct {
	Indirizzo string `xml:"Indirizzo"`
	CAP       string `xml:"CAP"`
	Comune    string `xml:"Comune"`
	Provincia string `xml:"Provincia,omitempty"`
	Nazione   string `xml:"Nazione"`
}

type fpaBody struct {
	DatiGenerali    fpaDatiGenerali    `xml:"DatiGenerali"`
	DatiBeniServizi fpaDatiBeniServizi `xml:"DatiBeniServizi"`
	DatiPagamento   fpaDatiPagamento   `xml:"DatiPagamento"`
}

type fpaDatiGenerali struct {
	DatiGeneraliDocumento fpaDatiGeneraliDocumento `xml:"DatiGeneraliDocumento"`
}

type fpaDatiGeneraliDocumento struct {
	TipoDocumento          string            `xml:"TipoDocumento"`
	Divisa                 string            `xml:"Divisa"`
	Data                   string            `xml:"Data"`
	Numero                 string            `xml:"Numero"`
	DatiRitenuta           []fpaDatiRitenuta `xml:"DatiRitenuta,omitempty"`
	ImportoTotaleDocumento string            `xml:"ImportoTotaleDocumento"`
}

type fpaDatiRitenuta struct {
	TipoRitenuta     string `xml:"TipoRitenuta"`
	ImportoRitenuta  string `xml:"ImportoRitenuta"`
	AliquotaRitenuta string `xml:"AliquotaRitenuta"`
	CausalePagamento string `xml:"CausalePagamento"`
}

type fpaDatiBeniServizi struct {
	DettaglioLinee []fpaDettaglioLinea `xml:"DettaglioLinee"`
	DatiRiepilogo  []fpaDatiRiepilogo  `xml:"DatiRiepilogo"`
}

type fpaDettaglioLinea struct {
	NumeroLinea    int    `xml:"NumeroLinea"`
	Descrizione    string `xml:"Descrizione"`
	Quantita       string `xml:"Quantita"`
	PrezzoUnitario string `xml:"PrezzoUnitario"`
	PrezzoTotale   string `xml:"PrezzoTotale"`
	AliquotaIVA    string `xml:"AliquotaIVA"`
	Ritenuta       string `xml:"Ritenuta,omitempty"`
}

type fpaDatiRiepilogo struct {
	AliquotaIVA       string `xml:"AliquotaIVA"`
	Natura            string `xml:"Natura,omitempty"`
	ImponibileImporto string `xml:"ImponibileImporto"`
	Imposta           string `xml:"Imposta"`
	EsigibilitaIVA    string `xml:"EsigibilitaIVA,omitempty"`
}

type fpaDatiPagamento struct {
	CondizioniPagamento string                `xml:"CondizioniPagamento"`
	DettaglioPagamento  fpaDettaglioPagamento `xml:"DettaglioPagamento"`
}

type fpaDettaglioPagamento struct {
	ModalitaPagamento     string `xml:"ModalitaPagamento"`
	DataScadenzaPagamento string `xml:"DataScadenzaPagamento,omitempty"`
	ImportoPagamento      string `xml:"ImportoPagamento"`
}

// FatturaPASerializer produces FatturaPA v1.2 electronic invoices, one
// document per invoice.
type FatturaPASerializer struct{}

// NewFatturaPASerializer creates a new FatturaPA serializer
func NewFatturaPASerializer() *FatturaPASerializer {
	return &FatturaPASerializer{}
}

// Format returns the target format
func (s *FatturaPASerializer) Format() model.Format {
	return model.FormatFatturaPA
}

// Serialize produces a schema-compliant invoice document. Every monetary
// field is the 2-decimal rounded value and the document total is the
// round-then-sum of line amounts. Fails on an incomplete counterpart rather
// than emitting a document the exchange system would reject.
func (s *FatturaPASerializer) Serialize(sender model.Sender, inv *model.Invoice) ([]byte, error) {
	if err := s.check(sender, inv); err != nil {
		return nil, err
	}

	gross := inv.GrossTotal()
	vat := vatTotal(inv)

	doc := fpaFattura{
		Versione: fpaVersione,
		XmlnsP:   fpaNamespace,
		Header: fpaHeader{
			DatiTrasmissione: fpaDatiTrasmissione{
				IdTrasmittente: fpaIdFiscale{
					IdPaese:  sender.TransmitterCountry,
					IdCodice: sender.TransmitterCode,
				},
				ProgressivoInvio:    progressivoInvio(inv.Number),
				FormatoTrasmissione: fpaVersione,
				CodiceDestinatario:  codiceDestinatario(sender),
			},
			CedentePrestatore: fpaParte{
				DatiAnagrafici: fpaDatiAnagrafici{
					IdFiscaleIVA: &fpaIdFiscale{
						IdPaese:  sender.Country,
						IdCodice: sender.VATNumber,
					},
					CodiceFiscale: sender.FiscalCode,
					Anagrafica:    fpaAnagrafica{Denominazione: sender.Name},
					RegimeFiscale: "RF01",
				},
				Sede: fpaSede{
					Indirizzo: sender.Address,
					CAP:       sender.PostalCode,
					Comune:    sender.City,
					Provincia: sender.Province,
					Nazione:   sender.Country,
				},
			},
			CessionarioCommittente: counterpartParte(inv.Counterpart),
		},
		Body: fpaBody{
			DatiGenerali: fpaDatiGenerali{
				DatiGeneraliDocumento: fpaDatiGeneraliDocumento{
					TipoDocumento:          tipoDocumento(inv.Type),
					Divisa:                 "EUR",
					Data:                   formatDate(inv.Date),
					Numero:                 inv.Number,
					DatiRitenuta:           ritenute(inv),
					ImportoTotaleDocumento: dec.Format2(gross.Add(vat)),
				},
			},
			DatiBeniServizi: fpaDatiBeniServizi{
				DettaglioLinee: linee(inv),
				DatiRiepilogo:  riepiloghi(inv),
			},
			DatiPagamento: pagamento(inv, gross.Add(vat).Sub(inv.DeductionTotal())),
		},
	}

	out, err := envelope(doc)
	if err != nil {
		return nil, model.NewSerializeError(model.FormatFatturaPA, "document", "failed to marshal invoice", err)
	}
	return out, nil
}

// Filename returns the transmission filename convention, which embeds the
// sender identity and a progressive derived from the invoice number.
func (s *FatturaPASerializer) Filename(sender model.Sender, inv *model.Invoice) string {
	return fmt.Sprintf("%s%s_%s.xml", sender.TransmitterCountry, sender.FiscalCode, progressivoInvio(inv.Number))
}

func (s *FatturaPASerializer) check(sender model.Sender, inv *model.Invoice) error {
	if sender.VATNumber == "" && sender.FiscalCode == "" {
		return model.NewMissingFieldError(model.FormatFatturaPA, "sender fiscal identity")
	}
	if inv.Number == "" {
		return model.NewMissingFieldError(model.FormatFatturaPA, "invoice number")
	}
	if inv.Date.IsZero() {
		return model.NewMissingFieldError(model.FormatFatturaPA, "invoice date")
	}
	if len(inv.Items) == 0 {
		return model.NewMissingFieldError(model.FormatFatturaPA, "line items")
	}
	cp := inv.Counterpart
	if cp.Name == "" {
		return model.NewMissingFieldError(model.FormatFatturaPA, "counterpart name")
	}
	if cp.VATNumber == "" && cp.FiscalCode == "" {
		return model.NewMissingFieldError(model.FormatFatturaPA, "counterpart fiscal identity")
	}
	if cp.PostalCode == "" {
		return model.NewMissingFieldError(model.FormatFatturaPA, "counterpart postal code")
	}
	return nil
}

func counterpartParte(cp model.Party) fpaParte {
	anag := fpaDatiAnagrafici{
		CodiceFiscale: cp.FiscalCode,
		Anagrafica:    fpaAnagrafica{Denominazione: cp.Name},
	}
	if cp.VATNumber != "" {
		anag.IdFiscaleIVA = &fpaIdFiscale{
			IdPaese:  countryOrDefault(cp.Country),
			IdCodice: cp.VATNumber,
		}
	}
	return fpaParte{
		DatiAnagrafici: anag,
		Sede: fpaSede{
			Indirizzo: cp.Address,
			CAP:       cp.PostalCode,
			Comune:    cp.City,
			Provincia: cp.Province,
			Nazione:   countryOrDefault(cp.Country),
		},
	}
}

func tipoDocumento(t model.DocumentType) string {
	if t == model.DocumentCreditNote {
		return "TD04"
	}
	return "TD01"
}

func ritenute(inv *model.Invoice) []fpaDatiRitenuta {
	out := make([]fpaDatiRitenuta, 0, len(inv.Deductions))
	for _, d := range inv.Deductions {
		out = append(out, fpaDatiRitenuta{
			TipoRitenuta:     "RT01",
			ImportoRitenuta:  dec.Format2(d.Amount),
			AliquotaRitenuta: dec.Format2(d.Rate),
			CausalePagamento: "A",
		})
	}
	return out
}

func linee(inv *model.Invoice) []fpaDettaglioLinea {
	withholding := len(inv.Deductions) > 0
	out := make([]fpaDettaglioLinea, 0, len(inv.Items))
	for i, li := range inv.Items {
		linea := fpaDettaglioLinea{
			NumeroLinea:    i + 1,
			Descrizione:    li.Description,
			Quantita:       li.Quantity.StringFixed(2),
			PrezzoUnitario: dec.Format2(li.UnitPrice),
			PrezzoTotale:   dec.Format2(li.Amount()),
			AliquotaIVA:    dec.Format2(li.VATRate),
		}
		if withholding {
			linea.Ritenuta = "SI"
		}
		out = append(out, linea)
	}
	return out
}

// riepiloghi groups lines by VAT rate. Taxable base per rate is the sum of
// the already-rounded line amounts of that rate.
func riepiloghi(inv *model.Invoice) []fpaDatiRiepilogo {
	type group struct {
		rate  decimal.Decimal
		lines []decimal.Decimal
	}
	var groups []*group
	for _, li := range inv.Items {
		var g *group
		for _, cand := range groups {
			if cand.rate.Equal(li.VATRate) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &group{rate: li.VATRate}
			groups = append(groups, g)
		}
		g.lines = append(g.lines, li.Amount())
	}

	out := make([]fpaDatiRiepilogo, 0, len(groups))
	for _, g := range groups {
		base := dec.SumRounded(g.lines)
		r := fpaDatiRiepilogo{
			AliquotaIVA:       dec.Format2(g.rate),
			ImponibileImporto: dec.Format2(base),
			Imposta:           dec.Format2(dec.Percentage(base, g.rate)),
		}
		if g.rate.IsZero() {
			// zero-rate summaries need a nature code per the schema
			r.Natura = "N1"
		} else {
			r.EsigibilitaIVA = "I"
		}
		out = append(out, r)
	}
	return out
}

func vatTotal(inv *model.Invoice) decimal.Decimal {
	total := dec.Zero
	for _, r := range riepiloghi(inv) {
		total = total.Add(dec.MustFromString(r.Imposta))
	}
	return total
}

func pagamento(inv *model.Invoice, payable decimal.Decimal) fpaDatiPagamento {
	term := payterm.Lookup(inv.PaymentTerm)
	dp := fpaDettaglioPagamento{
		ModalitaPagamento: term.FatturaPACode,
		ImportoPagamento:  dec.Format2(payable),
	}
	if inv.DueDate != nil {
		dp.DataScadenzaPagamento = formatDate(*inv.DueDate)
	}
	return fpaDatiPagamento{
		CondizioniPagamento: "TP02",
		DettaglioPagamento:  dp,
	}
}

// progressivoInvio derives the 5-character transmission progressive from the
// invoice number: alphanumerics only, last 5, left-padded with zeros.
func progressivoInvio(number string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(number) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	p := b.String()
	if len(p) > 5 {
		p = p[len(p)-5:]
	}
	for len(p) < 5 {
		p = "0" + p
	}
	return p
}

func codiceDestinatario(sender model.Sender) string {
	if sender.CodiceDestinatario != "" {
		return sender.CodiceDestinatario
	}
	// seven zeros routes delivery through the recipient's registered channel
	return "0000000"
}

func countryOrDefault(c string) string {
	if c == "" {
		return "IT"
	}
	return c
}
