package xml

import (
	"encoding/xml"
	"fmt"

	dec "github.com/rezonia/fiscaldoc/internal/decimal"
	"github.com/rezonia/fiscaldoc/internal/fiscalcode"
	"github.com/rezonia/fiscaldoc/internal/model"
)

// INPS agibilità communication structures
type inpsComunicazione struct {
	XMLName     xml.Name        `xml:"Comunicazione"`
	Mittente    inpsMittente    `xml:"Mittente"`
	Lavoratore  inpsLavoratore  `xml:"Lavoratore"`
	Prestazione inpsPrestazione `xml:"Prestazione"`
}

type inpsMittente struct {
	CodiceFiscale string `xml:"CodiceFiscale"`
	Denominazione string `xml:"Denominazione"`
}

type inpsLavoratore struct {
	CodiceFiscale string `xml:"CodiceFiscale"`
	Cognome       string `xml:"Cognome"`
	Nome          string `xml:"Nome"`
	DataNascita   string `xml:"DataNascita"`
	ComuneNascita string `xml:"ComuneNascita"`
}

type inpsPrestazione struct {
	DataInizio       string `xml:"DataInizio"`
	DataFine         string `xml:"DataFine"`
	Luogo            string `xml:"Luogo"`
	TipoAttivita     string `xml:"TipoAttivita"`
	CompensoPrevisto string `xml:"CompensoPrevisto"`
}

// INPSSerializer produces the agibilità labor-activity communication
type INPSSerializer struct{}

// NewINPSSerializer creates a new INPS serializer
func NewINPSSerializer() *INPSSerializer {
	return &INPSSerializer{}
}

// Format returns the target format
func (s *INPSSerializer) Format() model.Format {
	return model.FormatINPS
}

// Serialize produces the Comunicazione document for one worker engagement.
// The source event has a single date; DataInizio and DataFine both carry it.
// Refuses workers with an invalid fiscal code or absent birth data: an empty
// Lavoratore field produces a document INPS rejects.
func (s *INPSSerializer) Serialize(sender model.Sender, worker model.Person, event model.Event) ([]byte, error) {
	if sender.FiscalCode == "" {
		return nil, model.NewMissingFieldError(model.FormatINPS, "sender fiscal code")
	}
	if !fiscalcode.Validate(worker.FiscalCode) {
		return nil, model.NewValidationError("worker fiscal code", worker.FiscalCode, "checksum", "invalid fiscal code")
	}
	if worker.BirthDate == nil {
		return nil, model.NewMissingFieldError(model.FormatINPS, "worker birth date")
	}
	if worker.BirthCity == "" {
		return nil, model.NewMissingFieldError(model.FormatINPS, "worker birth municipality")
	}
	if event.Date.IsZero() {
		return nil, model.NewMissingFieldError(model.FormatINPS, "event date")
	}
	if !dec.IsNonNegative(event.GrossCompensation) {
		return nil, model.NewValidationError("compensation", event.GrossCompensation.String(), "non-negative", "compensation must not be negative")
	}

	doc := inpsComunicazione{
		Mittente: inpsMittente{
			CodiceFiscale: sender.FiscalCode,
			Denominazione: sender.Name,
		},
		Lavoratore: inpsLavoratore{
			CodiceFiscale: worker.FiscalCode,
			Cognome:       worker.LastName,
			Nome:          worker.FirstName,
			DataNascita:   formatDate(*worker.BirthDate),
			ComuneNascita: worker.BirthCity,
		},
		Prestazione: inpsPrestazione{
			DataInizio:       formatDate(event.Date),
			DataFine:         formatDate(event.Date),
			Luogo:            event.Venue,
			TipoAttivita:     event.ActivityType,
			CompensoPrevisto: dec.Format2(event.GrossCompensation),
		},
	}

	out, err := envelope(doc)
	if err != nil {
		return nil, model.NewSerializeError(model.FormatINPS, "document", "failed to marshal communication", err)
	}
	return out, nil
}

// Filename returns the attachment name for a serialized communication
func (s *INPSSerializer) Filename(worker model.Person, event model.Event) string {
	return fmt.Sprintf("agibilita_%s_%s.xml", worker.FiscalCode, formatDate(event.Date))
}
