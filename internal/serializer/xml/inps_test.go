package xml_test

import (
	"strings"
	"testing"
	"time"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fiscaldoc/internal/model"
	xmlser "github.com/rezonia/fiscaldoc/internal/serializer/xml"
)

func testSender() model.Sender {
	return model.Sender{
		FiscalCode: "04587160588",
		Name:       "Spettacoli Roma SRL",
		VATNumber:  "04587160588",
		Address:    "Via del Corso 10",
		PostalCode: "00186",
		City:       "Roma",
		Province:   "RM",
		Country:    "IT",

		TransmitterCountry: "IT",
		TransmitterCode:    "04587160588",
		CodiceDestinatario: "0000000",
	}
}

func testWorker() model.Person {
	birth := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Person{
		FirstName:  "Mario",
		LastName:   "Rossi",
		FiscalCode: "RSSMRA80A01H501U",
		BirthDate:  &birth,
		BirthCity:  "ROMA",
	}
}

func testEvent() model.Event {
	return model.Event{
		Date:              time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Venue:             "Teatro Olimpico, Roma",
		ActivityType:      "032",
		GrossCompensation: dec.RequireFromString("500.00"),
	}
}

func TestINPSSerializer_Serialize(t *testing.T) {
	s := xmlser.NewINPSSerializer()
	out, err := s.Serialize(testSender(), testWorker(), testEvent())
	require.NoError(t, err)

	doc := string(out)

	// UTF-8 declaration and fixed element hierarchy
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, "<Comunicazione>")
	assert.Contains(t, doc, "<Mittente>")
	assert.Contains(t, doc, "<Lavoratore>")
	assert.Contains(t, doc, "<Prestazione>")

	// sender block
	assert.Contains(t, doc, "<CodiceFiscale>04587160588</CodiceFiscale>")
	assert.Contains(t, doc, "<Denominazione>Spettacoli Roma SRL</Denominazione>")

	// worker block reproduces the birth data as ISO dates
	assert.Contains(t, doc, "<CodiceFiscale>RSSMRA80A01H501U</CodiceFiscale>")
	assert.Contains(t, doc, "<Cognome>Rossi</Cognome>")
	assert.Contains(t, doc, "<Nome>Mario</Nome>")
	assert.Contains(t, doc, "<DataNascita>1980-01-01</DataNascita>")
	assert.Contains(t, doc, "<ComuneNascita>ROMA</ComuneNascita>")

	// engagement: start = end = the single event date, 2-decimal compensation
	assert.Contains(t, doc, "<DataInizio>2024-06-15</DataInizio>")
	assert.Contains(t, doc, "<DataFine>2024-06-15</DataFine>")
	assert.Contains(t, doc, "<TipoAttivita>032</TipoAttivita>")
	assert.Contains(t, doc, "<CompensoPrevisto>500.00</CompensoPrevisto>")
}

func TestINPSSerializer_CompensationAlwaysTwoDecimals(t *testing.T) {
	event := testEvent()
	event.GrossCompensation = dec.NewFromInt(500)

	s := xmlser.NewINPSSerializer()
	out, err := s.Serialize(testSender(), testWorker(), event)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<CompensoPrevisto>500.00</CompensoPrevisto>")
}

func TestINPSSerializer_RefusesIncompleteWorker(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Person, *model.Event)
		field  string
	}{
		{
			name:   "missing birth date",
			mutate: func(w *model.Person, _ *model.Event) { w.BirthDate = nil },
			field:  "worker birth date",
		},
		{
			name:   "missing birth municipality",
			mutate: func(w *model.Person, _ *model.Event) { w.BirthCity = "" },
			field:  "worker birth municipality",
		},
		{
			name:   "missing event date",
			mutate: func(_ *model.Person, e *model.Event) { e.Date = time.Time{} },
			field:  "event date",
		},
	}

	s := xmlser.NewINPSSerializer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := testWorker()
			event := testEvent()
			tt.mutate(&worker, &event)

			out, err := s.Serialize(testSender(), worker, event)
			require.Error(t, err)
			assert.Nil(t, out, "no partial document on error")

			var missing *model.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, model.FormatINPS, missing.Format)
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestINPSSerializer_RefusesInvalidFiscalCode(t *testing.T) {
	worker := testWorker()
	worker.FiscalCode = "RSSMRA80A01H501X"

	s := xmlser.NewINPSSerializer()
	_, err := s.Serialize(testSender(), worker, testEvent())
	require.Error(t, err)

	var invalid *model.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestINPSSerializer_RefusesNegativeCompensation(t *testing.T) {
	event := testEvent()
	event.GrossCompensation = dec.RequireFromString("-1.00")

	s := xmlser.NewINPSSerializer()
	_, err := s.Serialize(testSender(), testWorker(), event)
	require.Error(t, err)

	var invalid *model.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestINPSSerializer_Filename(t *testing.T) {
	s := xmlser.NewINPSSerializer()
	name := s.Filename(testWorker(), testEvent())
	assert.Equal(t, "agibilita_RSSMRA80A01H501U_2024-06-15.xml", name)
}
