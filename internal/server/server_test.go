package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fiscaldoc/internal/engine"
	"github.com/rezonia/fiscaldoc/internal/model"
	"github.com/rezonia/fiscaldoc/internal/server"
)

func newTestServer() *server.Server {
	eng := engine.New(model.Sender{
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
	})
	return server.NewServer(&server.Config{
		Address:      ":0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, eng)
}

func doJSON(t *testing.T, srv *server.Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestValidateFiscalCode(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, "/api/v1/fiscalcode/validate", server.ValidateRequest{Code: "RSSMRA80A01H501U"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.Decoded)
	assert.Equal(t, "M", resp.Decoded.Sex)
	assert.Equal(t, "1980-01-01", resp.Decoded.BirthDate)
}

func TestValidateFiscalCode_Invalid(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, "/api/v1/fiscalcode/validate", server.ValidateRequest{Code: "RSSMRA80A01H501X"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Nil(t, resp.Decoded)
}

func inpsRequest() server.INPSRequest {
	var req server.INPSRequest
	req.Worker = server.WorkerInput{
		FirstName:  "Mario",
		LastName:   "Rossi",
		FiscalCode: "RSSMRA80A01H501U",
		BirthDate:  "1980-01-01",
		BirthCity:  "ROMA",
	}
	req.Event = server.EventInput{
		Date:              "2024-06-15",
		Venue:             "Teatro Olimpico, Roma",
		ActivityType:      "032",
		GrossCompensation: "500.00",
	}
	return req
}

func TestGenerateINPS(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, "/api/v1/documents/inps", inpsRequest())
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "agibilita_RSSMRA80A01H501U_2024-06-15.xml")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, body, "<DataInizio>2024-06-15</DataInizio>")
	assert.Contains(t, body, "<CompensoPrevisto>500.00</CompensoPrevisto>")
}

func TestGenerateINPS_IncompleteWorker(t *testing.T) {
	srv := newTestServer()

	req := inpsRequest()
	req.Worker.BirthDate = ""

	w := doJSON(t, srv, "/api/v1/documents/inps", req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "worker birth date", resp.Field)
}

func TestGenerateINPS_BadDate(t *testing.T) {
	srv := newTestServer()

	req := inpsRequest()
	req.Event.Date = "15/06/2024"

	w := doJSON(t, srv, "/api/v1/documents/inps", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func invoiceInput() server.InvoiceInput {
	return server.InvoiceInput{
		Number: "42/2024",
		Date:   "2024-06-20",
		Counterpart: server.PartyInput{
			Name:       "Comune di Vicenza",
			VATNumber:  "00516890241",
			PostalCode: "36100",
			City:       "Vicenza",
		},
		Items: []server.LineItemInput{
			{Description: "Serata", Quantity: "1", UnitPrice: "1220.00"},
		},
		Deductions: []server.DeductionInput{
			{Description: "Ritenuta d'acconto", Rate: "20", Amount: "244.00"},
		},
		PaymentTerm: "BONIFICO_30GG_FM",
	}
}

func TestGenerateFatturaPA(t *testing.T) {
	srv := newTestServer()

	w := doJSON(t, srv, "/api/v1/documents/fatturapa", invoiceInput())
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "<TipoDocumento>TD01</TipoDocumento>")
	assert.Contains(t, body, "<ImportoPagamento>976.00</ImportoPagamento>")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "IT04587160588_22024.xml")
}

func TestGenerateFatturaPA_MissingPostalCode(t *testing.T) {
	srv := newTestServer()

	in := invoiceInput()
	in.Counterpart.PostalCode = ""

	w := doJSON(t, srv, "/api/v1/documents/fatturapa", in)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "counterpart postal code", resp.Field)
}

func TestGenerateEasyfatt_Batch(t *testing.T) {
	srv := newTestServer()

	second := invoiceInput()
	second.Number = "43/2024"
	second.Type = "credit_note"

	w := doJSON(t, srv, "/api/v1/documents/easyfatt", server.EasyfattRequest{
		Invoices: []server.InvoiceInput{invoiceInput(), second},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "<Document>"))
	assert.Contains(t, body, "<DocumentType>NC</DocumentType>")
}

func TestBadRequestBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/inps", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
