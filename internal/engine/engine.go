// Package engine ties the fiscal-code guard, record checks and the dialect
// serializers into one entry point used by the CLI and the HTTP API.
package engine

import (
	"github.com/google/uuid"

	"github.com/rezonia/fiscaldoc/internal/fiscalcode"
	"github.com/rezonia/fiscaldoc/internal/model"
	xmlser "github.com/rezonia/fiscaldoc/internal/serializer/xml"
)

// Result is a generated document ready for transport or storage
type Result struct {
	Format      model.Format
	Document    []byte
	Filename    string
	ContentType string
}

// Engine generates regulatory documents for one configured sender identity.
// It holds no mutable state; every call is independent and safe to run
// concurrently.
type Engine struct {
	sender   model.Sender
	inps     *xmlser.INPSSerializer
	fattura  *xmlser.FatturaPASerializer
	easyfatt *xmlser.EasyfattSerializer
}

// New creates an engine for the given sender identity
func New(sender model.Sender) *Engine {
	return &Engine{
		sender:   sender,
		inps:     xmlser.NewINPSSerializer(),
		fattura:  xmlser.NewFatturaPASerializer(),
		easyfatt: xmlser.NewEasyfattSerializer(),
	}
}

// Sender returns the configured sender identity
func (e *Engine) Sender() model.Sender {
	return e.sender
}

// CheckFiscalCode validates a fiscal code and, when valid, decodes it
func (e *Engine) CheckFiscalCode(code string) (fiscalcode.Decoded, bool) {
	return fiscalcode.Decode(code)
}

// GenerateINPS produces the agibilità communication for a worker engagement
func (e *Engine) GenerateINPS(worker model.Person, event model.Event) (*Result, error) {
	doc, err := e.inps.Serialize(e.sender, worker, event)
	if err != nil {
		return nil, err
	}
	return &Result{
		Format:      model.FormatINPS,
		Document:    doc,
		Filename:    e.inps.Filename(worker, event),
		ContentType: xmlser.ContentType,
	}, nil
}

// GenerateFatturaPA produces the electronic invoice for one record
func (e *Engine) GenerateFatturaPA(inv *model.Invoice) (*Result, error) {
	doc, err := e.fattura.Serialize(e.sender, inv)
	if err != nil {
		return nil, err
	}
	return &Result{
		Format:      model.FormatFatturaPA,
		Document:    doc,
		Filename:    e.fattura.Filename(e.sender, inv),
		ContentType: xmlser.ContentType,
	}, nil
}

// GenerateEasyfatt produces one export document for a batch of invoices
func (e *Engine) GenerateEasyfatt(invoices []*model.Invoice) (*Result, error) {
	doc, err := e.easyfatt.Serialize(e.sender, invoices)
	if err != nil {
		return nil, err
	}
	return &Result{
		Format:      model.FormatEasyfatt,
		Document:    doc,
		Filename:    e.easyfatt.Filename(uuid.NewString()),
		ContentType: xmlser.ContentType,
	}, nil
}
