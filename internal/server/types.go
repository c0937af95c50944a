package server

import (
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/fiscaldoc/internal/decimal"
	"github.com/rezonia/fiscaldoc/internal/model"
	"github.com/rezonia/fiscaldoc/internal/payterm"
)

// dateLayout is the wire format for calendar dates in request bodies
const dateLayout = "2006-01-02"

// ValidateRequest is the request for the fiscal code endpoint
type ValidateRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateResponse is the response for the fiscal code endpoint
type ValidateResponse struct {
	Code    string       `json:"code"`
	Valid   bool         `json:"valid"`
	Decoded *DecodedInfo `json:"decoded,omitempty"`
}

// DecodedInfo is the decoded personal data of a valid fiscal code
type DecodedInfo struct {
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WorkerInput is the worker identity for the INPS endpoint
type WorkerInput struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	FiscalCode string `json:"fiscal_code" binding:"required"`
	BirthDate  string `json:"birth_date"`
	BirthCity  string `json:"birth_city"`
}

// EventInput is the engagement for the INPS endpoint
type EventInput struct {
	Date              string `json:"date" binding:"required"`
	Venue             string `json:"venue" binding:"required"`
	ActivityType      string `json:"activity_type"`
	GrossCompensation string `json:"gross_compensation" binding:"required"`
}

// INPSRequest is the request for the INPS document endpoint
type INPSRequest struct {
	Worker WorkerInput `json:"worker" binding:"required"`
	Event  EventInput  `json:"event" binding:"required"`
}

// PartyInput is the counterpart for invoice endpoints
type PartyInput struct {
	Name       string `json:"name" binding:"required"`
	FiscalCode string `json:"fiscal_code"`
	VATNumber  string `json:"vat_number"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
}

// LineItemInput is one invoice line
type LineItemInput struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	VATRate     string `json:"vat_rate"`
}

// DeductionInput is a withholding or contribution entry
type DeductionInput struct {
	Description string `json:"description"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount" binding:"required"`
}

// InvoiceInput is an invoice or credit-note record
type InvoiceInput struct {
	Type        string           `json:"type"`
	Number      string           `json:"number" binding:"required"`
	Date        string           `json:"date" binding:"required"`
	Counterpart PartyInput       `json:"counterpart" binding:"required"`
	Items       []LineItemInput  `json:"items" binding:"required"`
	Deductions  []DeductionInput `json:"deductions"`
	PaymentTerm string           `json:"payment_term"`
	DueDate     string           `json:"due_date"`
}

// EasyfattRequest is the batch export request
type EasyfattRequest struct {
	Invoices []InvoiceInput `json:"invoices" binding:"required"`
}

func (w WorkerInput) toModel() (model.Person, error) {
	p := model.Person{
		FirstName:  w.FirstName,
		LastName:   w.LastName,
		FiscalCode: w.FiscalCode,
		BirthCity:  w.BirthCity,
	}
	if w.BirthDate != "" {
		t, err := time.Parse(dateLayout, w.BirthDate)
		if err != nil {
			return model.Person{}, model.NewValidationError("birth_date", w.BirthDate, "date", "expected YYYY-MM-DD")
		}
		p.BirthDate = &t
	}
	return p, nil
}

func (e EventInput) toModel() (model.Event, error) {
	date, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		return model.Event{}, model.NewValidationError("date", e.Date, "date", "expected YYYY-MM-DD")
	}
	comp, err := dec.FromString(e.GrossCompensation)
	if err != nil {
		return model.Event{}, model.NewValidationError("gross_compensation", e.GrossCompensation, "decimal", "not a decimal amount")
	}
	return model.Event{
		Date:              date,
		Venue:             e.Venue,
		ActivityType:      e.ActivityType,
		GrossCompensation: dec.Round2(comp),
	}, nil
}

func (in InvoiceInput) toModel() (*model.Invoice, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, model.NewValidationError("date", in.Date, "date", "expected YYYY-MM-DD")
	}

	docType := model.DocumentInvoice
	if in.Type == string(model.DocumentCreditNote) {
		docType = model.DocumentCreditNote
	}

	inv := &model.Invoice{
		Type:   docType,
		Number: in.Number,
		Date:   date,
		Counterpart: model.Party{
			Name:       in.Counterpart.Name,
			FiscalCode: in.Counterpart.FiscalCode,
			VATNumber:  in.Counterpart.VATNumber,
			Address:    in.Counterpart.Address,
			PostalCode: in.Counterpart.PostalCode,
			City:       in.Counterpart.City,
			Province:   in.Counterpart.Province,
			Country:    in.Counterpart.Country,
		},
		PaymentTerm: payterm.Code(in.PaymentTerm),
	}

	for _, li := range in.Items {
		item, err := li.toModel()
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}

	for _, d := range in.Deductions {
		ded, err := d.toModel()
		if err != nil {
			return nil, err
		}
		inv.Deductions = append(inv.Deductions, ded)
	}

	if in.DueDate != "" {
		due, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, model.NewValidationError("due_date", in.DueDate, "date", "expected YYYY-MM-DD")
		}
		inv.DueDate = &due
	}

	return inv, nil
}

func (li LineItemInput) toModel() (model.LineItem, error) {
	qty, err := dec.FromString(li.Quantity)
	if err != nil {
		return model.LineItem{}, model.NewValidationError("quantity", li.Quantity, "decimal", "not a decimal amount")
	}
	price, err := dec.FromString(li.UnitPrice)
	if err != nil {
		return model.LineItem{}, model.NewValidationError("unit_price", li.UnitPrice, "decimal", "not a decimal amount")
	}
	rate := decimal.Zero
	if li.VATRate != "" {
		if rate, err = dec.FromString(li.VATRate); err != nil {
			return model.LineItem{}, model.NewValidationError("vat_rate", li.VATRate, "decimal", "not a decimal rate")
		}
	}
	return model.LineItem{
		Description: li.Description,
		Quantity:    qty,
		UnitPrice:   price,
		VATRate:     rate,
	}, nil
}

func (d DeductionInput) toModel() (model.Deduction, error) {
	amount, err := dec.FromString(d.Amount)
	if err != nil {
		return model.Deduction{}, model.NewValidationError("amount", d.Amount, "decimal", "not a decimal amount")
	}
	rate := decimal.Zero
	if d.Rate != "" {
		if rate, err = dec.FromString(d.Rate); err != nil {
			return model.Deduction{}, model.NewValidationError("rate", d.Rate, "decimal", "not a decimal rate")
		}
	}
	return model.Deduction{
		Description: d.Description,
		Rate:        rate,
		Amount:      dec.Round2(amount),
	}, nil
}
