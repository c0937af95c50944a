package cmd

import (
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/fiscaldoc/internal/decimal"
	"github.com/rezonia/fiscaldoc/internal/model"
	"github.com/rezonia/fiscaldoc/internal/payterm"
)

const dateLayout = "2006-01-02"

// CodiceResult holds the verdict for one fiscal code
type CodiceResult struct {
	Code      string `json:"code"`
	Valid     bool   `json:"valid"`
	Sex       string `json:"sex,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// engagementFile is the JSON record file for `genera inps`
type engagementFile struct {
	Worker struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		FiscalCode string `json:"fiscal_code"`
		BirthDate  string `json:"birth_date"`
		BirthCity  string `json:"birth_city"`
	} `json:"worker"`
	Event struct {
		Date              string `json:"date"`
		Venue             string `json:"venue"`
		ActivityType      string `json:"activity_type"`
		GrossCompensation string `json:"gross_compensation"`
	} `json:"event"`
}

// invoiceFile is the JSON record file for `genera fatturapa` and one entry
// of `genera easyfatt`
type invoiceFile struct {
	Type        string `json:"type"`
	Number      string `json:"number"`
	Date        string `json:"date"`
	Counterpart struct {
		Name       string `json:"name"`
		FiscalCode string `json:"fiscal_code"`
		VATNumber  string `json:"vat_number"`
		Address    string `json:"address"`
		PostalCode string `json:"postal_code"`
		City       string `json:"city"`
		Province   string `json:"province"`
		Country    string `json:"country"`
	} `json:"counterpart"`
	Items []struct {
		Description string `json:"description"`
		Quantity    string `json:"quantity"`
		UnitPrice   string `json:"unit_price"`
		VATRate     string `json:"vat_rate"`
	} `json:"items"`
	Deductions []struct {
		Description string `json:"description"`
		Rate        string `json:"rate"`
		Amount      string `json:"amount"`
	} `json:"deductions"`
	PaymentTerm string `json:"payment_term"`
	DueDate     string `json:"due_date"`
}

// batchFile is the JSON record file for `genera easyfatt`
type batchFile struct {
	Invoices []invoiceFile `json:"invoices"`
}

func (f *engagementFile) toModel() (model.Person, model.Event, error) {
	worker := model.Person{
		FirstName:  f.Worker.FirstName,
		LastName:   f.Worker.LastName,
		FiscalCode: f.Worker.FiscalCode,
		BirthCity:  f.Worker.BirthCity,
	}
	if f.Worker.BirthDate != "" {
		t, err := time.Parse(dateLayout, f.Worker.BirthDate)
		if err != nil {
			return model.Person{}, model.Event{}, model.NewValidationError("worker.birth_date", f.Worker.BirthDate, "date", "expected YYYY-MM-DD")
		}
		worker.BirthDate = &t
	}

	date, err := time.Parse(dateLayout, f.Event.Date)
	if err != nil {
		return model.Person{}, model.Event{}, model.NewValidationError("event.date", f.Event.Date, "date", "expected YYYY-MM-DD")
	}
	comp, err := dec.FromString(f.Event.GrossCompensation)
	if err != nil {
		return model.Person{}, model.Event{}, model.NewValidationError("event.gross_compensation", f.Event.GrossCompensation, "decimal", "not a decimal amount")
	}

	event := model.Event{
		Date:              date,
		Venue:             f.Event.Venue,
		ActivityType:      f.Event.ActivityType,
		GrossCompensation: dec.Round2(comp),
	}
	return worker, event, nil
}

func (f *invoiceFile) toModel() (*model.Invoice, error) {
	date, err := time.Parse(dateLayout, f.Date)
	if err != nil {
		return nil, model.NewValidationError("date", f.Date, "date", "expected YYYY-MM-DD")
	}

	docType := model.DocumentInvoice
	if f.Type == string(model.DocumentCreditNote) {
		docType = model.DocumentCreditNote
	}

	inv := &model.Invoice{
		Type:   docType,
		Number: f.Number,
		Date:   date,
		Counterpart: model.Party{
			Name:       f.Counterpart.Name,
			FiscalCode: f.Counterpart.FiscalCode,
			VATNumber:  f.Counterpart.VATNumber,
			Address:    f.Counterpart.Address,
			PostalCode: f.Counterpart.PostalCode,
			City:       f.Counterpart.City,
			Province:   f.Counterpart.Province,
			Country:    f.Counterpart.Country,
		},
		PaymentTerm: payterm.Code(f.PaymentTerm),
	}

	for _, it := range f.Items {
		qty, err := dec.FromString(it.Quantity)
		if err != nil {
			return nil, model.NewValidationError("items.quantity", it.Quantity, "decimal", "not a decimal amount")
		}
		price, err := dec.FromString(it.UnitPrice)
		if err != nil {
			return nil, model.NewValidationError("items.unit_price", it.UnitPrice, "decimal", "not a decimal amount")
		}
		rate := decimal.Zero
		if it.VATRate != "" {
			if rate, err = dec.FromString(it.VATRate); err != nil {
				return nil, model.NewValidationError("items.vat_rate", it.VATRate, "decimal", "not a decimal rate")
			}
		}
		inv.Items = append(inv.Items, model.LineItem{
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   price,
			VATRate:     rate,
		})
	}

	for _, d := range f.Deductions {
		amount, err := dec.FromString(d.Amount)
		if err != nil {
			return nil, model.NewValidationError("deductions.amount", d.Amount, "decimal", "not a decimal amount")
		}
		rate := decimal.Zero
		if d.Rate != "" {
			if rate, err = dec.FromString(d.Rate); err != nil {
				return nil, model.NewValidationError("deductions.rate", d.Rate, "decimal", "not a decimal rate")
			}
		}
		inv.Deductions = append(inv.Deductions, model.Deduction{
			Description: d.Description,
			Rate:        rate,
			Amount:      dec.Round2(amount),
		})
	}

	if f.DueDate != "" {
		due, err := time.Parse(dateLayout, f.DueDate)
		if err != nil {
			return nil, model.NewValidationError("due_date", f.DueDate, "date", "expected YYYY-MM-DD")
		}
		inv.DueDate = &due
	}

	return inv, nil
}
