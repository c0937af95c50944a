package model_test

import (
	"testing"
	"time"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rezonia/fiscaldoc/internal/model"
)

func TestLineItem_Amount(t *testing.T) {
	li := model.LineItem{
		Quantity:  dec.RequireFromString("3"),
		UnitPrice: dec.RequireFromString("33.335"),
	}
	// 3 * 33.335 = 100.005, rounded half away from zero
	assert.Equal(t, "100.01", li.Amount().StringFixed(2))
}

func TestInvoice_Totals(t *testing.T) {
	inv := &model.Invoice{
		Type:   model.DocumentInvoice,
		Number: "42/2024",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Items: []model.LineItem{
			{Description: "Serata", Quantity: dec.NewFromInt(1), UnitPrice: dec.RequireFromString("1220.00")},
		},
		Deductions: []model.Deduction{
			{Description: "Ritenuta d'acconto", Rate: dec.NewFromInt(20), Amount: dec.RequireFromString("244.00")},
		},
	}

	assert.Equal(t, "1220.00", inv.GrossTotal().StringFixed(2))
	assert.Equal(t, "244.00", inv.DeductionTotal().StringFixed(2))
	assert.Equal(t, "976.00", inv.NetTotal().StringFixed(2))
}

// Totals are built from rounded line amounts; three half-cent lines must
// total 0.03, not the 0.02 a rounded raw sum would give.
func TestInvoice_GrossTotal_RoundThenSum(t *testing.T) {
	half := model.LineItem{Quantity: dec.NewFromInt(1), UnitPrice: dec.RequireFromString("0.005")}
	inv := &model.Invoice{Items: []model.LineItem{half, half, half}}

	assert.Equal(t, "0.03", inv.GrossTotal().StringFixed(2))
}
