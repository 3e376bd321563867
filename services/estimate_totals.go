package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/interior-consult/models"
)

var vatRate = decimal.NewFromFloat(0.1)

// Totals are derived from line items on every read and never stored.
type Totals struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals returns subtotal = Σ qty×unitPrice, vat = floor(subtotal×0.1)
// and total = subtotal + vat.
func ComputeTotals(items []models.EstimateItem) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}
	vat := subtotal.Mul(vatRate).Floor()
	return Totals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal.Add(vat),
	}
}
