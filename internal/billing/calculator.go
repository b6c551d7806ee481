package billing

import (
	"resto-pos/internal/model"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Line is the pricing view of a single cart line.
type Line struct {
	Price    decimal.Decimal
	Quantity int
	TaxRate  decimal.Decimal
}

// Totals is the full pricing breakdown for a bill. All fields are rounded
// to two decimal places; they are the exact values persisted with an order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// LineFromCart converts a cart line into its pricing view.
func LineFromCart(l model.CartLine) Line {
	return Line{Price: l.Price, Quantity: l.Quantity, TaxRate: l.TaxRate}
}

// LinesFromCart converts a slice of cart lines into their pricing view.
func LinesFromCart(lines []model.CartLine) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = LineFromCart(l)
	}
	return out
}

// ComputeTotals computes the bill for a set of lines at the given discount
// percentage. It is pure and has no side effects.
//
// The discount is applied to the subtotal, and tax is then scaled by the
// discount's effect on the subtotal rather than recomputed per line. With
// mixed tax rates this pro-rata adjustment is an approximation, and it is
// the intended behaviour: per-line reallocation would change observable
// totals.
//
// Intermediate sums keep full precision; rounding to two decimal places
// happens only on the returned Totals. An empty line set yields all zeros.
// Negative prices, tax rates or quantities and discounts outside [0, 100]
// are caller contract violations and are rejected, never clamped. The only
// defined clamp is the subtotal floor at zero.
func ComputeTotals(lines []Line, discountPercent decimal.Decimal) (Totals, error) {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(oneHundred) {
		return Totals{}, model.ErrDiscountOutOfRange
	}

	rawSubtotal := decimal.Zero
	rawTax := decimal.Zero
	for _, line := range lines {
		if line.Price.IsNegative() {
			return Totals{}, model.ErrNegativePrice
		}
		if line.TaxRate.IsNegative() {
			return Totals{}, model.ErrNegativeTaxRate
		}
		if line.Quantity < 1 {
			return Totals{}, model.ErrInvalidQuantity
		}

		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		rawSubtotal = rawSubtotal.Add(lineTotal)
		rawTax = rawTax.Add(lineTotal.Mul(line.TaxRate).Div(oneHundred))
	}

	discountAmount := rawSubtotal.Mul(discountPercent).Div(oneHundred)

	adjustedSubtotal := rawSubtotal.Sub(discountAmount)
	if adjustedSubtotal.IsNegative() {
		adjustedSubtotal = decimal.Zero
	}

	adjustedTax := decimal.Zero
	if rawSubtotal.IsPositive() {
		adjustedTax = rawTax.Mul(adjustedSubtotal.Div(rawSubtotal))
	}

	return Totals{
		Subtotal: adjustedSubtotal.Round(2),
		Tax:      adjustedTax.Round(2),
		Discount: discountAmount.Round(2),
		Total:    adjustedSubtotal.Add(adjustedTax).Round(2),
	}, nil
}
