package billing

import (
	"testing"

	"resto-pos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals_NoDiscount(t *testing.T) {
	lines := []Line{
		{Price: dec("250"), Quantity: 2, TaxRate: dec("5")},
		{Price: dec("50"), Quantity: 1, TaxRate: dec("5")},
	}

	totals, err := ComputeTotals(lines, decimal.Zero)

	require.NoError(t, err)
	assert.True(t, dec("550.00").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, dec("27.50").Equal(totals.Tax), "tax = %s", totals.Tax)
	assert.True(t, dec("0.00").Equal(totals.Discount), "discount = %s", totals.Discount)
	assert.True(t, dec("577.50").Equal(totals.Total), "total = %s", totals.Total)
}

func TestComputeTotals_TenPercentDiscount(t *testing.T) {
	// Worked scenario: raw subtotal 550.00, raw tax 27.50, discount 55.00,
	// adjusted subtotal 495.00, adjusted tax 27.50 * (495/550) = 24.75.
	lines := []Line{
		{Price: dec("250"), Quantity: 2, TaxRate: dec("5")},
		{Price: dec("50"), Quantity: 1, TaxRate: dec("5")},
	}

	totals, err := ComputeTotals(lines, dec("10"))

	require.NoError(t, err)
	assert.True(t, dec("495.00").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, dec("24.75").Equal(totals.Tax), "tax = %s", totals.Tax)
	assert.True(t, dec("55.00").Equal(totals.Discount), "discount = %s", totals.Discount)
	assert.True(t, dec("519.75").Equal(totals.Total), "total = %s", totals.Total)
}

func TestComputeTotals_FullDiscount(t *testing.T) {
	lines := []Line{
		{Price: dec("250"), Quantity: 2, TaxRate: dec("5")},
		{Price: dec("99.99"), Quantity: 3, TaxRate: dec("18")},
	}

	totals, err := ComputeTotals(lines, dec("100"))

	require.NoError(t, err)
	assert.True(t, totals.Subtotal.IsZero(), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Tax.IsZero(), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.IsZero(), "total = %s", totals.Total)
}

func TestComputeTotals_EmptyLines(t *testing.T) {
	totals, err := ComputeTotals(nil, dec("20"))

	require.NoError(t, err)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_MixedTaxRates(t *testing.T) {
	// 100 @ 5% + 100 @ 18%: raw tax 23.00. At 50% discount the tax scales
	// pro-rata to 11.50 rather than being recomputed per line.
	lines := []Line{
		{Price: dec("100"), Quantity: 1, TaxRate: dec("5")},
		{Price: dec("100"), Quantity: 1, TaxRate: dec("18")},
	}

	totals, err := ComputeTotals(lines, dec("50"))

	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, dec("11.50").Equal(totals.Tax), "tax = %s", totals.Tax)
	assert.True(t, dec("111.50").Equal(totals.Total), "total = %s", totals.Total)
}

func TestComputeTotals_DiscountMonotonicity(t *testing.T) {
	lines := []Line{
		{Price: dec("149.50"), Quantity: 3, TaxRate: dec("12")},
		{Price: dec("75"), Quantity: 2, TaxRate: dec("5")},
		{Price: dec("20"), Quantity: 7, TaxRate: dec("0")},
	}

	prev := decimal.NewFromInt(1 << 30)
	for d := 0; d <= 100; d += 5 {
		totals, err := ComputeTotals(lines, decimal.NewFromInt(int64(d)))
		require.NoError(t, err)
		assert.True(t, totals.Total.LessThanOrEqual(prev),
			"total increased at discount %d: %s > %s", d, totals.Total, prev)
		prev = totals.Total
	}
}

func TestComputeTotals_ValidationErrors(t *testing.T) {
	valid := Line{Price: dec("10"), Quantity: 1, TaxRate: dec("5")}

	tests := []struct {
		name     string
		lines    []Line
		discount decimal.Decimal
		wantErr  error
	}{
		{
			name:     "Negative price",
			lines:    []Line{valid, {Price: dec("-1"), Quantity: 1, TaxRate: dec("5")}},
			discount: decimal.Zero,
			wantErr:  model.ErrNegativePrice,
		},
		{
			name:     "Negative tax rate",
			lines:    []Line{{Price: dec("10"), Quantity: 1, TaxRate: dec("-5")}},
			discount: decimal.Zero,
			wantErr:  model.ErrNegativeTaxRate,
		},
		{
			name:     "Zero quantity",
			lines:    []Line{{Price: dec("10"), Quantity: 0, TaxRate: dec("5")}},
			discount: decimal.Zero,
			wantErr:  model.ErrInvalidQuantity,
		},
		{
			name:     "Negative quantity",
			lines:    []Line{{Price: dec("10"), Quantity: -2, TaxRate: dec("5")}},
			discount: decimal.Zero,
			wantErr:  model.ErrInvalidQuantity,
		},
		{
			name:     "Discount below range",
			lines:    []Line{valid},
			discount: dec("-1"),
			wantErr:  model.ErrDiscountOutOfRange,
		},
		{
			name:     "Discount above range",
			lines:    []Line{valid},
			discount: dec("100.01"),
			wantErr:  model.ErrDiscountOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(tt.lines, tt.discount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeTotals_RoundsAtBoundaryOnly(t *testing.T) {
	// Three lines of 0.333 would each round to 0.33 if rounded per line;
	// full-precision summation gives 0.999 -> 1.00.
	lines := []Line{
		{Price: dec("0.333"), Quantity: 1, TaxRate: dec("0")},
		{Price: dec("0.333"), Quantity: 1, TaxRate: dec("0")},
		{Price: dec("0.333"), Quantity: 1, TaxRate: dec("0")},
	}

	totals, err := ComputeTotals(lines, decimal.Zero)

	require.NoError(t, err)
	assert.True(t, dec("1.00").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
}

func TestLinesFromCart(t *testing.T) {
	cart := []model.CartLine{
		{ItemName: "Coke", Category: "Drink", Price: dec("50"), TaxRate: dec("5"), Quantity: 2},
	}

	lines := LinesFromCart(cart)

	require.Len(t, lines, 1)
	assert.True(t, dec("50").Equal(lines[0].Price))
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, dec("5").Equal(lines[0].TaxRate))
}
