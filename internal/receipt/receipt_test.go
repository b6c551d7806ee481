package receipt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resto-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() Receipt {
	order := &model.Order{
		ID:            21,
		Mode:          model.ModeDineIn,
		PaymentMethod: model.PaymentCash,
		Subtotal:      decimal.RequireFromString("495.00"),
		Tax:           decimal.RequireFromString("24.75"),
		Total:         decimal.RequireFromString("519.75"),
		PlacedAt:      time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC),
	}
	items := []model.OrderLineItem{
		{OrderID: 21, ItemName: "Margherita Pizza", Quantity: 2, Price: decimal.NewFromInt(250), TaxRate: decimal.NewFromInt(5)},
		{OrderID: 21, ItemName: "Coke", Quantity: 1, Price: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(5)},
	}
	return FromOrder(order, items, "₹")
}

func TestFromOrder(t *testing.T) {
	rcpt := sampleReceipt()

	assert.Equal(t, int64(21), rcpt.OrderID)
	require.Len(t, rcpt.Lines, 2)
	assert.True(t, decimal.RequireFromString("500.00").Equal(rcpt.Lines[0].LineTotal))
	assert.True(t, decimal.RequireFromString("50.00").Equal(rcpt.Lines[1].LineTotal))
	assert.True(t, decimal.RequireFromString("519.75").Equal(rcpt.Total))
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, csvRenderer{}.Render(&buf, sampleReceipt()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "item_name,quantity,price,gst,line_total", lines[0])
	assert.Equal(t, "Margherita Pizza,2,250.00,5,500.00", lines[1])
	assert.Equal(t, "Coke,1,50.00,5,50.00", lines[2])
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, textRenderer{}.Render(&buf, sampleReceipt()))

	out := buf.String()
	assert.Contains(t, out, "Order ID: 21")
	assert.Contains(t, out, "Mode: Dine-In")
	assert.Contains(t, out, "Payment: Cash")
	assert.Contains(t, out, "Margherita Pizza x 2 = ₹500.00")
	assert.Contains(t, out, "Subtotal: ₹495.00")
	assert.Contains(t, out, "GST: ₹24.75")
	assert.Contains(t, out, "Grand Total: ₹519.75")
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	renderer, err := registry.Get("csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", renderer.Ext())

	renderer, err = registry.Get("TEXT")
	require.NoError(t, err)
	assert.Equal(t, "txt", renderer.Ext())
}

func TestRegistry_Get_Unavailable(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	// PDF rendering is an optional capability that is not built in; asking
	// for it is a warning for the caller, not a crash.
	_, err := registry.Get("pdf")

	assert.ErrorIs(t, err, model.ErrExportUnavailable)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bills")
	rcpt := sampleReceipt()

	path, err := WriteFile(dir, rcpt, csvRenderer{})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bill_21_20250314_123000.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Margherita Pizza")
}
