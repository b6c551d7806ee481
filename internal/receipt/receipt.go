package receipt

import (
	"time"

	"resto-pos/internal/model"

	"github.com/shopspring/decimal"
)

// Line is one printed bill line with its derived total.
type Line struct {
	ItemName  string
	Quantity  int
	Price     decimal.Decimal
	TaxRate   decimal.Decimal
	LineTotal decimal.Decimal
}

// Receipt is the printable view of a completed order. It is built from
// persisted data only and carries no behaviour of its own.
type Receipt struct {
	OrderID       int64
	Mode          model.OrderMode
	PaymentMethod model.PaymentMethod
	PlacedAt      time.Time
	Currency      string
	Lines         []Line
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// FromOrder builds a receipt for a persisted order and its line items.
func FromOrder(order *model.Order, items []model.OrderLineItem, currency string) Receipt {
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			Price:     item.Price,
			TaxRate:   item.TaxRate,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		}
	}

	return Receipt{
		OrderID:       order.ID,
		Mode:          order.Mode,
		PaymentMethod: order.PaymentMethod,
		PlacedAt:      order.PlacedAt,
		Currency:      currency,
		Lines:         lines,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
	}
}
