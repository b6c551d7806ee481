package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderMode says whether the order was eaten in or taken away.
type OrderMode string

const (
	ModeDineIn   OrderMode = "Dine-In"
	ModeTakeaway OrderMode = "Takeaway"
)

// Valid reports whether the mode is one of the known values.
func (m OrderMode) Valid() bool {
	return m == ModeDineIn || m == ModeTakeaway
}

// PaymentMethod is how the customer settled the bill.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

// Valid reports whether the payment method is one of the known values.
func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard || p == PaymentUPI
}

// Order is a finalised, persisted transaction. The stored subtotal and tax
// are post-discount values: once a discount was applied they cannot be
// re-derived from the line items alone.
type Order struct {
	ID            int64           `json:"id" db:"id"`
	Mode          OrderMode       `json:"mode" db:"mode"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax           decimal.Decimal `json:"tax" db:"tax"`
	Total         decimal.Decimal `json:"total" db:"total"`
	PlacedAt      time.Time       `json:"placedAt" db:"placed_at"`
}

// OrderLineItem is one line of a persisted order. It is written in the same
// transaction as its parent order and is immutable thereafter.
type OrderLineItem struct {
	ID       int64           `json:"-" db:"id"`
	OrderID  int64           `json:"-" db:"order_id"`
	ItemName string          `json:"itemName" db:"item_name"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
	TaxRate  decimal.Decimal `json:"taxRate" db:"tax_rate"`
}
