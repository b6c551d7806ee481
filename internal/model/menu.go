package model

import "github.com/shopspring/decimal"

// MenuItem represents one entry in the restaurant's menu catalogue.
// Identity is assigned by the store on insert. Item names are NOT unique:
// duplicates are allowed, and lookup by name resolves to the first match
// in catalogue order.
type MenuItem struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"itemName" db:"item_name"`
	Category string          `json:"category" db:"category"`
	Price    decimal.Decimal `json:"price" db:"price"`
	TaxRate  decimal.Decimal `json:"taxRate" db:"tax_rate"`
}

// CartLine is one (item, quantity) pairing in an in-progress checkout.
// It is transient: nothing is persisted until the order is completed.
type CartLine struct {
	ItemName string          `json:"itemName"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	TaxRate  decimal.Decimal `json:"taxRate"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns the pre-discount, pre-tax total for this line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
