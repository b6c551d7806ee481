package service

import (
	"context"
	"time"

	"resto-pos/internal/cart"
	"resto-pos/internal/menu"
	"resto-pos/internal/model"

	"github.com/shopspring/decimal"
)

// MenuService defines operations for menu catalogue management.
type MenuService interface {
	// List retrieves the full menu in catalogue order.
	List(ctx context.Context) ([]model.MenuItem, error)

	// Add inserts a single menu item and returns it with its assigned id.
	Add(ctx context.Context, name, category string, price, taxRate decimal.Decimal) (*model.MenuItem, error)

	// Import bulk-loads a menu file from the given source. Bad rows are
	// skipped, good rows inserted; the summary reports both.
	Import(ctx context.Context, src menu.Source, path string) (*menu.ImportSummary, error)

	// Seed inserts the built-in sample menu.
	Seed(ctx context.Context) ([]model.MenuItem, error)

	// FindByName returns the first catalogue item with the given name.
	// Names are not unique, so later duplicates are shadowed.
	FindByName(ctx context.Context, name string) (*model.MenuItem, error)
}

// CheckoutService defines operations for completing and retrieving orders.
type CheckoutService interface {
	// CompleteOrder prices the session at the given discount, persists the
	// order and its line items atomically, and clears the session on
	// success.
	CompleteOrder(ctx context.Context, session *cart.Session, discountPercent decimal.Decimal, placedAt time.Time) (*model.Order, []model.OrderLineItem, error)

	// GetOrder retrieves a persisted order with its line items.
	GetOrder(ctx context.Context, id int64) (*model.Order, []model.OrderLineItem, error)
}
