package repository

import (
	"context"

	"resto-pos/internal/model"

	"github.com/jackc/pgx/v5"
)

// MenuRepository defines the interface for menu catalogue data access.
type MenuRepository interface {
	// GetAll retrieves all menu items in insertion order.
	GetAll(ctx context.Context) ([]model.MenuItem, error)

	// Insert adds a menu item unconditionally and fills in its assigned id.
	// Duplicate names are allowed.
	Insert(ctx context.Context, item *model.MenuItem) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// returns its assigned id.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (int64, error)

	// CreateOrderItems inserts multiple order line items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderLineItem) error

	// GetByID retrieves an order by its id along with its line items.
	GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderLineItem, error)
}
