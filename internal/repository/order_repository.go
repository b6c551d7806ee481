package repository

import (
	"context"
	"fmt"

	"resto-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction and
// returns the id the database assigned to it.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (int64, error) {
	query := `
		INSERT INTO orders (mode, payment_method, subtotal, tax, total, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := tx.QueryRow(ctx, query,
		string(order.Mode),
		string(order.PaymentMethod),
		order.Subtotal,
		order.Tax,
		order.Total,
		order.PlacedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create order")
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	order.ID = id

	r.logger.Debug().
		Int64("order_id", id).
		Msg("order created")

	return id, nil
}

// CreateOrderItems inserts multiple order line items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, item_name, quantity, price, tax_rate)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.ItemName, item.Quantity, item.Price, item.TaxRate)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Str("item_name", items[i].ItemName).
				Msg("failed to create order line item")
			return fmt.Errorf("failed to create order line item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order line items created")

	return nil
}

// GetByID retrieves an order by its id along with its line items.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderLineItem, error) {
	orderQuery := `
		SELECT id, mode, payment_method, subtotal, tax, total, placed_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	var mode, payment string
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID,
		&mode,
		&payment,
		&order.Subtotal,
		&order.Tax,
		&order.Total,
		&order.PlacedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}
	order.Mode = model.OrderMode(mode)
	order.PaymentMethod = model.PaymentMethod(payment)

	itemsQuery := `
		SELECT id, order_id, item_name, quantity, price, tax_rate
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", id).
			Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderLineItem
	for rows.Next() {
		var item model.OrderLineItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ItemName, &item.Quantity, &item.Price, &item.TaxRate)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, items, nil
}
