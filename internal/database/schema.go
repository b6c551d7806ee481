package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Menu item names carry no uniqueness constraint: duplicate names are
// tolerated and later lookup by name resolves to the first match.
const schema = `
	CREATE TABLE IF NOT EXISTS menu (
		id BIGSERIAL PRIMARY KEY,
		item_name TEXT NOT NULL,
		category TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
		tax_rate NUMERIC(5, 2) NOT NULL DEFAULT 0 CHECK (tax_rate >= 0)
	);

	CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		mode TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		subtotal NUMERIC(12, 2) NOT NULL,
		tax NUMERIC(12, 2) NOT NULL,
		total NUMERIC(12, 2) NOT NULL,
		placed_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		item_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price NUMERIC(10, 2) NOT NULL,
		tax_rate NUMERIC(5, 2) NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// InitSchema creates the three store relations if they are absent. It is
// idempotent and safe to run on every startup.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		logger.Error().Err(err).Msg("failed to initialise schema")
		return fmt.Errorf("failed to initialise schema: %w", err)
	}

	logger.Debug().Msg("schema initialised")
	return nil
}
