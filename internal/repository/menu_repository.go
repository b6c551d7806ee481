package repository

import (
	"context"
	"fmt"

	"resto-pos/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

// GetAll retrieves all menu items in insertion order.
func (r *menuRepository) GetAll(ctx context.Context) ([]model.MenuItem, error) {
	query := `
		SELECT id, item_name, category, price, tax_rate
		FROM menu
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.TaxRate)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// Insert adds a menu item unconditionally. The menu has no uniqueness
// constraint on names, so repeated inserts of the same name accumulate.
func (r *menuRepository) Insert(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu (item_name, category, price, tax_rate)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, item.Name, item.Category, item.Price, item.TaxRate).Scan(&item.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("item_name", item.Name).
			Msg("failed to insert menu item")
		return fmt.Errorf("failed to insert menu item: %w", err)
	}

	r.logger.Debug().
		Int64("id", item.ID).
		Str("item_name", item.Name).
		Msg("menu item inserted")

	return nil
}
