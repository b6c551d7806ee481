package service

import (
	"context"
	"fmt"

	"resto-pos/internal/menu"
	"resto-pos/internal/model"
	"resto-pos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// sampleMenu is the built-in quick-start menu.
var sampleMenu = []model.MenuItem{
	{Name: "Margherita Pizza", Category: "Food", Price: decimal.NewFromInt(250), TaxRate: decimal.NewFromInt(5)},
	{Name: "Paneer Butter Masala", Category: "Food", Price: decimal.NewFromInt(300), TaxRate: decimal.NewFromInt(5)},
	{Name: "Coke", Category: "Drink", Price: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(5)},
	{Name: "Ice Cream", Category: "Dessert", Price: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(5)},
	{Name: "Masala Dosa", Category: "Food", Price: decimal.NewFromInt(150), TaxRate: decimal.NewFromInt(5)},
}

// menuService implements MenuService.
type menuService struct {
	repo     repository.MenuRepository
	importer *menu.Importer
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(repo repository.MenuRepository, importer *menu.Importer, logger zerolog.Logger) MenuService {
	return &menuService{
		repo:     repo,
		importer: importer,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// List retrieves the full menu in catalogue order.
func (s *menuService) List(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu")
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

// Add inserts a single menu item.
func (s *menuService) Add(ctx context.Context, name, category string, price, taxRate decimal.Decimal) (*model.MenuItem, error) {
	if name == "" {
		return nil, model.NewDomainError(model.ErrCodeInternalError, "menu item name is required")
	}
	if price.IsNegative() {
		return nil, model.ErrNegativePrice
	}
	if taxRate.IsNegative() {
		return nil, model.ErrNegativeTaxRate
	}

	item := model.MenuItem{
		Name:     name,
		Category: category,
		Price:    price,
		TaxRate:  taxRate,
	}
	if err := s.repo.Insert(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to add menu item: %w", err)
	}

	s.logger.Info().
		Int64("id", item.ID).
		Str("item_name", item.Name).
		Msg("menu item added")

	return &item, nil
}

// Import bulk-loads a menu file. Rows that fail parsing are skipped by the
// importer; rows that fail insertion are demoted to row errors as well, so
// one bad row never aborts the rest of the import.
func (s *menuService) Import(ctx context.Context, src menu.Source, path string) (*menu.ImportSummary, error) {
	rc, err := src.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu import: %w", err)
	}
	defer rc.Close()

	items, rowErrs, err := s.importer.ParseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu import: %w", err)
	}

	summary := &menu.ImportSummary{Errors: rowErrs}
	for i := range items {
		if err := s.repo.Insert(ctx, &items[i]); err != nil {
			s.logger.Warn().
				Err(err).
				Str("item_name", items[i].Name).
				Msg("skipping menu row that failed to insert")
			summary.Errors = append(summary.Errors, menu.RowError{Reason: fmt.Sprintf("insert %q: %v", items[i].Name, err)})
			continue
		}
		summary.Accepted++
	}
	summary.Skipped = len(summary.Errors)

	s.logger.Info().
		Str("path", path).
		Int("accepted", summary.Accepted).
		Int("skipped", summary.Skipped).
		Msg("menu import finished")

	return summary, nil
}

// Seed inserts the built-in sample menu. Seeding twice simply accumulates
// duplicates, which the catalogue permits.
func (s *menuService) Seed(ctx context.Context) ([]model.MenuItem, error) {
	seeded := make([]model.MenuItem, 0, len(sampleMenu))
	for _, item := range sampleMenu {
		if err := s.repo.Insert(ctx, &item); err != nil {
			return seeded, fmt.Errorf("failed to seed menu item %q: %w", item.Name, err)
		}
		seeded = append(seeded, item)
	}

	s.logger.Info().Int("count", len(seeded)).Msg("sample menu seeded")
	return seeded, nil
}

// FindByName returns the first catalogue item with the given name. Because
// menu names are not unique, any later duplicates are silently shadowed by
// the earliest insert.
func (s *menuService) FindByName(ctx context.Context, name string) (*model.MenuItem, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up menu item: %w", err)
	}

	for _, item := range items {
		if item.Name == name {
			return &item, nil
		}
	}

	s.logger.Debug().Str("item_name", name).Msg("menu item not found")
	return nil, model.ErrItemNotFound
}
