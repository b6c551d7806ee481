package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resto-pos/internal/billing"
	"resto-pos/internal/cart"
	"resto-pos/internal/model"
	"resto-pos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger

	// saveMu serialises order persistence so two sessions against the same
	// store can never interleave their multi-row writes.
	saveMu sync.Mutex
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(orderRepo repository.OrderRepository, logger zerolog.Logger) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// CompleteOrder prices the session, persists the order with its line items
// in one transaction, and clears the session. Either every row persists or
// none do; a failure mid-write surfaces as an error with no partial state.
func (s *checkoutService) CompleteOrder(
	ctx context.Context,
	session *cart.Session,
	discountPercent decimal.Decimal,
	placedAt time.Time,
) (*model.Order, []model.OrderLineItem, error) {
	if session == nil || session.Empty() {
		return nil, nil, model.ErrEmptyCart
	}

	lines := session.Lines()

	totals, err := billing.ComputeTotals(billing.LinesFromCart(lines), discountPercent)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("session_id", session.ID().String()).
			Msg("cart failed pricing validation")
		return nil, nil, err
	}

	order := &model.Order{
		Mode:          session.Mode(),
		PaymentMethod: session.Payment(),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PlacedAt:      placedAt,
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, nil, fmt.Errorf("failed to complete order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	orderID, err := s.orderRepo.CreateOrder(ctx, tx, order)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", session.ID().String()).
			Msg("failed to create order")
		return nil, nil, fmt.Errorf("failed to complete order: %w", err)
	}

	items := make([]model.OrderLineItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderLineItem{
			OrderID:  orderID,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Price:    line.Price,
			TaxRate:  line.TaxRate,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", orderID).
			Int("item_count", len(items)).
			Msg("failed to create order line items")
		return nil, nil, fmt.Errorf("failed to complete order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to commit transaction")
		return nil, nil, fmt.Errorf("failed to complete order: %w", err)
	}

	// The cart is owned by exactly one checkout flow; a completed order
	// ends that flow.
	session.Clear()

	s.logger.Info().
		Int64("order_id", orderID).
		Str("session_id", session.ID().String()).
		Int("item_count", len(items)).
		Str("total", order.Total.String()).
		Msg("order completed")

	return order, items, nil
}

// GetOrder retrieves a persisted order with its line items.
func (s *checkoutService) GetOrder(ctx context.Context, id int64) (*model.Order, []model.OrderLineItem, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil, model.NewDomainError(model.ErrCodeInternalError, fmt.Sprintf("order %d not found", id))
	}
	return order, items, nil
}
