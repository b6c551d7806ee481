package integration

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"resto-pos/internal/cart"
	"resto-pos/internal/database"
	"resto-pos/internal/menu"
	"resto-pos/internal/model"
	"resto-pos/internal/repository"
	"resto-pos/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readerSource serves an in-memory CSV document as a menu import source.
type readerSource struct {
	body string
}

func (s readerSource) Open(_ context.Context, _ string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func TestInitSchema_IdempotentAcrossStartups(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()

	menuRepo := repository.NewMenuRepository(db.Pool, zerolog.Nop())
	item := model.MenuItem{
		Name:     "Coke",
		Category: "Drink",
		Price:    decimal.NewFromInt(50),
		TaxRate:  decimal.NewFromInt(5),
	}
	require.NoError(t, menuRepo.Insert(ctx, &item))

	// Simulated restarts: schema init must neither fail nor lose rows.
	for i := 0; i < 3; i++ {
		require.NoError(t, database.InitSchema(ctx, db.Pool, zerolog.Nop()))
	}

	items, err := menuRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMenuImportAndList(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	menuRepo := repository.NewMenuRepository(db.Pool, logger)
	menus := service.NewMenuService(menuRepo, menu.NewImporter(logger), logger)

	csv := strings.Join([]string{
		"item_name,category,price,gst",
		"Margherita Pizza,Food,250,5",
		"Bad Row,Food,not-a-price,5",
		"Coke,Drink,50,5",
	}, "\n")

	summary, err := menus.Import(ctx, readerSource{csv}, "menu.csv")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Accepted)
	assert.Equal(t, 1, summary.Skipped)

	items, err := menus.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Margherita Pizza", items[0].Name)
	assert.Equal(t, "Coke", items[1].Name)

	// Reading again without writes returns identical contents.
	again, err := menus.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	menuRepo := repository.NewMenuRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)
	menus := service.NewMenuService(menuRepo, menu.NewImporter(logger), logger)
	checkout := service.NewCheckoutService(orderRepo, logger)

	pizza, err := menus.Add(ctx, "Margherita Pizza", "Food",
		decimal.NewFromInt(250), decimal.NewFromInt(5))
	require.NoError(t, err)
	coke, err := menus.Add(ctx, "Coke", "Drink",
		decimal.NewFromInt(50), decimal.NewFromInt(5))
	require.NoError(t, err)
	dosa, err := menus.Add(ctx, "Masala Dosa", "Food",
		decimal.NewFromInt(150), decimal.NewFromInt(5))
	require.NoError(t, err)

	session := cart.NewSession()
	require.NoError(t, session.SetMode(model.ModeTakeaway))
	require.NoError(t, session.SetPayment(model.PaymentCard))
	require.NoError(t, session.AddLine(*pizza, 2))
	require.NoError(t, session.AddLine(*coke, 1))
	require.NoError(t, session.AddLine(*dosa, 1))

	placedAt := time.Now().UTC().Truncate(time.Second)
	order, items, err := checkout.CompleteOrder(ctx, session, decimal.NewFromInt(10), placedAt)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, session.Empty())

	// Raw subtotal 700, raw tax 35; at 10% discount: 630 / 31.50 / 661.50.
	assert.True(t, decimal.RequireFromString("630.00").Equal(order.Subtotal), "subtotal = %s", order.Subtotal)
	assert.True(t, decimal.RequireFromString("31.50").Equal(order.Tax), "tax = %s", order.Tax)
	assert.True(t, decimal.RequireFromString("661.50").Equal(order.Total), "total = %s", order.Total)

	// Exactly three rows reference the returned order id.
	var itemCount int
	err = db.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM order_items WHERE order_id = $1", order.ID).Scan(&itemCount)
	require.NoError(t, err)
	assert.Equal(t, 3, itemCount)

	// The summed pre-discount line totals reproduce the raw subtotal the
	// stored (discounted) figures were derived from.
	got, gotItems, err := checkout.GetOrder(ctx, order.ID)
	require.NoError(t, err)

	rawSubtotal := decimal.Zero
	for _, item := range gotItems {
		rawSubtotal = rawSubtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, decimal.NewFromInt(700).Equal(rawSubtotal), "raw subtotal = %s", rawSubtotal)
	discounted := rawSubtotal.Mul(decimal.RequireFromString("0.9")).Round(2)
	assert.True(t, discounted.Equal(got.Subtotal))

	assert.Equal(t, model.ModeTakeaway, got.Mode)
	assert.Equal(t, model.PaymentCard, got.PaymentMethod)
	assert.True(t, got.PlacedAt.Equal(placedAt), "placed_at = %s", got.PlacedAt)
}

func TestSaveOrder_AtomicUnderFailure(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	orderRepo := repository.NewOrderRepository(db.Pool, logger)

	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)

	order := &model.Order{
		Mode:          model.ModeDineIn,
		PaymentMethod: model.PaymentCash,
		Subtotal:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(5),
		Total:         decimal.NewFromInt(105),
		PlacedAt:      time.Now(),
	}
	orderID, err := orderRepo.CreateOrder(ctx, tx, order)
	require.NoError(t, err)

	// Force a failure after the order row but before the items complete:
	// a zero quantity violates the items CHECK constraint.
	badItems := []model.OrderLineItem{
		{OrderID: orderID, ItemName: "Coke", Quantity: 1, Price: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(5)},
		{OrderID: orderID, ItemName: "Broken", Quantity: 0, Price: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(5)},
	}
	err = orderRepo.CreateOrderItems(ctx, tx, badItems)
	require.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))

	// After recovery neither relation holds any trace of the order.
	var orderCount, itemCount int
	require.NoError(t, db.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM orders WHERE id = $1", orderID).Scan(&orderCount))
	require.NoError(t, db.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM order_items WHERE order_id = $1", orderID).Scan(&itemCount))
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestDuplicateMenuNames_PreservedAcrossImportAndSeed(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	menuRepo := repository.NewMenuRepository(db.Pool, logger)
	menus := service.NewMenuService(menuRepo, menu.NewImporter(logger), logger)

	_, err := menus.Seed(ctx)
	require.NoError(t, err)
	_, err = menus.Seed(ctx)
	require.NoError(t, err)

	items, err := menus.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 10)

	// Lookup by a duplicated name resolves to the earliest insert.
	first, err := menus.FindByName(ctx, "Coke")
	require.NoError(t, err)
	assert.Equal(t, items[2].ID, first.ID)
}
