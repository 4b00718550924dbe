package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  number TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL,
  subtotal NUMERIC NOT NULL,
  delivery_fee NUMERIC NOT NULL,
  service_fee NUMERIC NOT NULL,
  tax NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  item_count INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  image_ref TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func seedOrder(t *testing.T, repo Repository, userID uuid.UUID, number string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          uuid.New(),
		Number:      number,
		UserID:      userID,
		Status:      enums.OrderStatusPlaced,
		Subtotal:    decimal.RequireFromString("6.97"),
		DeliveryFee: decimal.RequireFromString("2.99"),
		ServiceFee:  decimal.RequireFromString("1.49"),
		Tax:         decimal.RequireFromString("0.56"),
		Total:       decimal.RequireFromString("12.01"),
		ItemCount:   3,
		CreatedAt:   createdAt,
	}
	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestOrderRepoFindByNumber(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	order := seedOrder(t, repo, userID, "90786234", time.Now().UTC())

	items := []models.OrderLineItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "home:avocado", Name: "Fresh Avocado", Quantity: 2, UnitPrice: decimal.RequireFromString("2.99")},
		{ID: uuid.New(), OrderID: order.ID, ProductID: "home:bananas", Name: "Organic Bananas", Quantity: 1, UnitPrice: decimal.RequireFromString("1.99")},
	}
	require.NoError(t, repo.CreateLineItems(ctx, items))

	found, err := repo.FindByNumber(ctx, userID, "90786234")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Len(t, found.Items, 2)

	// numbers are scoped to the owning user
	_, err = repo.FindByNumber(ctx, uuid.New(), "90786234")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepoUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	order := seedOrder(t, repo, userID, "310442", time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusOnTheWay))

	found, err := repo.FindByNumber(ctx, userID, "310442")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusOnTheWay, found.Status)
}

func TestOrderRepoListPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	seedOrder(t, repo, userID, "10000001", base.Add(-3*time.Hour))
	seedOrder(t, repo, userID, "10000002", base.Add(-2*time.Hour))
	newest := seedOrder(t, repo, userID, "10000003", base.Add(-1*time.Hour))
	seedOrder(t, repo, uuid.New(), "20000001", base)

	page, next, err := repo.List(ctx, listOrdersParams{UserID: userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newest.Number, page[0].Number)
	require.NotNil(t, next, "expected a next cursor with a third row remaining")

	rest, next, err := repo.List(ctx, listOrdersParams{UserID: userID, Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "10000001", rest[0].Number)
	assert.Nil(t, next)
}
