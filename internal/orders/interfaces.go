package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/pagination"
)

type listOrdersParams struct {
	UserID uuid.UUID
	Limit  int
	Cursor *pagination.Cursor
}

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindByNumber(ctx context.Context, userID uuid.UUID, number string) (*models.Order, error)
	List(ctx context.Context, params listOrdersParams) ([]models.Order, *pagination.Cursor, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}
