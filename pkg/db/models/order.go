package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

// Order is one confirmed checkout. Number is the short human-readable
// id the tracking screen shows.
type Order struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Number      string            `gorm:"type:text;not null;uniqueIndex"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status      enums.OrderStatus `gorm:"type:text;not null"`
	Subtotal    decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	DeliveryFee decimal.Decimal   `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	ServiceFee  decimal.Decimal   `gorm:"column:service_fee;type:numeric(12,2);not null"`
	Tax         decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Total       decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	ItemCount   int               `gorm:"column:item_count;not null"`
	Items       []OrderLineItem   `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
