package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem freezes one cart line at the moment checkout confirmed.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID string          `gorm:"column:product_id;type:text;not null"`
	Name      string          `gorm:"type:text;not null"`
	ImageRef  string          `gorm:"column:image_ref;type:text;not null;default:''"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
