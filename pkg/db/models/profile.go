package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile carries the storefront-facing account record. One row per
// user, created at sign-up.
type Profile struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	FullName   string          `gorm:"column:full_name;not null"`
	Phone      *string         `gorm:"column:phone"`
	AvatarRef  *string         `gorm:"column:avatar_ref"`
	OrderCount int             `gorm:"column:order_count;not null;default:0"`
	SPAmount   decimal.Decimal `gorm:"column:sp_amount;type:numeric(12,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
