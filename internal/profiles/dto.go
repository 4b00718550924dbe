package profiles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
)

// ProfileDTO is the transport shape returned to the app shell.
type ProfileDTO struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	FullName   string          `json:"full_name"`
	Phone      *string         `json:"phone,omitempty"`
	AvatarRef  *string         `json:"avatar_ref,omitempty"`
	OrderCount int             `json:"order_count"`
	SPAmount   decimal.Decimal `json:"sp_amount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateProfileDTO holds the data needed to seed a profile at sign-up.
type CreateProfileDTO struct {
	UserID   uuid.UUID
	FullName string
	Phone    *string
}

// UpdateProfileDTO carries the mutable profile fields. Nil means keep.
type UpdateProfileDTO struct {
	FullName  *string
	Phone     *string
	AvatarRef *string
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		FullName:   p.FullName,
		Phone:      p.Phone,
		AvatarRef:  p.AvatarRef,
		OrderCount: p.OrderCount,
		SPAmount:   p.SPAmount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (c CreateProfileDTO) ToModel() *models.Profile {
	return &models.Profile{
		UserID:   c.UserID,
		FullName: c.FullName,
		Phone:    c.Phone,
		SPAmount: decimal.Zero,
	}
}
