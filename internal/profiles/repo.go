package profiles

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
)

// Repository defines persistence operations for profile rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dto CreateProfileDTO) (*models.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error
	IncrementOrderCount(ctx context.Context, userID uuid.UUID) error
	AddSPAmount(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, dto CreateProfileDTO) (*models.Profile, error) {
	profile := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (r *repository) IncrementOrderCount(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("order_count", gorm.Expr("order_count + 1")).Error
}

func (r *repository) AddSPAmount(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("sp_amount", gorm.Expr("sp_amount + ?", delta)).Error
}
