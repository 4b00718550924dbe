package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
)

// Service defines profile operations exposed to the API layer.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileDTO) (*ProfileDTO, error)
	IncrementOrderCount(ctx context.Context, userID uuid.UUID) error
	UpdateSPAmount(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error
}

type service struct {
	repo Repository
}

// NewService builds a profile service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileDTO) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	updates := map[string]any{}
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name cannot be empty")
		}
		updates["full_name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.AvatarRef != nil {
		updates["avatar_ref"] = strings.TrimSpace(*input.AvatarRef)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
		}
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) IncrementOrderCount(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.repo.IncrementOrderCount(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment order count")
	}
	return nil
}

func (s *service) UpdateSPAmount(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if delta.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "sp amount delta cannot be negative")
	}
	if delta.IsZero() {
		return nil
	}
	if err := s.repo.AddSPAmount(ctx, userID, delta); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update sp amount")
	}
	return nil
}
