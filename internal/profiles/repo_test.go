package profiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
)

func setupProfilesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	profiles := `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL,
  phone TEXT,
  avatar_ref TEXT,
  order_count INTEGER NOT NULL DEFAULT 0,
  sp_amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(profiles).Error)
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		FullName: "Asha Nair",
		SPAmount: decimal.Zero,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func TestProfileRepoFindByUserID(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedProfile(t, db, userID)

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Nair", found.FullName)
	assert.Equal(t, 0, found.OrderCount)

	_, err = repo.FindByUserID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileRepoUpdate(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedProfile(t, db, userID)

	require.NoError(t, repo.Update(ctx, userID, map[string]any{
		"full_name": "Asha N.",
		"phone":     "+91 98450 00000",
	}))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Asha N.", found.FullName)
	require.NotNil(t, found.Phone)
	assert.Equal(t, "+91 98450 00000", *found.Phone)
}

func TestProfileRepoIncrementOrderCount(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedProfile(t, db, userID)

	require.NoError(t, repo.IncrementOrderCount(ctx, userID))
	require.NoError(t, repo.IncrementOrderCount(ctx, userID))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.OrderCount)
}

func TestProfileRepoAddSPAmount(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedProfile(t, db, userID)

	require.NoError(t, repo.AddSPAmount(ctx, userID, decimal.RequireFromString("12.50")))
	require.NoError(t, repo.AddSPAmount(ctx, userID, decimal.RequireFromString("7.25")))

	found, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, found.SPAmount.Equal(decimal.RequireFromString("19.75")),
		"expected 19.75 got %s", found.SPAmount)
}
