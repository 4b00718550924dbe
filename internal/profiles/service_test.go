package profiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
)

type fakeRepo struct {
	profile *models.Profile
	findErr error

	updates    map[string]any
	increments int
	spAdded    decimal.Decimal
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepo) Create(ctx context.Context, dto CreateProfileDTO) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.profile, nil
}

func (f *fakeRepo) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	f.updates = updates
	return nil
}

func (f *fakeRepo) IncrementOrderCount(ctx context.Context, userID uuid.UUID) error {
	f.increments++
	return nil
}

func (f *fakeRepo) AddSPAmount(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	f.spAdded = f.spAdded.Add(delta)
	return nil
}

func testProfile(userID uuid.UUID) *models.Profile {
	return &models.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		FullName: "Asha Nair",
		SPAmount: decimal.RequireFromString("12.50"),
	}
}

func TestGetProfileNotFound(t *testing.T) {
	repo := &fakeRepo{findErr: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetProfile(context.Background(), uuid.New())
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", code)
	}
}

func TestGetProfileRequiresUser(t *testing.T) {
	svc, _ := NewService(&fakeRepo{})

	_, err := svc.GetProfile(context.Background(), uuid.Nil)
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", code)
	}
}

func TestUpdateProfileTrimsAndKeepsOmitted(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{profile: testProfile(userID)}
	svc, _ := NewService(repo)

	name := "  Asha N.  "
	phone := " 555-0101 "
	dto, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileDTO{
		FullName: &name,
		Phone:    &phone,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if dto == nil {
		t.Fatal("expected profile back")
	}

	if repo.updates["full_name"] != "Asha N." {
		t.Fatalf("expected trimmed name, got %v", repo.updates["full_name"])
	}
	if repo.updates["phone"] != "555-0101" {
		t.Fatalf("expected trimmed phone, got %v", repo.updates["phone"])
	}
	if _, present := repo.updates["avatar_ref"]; present {
		t.Fatal("avatar must stay untouched when omitted")
	}
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{profile: testProfile(userID)}
	svc, _ := NewService(repo)

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileDTO{FullName: &blank})
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", code)
	}
	if repo.updates != nil {
		t.Fatal("no update should reach the repository")
	}
}

func TestUpdateProfileNoFieldsIsRead(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{profile: testProfile(userID)}
	svc, _ := NewService(repo)

	dto, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileDTO{})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if repo.updates != nil {
		t.Fatal("empty input must not write")
	}
	if dto.FullName != "Asha Nair" {
		t.Fatalf("expected current profile, got %s", dto.FullName)
	}
}

func TestUpdateSPAmount(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{profile: testProfile(userID)}
	svc, _ := NewService(repo)

	if err := svc.UpdateSPAmount(context.Background(), userID, decimal.RequireFromString("6.97")); err != nil {
		t.Fatalf("UpdateSPAmount: %v", err)
	}
	if !repo.spAdded.Equal(decimal.RequireFromString("6.97")) {
		t.Fatalf("expected 6.97 added, got %s", repo.spAdded)
	}

	err := svc.UpdateSPAmount(context.Background(), userID, decimal.RequireFromString("-1"))
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative delta, got %v", code)
	}

	if err := svc.UpdateSPAmount(context.Background(), userID, decimal.Zero); err != nil {
		t.Fatalf("zero delta must be a no-op: %v", err)
	}
	if !repo.spAdded.Equal(decimal.RequireFromString("6.97")) {
		t.Fatalf("zero delta must not write, got %s", repo.spAdded)
	}
}

func TestIncrementOrderCount(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepo{profile: testProfile(userID)}
	svc, _ := NewService(repo)

	if err := svc.IncrementOrderCount(context.Background(), userID); err != nil {
		t.Fatalf("IncrementOrderCount: %v", err)
	}
	if repo.increments != 1 {
		t.Fatalf("expected one increment, got %d", repo.increments)
	}

	if err := svc.IncrementOrderCount(context.Background(), uuid.Nil); pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for missing user, got %v", err)
	}
}
