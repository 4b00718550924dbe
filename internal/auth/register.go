package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/internal/profiles"
	"github.com/muhammedshamilmt/snapgro-backend/internal/users"
	pkgAuth "github.com/muhammedshamilmt/snapgro-backend/pkg/auth"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/auth/session"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/db"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/security"
)

// RegisterService handles the sign-up transaction.
type RegisterService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
}

type registerTxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type registerProfileRepository interface {
	Create(ctx context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error)
}

// RegisterServiceParams packages the dependencies for the sign-up flow.
type RegisterServiceParams struct {
	TxRunner           registerTxRunner
	UserRepoFactory    func(tx *gorm.DB) registerUserRepository
	ProfileRepoFactory func(tx *gorm.DB) registerProfileRepository
	SessionManager     sessionManager
	PasswordConfig     config.PasswordConfig
	JWTConfig          config.JWTConfig
}

type registerService struct {
	tx          registerTxRunner
	userRepo    func(tx *gorm.DB) registerUserRepository
	profileRepo func(tx *gorm.DB) registerProfileRepository
	session     sessionManager
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
}

// NewRegisterService builds a sign-up service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.UserRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repo factory required")
	}
	if params.ProfileRepoFactory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "profile repo factory required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepo:    params.UserRepoFactory,
		profileRepo: params.ProfileRepoFactory,
		session:     params.SessionManager,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
	}, nil
}

// NewRegisterServiceFromDB wires the default GORM-backed repositories.
func NewRegisterServiceFromDB(client *db.Client, sessions sessionManager, passwordCfg config.PasswordConfig, jwtCfg config.JWTConfig) (RegisterService, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return NewRegisterService(RegisterServiceParams{
		TxRunner: client,
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		},
		ProfileRepoFactory: func(tx *gorm.DB) registerProfileRepository {
			return profiles.NewRepository(tx)
		},
		SessionManager: sessions,
		PasswordConfig: passwordCfg,
		JWTConfig:      jwtCfg,
	})
}

// SignUp creates the user plus their storefront profile atomically, then
// signs the new account in.
func (s *registerService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo(tx)
		profileRepo := s.profileRepo(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     fullName,
			Phone:        req.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		if _, err := profileRepo.Create(ctx, profiles.CreateProfileDTO{
			UserID:   user.ID,
			FullName: fullName,
			Phone:    req.Phone,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: created.ID,
		Email:  created.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(created),
	}, nil
}
