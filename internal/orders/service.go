package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammedshamilmt/snapgro-backend/internal/profiles"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
	pkgerrors "github.com/muhammedshamilmt/snapgro-backend/pkg/errors"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/pagination"
)

const orderNumberDigits = 8

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	Place(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Quote(subtotal decimal.Decimal, itemCount int) QuoteDTO
	Track(ctx context.Context, userID uuid.UUID, number string) (*OrderDTO, error)
	History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
}

// FeeSchedule is the fixed checkout fee policy layered on the cart subtotal.
type FeeSchedule struct {
	DeliveryFee decimal.Decimal
	ServiceFee  decimal.Decimal
	TaxRate     decimal.Decimal
}

// ParseFeeSchedule reads the configured fee strings into decimals.
func ParseFeeSchedule(cfg config.CheckoutConfig) (FeeSchedule, error) {
	delivery, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return FeeSchedule{}, fmt.Errorf("invalid delivery fee %q: %w", cfg.DeliveryFee, err)
	}
	service, err := decimal.NewFromString(cfg.ServiceFee)
	if err != nil {
		return FeeSchedule{}, fmt.Errorf("invalid service fee %q: %w", cfg.ServiceFee, err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return FeeSchedule{}, fmt.Errorf("invalid tax rate %q: %w", cfg.TaxRate, err)
	}
	return FeeSchedule{DeliveryFee: delivery, ServiceFee: service, TaxRate: taxRate}, nil
}

// Totals applies the schedule to a subtotal. Tax rounds half-up to cents.
func (f FeeSchedule) Totals(subtotal decimal.Decimal) (tax, total decimal.Decimal) {
	tax = subtotal.Mul(f.TaxRate).Round(2)
	total = subtotal.Add(f.DeliveryFee).Add(f.ServiceFee).Add(tax)
	return tax, total
}

type service struct {
	repo     Repository
	tx       txRunner
	profiles profiles.Repository
	fees     FeeSchedule
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, profileRepo profiles.Repository, fees FeeSchedule) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if profileRepo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		profiles: profileRepo,
		fees:     fees,
	}, nil
}

func (s *service) Place(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot place an order with an empty cart")
	}

	itemCount := 0
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		itemCount += line.Quantity
	}

	number, err := generateOrderNumber()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
	}

	tax, total := s.fees.Totals(input.Subtotal)
	order := &models.Order{
		Number:      number,
		UserID:      input.UserID,
		Status:      enums.OrderStatusPlaced,
		Subtotal:    input.Subtotal,
		DeliveryFee: s.fees.DeliveryFee,
		ServiceFee:  s.fees.ServiceFee,
		Tax:         tax,
		Total:       total,
		ItemCount:   itemCount,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		persisted, createErr := repo.Create(ctx, order)
		if createErr != nil {
			return createErr
		}

		items := make([]models.OrderLineItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			items = append(items, models.OrderLineItem{
				OrderID:   persisted.ID,
				ProductID: line.ProductID,
				Name:      line.Name,
				ImageRef:  line.ImageRef,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}
		if createErr := repo.CreateLineItems(ctx, items); createErr != nil {
			return createErr
		}

		profileRepo := s.profiles.WithTx(tx)
		if incErr := profileRepo.IncrementOrderCount(ctx, input.UserID); incErr != nil {
			return incErr
		}
		return profileRepo.AddSPAmount(ctx, input.UserID, input.Subtotal)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	dto := fromModel(order, false)
	dto.Items = make([]OrderLineItemDTO, 0, len(input.Lines))
	for _, line := range input.Lines {
		dto.Items = append(dto.Items, OrderLineItemDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageRef:  line.ImageRef,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return &dto, nil
}

// Quote prices a cart without touching storage.
func (s *service) Quote(subtotal decimal.Decimal, itemCount int) QuoteDTO {
	tax, total := s.fees.Totals(subtotal)
	return QuoteDTO{
		Subtotal:    subtotal,
		DeliveryFee: s.fees.DeliveryFee,
		ServiceFee:  s.fees.ServiceFee,
		Tax:         tax,
		Total:       total,
		ItemCount:   itemCount,
	}
}

func (s *service) Track(ctx context.Context, userID uuid.UUID, number string) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}

	order, err := s.repo.FindByNumber(ctx, userID, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	dto := fromModel(order, true)
	return &dto, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.List(ctx, listOrdersParams{
		UserID: userID,
		Limit:  params.Limit,
		Cursor: cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	list := &OrderList{Orders: make([]OrderDTO, 0, len(rows))}
	for i := range rows {
		list.Orders = append(list.Orders, fromModel(&rows[i], false))
	}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

// generateOrderNumber mints the short numeric id shown on the tracking screen.
func generateOrderNumber() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < orderNumberDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", orderNumberDigits, n), nil
}
