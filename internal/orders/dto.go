package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/db/models"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

// OrderDTO is the transport shape for a confirmed order.
type OrderDTO struct {
	ID          uuid.UUID          `json:"id"`
	Number      string             `json:"number"`
	Status      enums.OrderStatus  `json:"status"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	DeliveryFee decimal.Decimal    `json:"delivery_fee"`
	ServiceFee  decimal.Decimal    `json:"service_fee"`
	Tax         decimal.Decimal    `json:"tax"`
	Total       decimal.Decimal    `json:"total"`
	ItemCount   int                `json:"item_count"`
	Items       []OrderLineItemDTO `json:"items,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// OrderLineItemDTO is one frozen cart line on a confirmed order.
type OrderLineItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageRef  string          `json:"image_ref"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// QuoteDTO is the checkout price breakdown for a cart that has not been
// placed yet.
type QuoteDTO struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// CreateOrderLine is one cart line handed to the orders service at checkout.
type CreateOrderLine struct {
	ProductID string
	Name      string
	ImageRef  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderInput captures everything needed to persist a checkout.
type CreateOrderInput struct {
	UserID   uuid.UUID
	Subtotal decimal.Decimal
	Lines    []CreateOrderLine
}

// OrderList is one cursor page of a user's order history.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func fromModel(o *models.Order, withItems bool) OrderDTO {
	dto := OrderDTO{
		ID:          o.ID,
		Number:      o.Number,
		Status:      o.Status,
		Subtotal:    o.Subtotal,
		DeliveryFee: o.DeliveryFee,
		ServiceFee:  o.ServiceFee,
		Tax:         o.Tax,
		Total:       o.Total,
		ItemCount:   o.ItemCount,
		CreatedAt:   o.CreatedAt,
	}
	if withItems {
		dto.Items = make([]OrderLineItemDTO, 0, len(o.Items))
		for _, item := range o.Items {
			dto.Items = append(dto.Items, OrderLineItemDTO{
				ProductID: item.ProductID,
				Name:      item.Name,
				ImageRef:  item.ImageRef,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
	}
	return dto
}
