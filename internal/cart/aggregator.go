package cart

import (
	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
)

// Line is one merged cart row. A line only exists while its quantity is
// positive; decrementing to zero deletes the row.
type Line struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageRef    string          `json:"image_ref"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Aggregator merges product selections from every storefront entry point
// into a single set of cart lines keyed by qualified product id.
//
// The aggregator is not safe for concurrent use; the owning session
// serializes access.
type Aggregator struct {
	lines map[string]*Line
	order []string
}

// NewAggregator returns an empty cart.
func NewAggregator() *Aggregator {
	return &Aggregator{lines: map[string]*Line{}}
}

// AddOrIncrement merges the product into the cart: an existing line for
// the same product id gains one unit, otherwise a new line starts at
// quantity 1.
func (a *Aggregator) AddOrIncrement(p catalog.Product) {
	normalized := normalizeProduct(p)
	if line, ok := a.lines[normalized.ID]; ok {
		line.Quantity++
		return
	}
	a.lines[normalized.ID] = &Line{
		ProductID:   normalized.ID,
		Name:        normalized.Name,
		Description: normalized.Description,
		ImageRef:    normalized.ImageRef,
		Unit:        normalized.Unit,
		UnitPrice:   normalized.Price,
		Quantity:    1,
	}
	a.order = append(a.order, normalized.ID)
}

// SetQuantity applies a signed delta to the line's quantity, clamping at
// zero. A line that reaches zero is removed. Unknown product ids are
// ignored.
func (a *Aggregator) SetQuantity(productID string, delta int) {
	line, ok := a.lines[productID]
	if !ok {
		return
	}
	next := line.Quantity + delta
	if next <= 0 {
		a.remove(productID)
		return
	}
	line.Quantity = next
}

// Clear empties the cart.
func (a *Aggregator) Clear() {
	a.lines = map[string]*Line{}
	a.order = nil
}

// Lines returns the visible cart rows in insertion order.
func (a *Aggregator) Lines() []Line {
	out := make([]Line, 0, len(a.order))
	for _, id := range a.order {
		if line, ok := a.lines[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}

// ItemCount is the sum of quantities across all lines.
func (a *Aggregator) ItemCount() int {
	total := 0
	for _, line := range a.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal is the sum of quantity times unit price across all lines.
func (a *Aggregator) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, id := range a.order {
		line, ok := a.lines[id]
		if !ok {
			continue
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// SnapshotImages captures the ordered image refs of the current lines.
// Checkout takes this snapshot before clearing the cart so the success
// screen can still show what was bought.
func (a *Aggregator) SnapshotImages() []string {
	images := make([]string, 0, len(a.order))
	for _, id := range a.order {
		if line, ok := a.lines[id]; ok {
			images = append(images, line.ImageRef)
		}
	}
	return images
}

func (a *Aggregator) remove(productID string) {
	delete(a.lines, productID)
	for i, id := range a.order {
		if id == productID {
			a.order = append(a.order[:i], a.order[i+1:]...)
			return
		}
	}
}
