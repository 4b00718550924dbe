package cart

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/internal/catalog"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

const (
	defaultName        = "Product"
	defaultDescription = "Fresh product"
)

// ProductPayload accepts the inconsistent product shapes the different
// screens report: name vs title, subtitle vs description, price as a
// formatted string or a bare number. Normalize resolves them with fixed
// defaulting rules so call sites never need fallback chains.
type ProductPayload struct {
	ID          string          `json:"id"`
	Source      string          `json:"source,omitempty"`
	Name        string          `json:"name,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Subtitle    string          `json:"subtitle,omitempty"`
	Price       json.RawMessage `json:"price,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	ImageRef    string          `json:"image_ref,omitempty"`
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// Normalize maps the duck-typed payload onto the canonical product
// shape. It never fails: malformed prices become zero and missing
// metadata gets placeholder values.
func (p ProductPayload) Normalize() catalog.Product {
	name := firstNonEmpty(p.Name, p.Title, defaultName)
	description := firstNonEmpty(p.Subtitle, p.Description, defaultDescription)
	image := firstNonEmpty(p.ImageRef, p.Image)

	source := enums.CatalogSourceCustom
	if parsed, err := enums.ParseCatalogSource(p.Source); err == nil {
		source = parsed
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}
	if !strings.Contains(id, ":") {
		id = catalog.MintID(source, id)
	}

	return catalog.Product{
		ID:          id,
		Source:      source,
		Name:        name,
		Description: description,
		Price:       ParsePrice(p.Price),
		Unit:        p.Unit,
		ImageRef:    image,
		Category:    p.Category,
	}
}

// ParsePrice tolerates prices given as bare JSON numbers, numeric
// strings, or formatted strings like "$4.99". Anything unparseable is
// worth zero; pricing problems must never abort an add-to-cart.
func ParsePrice(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return clampPrice(decimal.NewFromFloat(num))
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return decimal.Zero
	}
	cleaned := strings.TrimSpace(str)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return clampPrice(value)
}

func clampPrice(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func normalizeProduct(p catalog.Product) catalog.Product {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = defaultName
	}
	if strings.TrimSpace(p.Description) == "" {
		p.Description = defaultDescription
	}
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	if strings.TrimSpace(p.ID) == "" {
		source := p.Source
		if !source.IsValid() {
			source = enums.CatalogSourceCustom
		}
		p.ID = catalog.MintID(source, strings.ToLower(strings.ReplaceAll(p.Name, " ", "-")))
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
