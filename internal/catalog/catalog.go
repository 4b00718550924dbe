package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

// Product is the canonical shape every storefront surface resolves to
// before it can reach the cart.
type Product struct {
	ID          string              `json:"id"`
	Source      enums.CatalogSource `json:"source"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Unit        string              `json:"unit,omitempty"`
	ImageRef    string              `json:"image_ref"`
	Category    string              `json:"category,omitempty"`
}

// Category groups grid products for the browse screen.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageRef string `json:"image_ref"`
}

// Recipe is an AI-chef suggestion whose ingredients can be added to the
// cart in one action.
type Recipe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageRef    string    `json:"image_ref"`
	Ingredients []Product `json:"ingredients"`
}

// MintID builds a source-qualified product id. Raw catalog ids are only
// unique within their own surface (the home grid uses slugs, the product
// grid uses small integers), so the qualified form is the only identity
// the cart trusts.
func MintID(source enums.CatalogSource, raw string) string {
	return fmt.Sprintf("%s:%s", source, raw)
}

// Service exposes read-only catalog lookups for every entry point the
// storefront sells from.
type Service interface {
	Home() []Product
	Grid() []Product
	Categories() []Category
	Recipes() []Recipe
	FindRecipe(id string) (*Recipe, error)
	FindByID(id string) (*Product, error)
	Search(query string) []Product
}

type service struct {
	home       []Product
	grid       []Product
	categories []Category
	recipes    []Recipe
	byID       map[string]Product
}

// NewService builds the static in-memory catalog.
func NewService() Service {
	s := &service{
		home:       homeProducts(),
		grid:       gridProducts(),
		categories: browseCategories(),
		recipes:    chefRecipes(),
		byID:       map[string]Product{},
	}
	for _, p := range s.home {
		s.byID[p.ID] = p
	}
	for _, p := range s.grid {
		s.byID[p.ID] = p
	}
	for _, r := range s.recipes {
		for _, p := range r.Ingredients {
			if _, exists := s.byID[p.ID]; !exists {
				s.byID[p.ID] = p
			}
		}
	}
	return s
}

func (s *service) Home() []Product {
	return append([]Product(nil), s.home...)
}

func (s *service) Grid() []Product {
	return append([]Product(nil), s.grid...)
}

func (s *service) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

func (s *service) Recipes() []Recipe {
	return append([]Recipe(nil), s.recipes...)
}

func (s *service) FindRecipe(id string) (*Recipe, error) {
	for _, r := range s.recipes {
		if r.ID == id {
			recipe := r
			return &recipe, nil
		}
	}
	return nil, fmt.Errorf("recipe %q not found", id)
}

func (s *service) FindByID(id string) (*Product, error) {
	if p, ok := s.byID[id]; ok {
		product := p
		return &product, nil
	}
	return nil, fmt.Errorf("product %q not found", id)
}

// Search matches the query against product names and categories across
// every surface. The empty query returns nothing, mirroring the search
// overlay's behavior.
func (s *service) Search(query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var results []Product
	seen := map[string]struct{}{}
	for _, pool := range [][]Product{s.home, s.grid} {
		for _, p := range pool {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle) {
				seen[p.ID] = struct{}{}
				results = append(results, p)
			}
		}
	}
	return results
}
