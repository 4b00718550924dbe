package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/muhammedshamilmt/snapgro-backend/pkg/enums"
)

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func homeProducts() []Product {
	items := []struct {
		slug, name, desc, priceStr, unit, category string
	}{
		{"avocado", "Fresh Avocado", "Hass, ripe and ready", "2.99", "1 pc", "Fruits"},
		{"bananas", "Organic Bananas", "Fairtrade bunch", "1.99", "1 bunch", "Fruits"},
		{"strawberries", "Strawberries", "Sweet and juicy", "4.49", "250 g", "Fruits"},
		{"spinach", "Baby Spinach", "Washed and bagged", "2.49", "200 g", "Vegetables"},
		{"milk", "Whole Milk", "Locally sourced", "1.29", "1 L", "Dairy"},
		{"eggs", "Free Range Eggs", "Large, dozen", "3.79", "12 pcs", "Dairy"},
		{"sourdough", "Sourdough Bread", "Baked this morning", "3.49", "1 loaf", "Bakery"},
		{"yogurt", "Greek Yogurt", "Plain, 5% fat", "2.89", "500 g", "Dairy"},
	}

	products := make([]Product, 0, len(items))
	for _, it := range items {
		products = append(products, Product{
			ID:          MintID(enums.CatalogSourceHome, it.slug),
			Source:      enums.CatalogSourceHome,
			Name:        it.name,
			Description: it.desc,
			Price:       price(it.priceStr),
			Unit:        it.unit,
			ImageRef:    "products/" + it.slug + ".png",
			Category:    it.category,
		})
	}
	return products
}

func gridProducts() []Product {
	items := []struct {
		name, desc, priceStr, unit, category string
	}{
		{"Roma Tomatoes", "Vine ripened", "2.29", "500 g", "Vegetables"},
		{"Red Onions", "Medium, loose", "1.49", "1 kg", "Vegetables"},
		{"Garlic", "Whole bulbs", "0.99", "3 pcs", "Vegetables"},
		{"Lemons", "Unwaxed", "1.79", "4 pcs", "Fruits"},
		{"Chicken Breast", "Skinless fillets", "6.99", "500 g", "Meat"},
		{"Salmon Fillet", "Fresh Atlantic", "8.49", "300 g", "Fish"},
		{"Basmati Rice", "Extra long grain", "4.99", "1 kg", "Pantry"},
		{"Penne Pasta", "Bronze die cut", "1.89", "500 g", "Pantry"},
		{"Olive Oil", "Extra virgin", "7.99", "750 ml", "Pantry"},
		{"Cheddar Cheese", "Mature block", "3.99", "400 g", "Dairy"},
		{"Butter", "Unsalted", "2.59", "250 g", "Dairy"},
		{"Orange Juice", "Freshly squeezed", "3.29", "1 L", "Drinks"},
	}

	products := make([]Product, 0, len(items))
	for i, it := range items {
		slug := fmt.Sprintf("%d", i+1)
		products = append(products, Product{
			ID:          MintID(enums.CatalogSourceGrid, slug),
			Source:      enums.CatalogSourceGrid,
			Name:        it.name,
			Description: it.desc,
			Price:       price(it.priceStr),
			Unit:        it.unit,
			ImageRef:    "grid/" + slug + ".png",
			Category:    it.category,
		})
	}
	return products
}

func browseCategories() []Category {
	names := []string{
		"Fruits", "Vegetables", "Dairy", "Bakery",
		"Meat", "Fish", "Pantry", "Drinks",
	}
	categories := make([]Category, 0, len(names))
	for _, name := range names {
		id := slugify(name)
		categories = append(categories, Category{
			ID:       id,
			Name:     name,
			ImageRef: "categories/" + id + ".png",
		})
	}
	return categories
}

func chefRecipes() []Recipe {
	home := homeProducts()
	grid := gridProducts()
	find := func(pool []Product, id string) Product {
		for _, p := range pool {
			if p.ID == id {
				p.Source = enums.CatalogSourceRecipe
				return p
			}
		}
		return Product{}
	}

	return []Recipe{
		{
			ID:          "guacamole",
			Name:        "Classic Guacamole",
			Description: "Avocado, tomato, onion and lime in ten minutes.",
			ImageRef:    "recipes/guacamole.png",
			Ingredients: []Product{
				find(home, "home:avocado"),
				find(grid, "grid:1"),
				find(grid, "grid:2"),
				find(grid, "grid:4"),
			},
		},
		{
			ID:          "banana-smoothie",
			Name:        "Banana Breakfast Smoothie",
			Description: "Banana, yogurt and milk blended to order.",
			ImageRef:    "recipes/banana-smoothie.png",
			Ingredients: []Product{
				find(home, "home:bananas"),
				find(home, "home:yogurt"),
				find(home, "home:milk"),
			},
		},
		{
			ID:          "lemon-salmon",
			Name:        "Lemon Butter Salmon",
			Description: "Pan seared salmon with a lemon butter glaze.",
			ImageRef:    "recipes/lemon-salmon.png",
			Ingredients: []Product{
				find(grid, "grid:6"),
				find(grid, "grid:4"),
				find(grid, "grid:11"),
				find(grid, "grid:3"),
			},
		},
	}
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
