package enums

import "fmt"

// CatalogSource names the storefront surface a product originated from.
// Ids are only unique within a source, so cart identity is always
// source-qualified.
type CatalogSource string

const (
	CatalogSourceHome   CatalogSource = "home"
	CatalogSourceGrid   CatalogSource = "grid"
	CatalogSourceSearch CatalogSource = "search"
	CatalogSourceRecipe CatalogSource = "recipe"
	CatalogSourceCustom CatalogSource = "custom"
)

var validCatalogSources = []CatalogSource{
	CatalogSourceHome,
	CatalogSourceGrid,
	CatalogSourceSearch,
	CatalogSourceRecipe,
	CatalogSourceCustom,
}

// String implements fmt.Stringer.
func (c CatalogSource) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogSource.
func (c CatalogSource) IsValid() bool {
	for _, candidate := range validCatalogSources {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogSource converts raw input into a CatalogSource.
func ParseCatalogSource(value string) (CatalogSource, error) {
	for _, candidate := range validCatalogSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog source %q", value)
}
