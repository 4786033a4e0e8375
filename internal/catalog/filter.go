package catalog

import (
	"sort"
	"strings"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Sort keys accepted by the catalog. Popularity has no backing signal
// yet and sorts as a stable no-op; newest falls back to creation
// order.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortNameAsc    = "name_asc"
	SortNameDesc   = "name_desc"
	SortPopularity = "popularity"
)

// ValidSort reports whether s is a recognized sort key. The empty
// string means unsorted.
func ValidSort(s string) bool {
	switch s {
	case "", SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortPopularity:
		return true
	}
	return false
}

// Filter is a set of optional, independently combinable constraints
// over the product collection. Absent fields impose no constraint;
// present fields compose with logical AND.
type Filter struct {
	// Category is a slug. Empty or "all" means no category filter.
	Category string
	// Search matches case-insensitively against name or description.
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
	Featured *bool
	IsNew    *bool
	SortBy   string
	// Limit caps the result count after sorting. Zero means no limit.
	Limit int
}

// HasCategory reports whether the filter constrains the category.
func (f Filter) HasCategory() bool {
	return f.Category != "" && f.Category != "all"
}

// Matches reports whether the product satisfies every non-category
// constraint. The category is resolved to an id by the caller because
// slug resolution needs the category collection.
func (f Filter) Matches(p models.Product, categoryID string) bool {
	if categoryID != "" && p.CategoryID != categoryID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	if f.IsNew != nil && p.IsNew != *f.IsNew {
		return false
	}
	return true
}

// Sort orders products in place according to the filter's sort key.
// Unknown or empty keys leave the slice untouched.
func (f Filter) Sort(products []models.Product) {
	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name > products[j].Name
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortPopularity:
		// Stable no-op until a popularity signal exists.
	}
}

// Apply runs the full filter pipeline over an in-memory product set:
// match, sort, then limit. resolveCategory maps a slug to a category
// id and reports whether the slug exists; an unknown slug matches
// nothing.
func Apply(products []models.Product, f Filter, resolveCategory func(slug string) (string, bool)) []models.Product {
	categoryID := ""
	if f.HasCategory() {
		id, ok := resolveCategory(f.Category)
		if !ok {
			return nil
		}
		categoryID = id
	}

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p, categoryID) {
			matched = append(matched, p)
		}
	}

	f.Sort(matched)

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}
