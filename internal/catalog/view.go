package catalog

import (
	"strings"

	"matita-shop/internal/domain"

	"github.com/google/uuid"
)

// ViewContext selects which slice of the catalog a view shows
type ViewContext int

const (
	ViewAllProducts ViewContext = iota
	ViewCategory
	ViewOffers
	ViewFavorites
)

// View describes one catalog request: a context, an optional category (only
// meaningful for ViewCategory), a free-text search term, and the customer's
// favorites set.
type View struct {
	Context   ViewContext
	Category  domain.Category
	Search    string
	Favorites map[uuid.UUID]bool
}

// Group is one category bucket of the grouped catalog view
type Group struct {
	Category domain.Category  `json:"category"`
	Products []domain.Product `json:"products"`
}

// Build filters products for the view, preserving input order. The result is
// an empty slice when nothing matches; presentation fallback is the caller's
// concern.
func Build(view View, products []domain.Product) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if !matchesSearch(p, view.Search) {
			continue
		}
		switch view.Context {
		case ViewAllProducts:
			out = append(out, p)
		case ViewCategory:
			if p.Category == view.Category {
				out = append(out, p)
			}
		case ViewOffers:
			// union: explicitly categorized OR actually discounted
			if p.IsOnOffer() {
				out = append(out, p)
			}
		case ViewFavorites:
			if view.Favorites[p.ID] {
				out = append(out, p)
			}
		}
	}
	return out
}

// BuildGrouped buckets the AllProducts view by category, iterated in the
// fixed display order. Categories with no matches are omitted.
func BuildGrouped(view View, products []domain.Product) []Group {
	matched := Build(View{Context: ViewAllProducts, Search: view.Search, Favorites: view.Favorites}, products)

	byCategory := make(map[domain.Category][]domain.Product)
	for _, p := range matched {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	groups := []Group{}
	for _, c := range domain.Categories {
		if ps := byCategory[c]; len(ps) > 0 {
			groups = append(groups, Group{Category: c, Products: ps})
		}
	}
	return groups
}

// matchesSearch is a case-insensitive substring match on the product name.
// An empty term matches everything.
func matchesSearch(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}
