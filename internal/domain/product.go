package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVariantNotFound   = errors.New("variant not found on product")
	ErrVariantExists     = errors.New("variant with this label already exists")
	ErrInvalidStockValue = errors.New("stock value cannot be negative")
)

// Category is the fixed set of catalog sections
type Category string

const (
	CategoryEscolar    Category = "Escolar"
	CategoryRegalaria  Category = "Regalaría"
	CategoryOficina    Category = "Oficina"
	CategoryTecnologia Category = "Tecnología"
	CategoryNovedades  Category = "Novedades"
	CategoryOfertas    Category = "Ofertas"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryEscolar,
	CategoryRegalaria,
	CategoryOficina,
	CategoryTecnologia,
	CategoryNovedades,
	CategoryOfertas,
}

// IsValidCategory reports whether c names one of the fixed categories
func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultVariantLabel is assigned when a product is created without variants
const DefaultVariantLabel = "Único"

// Variant is a purchasable option of a product with its own stock counter
type Variant struct {
	Label string `json:"label"`
	Stock int    `json:"stock"`
}

// Product represents a product in the catalog. Availability is derived from
// variant stock, never stored.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	OldPrice    *float64  `json:"old_price,omitempty" db:"old_price"`
	Points      int       `json:"points" db:"points"`
	Category    Category  `json:"category" db:"category"`
	Images      []string  `json:"images" db:"images"`
	Variants    []Variant `json:"variants" db:"variants"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// StockOf returns the stock counter for the named variant
func (p *Product) StockOf(label string) (int, error) {
	for _, v := range p.Variants {
		if v.Label == label {
			return v.Stock, nil
		}
	}
	return 0, ErrVariantNotFound
}

// IsAvailable reports whether the named variant can be purchased.
// Unknown labels are simply unavailable.
func (p *Product) IsAvailable(label string) bool {
	stock, err := p.StockOf(label)
	return err == nil && stock > 0
}

// IsGloballyOutOfStock reports whether every variant is depleted. A product
// with no variants at all is out of stock too.
func (p *Product) IsGloballyOutOfStock() bool {
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// IsOnOffer reports whether the product counts as an offer: explicitly
// categorized, or carrying an old price above the current one
func (p *Product) IsOnOffer() bool {
	if p.Category == CategoryOfertas {
		return true
	}
	return p.OldPrice != nil && *p.OldPrice > p.Price
}

// SetStock replaces the stock counter of the named variant. Negative values
// are rejected before any mutation.
func (p *Product) SetStock(label string, stock int) error {
	if stock < 0 {
		return ErrInvalidStockValue
	}
	for i := range p.Variants {
		if p.Variants[i].Label == label {
			p.Variants[i].Stock = stock
			return nil
		}
	}
	return ErrVariantNotFound
}

// AdjustStock applies a delta to the named variant's counter, clamping the
// result at zero. Decrementing below zero is silently clamped, not an error.
func (p *Product) AdjustStock(label string, delta int) error {
	for i := range p.Variants {
		if p.Variants[i].Label == label {
			next := p.Variants[i].Stock + delta
			if next < 0 {
				next = 0
			}
			p.Variants[i].Stock = next
			return nil
		}
	}
	return ErrVariantNotFound
}

// AddVariant appends a new variant label with zero stock, preserving label
// uniqueness within the product
func (p *Product) AddVariant(label string) error {
	for _, v := range p.Variants {
		if v.Label == label {
			return ErrVariantExists
		}
	}
	p.Variants = append(p.Variants, Variant{Label: label})
	return nil
}

// RemoveVariant drops the named variant
func (p *Product) RemoveVariant(label string) error {
	for i, v := range p.Variants {
		if v.Label == label {
			p.Variants = append(p.Variants[:i], p.Variants[i+1:]...)
			return nil
		}
	}
	return ErrVariantNotFound
}
