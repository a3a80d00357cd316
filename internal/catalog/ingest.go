package catalog

import (
	"encoding/json"
	"strconv"
	"time"

	"matita-shop/internal/domain"

	"github.com/google/uuid"
)

// ProductFromRecord coerces a loosely-typed backend record into a typed
// Product. This is the only place external shapes are trusted: numeric fields
// default to 0 when absent or non-numeric, missing arrays become empty
// slices. Stringly-typed numbers from the backend are accepted.
func ProductFromRecord(rec map[string]any) domain.Product {
	p := domain.Product{
		Name:        coerceString(rec["name"]),
		Description: coerceString(rec["description"]),
		Price:       CoerceFloat(rec["price"]),
		OldPrice:    coerceFloatPtr(rec["old_price"]),
		Points:      CoerceInt(rec["points"]),
		Category:    domain.Category(coerceString(rec["category"])),
		Images:      ImagesFromValue(rec["images"]),
		Variants:    VariantsFromValue(rec["variants"]),
	}
	if id, err := uuid.Parse(coerceString(rec["id"])); err == nil {
		p.ID = id
	}
	if ts, ok := rec["created_at"].(time.Time); ok {
		p.CreatedAt = ts
	}
	if ts, ok := rec["updated_at"].(time.Time); ok {
		p.UpdatedAt = ts
	}
	return p
}

// VariantsFromValue decodes a variants payload (already-decoded slice or raw
// JSON bytes) into typed variants. Unrecognized shapes yield an empty slice.
func VariantsFromValue(v any) []domain.Variant {
	switch t := v.(type) {
	case []byte:
		var raw []map[string]any
		if err := json.Unmarshal(t, &raw); err != nil {
			return []domain.Variant{}
		}
		return variantsFromMaps(raw)
	case []map[string]any:
		return variantsFromMaps(t)
	case []any:
		maps := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				maps = append(maps, m)
			}
		}
		return variantsFromMaps(maps)
	default:
		return []domain.Variant{}
	}
}

func variantsFromMaps(raw []map[string]any) []domain.Variant {
	variants := make([]domain.Variant, 0, len(raw))
	for _, m := range raw {
		label := coerceString(m["label"])
		if label == "" {
			// legacy records keyed variants by color
			label = coerceString(m["color"])
		}
		if label == "" {
			continue
		}
		stock := CoerceInt(m["stock"])
		if stock < 0 {
			stock = 0
		}
		variants = append(variants, domain.Variant{Label: label, Stock: stock})
	}
	return variants
}

// ImagesFromValue decodes an images payload into opaque string references
func ImagesFromValue(v any) []string {
	switch t := v.(type) {
	case []byte:
		var refs []string
		if err := json.Unmarshal(t, &refs); err != nil {
			return []string{}
		}
		return refs
	case []string:
		return t
	case []any:
		refs := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				refs = append(refs, s)
			}
		}
		return refs
	default:
		return []string{}
	}
}

// CoerceFloat converts a backend value to float64, defaulting to 0
func CoerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CoerceInt converts a backend value to int, defaulting to 0
func CoerceInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return int(CoerceFloat(v))
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceFloatPtr(v any) *float64 {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case float64, float32, int, int64, json.Number, string:
		f := CoerceFloat(v)
		if f == 0 {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}
