package cart

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"github.com/DanillS/doors-web/internal/domain"
)

// decodeLines reads a persisted cart snapshot. Snapshots written by the
// old storefront client carry numbers as floats or strings, so fields
// are coerced rather than unmarshalled strictly.
func decodeLines(raw []byte) ([]domain.CartLine, error) {
	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(entries))
	for i, entry := range entries {
		line, err := decodeLine(entry)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func decodeLine(entry map[string]interface{}) (domain.CartLine, error) {
	id, err := cast.ToInt64E(entry["id"])
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("id: %w", err)
	}
	quantity, err := cast.ToIntE(entry["quantity"])
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("quantity: %w", err)
	}

	line := domain.CartLine{
		Door: domain.Door{
			ID:          id,
			Name:        cast.ToString(entry["name"]),
			Price:       cast.ToInt64(entry["price"]),
			Material:    cast.ToString(entry["material"]),
			Size:        cast.ToString(entry["size"]),
			Color:       cast.ToString(entry["color"]),
			Glass:       cast.ToString(entry["glass"]),
			TearType:    cast.ToString(entry["tearType"]),
			Description: cast.ToString(entry["description"]),
			Image:       cast.ToString(entry["image"]),
			Images:      cast.ToStringSlice(entry["images"]),
			IsActive:    cast.ToBool(entry["isActive"]),
		},
		Quantity:   quantity,
		TotalPrice: cast.ToInt64(entry["totalPrice"]),
	}

	if v, ok := entry["basePrice"]; ok && v != nil {
		base := cast.ToInt64(v)
		line.BasePrice = &base
	}
	if v, ok := entry["selectedVariant"]; ok && v != nil {
		if m, ok := v.(map[string]interface{}); ok {
			variant := decodeVariant(m)
			line.SelectedVariant = &variant
		}
	}
	if v, ok := entry["colorVariants"]; ok {
		line.ColorVariants = decodeVariants(v)
	}
	if t, err := cast.ToTimeE(entry["createdAt"]); err == nil {
		line.CreatedAt = t
	}

	return line, nil
}

func decodeVariants(raw interface{}) []domain.ColorVariant {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var out []domain.ColorVariant
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, decodeVariant(m))
		}
	}
	return out
}

func decodeVariant(m map[string]interface{}) domain.ColorVariant {
	return domain.ColorVariant{
		Name:     cast.ToString(m["name"]),
		Hex:      cast.ToString(m["hex"]),
		Image:    cast.ToString(m["image"]),
		Images:   cast.ToStringSlice(m["images"]),
		IsActive: cast.ToBool(m["isActive"]),
	}
}
