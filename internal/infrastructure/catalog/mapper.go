package catalog

import (
	"strconv"
	"strings"

	"github.com/avant-atelier/backend/internal/domain"
)

// MapRecord converts a raw catalog entry to the domain ProductRecord.
// Catalog files disagree on field names (id/ID/sku, name/title,
// description/desc, image/img) and on value types (prices may be numbers
// or numeric strings), so every field is coerced best-effort; nothing in
// here returns an error.
func MapRecord(raw map[string]interface{}, sourceTag string) domain.ProductRecord {
	record := domain.ProductRecord{
		ID:          identifier(raw, "id", "ID", "sku"),
		Name:        text(raw, "name", "title"),
		Description: text(raw, "description", "desc"),
		Category:    text(raw, "category"),
		Price:       number(raw, "price"),
		SalePrice:   number(raw, "salePrice", "sale_price"),
		Image:       text(raw, "image", "img"),
		HoverImage:  text(raw, "hoverImage", "hover_image"),
		Status:      text(raw, "status"),
		Colors:      texts(raw, "colors"),
		Sizes:       texts(raw, "sizes"),
		Details:     texts(raw, "details"),
		Source:      sourceTag,
	}

	// Records without an explicit category fall back to the source tag.
	if record.Category == "" {
		record.Category = sourceTag
	}

	return record
}

// identifier returns the first present identifier field rendered as a
// string, since source files mix numeric and string IDs.
func identifier(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// text returns the first non-empty string value among the given keys
func text(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// number returns the first usable numeric value among the given keys,
// accepting JSON numbers and numeric strings. Returns nil when absent or
// unparsable, so merge logic can tell "missing" from zero.
func number(raw map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			value := v
			return &value
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

// texts returns the string elements of an array field, skipping anything
// that is not a string
func texts(raw map[string]interface{}, key string) []string {
	items, ok := raw[key].([]interface{})
	if !ok {
		return nil
	}

	var values []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			values = append(values, strings.TrimSpace(s))
		}
	}
	return values
}
