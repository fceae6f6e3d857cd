package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRecord_FieldAliases(t *testing.T) {
	raw := map[string]interface{}{
		"sku":   "AC-9",
		"title": "Wool Scarf",
		"desc":  "Brushed wool, fringed ends",
		"img":   "scarf.jpg",
	}

	record := MapRecord(raw, "accessory")

	assert.Equal(t, "AC-9", record.ID)
	assert.Equal(t, "Wool Scarf", record.Name)
	assert.Equal(t, "Brushed wool, fringed ends", record.Description)
	assert.Equal(t, "scarf.jpg", record.Image)
	assert.Equal(t, "accessory", record.Source)
}

func TestMapRecord_NumericID(t *testing.T) {
	record := MapRecord(map[string]interface{}{"id": float64(42)}, "top")
	assert.Equal(t, "42", record.ID)

	record = MapRecord(map[string]interface{}{"id": 42.5}, "top")
	assert.Equal(t, "42.5", record.ID)
}

func TestMapRecord_PriceCoercion(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		record := MapRecord(map[string]interface{}{"price": 19.99}, "top")
		require.NotNil(t, record.Price)
		assert.Equal(t, 19.99, *record.Price)
	})

	t.Run("numeric string", func(t *testing.T) {
		record := MapRecord(map[string]interface{}{"price": " 25.00 "}, "top")
		require.NotNil(t, record.Price)
		assert.Equal(t, 25.0, *record.Price)
	})

	t.Run("garbage string", func(t *testing.T) {
		record := MapRecord(map[string]interface{}{"price": "call us"}, "top")
		assert.Nil(t, record.Price)
	})

	t.Run("absent", func(t *testing.T) {
		record := MapRecord(map[string]interface{}{}, "top")
		assert.Nil(t, record.Price)
		assert.Nil(t, record.SalePrice)
	})
}

func TestMapRecord_CategoryFallsBackToTag(t *testing.T) {
	record := MapRecord(map[string]interface{}{"name": "Tee"}, "new")
	assert.Equal(t, "new", record.Category)

	record = MapRecord(map[string]interface{}{"name": "Tee", "category": "tops"}, "new")
	assert.Equal(t, "tops", record.Category)
}

func TestMapRecord_ArrayFields(t *testing.T) {
	raw := map[string]interface{}{
		"colors":  []interface{}{"black", "", "olive", 7},
		"sizes":   []interface{}{"S", "M"},
		"details": "not-an-array",
	}

	record := MapRecord(raw, "top")

	assert.Equal(t, []string{"black", "olive"}, record.Colors)
	assert.Equal(t, []string{"S", "M"}, record.Sizes)
	assert.Nil(t, record.Details)
}

func TestMapRecord_MalformedNeverErrors(t *testing.T) {
	// Every field the wrong type: the record degrades to zero values.
	raw := map[string]interface{}{
		"id":          []interface{}{"x"},
		"name":        12.0,
		"description": true,
		"price":       map[string]interface{}{},
		"colors":      "red",
	}

	record := MapRecord(raw, "top")

	assert.Equal(t, "", record.ID)
	assert.Equal(t, "", record.Name)
	assert.Equal(t, "", record.Description)
	assert.Nil(t, record.Price)
	assert.Nil(t, record.Colors)
	assert.Equal(t, "top", record.Source)
}
