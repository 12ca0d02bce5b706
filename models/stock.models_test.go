package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImages(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		primary string
		want    []string
	}{
		{"json array", `["a.jpg","b.jpg"]`, "p.jpg", []string{"a.jpg", "b.jpg"}},
		{"json-encoded string containing array", `"[\"a.jpg\"]"`, "p.jpg", []string{"a.jpg"}},
		{"bare string", `"a.jpg"`, "p.jpg", []string{"a.jpg"}},
		{"empty string falls back to primary", `""`, "p.jpg", []string{"p.jpg"}},
		{"null falls back to primary", `null`, "p.jpg", []string{"p.jpg"}},
		{"absent falls back to primary", ``, "p.jpg", []string{"p.jpg"}},
		{"number falls back to primary", `42`, "p.jpg", []string{"p.jpg"}},
		{"absent with no primary is empty", ``, "", []string{}},
		{"empty array stays empty", `[]`, "p.jpg", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeImages(json.RawMessage(tt.raw), tt.primary)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `4.7`, 4.7},
		{"numeric string", `"4.7"`, 4.7},
		{"integer string", `"3"`, 3},
		{"garbage string", `"not a number"`, 0},
		{"null", `null`, 0},
		{"absent", ``, 0},
		{"object", `{"stars":5}`, 0},
		{"negative clamps to zero", `-1.5`, 0},
		{"above five clamps to five", `9.9`, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceRating(json.RawMessage(tt.raw)))
		})
	}
}

func TestToStockItemNormalizesPayload(t *testing.T) {
	var input StockItemInput
	body := `{
		"name": "Pixel 8",
		"brand": "Google",
		"price": 59999,
		"image": "a.jpg",
		"images": "[\"a.jpg\"]",
		"rating": "4.7",
		"type": "mobile"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &input))

	item := input.ToStockItem()
	assert.Equal(t, "Pixel 8", item.Name)
	assert.Equal(t, 59999, item.Price)
	assert.Equal(t, []string{"a.jpg"}, item.Images)
	assert.NotEmpty(t, item.Images)
	assert.Equal(t, 4.7, item.Rating)
	assert.GreaterOrEqual(t, item.Rating, 0.0)
	assert.LessOrEqual(t, item.Rating, 5.0)
	assert.NotNil(t, item.Features)
}
