package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Feature is one label/value pair in a stock item's spec sheet,
// e.g. {"Display", "6.7 inch OLED"}. Order is preserved.
type Feature struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

// StockItem represents a catalog product (mobile phone or accessory)
type StockItem struct {
	ID         int       `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Brand      string    `bson:"brand" json:"brand"`
	Price      int       `bson:"price" json:"price"`
	OS         string    `bson:"os,omitempty" json:"os,omitempty"` // "Android" or "iOS", mobiles only
	Features   []Feature `bson:"features" json:"features"`
	Image      string    `bson:"image" json:"image"`
	Images     []string  `bson:"images" json:"images"`
	Rating     float64   `bson:"rating" json:"rating"`
	Reviews    int       `bson:"reviews" json:"reviews"`
	InStock    bool      `bson:"in_stock" json:"inStock"`
	StockCount int       `bson:"stock_count" json:"stockCount"`
	IsNew      bool      `bson:"is_new" json:"isNew"`
	IsHot      bool      `bson:"is_hot" json:"isHot"`
	Type       string    `bson:"type" json:"type"` // "mobile" or "accessory"
	Category   string    `bson:"category" json:"category"`
}

// StockItemInput is the create payload. Images and Rating are kept raw
// because the admin panel has historically sent them in several shapes
// (bare string, JSON-encoded string, array; rating as string or number).
type StockItemInput struct {
	Name       string          `json:"name" validate:"required"`
	Brand      string          `json:"brand" validate:"required"`
	Price      int             `json:"price" validate:"gte=0"`
	OS         string          `json:"os" validate:"omitempty,oneof=Android iOS"`
	Features   []Feature       `json:"features"`
	Image      string          `json:"image"`
	Images     json.RawMessage `json:"images"`
	Rating     json.RawMessage `json:"rating"`
	Reviews    int             `json:"reviews" validate:"gte=0"`
	InStock    bool            `json:"inStock"`
	StockCount int             `json:"stockCount" validate:"gte=0"`
	IsNew      bool            `json:"isNew"`
	IsHot      bool            `json:"isHot"`
	Type       string          `json:"type" validate:"omitempty,oneof=mobile accessory"`
	Category   string          `json:"category"`
}

// ToStockItem normalizes the raw payload into a canonical StockItem.
// The store-assigned ID is filled in by the caller.
func (in *StockItemInput) ToStockItem() StockItem {
	features := in.Features
	if features == nil {
		features = []Feature{}
	}
	return StockItem{
		Name:       in.Name,
		Brand:      in.Brand,
		Price:      in.Price,
		OS:         in.OS,
		Features:   features,
		Image:      in.Image,
		Images:     NormalizeImages(in.Images, in.Image),
		Rating:     CoerceRating(in.Rating),
		Reviews:    in.Reviews,
		InStock:    in.InStock,
		StockCount: in.StockCount,
		IsNew:      in.IsNew,
		IsHot:      in.IsHot,
		Type:       in.Type,
		Category:   in.Category,
	}
}

// StockItemUpdate holds the updatable fields of a stock item. Pointer
// fields distinguish "not sent" from zero values.
type StockItemUpdate struct {
	Name       *string         `json:"name"`
	Brand      *string         `json:"brand"`
	Price      *int            `json:"price"`
	OS         *string         `json:"os"`
	Features   []Feature       `json:"features"`
	Image      *string         `json:"image"`
	Images     json.RawMessage `json:"images"`
	Rating     json.RawMessage `json:"rating"`
	Reviews    *int            `json:"reviews"`
	InStock    *bool           `json:"inStock"`
	StockCount *int            `json:"stockCount"`
	IsNew      *bool           `json:"isNew"`
	IsHot      *bool           `json:"isHot"`
	Type       *string         `json:"type"`
	Category   *string         `json:"category"`
}

// NormalizeImages turns the ambiguous image-gallery field into a canonical
// ordered slice of URLs. Accepted shapes: a JSON array of strings, a
// JSON-encoded string that itself contains an array, or a bare string.
// Anything else falls back to a single-element slice built from the
// primary image, or an empty slice when there is no primary image either.
func NormalizeImages(raw json.RawMessage, primary string) []string {
	fallback := func() []string {
		if primary != "" {
			return []string{primary}
		}
		return []string{}
	}

	if len(raw) == 0 || string(raw) == "null" {
		return fallback()
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback()
	}

	// The string may itself be JSON, e.g. "[\"a.jpg\"]".
	var inner []string
	if err := json.Unmarshal([]byte(s), &inner); err == nil {
		return inner
	}
	if s != "" {
		return []string{s}
	}
	return fallback()
}

// CoerceRating parses the rating field from either a JSON number or a
// numeric string, clamping the result to the valid [0,5] range.
// Unparseable or non-finite input yields 0.
func CoerceRating(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 5 {
		return 5
	}
	return f
}
