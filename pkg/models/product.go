package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Product categories the storefront recognizes. Anything else is stored
// as the empty string and treated as unclassified.
const (
	CategoryShoes = "Shoes"
	CategoryBags  = "Bags"
)

// Product is one catalog entry. The price pair mirrors the storefront:
// Price is the struck-through original list price, OfferPrice is what the
// item actually sells for outside a sale.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	OfferPrice   float64   `json:"offerPrice"`
	Images       []string  `json:"images"`
	Brand        string    `json:"brand,omitempty"`
	Category     string    `json:"category,omitempty"`
	Sizes        []float64 `json:"sizes,omitempty"`
	IsBestSeller bool      `json:"isBestSeller,omitempty"`
}

// ProductInput carries the fields an admin submits when creating a
// product. The server assigns the id.
type ProductInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	OfferPrice   float64  `json:"offerPrice"`
	Images       []string `json:"images"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	Sizes        SizeList `json:"sizes"`
	IsBestSeller bool     `json:"isBestSeller"`
}

// ProductPatch is a partial update. Pointer fields distinguish "not sent"
// from a zero value: an omitted field keeps the stored value. Images are
// replaced only when a non-empty list is supplied; Sizes follow the
// pointer, so an explicit empty array clears them.
type ProductPatch struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	OfferPrice   *float64  `json:"offerPrice"`
	Images       []string  `json:"images"`
	Brand        *string   `json:"brand"`
	Category     *string   `json:"category"`
	Sizes        *SizeList `json:"sizes"`
	IsBestSeller *bool     `json:"isBestSeller"`
}

// SizeList unmarshals a JSON array of sizes, accepting numbers as well as
// numeric strings (the admin form historically sent either). Entries that
// are neither are dropped rather than failing the request.
type SizeList []float64

func (s *SizeList) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(SizeList, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case float64:
			out = append(out, n)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				out = append(out, f)
			}
		}
	}
	*s = out
	return nil
}
