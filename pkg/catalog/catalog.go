// Package catalog composes the product collection with the sale
// configuration into the priced listing the storefront renders. Nothing
// here touches the store: composition is a pure function of its inputs,
// and filtering/sorting layer on top without affecting pricing.
package catalog

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noft/catalog/pkg/models"
	"github.com/noft/catalog/pkg/sale"
)

// Entry is a product with its price resolved against the sale document
// at a specific instant.
type Entry struct {
	models.Product
	EffectivePrice float64 `json:"effectivePrice"`
	SaleActive     bool    `json:"saleActive"`
}

// Compose prices every product against the current campaign as of the
// given instant.
func Compose(products []models.Product, doc models.SaleDocument, asOf time.Time) []Entry {
	// Campaign activity does not depend on the product, so resolve it
	// once instead of re-parsing the window dates per entry.
	active := sale.IsActive(doc.Current, asOf)

	entries := make([]Entry, 0, len(products))
	for _, p := range products {
		price := p.OfferPrice
		if active {
			price = sale.EffectivePrice(p, doc.Current, asOf)
		}
		entries = append(entries, Entry{
			Product:        p,
			EffectivePrice: price,
			SaleActive:     active,
		})
	}
	return entries
}

// Query narrows a listing. Empty fields match everything. Brand matching
// ignores case and surrounding whitespace; Search matches a substring of
// the product name, also case-insensitively.
type Query struct {
	Brand    string
	Category string
	Search   string
}

// Filter applies the query. Products without a recognized category are
// treated as Shoes, matching how the storefront shelves them.
func Filter(entries []Entry, q Query) []Entry {
	brand := strings.ToLower(strings.TrimSpace(q.Brand))
	category := strings.TrimSpace(q.Category)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if brand != "" && strings.ToLower(strings.TrimSpace(e.Brand)) != brand {
			continue
		}
		if category != "" {
			got := e.Category
			if got == "" {
				got = models.CategoryShoes
			}
			if !strings.EqualFold(got, category) {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sort orders supported by the storefront.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortFeatured  = "featured"
	SortShuffle   = "shuffle"
)

// Sort orders entries in place. Unknown modes leave the listing as-is.
// Shuffle draws from rng so callers control determinism.
func Sort(entries []Entry, mode string, rng *rand.Rand) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].EffectivePrice < entries[j].EffectivePrice
		})
	case SortPriceDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].EffectivePrice > entries[j].EffectivePrice
		})
	case SortNewest:
		sort.SliceStable(entries, func(i, j int) bool {
			return recency(entries[i]) > recency(entries[j])
		})
	case SortFeatured:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].IsBestSeller != entries[j].IsBestSeller {
				return entries[i].IsBestSeller
			}
			return recency(entries[i]) > recency(entries[j])
		})
	case SortShuffle:
		if rng != nil {
			rng.Shuffle(len(entries), func(i, j int) {
				entries[i], entries[j] = entries[j], entries[i]
			})
		}
	}
}

// recency uses the numeric id as a creation-time proxy: ids are minted
// from millisecond timestamps, so a higher value is a newer product.
func recency(e Entry) int64 {
	n, err := strconv.ParseInt(e.ID, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
