package catalog

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noft/catalog/pkg/models"
)

var testCampaign = &models.Campaign{
	Name:      "Winter Sale",
	Price:     300,
	StartDate: "2024-01-01",
	EndDate:   "2024-01-31",
	Enabled:   true,
}

func testProducts() []models.Product {
	return []models.Product{
		{ID: "1700000000001", Name: "Air Zoom", Price: 2000, OfferPrice: 1800, Brand: "Nike", Category: models.CategoryShoes},
		{ID: "1700000000002", Name: "Court Tote", Price: 900, OfferPrice: 850, Brand: "Adidas", Category: models.CategoryBags},
		{ID: "1700000000003", Name: "Street Runner", OfferPrice: 400, Brand: "Nike", IsBestSeller: true},
	}
}

func asOf(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComposeAppliesSale(t *testing.T) {
	doc := models.SaleDocument{Current: testCampaign}
	entries := Compose(testProducts(), doc, asOf("2024-01-15T12:00:00Z"))
	require.Len(t, entries, 3)

	assert.Equal(t, 1700.0, entries[0].EffectivePrice)
	assert.Equal(t, 600.0, entries[1].EffectivePrice)
	assert.Equal(t, 100.0, entries[2].EffectivePrice, "no list price: discount comes off the offer price")
	for _, e := range entries {
		assert.True(t, e.SaleActive)
	}
}

func TestComposeOutsideWindow(t *testing.T) {
	doc := models.SaleDocument{Current: testCampaign}
	entries := Compose(testProducts(), doc, asOf("2024-02-01T00:00:00Z"))

	for i, e := range entries {
		assert.Equal(t, testProducts()[i].OfferPrice, e.EffectivePrice)
		assert.False(t, e.SaleActive)
	}
}

func TestComposeNoCampaign(t *testing.T) {
	entries := Compose(testProducts(), models.SaleDocument{}, asOf("2024-01-15T12:00:00Z"))
	for i, e := range entries {
		assert.Equal(t, testProducts()[i].OfferPrice, e.EffectivePrice)
		assert.False(t, e.SaleActive)
	}
}

func compose(t *testing.T) []Entry {
	t.Helper()
	return Compose(testProducts(), models.SaleDocument{}, asOf("2024-01-15T12:00:00Z"))
}

func TestFilterBrand(t *testing.T) {
	entries := Filter(compose(t), Query{Brand: " nike "})
	require.Len(t, entries, 2)
	assert.Equal(t, "Air Zoom", entries[0].Name)
	assert.Equal(t, "Street Runner", entries[1].Name)
}

func TestFilterCategoryDefaultsToShoes(t *testing.T) {
	// Street Runner has no category; the storefront shelves it as Shoes.
	entries := Filter(compose(t), Query{Category: "shoes"})
	require.Len(t, entries, 2)
	assert.Equal(t, "Air Zoom", entries[0].Name)
	assert.Equal(t, "Street Runner", entries[1].Name)

	entries = Filter(compose(t), Query{Category: "Bags"})
	require.Len(t, entries, 1)
	assert.Equal(t, "Court Tote", entries[0].Name)
}

func TestFilterSearch(t *testing.T) {
	entries := Filter(compose(t), Query{Search: "runner"})
	require.Len(t, entries, 1)
	assert.Equal(t, "Street Runner", entries[0].Name)

	assert.Empty(t, Filter(compose(t), Query{Search: "boots"}))
}

func TestSortModes(t *testing.T) {
	entries := compose(t)

	Sort(entries, SortPriceAsc, nil)
	assert.Equal(t, []string{"Street Runner", "Court Tote", "Air Zoom"}, names(entries))

	Sort(entries, SortPriceDesc, nil)
	assert.Equal(t, []string{"Air Zoom", "Court Tote", "Street Runner"}, names(entries))

	Sort(entries, SortNewest, nil)
	assert.Equal(t, []string{"Street Runner", "Court Tote", "Air Zoom"}, names(entries))

	Sort(entries, SortFeatured, nil)
	assert.Equal(t, []string{"Street Runner", "Court Tote", "Air Zoom"}, names(entries),
		"best sellers lead, the rest follow by recency")
}

func TestSortUnknownModeKeepsOrder(t *testing.T) {
	entries := compose(t)
	before := names(entries)
	Sort(entries, "price-sideways", nil)
	assert.Equal(t, before, names(entries))
}

func TestSortShuffleIsAPermutation(t *testing.T) {
	entries := compose(t)
	Sort(entries, SortShuffle, rand.New(rand.NewSource(7)))

	assert.ElementsMatch(t, []string{"Air Zoom", "Court Tote", "Street Runner"}, names(entries))
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
