package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noft/catalog/pkg/models"
)

func TestSanitizeImages(t *testing.T) {
	in := []string{" https://a.jpg ", "", "   ", "https://b.jpg"}
	assert.Equal(t, []string{"https://a.jpg", "https://b.jpg"}, sanitizeImages(in))
	assert.Empty(t, sanitizeImages(nil))
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]string{
		"Shoes":   models.CategoryShoes,
		"shoes":   models.CategoryShoes,
		" SHOES ": models.CategoryShoes,
		"bags":    models.CategoryBags,
		"Bags":    models.CategoryBags,
		"hats":    "",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeCategory(in), "input %q", in)
	}
}

func TestSanitizeSizes(t *testing.T) {
	in := []float64{44, 42, 42.5, 42, math.NaN(), math.Inf(1), 40}
	want := []float64{40, 42, 42.5, 44}
	got := sanitizeSizes(in)
	assert.Equal(t, want, got)

	// Idempotent: sanitizing the result changes nothing.
	assert.Equal(t, got, sanitizeSizes(got))
}
