package repository

import (
	"math"
	"sort"
	"strings"

	"github.com/noft/catalog/pkg/models"
)

// sanitizeImages trims each reference and drops blanks.
func sanitizeImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

// normalizeCategory maps input onto the closed category set, ignoring
// case and surrounding whitespace. Unrecognized values become "".
func normalizeCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case strings.ToLower(models.CategoryShoes):
		return models.CategoryShoes
	case strings.ToLower(models.CategoryBags):
		return models.CategoryBags
	default:
		return ""
	}
}

// sanitizeSizes drops non-finite values, removes duplicates and sorts
// ascending. Idempotent: sanitizing a sanitized list is a no-op.
func sanitizeSizes(sizes []float64) []float64 {
	seen := make(map[float64]bool, len(sizes))
	out := make([]float64, 0, len(sizes))
	for _, size := range sizes {
		if math.IsNaN(size) || math.IsInf(size, 0) {
			continue
		}
		if seen[size] {
			continue
		}
		seen[size] = true
		out = append(out, size)
	}
	sort.Float64s(out)
	return out
}
