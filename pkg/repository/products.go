// Package repository implements product CRUD on top of a document store.
// The whole collection lives in one JSON document; every mutation is a
// read-modify-write with the store's revision tag, retried once when a
// concurrent writer got there first.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/noft/catalog/pkg/models"
	"github.com/noft/catalog/pkg/store"
)

// ErrNotFound is returned when the referenced product id is not in the
// collection.
var ErrNotFound = errors.New("product not found")

// ValidationError rejects malformed input. Field names the offending
// field for the response body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ProductRepository owns the product collection document.
type ProductRepository struct {
	store store.Store
	now   func() time.Time
}

func NewProductRepository(s store.Store) *ProductRepository {
	return &ProductRepository{store: s, now: time.Now}
}

func (r *ProductRepository) load(ctx context.Context) ([]models.Product, string, error) {
	doc, err := r.store.Read(ctx, store.ProductsPath)
	if err != nil {
		return nil, "", err
	}
	if !doc.Found {
		return []models.Product{}, "", nil
	}
	var products []models.Product
	if err := json.Unmarshal(doc.Bytes, &products); err != nil {
		return nil, "", fmt.Errorf("decode products: %w", err)
	}
	return products, doc.Tag, nil
}

// mutate runs apply against a fresh read of the collection and writes
// the result back with the revision tag from that read. On a conflict it
// re-reads and reapplies once; a second conflict goes to the caller.
func (r *ProductRepository) mutate(ctx context.Context, apply func([]models.Product) ([]models.Product, error)) error {
	for attempt := 0; ; attempt++ {
		products, tag, err := r.load(ctx)
		if err != nil {
			return err
		}
		next, err := apply(products)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(next, "", "  ")
		if err != nil {
			return fmt.Errorf("encode products: %w", err)
		}
		_, err = r.store.Write(ctx, store.ProductsPath, data, tag)
		if errors.Is(err, store.ErrConflict) && attempt == 0 {
			continue
		}
		return err
	}
}

// List returns the full collection. A missing document reads as empty.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	products, _, err := r.load(ctx)
	return products, err
}

func (r *ProductRepository) Get(ctx context.Context, id string) (models.Product, error) {
	products, _, err := r.load(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Create validates and sanitizes the input, assigns a server-side id and
// appends the product. A missing original price defaults to the offer
// price so the storefront always has a base to strike through.
func (r *ProductRepository) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Product{}, &ValidationError{Field: "name", Message: "name is required"}
	}
	if in.OfferPrice <= 0 || math.IsNaN(in.OfferPrice) || math.IsInf(in.OfferPrice, 0) {
		return models.Product{}, &ValidationError{Field: "offerPrice", Message: "offerPrice must be a positive number"}
	}
	images := sanitizeImages(in.Images)
	if len(images) == 0 {
		return models.Product{}, &ValidationError{Field: "images", Message: "at least one image is required"}
	}

	price := in.Price
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = in.OfferPrice
	}

	product := models.Product{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
		OfferPrice:   in.OfferPrice,
		Images:       images,
		Brand:        strings.TrimSpace(in.Brand),
		Category:     normalizeCategory(in.Category),
		Sizes:        sanitizeSizes(in.Sizes),
		IsBestSeller: in.IsBestSeller,
	}

	err := r.mutate(ctx, func(products []models.Product) ([]models.Product, error) {
		product.ID = r.newID(products)
		return append(products, product), nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update merges the patch into the stored product. Fields absent from
// the patch keep their stored value; see models.ProductPatch for the
// images and sizes replacement rules.
func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	var updated models.Product
	err := r.mutate(ctx, func(products []models.Product) ([]models.Product, error) {
		idx := -1
		for i, p := range products {
			if p.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, ErrNotFound
		}

		p := products[idx]
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			p.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.OfferPrice != nil {
			p.OfferPrice = *patch.OfferPrice
		}
		if images := sanitizeImages(patch.Images); len(images) > 0 {
			p.Images = images
		}
		if patch.Brand != nil {
			p.Brand = strings.TrimSpace(*patch.Brand)
		}
		if patch.Category != nil {
			p.Category = normalizeCategory(*patch.Category)
		}
		if patch.Sizes != nil {
			p.Sizes = sanitizeSizes(*patch.Sizes)
		}
		if patch.IsBestSeller != nil {
			p.IsBestSeller = *patch.IsBestSeller
		}

		products[idx] = p
		updated = p
		return products, nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// Delete removes the product outright. There is no soft delete.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.mutate(ctx, func(products []models.Product) ([]models.Product, error) {
		filtered := products[:0:0]
		for _, p := range products {
			if p.ID != id {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == len(products) {
			return nil, ErrNotFound
		}
		return filtered, nil
	})
}

// newID mints a millisecond-timestamp id, bumping past any collision so
// ids stay unique and numerically ordered by creation time.
func (r *ProductRepository) newID(products []models.Product) string {
	taken := make(map[string]bool, len(products))
	for _, p := range products {
		taken[p.ID] = true
	}
	id := r.now().UnixMilli()
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	return strconv.FormatInt(id, 10)
}
