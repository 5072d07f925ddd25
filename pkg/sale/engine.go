// Package sale tracks the storewide discount campaign and computes
// effective prices. The activation window is evaluated at day
// granularity against an instant the caller supplies, never an ambient
// clock, so pricing is deterministic.
package sale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noft/catalog/pkg/models"
	"github.com/noft/catalog/pkg/store"
)

const dateLayout = "2006-01-02"

// Engine owns the sale document.
type Engine struct {
	store store.Store
	now   func() time.Time
}

func NewEngine(s store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

func (e *Engine) load(ctx context.Context) (models.SaleDocument, string, error) {
	raw, err := e.store.Read(ctx, store.SalePath)
	if err != nil {
		return models.SaleDocument{}, "", err
	}
	if !raw.Found {
		return models.SaleDocument{History: []models.SaleHistoryEntry{}}, "", nil
	}
	var doc models.SaleDocument
	if err := json.Unmarshal(raw.Bytes, &doc); err != nil {
		return models.SaleDocument{}, "", fmt.Errorf("decode sale document: %w", err)
	}
	if doc.History == nil {
		doc.History = []models.SaleHistoryEntry{}
	}
	return doc, raw.Tag, nil
}

// Document returns the persisted sale configuration. A missing document
// reads as "no campaign, empty history".
func (e *Engine) Document(ctx context.Context) (models.SaleDocument, error) {
	doc, _, err := e.load(ctx)
	return doc, err
}

// SetCurrent replaces the configured campaign, or clears it when c is
// nil. An enabled, named campaign not yet present in the history (same
// name, startDate, endDate and price) is archived with a fresh id and
// the promotion time before the replacement is stored. History entries
// are never rewritten.
func (e *Engine) SetCurrent(ctx context.Context, c *models.Campaign) (models.SaleDocument, error) {
	for attempt := 0; ; attempt++ {
		doc, tag, err := e.load(ctx)
		if err != nil {
			return models.SaleDocument{}, err
		}

		if c != nil && c.Enabled && strings.TrimSpace(c.Name) != "" && !inHistory(doc.History, *c) {
			doc.History = append(doc.History, models.SaleHistoryEntry{
				ID:        uuid.New().String(),
				Campaign:  *c,
				EnabledAt: e.now(),
			})
		}
		doc.Current = c

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return models.SaleDocument{}, fmt.Errorf("encode sale document: %w", err)
		}
		_, err = e.store.Write(ctx, store.SalePath, data, tag)
		if errors.Is(err, store.ErrConflict) && attempt == 0 {
			continue
		}
		if err != nil {
			return models.SaleDocument{}, err
		}
		return doc, nil
	}
}

func inHistory(history []models.SaleHistoryEntry, c models.Campaign) bool {
	for _, entry := range history {
		if entry.Name == c.Name && entry.StartDate == c.StartDate &&
			entry.EndDate == c.EndDate && entry.Price == c.Price {
			return true
		}
	}
	return false
}

// IsActive reports whether the campaign discounts prices at the given
// instant: it must be enabled, carry a positive discount, and the
// instant must fall between 00:00:00 of the start date and 23:59:59 of
// the end date in the instant's location. A campaign with missing or
// malformed dates is simply never active.
func IsActive(c *models.Campaign, asOf time.Time) bool {
	if c == nil || !c.Enabled {
		return false
	}
	if !(c.Price > 0) || math.IsInf(c.Price, 0) {
		return false
	}
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.StartDate), asOf.Location())
	if err != nil {
		return false
	}
	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.EndDate), asOf.Location())
	if err != nil {
		return false
	}
	return !asOf.Before(start) && asOf.Before(end.AddDate(0, 0, 1))
}

// EffectivePrice is the price a buyer pays at the given instant. While
// the campaign is inactive that is the product's offer price. While it
// is active the discount comes off the original list price when one is
// set, otherwise off the offer price, floored at zero.
func EffectivePrice(p models.Product, c *models.Campaign, asOf time.Time) float64 {
	if !IsActive(c, asOf) {
		return p.OfferPrice
	}
	base := p.OfferPrice
	if p.Price > 0 {
		base = p.Price
	}
	return math.Max(0, base-c.Price)
}
