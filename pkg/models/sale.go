package models

import (
	"encoding/json"
	"time"
)

// Campaign is a storewide flat-amount discount. Price is subtracted from
// a product's base price while the campaign is active. StartDate and
// EndDate are calendar days ("2006-01-02"), both inclusive. Enabled is a
// manual kill switch independent of the window.
type Campaign struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Enabled     bool    `json:"enabled"`
}

// SaleHistoryEntry is an archived snapshot of a campaign, tagged with a
// generated id and the time it was promoted to current.
type SaleHistoryEntry struct {
	ID string `json:"id"`
	Campaign
	EnabledAt time.Time `json:"enabledAt"`
}

// SaleDocument is the single persisted sale configuration: the campaign
// currently in effect (if any) and the append-only history of campaigns
// that were ever enabled.
type SaleDocument struct {
	Current *Campaign          `json:"current"`
	History []SaleHistoryEntry `json:"history"`
}

// UnmarshalJSON accepts the current wrapper shape as well as the legacy
// layout where the stored document was the campaign object itself. A
// legacy document is normalized to {current: campaign, history: []}.
func (d *SaleDocument) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	_, hasCurrent := probe["current"]
	_, hasHistory := probe["history"]
	if hasCurrent || hasHistory {
		type wrapper SaleDocument
		var w wrapper
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*d = SaleDocument(w)
		return nil
	}

	var legacy Campaign
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	d.History = []SaleHistoryEntry{}
	if legacy != (Campaign{}) {
		d.Current = &legacy
	} else {
		d.Current = nil
	}
	return nil
}
