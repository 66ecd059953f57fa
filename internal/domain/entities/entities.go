package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrEventTypeRequired = errors.New("event type is required")
	ErrBrowserIDRequired = errors.New("browser id is required")
	ErrEmptyCatalog      = errors.New("catalog payload is empty")
)

// productFields are the keys the server understands; everything else a client
// sends is kept verbatim in Product.Extra so the record stays schema-less.
var productFields = map[string]struct{}{
	"id": {}, "name": {}, "description": {}, "category": {}, "features": {},
	"price": {}, "pageViews": {}, "lastUpdated": {}, "createdAt": {}, "deletedAt": {},
}

// Product represents one catalog record. The collection is persisted wholesale
// as a single JSON array; id is the only required field.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Features    []string       `json:"features,omitempty"`
	Price       string         `json:"price,omitempty"`
	PageViews   int64          `json:"pageViews,omitempty"`
	LastUpdated int64          `json:"lastUpdated,omitempty"`
	CreatedAt   int64          `json:"createdAt,omitempty"`
	DeletedAt   int64          `json:"deletedAt,omitempty"`
	Extra       map[string]any `json:"-"`
}

// IsDeleted reports whether the record is a tombstone.
func (p *Product) IsDeleted() bool {
	return p.DeletedAt > 0
}

// NewerThan reports whether p wins a last-write-wins comparison against other.
// Ties break toward the existing record, keeping merges idempotent.
func (p *Product) NewerThan(other *Product) bool {
	return p.LastUpdated > other.LastUpdated
}

// Clone returns a deep copy so callers can hand records out without sharing
// mutable state.
func (p *Product) Clone() *Product {
	cp := *p
	if p.Features != nil {
		cp.Features = append([]string(nil), p.Features...)
	}
	if p.Extra != nil {
		cp.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

// MarshalJSON flattens Extra back into the top-level object. Known fields win
// over stale Extra keys of the same name.
func (p *Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+10)
	for k, v := range p.Extra {
		if _, known := productFields[k]; !known {
			out[k] = v
		}
	}
	out["id"] = p.ID
	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.Category != "" {
		out["category"] = p.Category
	}
	if len(p.Features) > 0 {
		out["features"] = p.Features
	}
	if p.Price != "" {
		out["price"] = p.Price
	}
	if p.PageViews != 0 {
		out["pageViews"] = p.PageViews
	}
	if p.LastUpdated != 0 {
		out["lastUpdated"] = p.LastUpdated
	}
	if p.CreatedAt != 0 {
		out["createdAt"] = p.CreatedAt
	}
	if p.DeletedAt != 0 {
		out["deletedAt"] = p.DeletedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts arbitrary product objects: known fields are decoded
// into their typed slots, everything else lands in Extra. Timestamps arrive
// either as epoch milliseconds or as RFC 3339 strings depending on the client
// and are normalized to epoch milliseconds.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{}
	for key, val := range raw {
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(val, &p.ID)
		case "name":
			err = json.Unmarshal(val, &p.Name)
		case "description":
			err = json.Unmarshal(val, &p.Description)
		case "category":
			err = json.Unmarshal(val, &p.Category)
		case "features":
			err = json.Unmarshal(val, &p.Features)
		case "price":
			err = json.Unmarshal(val, &p.Price)
		case "pageViews":
			p.PageViews, err = decodeEpochMillis(val)
		case "lastUpdated":
			p.LastUpdated, err = decodeEpochMillis(val)
		case "createdAt":
			p.CreatedAt, err = decodeEpochMillis(val)
		case "deletedAt":
			p.DeletedAt, err = decodeEpochMillis(val)
		default:
			var v any
			if err = json.Unmarshal(val, &v); err == nil {
				if p.Extra == nil {
					p.Extra = make(map[string]any)
				}
				p.Extra[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("invalid product field %q: %w", key, err)
		}
	}
	return nil
}

// decodeEpochMillis reads a JSON number as epoch milliseconds, also accepting
// RFC 3339 strings for clients that still send ISO timestamps.
func decodeEpochMillis(data json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return int64(f), nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// SyncEvent is a transient "something changed" notification broadcast by one
// browser tab and polled by the others. It carries no authoritative state.
type SyncEvent struct {
	Type       string         `json:"type"`
	BrowserID  string         `json:"browserId"`
	DeviceID   string         `json:"deviceId,omitempty"`
	Timestamp  int64          `json:"timestamp"`
	ReceivedAt int64          `json:"receivedAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Key returns the dedup key for the relay table.
func (e *SyncEvent) Key() string {
	return fmt.Sprintf("%s_%d", e.BrowserID, e.Timestamp)
}
