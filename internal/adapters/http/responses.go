package http

import "github.com/shopfront/core/internal/domain/entities"

// ProductResponse wraps a single stored product
type ProductResponse struct {
	Success bool              `json:"success"`
	Product *entities.Product `json:"product"`
}

// DeleteResponse reports a completed delete
type DeleteResponse struct {
	Success bool `json:"success"`
}

// SyncCatalogResponse reports the outcome of a bulk catalog merge
type SyncCatalogResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// ViewsResponse carries an updated page view counter
type ViewsResponse struct {
	Success   bool  `json:"success"`
	PageViews int64 `json:"pageViews"`
}

// BroadcastResponse reports a stored sync event and the relay table size
type BroadcastResponse struct {
	Success    bool `json:"success"`
	EventCount int  `json:"eventCount"`
}

// EventsResponse carries the events visible to a polling browser
type EventsResponse struct {
	Success     bool                  `json:"success"`
	Events      []*entities.SyncEvent `json:"events"`
	TotalEvents int                   `json:"totalEvents"`
}

// MessagesResponse carries the resolved message table for a locale
type MessagesResponse struct {
	Success  bool              `json:"success"`
	Locale   string            `json:"locale"`
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}

// PriceResponse carries a localized price
type PriceResponse struct {
	Success   bool   `json:"success"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}
