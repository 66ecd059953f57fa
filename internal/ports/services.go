package ports

import "github.com/shopfront/core/internal/domain/entities"

// SyncCatalogRequest is the bulk reconciliation payload sent by a client that
// wants its local catalog merged with the server's.
type SyncCatalogRequest struct {
	Products []*entities.Product `json:"products" validate:"required"`
}

// BroadcastEventRequest is the body of a relay broadcast.
type BroadcastEventRequest struct {
	Type      string         `json:"type" validate:"required"`
	BrowserID string         `json:"browserId" validate:"required"`
	DeviceID  string         `json:"deviceId"`
	Timestamp int64          `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}
