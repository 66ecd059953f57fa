package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/core/internal/application/services"
	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/logger"
	"github.com/shopfront/core/internal/ports"
)

// SyncHandler handles cross-browser sync relay requests
type SyncHandler struct {
	syncService *services.SyncService
	logger      *logger.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *services.SyncService, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// BroadcastEvent handles storing a sync event for other browsers to poll
func (h *SyncHandler) BroadcastEvent(c echo.Context) error {
	var req ports.BroadcastEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &entities.SyncEvent{
		Type:      req.Type,
		BrowserID: req.BrowserID,
		DeviceID:  req.DeviceID,
		Timestamp: req.Timestamp,
		Payload:   req.Payload,
	}

	count, err := h.syncService.Broadcast(event)
	if err != nil {
		h.logger.Error("Broadcast failed", "error", err, "browser_id", req.BrowserID)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, BroadcastResponse{Success: true, EventCount: count})
}

// PollEvents handles fetching recent events from other browsers
func (h *SyncHandler) PollEvents(c echo.Context) error {
	browserID := c.QueryParam("browserId")
	if browserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "browserId is required")
	}

	var since int64
	if sinceStr := c.QueryParam("since"); sinceStr != "" {
		parsed, err := strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid since parameter")
		}
		since = parsed
	}

	events, total := h.syncService.Poll(browserID, since)

	return c.JSON(http.StatusOK, EventsResponse{
		Success:     true,
		Events:      events,
		TotalEvents: total,
	})
}
