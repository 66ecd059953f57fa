package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/config"
	"github.com/shopfront/core/internal/infrastructure/logger"
)

// SyncService is the in-memory relay for cross-tab sync notifications.
// Events live in one table keyed by "{browserId}_{timestamp}". Visibility is
// decided purely by TTL at read time; the capacity trim on insert and the
// periodic sweep only reclaim memory and never widen or narrow what a poll
// can see. The table is per-process transient state: a restart drops it, and
// the durable catalog remains the source of truth.
type SyncService struct {
	cfg    config.SyncConfig
	logger *logger.Logger

	mu     sync.Mutex
	events map[string]*entities.SyncEvent

	now func() time.Time
}

// NewSyncService creates a new sync relay
func NewSyncService(cfg config.SyncConfig, appLogger *logger.Logger) *SyncService {
	return &SyncService{
		cfg:    cfg,
		logger: appLogger.WithComponent("sync_relay"),
		events: make(map[string]*entities.SyncEvent),
		now:    time.Now,
	}
}

// Broadcast stores an event for other browsers to poll and returns the table
// size. Missing type is a client error. When the table grows past the
// capacity limit, only the newest events (by client timestamp) are retained.
func (s *SyncService) Broadcast(event *entities.SyncEvent) (int, error) {
	if event.Type == "" {
		return 0, entities.ErrEventTypeRequired
	}
	if event.BrowserID == "" {
		return 0, entities.ErrBrowserIDRequired
	}
	if event.Timestamp == 0 {
		event.Timestamp = s.now().UnixMilli()
	}
	event.ReceivedAt = s.now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.Key()] = event

	if len(s.events) > s.cfg.MaxEvents {
		s.trimLocked()
	}

	s.logger.Debug("Event broadcast", "type", event.Type, "browser_id", event.BrowserID, "table_size", len(s.events))

	return len(s.events), nil
}

// Poll returns up to the configured limit of unexpired events newer than
// since, excluding the caller's own broadcasts, newest first. The second
// return value is the current table size.
func (s *SyncService) Poll(browserID string, since int64) ([]*entities.SyncEvent, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cfg.EventTTL).UnixMilli()

	result := make([]*entities.SyncEvent, 0)
	for _, e := range s.events {
		if e.BrowserID == browserID {
			continue
		}
		if e.Timestamp <= since {
			continue
		}
		if e.ReceivedAt < cutoff {
			continue
		}
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})

	if len(result) > s.cfg.PollLimit {
		result = result[:s.cfg.PollLimit]
	}

	return result, len(s.events)
}

// Size returns the current table size.
func (s *SyncService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Run sweeps expired events on the configured interval until ctx is done.
func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sync relay janitor stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops events whose server receipt time is older than the TTL.
func (s *SyncService) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cfg.EventTTL).UnixMilli()
	removed := 0
	for key, e := range s.events {
		if e.ReceivedAt < cutoff {
			delete(s.events, key)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Debug("Swept expired events", "removed", removed, "remaining", len(s.events))
	}
}

// trimLocked keeps only the newest events by client timestamp. Callers must
// hold the lock.
func (s *SyncService) trimLocked() {
	all := make([]*entities.SyncEvent, 0, len(s.events))
	for _, e := range s.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp > all[j].Timestamp
	})

	for _, e := range all[s.cfg.RetainEvents:] {
		delete(s.events, e.Key())
	}

	s.logger.Debug("Trimmed event table", "retained", len(s.events))
}
