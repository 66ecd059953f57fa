package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/config"
	"github.com/shopfront/core/internal/infrastructure/logger"
)

func testSyncConfig() config.SyncConfig {
	return config.SyncConfig{
		EventTTL:      5 * time.Minute,
		SweepInterval: time.Minute,
		MaxEvents:     100,
		RetainEvents:  50,
		PollLimit:     50,
	}
}

func newTestRelay(t *testing.T) (*SyncService, *time.Time) {
	t.Helper()

	now := time.Now()
	s := NewSyncService(testSyncConfig(), logger.NewNop())
	s.now = func() time.Time { return now }
	return s, &now
}

func event(browserID string, ts int64) *entities.SyncEvent {
	return &entities.SyncEvent{
		Type:      "product-updated",
		BrowserID: browserID,
		Timestamp: ts,
	}
}

func TestBroadcast_RequiresType(t *testing.T) {
	s, _ := newTestRelay(t)

	_, err := s.Broadcast(&entities.SyncEvent{BrowserID: "b1", Timestamp: 1})
	assert.ErrorIs(t, err, entities.ErrEventTypeRequired)
	assert.Equal(t, 0, s.Size())
}

func TestBroadcast_RequiresBrowserID(t *testing.T) {
	s, _ := newTestRelay(t)

	_, err := s.Broadcast(&entities.SyncEvent{Type: "product-updated"})
	assert.ErrorIs(t, err, entities.ErrBrowserIDRequired)
}

func TestBroadcast_ReturnsTableSize(t *testing.T) {
	s, _ := newTestRelay(t)

	count, err := s.Broadcast(event("b1", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.Broadcast(event("b2", 2))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBroadcast_DedupsByBrowserAndTimestamp(t *testing.T) {
	s, _ := newTestRelay(t)

	_, err := s.Broadcast(event("b1", 42))
	require.NoError(t, err)
	count, err := s.Broadcast(event("b1", 42))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPoll_ExcludesOwnEvents(t *testing.T) {
	s, _ := newTestRelay(t)

	_, err := s.Broadcast(event("me", 10))
	require.NoError(t, err)
	_, err = s.Broadcast(event("other", 20))
	require.NoError(t, err)

	events, total := s.Poll("me", 0)
	assert.Equal(t, 2, total)
	require.Len(t, events, 1)
	assert.Equal(t, "other", events[0].BrowserID)

	// The broadcaster never replays its own action, even inside the TTL
	events, _ = s.Poll("other", 0)
	require.Len(t, events, 1)
	assert.Equal(t, "me", events[0].BrowserID)
}

func TestPoll_SinceFilter(t *testing.T) {
	s, _ := newTestRelay(t)

	for i := int64(1); i <= 5; i++ {
		_, err := s.Broadcast(event("other", i*100))
		require.NoError(t, err)
	}

	events, _ := s.Poll("me", 300)
	require.Len(t, events, 2)
	// Newest first
	assert.Equal(t, int64(500), events[0].Timestamp)
	assert.Equal(t, int64(400), events[1].Timestamp)
}

func TestPoll_TTLExpiry(t *testing.T) {
	s, now := newTestRelay(t)
	base := *now

	_, err := s.Broadcast(event("other", base.UnixMilli()))
	require.NoError(t, err)

	// Visible four minutes later
	*now = base.Add(4 * time.Minute)
	events, _ := s.Poll("me", 0)
	assert.Len(t, events, 1)

	// Expired six minutes later, even without a sweep in between
	*now = base.Add(6 * time.Minute)
	events, _ = s.Poll("me", 0)
	assert.Empty(t, events)
}

func TestSweep_RemovesExpiredEvents(t *testing.T) {
	s, now := newTestRelay(t)
	base := *now

	_, err := s.Broadcast(event("other", base.UnixMilli()))
	require.NoError(t, err)

	*now = base.Add(4 * time.Minute)
	s.sweep()
	assert.Equal(t, 1, s.Size())

	*now = base.Add(6 * time.Minute)
	s.sweep()
	assert.Equal(t, 0, s.Size())
}

func TestCapacityEviction_KeepsNewest(t *testing.T) {
	s, _ := newTestRelay(t)

	for i := 1; i <= 101; i++ {
		_, err := s.Broadcast(event(fmt.Sprintf("b%d", i), int64(i)))
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, s.Size(), 50)

	// The retained events are the newest by timestamp
	events, _ := s.Poll("none", 0)
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Greater(t, e.Timestamp, int64(51))
	}
}

func TestPoll_LimitsResultCount(t *testing.T) {
	cfg := testSyncConfig()
	cfg.MaxEvents = 1000
	cfg.RetainEvents = 500
	s := NewSyncService(cfg, logger.NewNop())

	for i := 1; i <= 80; i++ {
		_, err := s.Broadcast(event(fmt.Sprintf("b%d", i), int64(i)))
		require.NoError(t, err)
	}

	events, total := s.Poll("none", 0)
	assert.Equal(t, 80, total)
	assert.Len(t, events, cfg.PollLimit)
}

func TestBroadcast_AssignsReceivedAt(t *testing.T) {
	s, now := newTestRelay(t)

	_, err := s.Broadcast(event("b1", 123))
	require.NoError(t, err)

	events, _ := s.Poll("other", 0)
	require.Len(t, events, 1)
	assert.Equal(t, now.UnixMilli(), events[0].ReceivedAt)
}
