package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastEvent(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/broadcast-sync", `{"type":"product-updated","browserId":"b1","timestamp":100}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BroadcastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.EventCount)
}

func TestBroadcastEvent_MissingType(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/broadcast-sync", `{"browserId":"b1","timestamp":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBroadcastEvent_MissingBrowserID(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/broadcast-sync", `{"type":"product-updated"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPollEvents(t *testing.T) {
	e := newTestAPI(t)

	doJSON(e, http.MethodPost, "/api/broadcast-sync", `{"type":"product-updated","browserId":"b1","timestamp":100}`)
	doJSON(e, http.MethodPost, "/api/broadcast-sync", `{"type":"product-deleted","browserId":"b2","timestamp":200}`)

	// Another browser sees both
	rec := doJSON(e, http.MethodGet, "/api/sync-events?browserId=b3&since=0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.TotalEvents)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "product-deleted", resp.Events[0].Type)

	// The originator never sees its own event
	rec = doJSON(e, http.MethodGet, "/api/sync-events?browserId=b1&since=0", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "b2", resp.Events[0].BrowserID)

	// since filters out older events
	rec = doJSON(e, http.MethodGet, "/api/sync-events?browserId=b3&since=150", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, int64(200), resp.Events[0].Timestamp)
}

func TestPollEvents_RequiresBrowserID(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/sync-events", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPollEvents_InvalidSince(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/sync-events?browserId=b1&since=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
