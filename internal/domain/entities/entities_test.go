package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_UnmarshalKeepsUnknownFields(t *testing.T) {
	data := []byte(`{"id":"p1","name":"Widget","badge":"HOT","colors":["red","blue"],"lastUpdated":100}`)

	var p Product
	require.NoError(t, json.Unmarshal(data, &p))

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, int64(100), p.LastUpdated)
	assert.Equal(t, "HOT", p.Extra["badge"])
	assert.Len(t, p.Extra["colors"], 2)
}

func TestProduct_MarshalFlattensExtra(t *testing.T) {
	p := &Product{
		ID:    "p1",
		Name:  "Widget",
		Extra: map[string]any{"badge": "HOT"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "p1", out["id"])
	assert.Equal(t, "HOT", out["badge"])
	// Zero-valued known fields are omitted
	_, ok := out["deletedAt"]
	assert.False(t, ok)
}

func TestProduct_CreatedAtAcceptsISOStrings(t *testing.T) {
	data := []byte(`{"id":"p1","createdAt":"2026-03-01T12:00:00Z"}`)

	var p Product
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, int64(1772366400000), p.CreatedAt)

	data = []byte(`{"id":"p1","createdAt":1772366400000}`)
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, int64(1772366400000), p.CreatedAt)
}

func TestProduct_UnmarshalRejectsBadTimestamp(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"id":"p1","lastUpdated":"yesterday"}`), &p)
	assert.Error(t, err)
}

func TestProduct_Clone(t *testing.T) {
	p := &Product{
		ID:       "p1",
		Features: []string{"a"},
		Extra:    map[string]any{"k": "v"},
	}

	cp := p.Clone()
	cp.Features[0] = "changed"
	cp.Extra["k"] = "changed"

	assert.Equal(t, "a", p.Features[0])
	assert.Equal(t, "v", p.Extra["k"])
}

func TestProduct_NewerThan(t *testing.T) {
	a := &Product{LastUpdated: 200}
	b := &Product{LastUpdated: 100}

	assert.True(t, a.NewerThan(b))
	assert.False(t, b.NewerThan(a))
	// Ties go to the existing record
	assert.False(t, a.NewerThan(&Product{LastUpdated: 200}))
}

func TestSyncEvent_Key(t *testing.T) {
	e := &SyncEvent{BrowserID: "b1", Timestamp: 42}
	assert.Equal(t, "b1_42", e.Key())
}
