package tradebridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviveDateFields(t *testing.T) {
	got := reviveValue("created_at", "2024-01-15T10:30:00Z")
	ts, ok := got.(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), ts.UTC())

	// Offset and naive timestamps both parse.
	got = reviveValue("updated_at", "2024-01-15T10:30:00+01:00")
	require.IsType(t, time.Time{}, got)
	got = reviveValue("last_login", "2024-01-15T10:30:00")
	require.IsType(t, time.Time{}, got)

	// Non-matching strings under a date key stay strings.
	assert.Equal(t, "yesterday", reviveValue("created_at", "yesterday"))
	assert.Equal(t, "2024-01-15", reviveValue("created_at", "2024-01-15"))
	// Matches the prefix but is not a real date.
	assert.Equal(t, "2024-13-45Tgarbage", reviveValue("created_at", "2024-13-45Tgarbage"))
}

func TestReviveDecimalFields(t *testing.T) {
	assert.Equal(t, 12.5, reviveValue("price", "12.50"))
	assert.Equal(t, -3.0, reviveValue("profit_loss", "-3"))
	assert.Equal(t, 100.0, reviveValue("size", "100"))

	// Unparsable strings stay strings.
	assert.Equal(t, "abc", reviveValue("price", "abc"))
	assert.Equal(t, "1.2.3", reviveValue("price", "1.2.3"))
	assert.Equal(t, "1e5", reviveValue("price", "1e5"))
	assert.Equal(t, ".5", reviveValue("price", ".5"))
}

func TestReviveUnknownKeyAndNonStrings(t *testing.T) {
	// The common case: a key in neither set passes through untouched.
	assert.Equal(t, "2024-01-15T10:30:00Z", reviveValue("description", "2024-01-15T10:30:00Z"))
	assert.Equal(t, "12.50", reviveValue("message", "12.50"))

	// Non-string values are never coerced, even under a known key.
	assert.Equal(t, 12.5, reviveValue("price", 12.5))
	assert.Equal(t, true, reviveValue("created_at", true))
	assert.Nil(t, reviveValue("price", nil))
}

func TestReviveValuesWalksTree(t *testing.T) {
	in := map[string]any{
		"created_at": "2024-01-15T10:30:00Z",
		"results": []any{
			map[string]any{"price": "12.50", "deal_id": "D1"},
			map[string]any{"price": "oops"},
		},
	}
	out := ReviveValues(in).(map[string]any)
	require.IsType(t, time.Time{}, out["created_at"])
	results := out["results"].([]any)
	assert.Equal(t, 12.5, results[0].(map[string]any)["price"])
	assert.Equal(t, "D1", results[0].(map[string]any)["deal_id"])
	assert.Equal(t, "oops", results[1].(map[string]any)["price"])
}
