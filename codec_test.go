package tradebridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"firstName":             "first_name",
		"lastName":              "last_name",
		"igEpic":                "ig_epic",
		"atrStopLossPeriod":     "atr_stop_loss_period",
		"profitLossPercentage":  "profit_loss_percentage",
		"parseHTTPBody":         "parse_http_body",
		"id":                    "id",
		"alreadylower":          "alreadylower",
		"XRequestID":            "x_request_id",
		"level2":                "level2",
		"_private":              "_private", // leading underscore: not an identifier key
		"123key":                "123key",
		"with-dash":             "with-dash",
		"":                      "",
		"already_snake_example": "already_snake_example",
	}
	for in, want := range cases {
		assert.Equal(t, want, camelToSnake(in), "camelToSnake(%q)", in)
	}
}

func TestSnakeToCamel(t *testing.T) {
	cases := map[string]string{
		"first_name":             "firstName",
		"ig_epic":                "igEpic",
		"atr_stop_loss_period":   "atrStopLossPeriod",
		"profit_loss_percentage": "profitLossPercentage",
		"id":                     "id",
		"price_2":                "price_2", // digit segment keeps its underscore
		"trailing_":              "trailing_",
		"_leading":               "_leading",
		"with-dash":              "with-dash",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeToCamel(in), "snakeToCamel(%q)", in)
	}
}

func TestSnakeCamelRoundTrip(t *testing.T) {
	// For identifier keys without leading digits or double
	// underscores, recasing to camel and back is lossless.
	keys := []string{
		"first_name",
		"market_and_symbol",
		"maximum_open_positions_and_pending_orders",
		"atr_profit_multiple_percentage",
		"trading_view_price_multiplier",
		"next_dividend_date",
		"size",
		"q",
	}
	for _, k := range keys {
		assert.Equal(t, k, camelToSnake(snakeToCamel(k)), "round trip %q", k)
	}
}

func TestConvertKeysDeep(t *testing.T) {
	in := map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"settings": map[string]any{
			"orderType": "LIMIT",
			"levels":    []any{map[string]any{"stopLevel": 1.5}},
		},
		"tags": []any{"a", "b"},
	}
	out, ok := CamelToSnakeKeys(in).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", out["first_name"])
	assert.Equal(t, "Lovelace", out["last_name"])
	settings := out["settings"].(map[string]any)
	assert.Equal(t, "LIMIT", settings["order_type"])
	levels := settings["levels"].([]any)
	assert.Equal(t, 1.5, levels[0].(map[string]any)["stop_level"])
	assert.Equal(t, []any{"a", "b"}, out["tags"])

	// The original value is untouched.
	assert.Contains(t, in, "firstName")
	assert.NotContains(t, in, "first_name")
}

func TestConvertKeysScalars(t *testing.T) {
	assert.Equal(t, "plain", CamelToSnakeKeys("plain"))
	assert.Equal(t, 4.2, SnakeToCamelKeys(4.2))
	assert.Nil(t, SnakeToCamelKeys(nil))
}
