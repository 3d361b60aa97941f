// revive.go
// ---------
// Parse-time value revival: string values sitting under known wire
// field names are coerced into richer types (time.Time for timestamps,
// float64 for decimal numerals). Revival runs against the wire-format
// (snake_case) key names, before any key recasing. Coercion is best
// effort: anything that does not parse is returned unchanged, never an
// error.
package tradebridge

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var (
	datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
	decimalStr = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

func fieldNameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Wire field names revived into time.Time.
var dateFieldNames = fieldNameSet(
	"created_at",
	"updated_at",
	"last_login",
	"next_dividend_date",
	"last_alert_received_at",
	"stats_timestamp",
)

// Wire field names revived into float64.
var decimalFieldNames = fieldNameSet(
	"price",
	"size",
	"open_level",
	"current_level",
	"entry_level",
	"stop_level",
	"limit_level",
	"profit_level",
	"profit_loss",
	"profit_loss_percentage",
	"max_position_size",
	"atr_stop_loss_multiple_percentage",
	"atr_profit_multiple_percentage",
	"opening_price_multiple_percentage",
	"trading_view_price_multiplier",
)

// reviveValue coerces a single key/value pair. Non-string values and
// keys outside both name sets pass through untouched.
func reviveValue(key string, v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if _, isDate := dateFieldNames[key]; isDate {
		if !datePrefix.MatchString(s) {
			return s
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		// Tolerate timestamps without an offset, treating them as UTC.
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC); err == nil {
			return t
		}
		return s
	}
	if _, isDecimal := decimalFieldNames[key]; isDecimal {
		if !decimalStr.MatchString(s) {
			return s
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return s
		}
		return f
	}
	return s
}

// ReviveValues walks a decoded JSON tree bottom-up and applies
// reviveValue to every object member. Array elements have no key and
// are never coerced directly, only descended into.
func ReviveValues(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = reviveValue(k, ReviveValues(child))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ReviveValues(child)
		}
		return out
	default:
		return v
	}
}
