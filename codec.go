// codec.go
// --------
// Deep key recasing between the wire format (snake_case) and the
// client-side format (camelCase). Conversion walks the value tree
// produced by encoding/json (map[string]any, []any, scalars) so the
// set of shapes is closed and traversal stays exhaustive.
//
// Only identifier-style keys are converted; anything else (leading
// digits, punctuation, empty keys) passes through untouched. For
// identifier keys without leading digits or double underscores,
// snakeToCamel followed by camelToSnake restores the original key.
package tradebridge

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

var identKey = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// camelToSnake rewrites a camelCase key into snake_case. Acronym runs
// collapse into a single segment: "parseHTTPBody" -> "parse_http_body".
func camelToSnake(key string) string {
	if !identKey.MatchString(key) {
		return key
	}
	rs := []rune(key)
	var b strings.Builder
	b.Grow(len(rs) + 4)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			boundary := i > 0 && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]) ||
				(i+1 < len(rs) && unicode.IsLower(rs[i+1]) && unicode.IsUpper(rs[i-1])))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// snakeToCamel rewrites a snake_case key into camelCase. An underscore
// is only consumed when it precedes a lowercase letter, so digit
// segments ("level_2") and trailing underscores survive unchanged.
func snakeToCamel(key string) string {
	if !identKey.MatchString(key) || !strings.ContainsRune(key, '_') {
		return key
	}
	rs := []rune(key)
	var b strings.Builder
	b.Grow(len(rs))
	for i := 0; i < len(rs); i++ {
		if rs[i] == '_' && i+1 < len(rs) && unicode.IsLower(rs[i+1]) && i > 0 {
			b.WriteRune(unicode.ToUpper(rs[i+1]))
			i++
			continue
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}

func convertKeys(v any, fn func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fn(k)] = convertKeys(child, fn)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = convertKeys(child, fn)
		}
		return out
	default:
		return v
	}
}

// CamelToSnakeKeys returns a deep copy of v with every map key
// rewritten to snake_case. Scalars and array ordering are preserved.
func CamelToSnakeKeys(v any) any {
	return convertKeys(v, camelToSnake)
}

// SnakeToCamelKeys returns a deep copy of v with every map key
// rewritten to camelCase.
func SnakeToCamelKeys(v any) any {
	return convertKeys(v, snakeToCamel)
}

// decodeJSON parses raw JSON preserving numeric precision
// (json.Number rather than float64).
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
