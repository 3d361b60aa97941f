// internal/retryafter.go
// ----------------------
// Helpers for interpreting retry timing hints on throttled responses.
// The backend (and the broker API behind it) sends Retry-After either
// as delta seconds or as an HTTP date; both convert into a wait
// duration relative to now.
package internal

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter converts a Retry-After header value into a duration
// to wait before the next attempt. Unparsable or past values yield 0.
func ParseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
