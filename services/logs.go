package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	tradebridge "github.com/quantfold/trade-bridge"
)

// LogsService reads the application log the dashboard's log screen
// shows, and downloads it as a file.
type LogsService struct {
	t Transport
}

// Log entry types.
const (
	LogTypeUnspecified    = "UNSPECIFIED"
	LogTypeAuthentication = "AUTHENTICATION"
	LogTypeAlert          = "ALERT"
	LogTypeTrade          = "TRADE"
	LogTypeOrder          = "ORDER"
	LogTypeError          = "ERROR"
)

// LogEntry is one stored log line.
type LogEntry struct {
	ID          uuid.UUID      `json:"id"`
	Message     string         `json:"message"`
	Description *string        `json:"description"`
	Type        string         `json:"type"`
	Extra       map[string]any `json:"extra"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// LogFilters narrow a log query by time window and entry type.
type LogFilters struct {
	From time.Time
	To   time.Time
	Type string
}

func (f LogFilters) apply(q url.Values) {
	if !f.From.IsZero() {
		q.Set("from_date", f.From.Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		q.Set("to_date", f.To.Format(time.RFC3339))
	}
	if f.Type != "" {
		q.Set("log_type", f.Type)
	}
}

// List returns log entries, newest first.
func (s *LogsService) List(ctx context.Context, filters LogFilters, page PageParams) (*Paginated[LogEntry], error) {
	q := url.Values{}
	filters.apply(q)
	page.apply(q)
	return doJSON[Paginated[LogEntry]](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/logs",
		Query:    q,
	})
}

// Download returns up to limit matching log entries as a plain-text
// file body. Zero limit uses the server default.
func (s *LogsService) Download(ctx context.Context, filters LogFilters, limit int) ([]byte, error) {
	q := url.Values{}
	filters.apply(q)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	resp, err := s.t.Do(ctx, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/logs/download",
		Query:    q,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
