// Package services provides typed access to the trading dashboard
// API, one service per resource group. Services speak through the
// tradebridge pipeline, so the wire carries snake_case keys while the
// models here use camelCase JSON tags, matching what the pipeline
// hands back.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	tradebridge "github.com/quantfold/trade-bridge"
)

// Transport executes one normalized request. *tradebridge.Client
// satisfies it; tests substitute fakes.
type Transport interface {
	Do(ctx context.Context, req *tradebridge.Request) (*tradebridge.Response, error)
}

// Services bundles every resource client over one transport.
type Services struct {
	Auth        *AuthService
	Users       *UsersService
	Admin       *AdminService
	Orders      *OrdersService
	Positions   *PositionsService
	Instruments *InstrumentsService
	Logs        *LogsService
	Stats       *StatsService
}

func New(t Transport) *Services {
	return &Services{
		Auth:        &AuthService{t: t},
		Users:       &UsersService{t: t},
		Admin:       &AdminService{t: t},
		Orders:      &OrdersService{t: t},
		Positions:   &PositionsService{t: t},
		Instruments: &InstrumentsService{t: t},
		Logs:        &LogsService{t: t},
		Stats:       &StatsService{t: t},
	}
}

// Paginated is the list envelope every collection endpoint returns.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// PageParams select a window of a collection. Zero values fall back
// to the server defaults (offset 0, limit 100).
type PageParams struct {
	Offset int
	Limit  int
}

func (p PageParams) apply(q url.Values) {
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

// SortParams order a collection by a single column.
type SortParams struct {
	By    string
	Order string // "asc" or "desc"
}

func (s SortParams) apply(q url.Values) {
	if s.By == "" {
		return
	}
	q.Set("sort_by", s.By)
	if s.Order != "" {
		q.Set("sort_order", s.Order)
	}
}

// SimpleResponse is the {"message": ...} acknowledgment shape.
type SimpleResponse struct {
	Message string `json:"message"`
}

func doJSON[T any](ctx context.Context, t Transport, req *tradebridge.Request) (*T, error) {
	resp, err := t.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var out T
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", req.Method, req.Endpoint, err)
	}
	return &out, nil
}

// doEmpty executes a request whose response body the caller does not
// need (acknowledgments, deletes).
func doEmpty(ctx context.Context, t Transport, req *tradebridge.Request) error {
	_, err := t.Do(ctx, req)
	return err
}
