package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	tradebridge "github.com/quantfold/trade-bridge"
)

// OrdersService lists the working orders held at the broker.
type OrdersService struct {
	t Transport
}

// Working order types.
const (
	OrderTypeLimit  = "LIMIT"
	OrderTypeMarket = "MARKET"
	OrderTypeStop   = "STOP"
)

// Order is one working order.
type Order struct {
	DealID      string           `json:"dealId"`
	IGEpic      string           `json:"igEpic"`
	Direction   string           `json:"direction"`
	Type        string           `json:"type"`
	Size        decimal.Decimal  `json:"size"`
	CreatedAt   time.Time        `json:"createdAt"`
	EntryLevel  decimal.Decimal  `json:"entryLevel"`
	StopLevel   *decimal.Decimal `json:"stopLevel"`
	ProfitLevel *decimal.Decimal `json:"profitLevel"`
}

// List returns the current working orders, newest first.
func (s *OrdersService) List(ctx context.Context, page PageParams) (*Paginated[Order], error) {
	q := url.Values{}
	page.apply(q)
	return doJSON[Paginated[Order]](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/orders",
		Query:    q,
	})
}
