package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	tradebridge "github.com/quantfold/trade-bridge"
)

// PositionsService lists the open positions held at the broker.
type PositionsService struct {
	t Transport
}

// Position directions.
const (
	DirectionBuy  = "BUY"
	DirectionSell = "SELL"
)

// Position is one open position with the derived profit/loss figures
// the dashboard table shows.
type Position struct {
	DealID               string           `json:"dealId"`
	IGEpic               string           `json:"igEpic"`
	MarketAndSymbol      *string          `json:"marketAndSymbol"`
	Direction            string           `json:"direction"`
	Size                 int              `json:"size"`
	OpenLevel            decimal.Decimal  `json:"openLevel"`
	CurrentLevel         *decimal.Decimal `json:"currentLevel"`
	ProfitLoss           *decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage *decimal.Decimal `json:"profitLossPercentage"`
	CreatedAt            time.Time        `json:"createdAt"`
	StopLevel            *decimal.Decimal `json:"stopLevel"`
	LimitLevel           *decimal.Decimal `json:"limitLevel"`
	ControlledRisk       bool             `json:"controlledRisk"`
}

// List returns the currently open positions.
func (s *PositionsService) List(ctx context.Context, page PageParams) (*Paginated[Position], error) {
	q := url.Values{}
	page.apply(q)
	return doJSON[Paginated[Position]](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/positions",
		Query:    q,
	})
}
