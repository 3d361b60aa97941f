package services

import (
	"context"
	"net/http"
	"time"

	tradebridge "github.com/quantfold/trade-bridge"
)

// StatsService returns the dashboard's header numbers.
type StatsService struct {
	t Transport
}

// ActivityAction describes what an account activity did.
type ActivityAction struct {
	ActionType     string `json:"actionType"`
	AffectedDealID string `json:"affectedDealId"`
}

// Activity is one recent account activity at the broker.
type Activity struct {
	Channel string    `json:"channel"`
	Date    time.Time `json:"date"`
}

// QuickStats summarizes the account at a point in time.
type QuickStats struct {
	OpenPositionsCount int        `json:"openPositionsCount"`
	OpenOrdersCount    int        `json:"openOrdersCount"`
	RecentActivities   []Activity `json:"recentActivities"`
	StatsTimestamp     time.Time  `json:"statsTimestamp"`
}

// Quick returns the current counts and recent activity.
func (s *StatsService) Quick(ctx context.Context) (*QuickStats, error) {
	return doJSON[QuickStats](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/stats",
	})
}
