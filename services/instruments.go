package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tradebridge "github.com/quantfold/trade-bridge"
)

// InstrumentsService manages the user's tradable instrument list,
// including the bulk CSV replace the dashboard's upload screen uses.
type InstrumentsService struct {
	t Transport
}

// InstrumentParams is the writable part of an instrument: the symbol
// mapping plus the ATR-based stop/profit tuning.
type InstrumentParams struct {
	MarketAndSymbol                string           `json:"marketAndSymbol"`
	IGEpic                         string           `json:"igEpic"`
	YahooSymbol                    string           `json:"yahooSymbol"`
	ATRStopLossPeriod              int              `json:"atrStopLossPeriod"`
	ATRStopLossMultiplePercentage  decimal.Decimal  `json:"atrStopLossMultiplePercentage"`
	ATRProfitTargetPeriod          int              `json:"atrProfitTargetPeriod"`
	ATRProfitMultiplePercentage    decimal.Decimal  `json:"atrProfitMultiplePercentage"`
	MaxPositionSize                *decimal.Decimal `json:"maxPositionSize"`
	OpeningPriceMultiplePercentage decimal.Decimal  `json:"openingPriceMultiplePercentage"`
	TradingViewPriceMultiplier     decimal.Decimal  `json:"tradingViewPriceMultiplier"`
	NextDividendDate               *time.Time       `json:"nextDividendDate"`
}

// Instrument is the stored instrument with identity and audit fields.
type Instrument struct {
	InstrumentParams
	ID                  uuid.UUID  `json:"id"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	LastAlertReceivedAt *time.Time `json:"lastAlertReceivedAt"`
}

// InstrumentFilters narrow a search. Zero-value fields are omitted.
type InstrumentFilters struct {
	Query           string // free-text match across symbol columns
	MarketAndSymbol string
	IGEpic          string
	YahooSymbol     string
}

func (f InstrumentFilters) apply(q url.Values) {
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.MarketAndSymbol != "" {
		q.Set("market_and_symbol", f.MarketAndSymbol)
	}
	if f.IGEpic != "" {
		q.Set("ig_epic", f.IGEpic)
	}
	if f.YahooSymbol != "" {
		q.Set("yahoo_symbol", f.YahooSymbol)
	}
}

// UploadResult reports the outcome of a CSV upload.
type UploadResult struct {
	Message            string `json:"message"`
	InstrumentsCreated int    `json:"instrumentsCreated"`
}

// List returns the user's instruments.
func (s *InstrumentsService) List(ctx context.Context, page PageParams, sort SortParams) (*Paginated[Instrument], error) {
	q := url.Values{}
	page.apply(q)
	sort.apply(q)
	return doJSON[Paginated[Instrument]](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/instruments",
		Query:    q,
	})
}

// Search filters instruments by symbol columns or free text.
func (s *InstrumentsService) Search(ctx context.Context, filters InstrumentFilters, page PageParams) (*Paginated[Instrument], error) {
	q := url.Values{}
	filters.apply(q)
	page.apply(q)
	return doJSON[Paginated[Instrument]](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/instruments/search",
		Query:    q,
	})
}

// Get returns one instrument by ID.
func (s *InstrumentsService) Get(ctx context.Context, id uuid.UUID) (*Instrument, error) {
	return doJSON[Instrument](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodGet,
		Endpoint: "/instruments/" + id.String(),
	})
}

// Create adds a new instrument.
func (s *InstrumentsService) Create(ctx context.Context, params InstrumentParams) (*Instrument, error) {
	return doJSON[Instrument](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/instruments",
		Body:     params,
	})
}

// Update replaces an instrument's writable fields.
func (s *InstrumentsService) Update(ctx context.Context, id uuid.UUID, params InstrumentParams) (*Instrument, error) {
	return doJSON[Instrument](ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPut,
		Endpoint: "/instruments/" + id.String(),
		Body:     params,
	})
}

// Delete removes an instrument.
func (s *InstrumentsService) Delete(ctx context.Context, id uuid.UUID) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodDelete,
		Endpoint: "/instruments/" + id.String(),
	})
}

// UploadCSV replaces all instruments with the rows of the given CSV
// file. The expected column layout matches the dashboard's template:
// Symbol, IG EPIC, Yahoo Symbol, ATR periods and multiples, max
// position size, opening price multiple.
func (s *InstrumentsService) UploadCSV(ctx context.Context, filename string, csvData []byte) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(csvData); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	return doJSON[UploadResult](ctx, s.t, &tradebridge.Request{
		Method:      http.MethodPost,
		Endpoint:    "/instruments/upload-csv",
		Raw:         buf.Bytes(),
		ContentType: w.FormDataContentType(),
	})
}

// FetchDividendDates asks the backend to refresh dividend dates for
// every instrument with a Yahoo symbol. The work happens in the
// background server-side.
func (s *InstrumentsService) FetchDividendDates(ctx context.Context) error {
	return doEmpty(ctx, s.t, &tradebridge.Request{
		Method:   http.MethodPost,
		Endpoint: "/instruments/fetch-dividend-dates",
	})
}
