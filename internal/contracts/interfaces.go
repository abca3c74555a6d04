package contracts

import (
	"context"
	"time"
)

// ⭐ SSOT: 코어가 요구하는 외부 협력자 능력은 여기서만 정의

// QuoteProvider is one upstream source able to produce a full QuoteData.
// Providers are tried in priority order by the gateway; a provider that
// cannot supply every required field fails rather than returning partial data.
type QuoteProvider interface {
	Name() string
	TryFetch(ctx context.Context, stockID string) (*QuoteData, error)
}

// QuoteGateway is the provider-facing capability the assembler consumes.
// Enrichment fetches absorb failures into documented defaults and never
// return an error.
type QuoteGateway interface {
	FetchQuote(ctx context.Context, stockID string) (*QuoteData, error)
	FetchSnapshot(ctx context.Context, stockID string) (*QuoteSnapshot, error)
	FetchHistoricalPrices(ctx context.Context, stockID string, count int, timeframe string) []PastPrice
	FetchInvestorFlows(ctx context.Context, isuCode string) []InvestorFlow
	FetchNews(ctx context.Context, stockName string) []NewsItem
}

// ReportStore queries analyst report records.
// "no rows" is an empty slice and a nil error; any returned error wraps
// ErrStoreUnavailable and is fatal to the request being built.
type ReportStore interface {
	// QueryByStock returns every report for the stock, date descending.
	// The date-floor subset is derived by the caller (reports.FilterSince).
	QueryByStock(ctx context.Context, stockID string) ([]ReportRecord, error)

	// QueryBySector returns reports with lSector == sectorName and
	// date >= since, date descending (server-side filter).
	QueryBySector(ctx context.Context, sectorName string, since time.Time) ([]ReportRecord, error)

	// QueryScore returns the pipeline-computed score for a stock;
	// ok=false when no score exists.
	QueryScore(ctx context.Context, stockID string) (float64, bool, error)
}
