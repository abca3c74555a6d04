package quote

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/internal/external/naver"
	"github.com/wonny/finsight/backend/pkg/format"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// chartSource provides past candles (naver.Client)
type chartSource interface {
	FetchPastPrices(ctx context.Context, stockID string, count int, timeframe string) ([]contracts.PastPrice, error)
}

// flowSource provides investor statistics (krx.Client)
type flowSource interface {
	FetchInvestorFlows(ctx context.Context, isuCode string) ([]contracts.InvestorFlow, error)
}

// newsSource provides related news (naver.Client)
type newsSource interface {
	FetchNews(ctx context.Context, stockName string) ([]contracts.NewsItem, error)
}

// snapshotSource provides the light sector-path quote (naver.Client)
type snapshotSource interface {
	FetchItemQuote(ctx context.Context, stockID string) (*naver.ItemQuote, error)
}

// Gateway runs the provider fallback chain and the enrichment fetches.
// ⭐ SSOT: 시세 조회 경로는 이 게이트웨이로 통일
type Gateway struct {
	providers []contracts.QuoteProvider
	snapshots snapshotSource
	charts    chartSource
	flows     flowSource
	news      newsSource
	logger    *logger.Logger
}

// NewGateway wires the provider chain in priority order
func NewGateway(providers []contracts.QuoteProvider, snapshots snapshotSource, charts chartSource, flows flowSource, news newsSource, log *logger.Logger) *Gateway {
	return &Gateway{
		providers: providers,
		snapshots: snapshots,
		charts:    charts,
		flows:     flows,
		news:      news,
		logger:    log,
	}
}

// FetchQuote tries each provider in order and returns the first complete
// quote. ROE는 항상 EPS/BPS에서 파생하며 프로바이더 값을 쓰지 않는다.
func (g *Gateway) FetchQuote(ctx context.Context, stockID string) (*contracts.QuoteData, error) {
	for _, p := range g.providers {
		quote, err := p.TryFetch(ctx, stockID)
		if err != nil {
			g.logger.WithFields(map[string]interface{}{
				"provider": p.Name(),
				"stock_id": stockID,
				"error":    err.Error(),
			}).Warn("Quote provider failed, trying next")
			continue
		}

		quote.ROE = deriveROE(quote.EPS, quote.BPS)
		return quote, nil
	}

	return nil, fmt.Errorf("%w: %s", contracts.ErrQuoteUnavailable, stockID)
}

// FetchSnapshot fetches the light quote used by the sector path
func (g *Gateway) FetchSnapshot(ctx context.Context, stockID string) (*contracts.QuoteSnapshot, error) {
	item, err := g.snapshots.FetchItemQuote(ctx, stockID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contracts.ErrQuoteUnavailable, stockID)
	}

	return &contracts.QuoteSnapshot{
		TradePrice: int64(item.Now),
		ChangeRate: format.Round1(item.SignedRate()),
	}, nil
}

// FetchHistoricalPrices fetches past candles. 실패는 빈 결과로 흡수한다.
func (g *Gateway) FetchHistoricalPrices(ctx context.Context, stockID string, count int, timeframe string) []contracts.PastPrice {
	prices, err := g.charts.FetchPastPrices(ctx, stockID, count, timeframe)
	if err != nil {
		g.logger.WithFields(map[string]interface{}{
			"stock_id": stockID,
			"error":    err.Error(),
		}).Warn("Past price fetch failed, returning empty")
		return []contracts.PastPrice{}
	}
	return prices
}

// FetchInvestorFlows fetches investor statistics. KRX 점검 시간대의
// 타임아웃은 점검중 플레이스홀더 한 건으로, 그 외 실패는 빈 결과로 흡수한다.
func (g *Gateway) FetchInvestorFlows(ctx context.Context, isuCode string) []contracts.InvestorFlow {
	flows, err := g.flows.FetchInvestorFlows(ctx, isuCode)
	if err != nil {
		g.logger.WithFields(map[string]interface{}{
			"isu_code": isuCode,
			"error":    err.Error(),
		}).Warn("Investor flow fetch failed")

		if isTimeout(err) {
			return []contracts.InvestorFlow{{Date: contracts.FlowMaintenance}}
		}
		return []contracts.InvestorFlow{}
	}
	return flows
}

// FetchNews fetches related news. 실패는 빈 결과로 흡수한다.
func (g *Gateway) FetchNews(ctx context.Context, stockName string) []contracts.NewsItem {
	items, err := g.news.FetchNews(ctx, stockName)
	if err != nil {
		g.logger.WithFields(map[string]interface{}{
			"stock_name": stockName,
			"error":      err.Error(),
		}).Warn("News fetch failed, returning empty")
		return []contracts.NewsItem{}
	}
	return items
}

// deriveROE computes ROE from EPS and BPS, one decimal place
func deriveROE(eps, bps float64) float64 {
	if bps == 0 {
		return 0
	}
	return format.Round1(eps / bps * 100)
}

// isTimeout reports whether the error is a deadline/timeout failure
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
