package quote

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/internal/external/naver"
	"github.com/wonny/finsight/backend/internal/external/wise"
	"github.com/wonny/finsight/backend/pkg/format"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// companySource provides the scraped company profile (wise.Client)
type companySource interface {
	FetchCompany(ctx context.Context, stockID string) (*wise.CompanyProfile, error)
}

// realtimeSource provides realtime price and valuation (naver.Client)
type realtimeSource interface {
	FetchItemQuote(ctx context.Context, stockID string) (*naver.ItemQuote, error)
	FetchItemSummary(ctx context.Context, stockID string) (*naver.ItemSummary, error)
}

// isuSource resolves the KRX ISU code (krx.Client)
type isuSource interface {
	FetchISUCode(ctx context.Context, stockID string) (string, error)
}

// CompositeProvider assembles a full quote from four secondary sources
// fetched concurrently. 하나라도 실패하면 부분 데이터 없이 전체가 실패한다.
type CompositeProvider struct {
	company  companySource
	realtime realtimeSource
	isu      isuSource
	logger   *logger.Logger
}

// NewCompositeProvider creates the secondary quote provider
func NewCompositeProvider(company companySource, realtime realtimeSource, isu isuSource, log *logger.Logger) *CompositeProvider {
	return &CompositeProvider{
		company:  company,
		realtime: realtime,
		isu:      isu,
		logger:   log,
	}
}

// Name identifies the provider in gateway logs
func (p *CompositeProvider) Name() string {
	return "composite"
}

// TryFetch runs the four sub-fetches concurrently and merges the results
func (p *CompositeProvider) TryFetch(ctx context.Context, stockID string) (*contracts.QuoteData, error) {
	var (
		wg      sync.WaitGroup
		profile *wise.CompanyProfile
		item    *naver.ItemQuote
		summary *naver.ItemSummary
		isuCode string

		profileErr, itemErr, summaryErr, isuErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		profile, profileErr = p.company.FetchCompany(ctx, stockID)
	}()
	go func() {
		defer wg.Done()
		item, itemErr = p.realtime.FetchItemQuote(ctx, stockID)
	}()
	go func() {
		defer wg.Done()
		summary, summaryErr = p.realtime.FetchItemSummary(ctx, stockID)
	}()
	go func() {
		defer wg.Done()
		isuCode, isuErr = p.isu.FetchISUCode(ctx, stockID)
	}()
	wg.Wait()

	for _, err := range []error{profileErr, itemErr, summaryErr, isuErr} {
		if err != nil {
			return nil, fmt.Errorf("composite sub-fetch failed: %w", err)
		}
	}

	return &contracts.QuoteData{
		Name:           profile.Name,
		Code:           isuCode,
		CompanySummary: profile.Summary,
		SectorName:     profile.SectorName,
		OpeningPrice:   int64(item.Open),
		HighPrice:      int64(item.High),
		LowPrice:       int64(item.Low),
		TradePrice:     int64(item.Now),
		ChangePrice:    int64(item.SignedDiff()),
		ChangeRate:     format.Round1(item.SignedRate()),
		MarketCap:      summary.MarketCap,
		High52wPrice:   profile.High52w,
		Low52wPrice:    profile.Low52w,
		ForeignRatio:   profile.ForeignRatio,
		PER:            summary.PER,
		PBR:            summary.PBR,
		EPS:            item.EPS,
		BPS:            item.BPS,
	}, nil
}
