// Package overview assembles the single-stock and sector overview
// responses from the quote gateway and the report store.
package overview

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/internal/metrics"
	"github.com/wonny/finsight/backend/internal/reports"
	"github.com/wonny/finsight/backend/internal/sector"
	"github.com/wonny/finsight/backend/pkg/config"
	"github.com/wonny/finsight/backend/pkg/format"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// Service builds overview responses.
// ⭐ SSOT: 오버뷰 조립 로직은 이 서비스에서만
type Service struct {
	gateway contracts.QuoteGateway
	store   contracts.ReportStore
	scorer  metrics.ScoreFunc

	concurrency   int
	pastDataCount int
	limiter       *rate.Limiter
	logger        *logger.Logger
}

// NewService wires the assembler with its collaborators
func NewService(gateway contracts.QuoteGateway, store contracts.ReportStore, scorer metrics.ScoreFunc, cfg *config.Config, log *logger.Logger) *Service {
	if scorer == nil {
		scorer = metrics.DefaultScore
	}

	return &Service{
		gateway:       gateway,
		store:         store,
		scorer:        scorer,
		concurrency:   cfg.Overview.QuoteConcurrency,
		pastDataCount: cfg.Overview.PastDataCount,
		limiter:       rate.NewLimiter(rate.Limit(cfg.Overview.QuoteRatePerSec), cfg.Overview.QuoteRatePerSec),
		logger:        log,
	}
}

// StockOverview assembles the full single-stock response. since는
// 리포트 집계 구간의 하한 날짜다.
//
// 1단계(시세 체인, 리포트 조회)의 실패는 치명적이고 2단계(과거 시세,
// 수급, 뉴스)의 실패는 빈 값으로 흡수된다.
func (s *Service) StockOverview(ctx context.Context, stockID string, since time.Time) (*contracts.StockOverview, error) {
	// Phase 1: quote chain and report history, concurrently
	var (
		wg         sync.WaitGroup
		quote      *contracts.QuoteData
		allReports []contracts.ReportRecord

		quoteErr, storeErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		quote, quoteErr = s.gateway.FetchQuote(ctx, stockID)
	}()
	go func() {
		defer wg.Done()
		allReports, storeErr = s.store.QueryByStock(ctx, stockID)
	}()
	wg.Wait()

	if storeErr != nil {
		return nil, storeErr
	}
	if quoteErr != nil {
		return nil, fmt.Errorf("%w: %s", contracts.ErrStockNotFound, stockID)
	}

	score, scoreOK, err := s.store.QueryScore(ctx, stockID)
	if err != nil {
		return nil, err
	}

	windowReports := reports.FilterSince(allReports, since)
	priceAvg, hasOpinion := metrics.AveragePriceGoal(windowReports)

	var expYield float64
	if hasOpinion {
		expYield = metrics.ExpectedYield(priceAvg, quote.TradePrice)
	}

	// Phase 2: enrichment fetches, concurrently, failures absorbed
	var (
		pastData []contracts.PastPrice
		flows    []contracts.InvestorFlow
		news     []contracts.NewsItem
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		pastData = s.gateway.FetchHistoricalPrices(ctx, stockID, s.pastDataCount, "day")
	}()
	go func() {
		defer wg.Done()
		flows = s.gateway.FetchInvestorFlows(ctx, quote.Code)
	}()
	go func() {
		defer wg.Done()
		news = s.gateway.FetchNews(ctx, quote.Name)
	}()
	wg.Wait()

	return &contracts.StockOverview{
		Name:           quote.Name,
		Code:           quote.Code,
		CompanySummary: quote.CompanySummary,
		SectorName:     quote.SectorName,
		OpeningPrice:   quote.OpeningPrice,
		HighPrice:      quote.HighPrice,
		LowPrice:       quote.LowPrice,
		TradePrice:     quote.TradePrice,
		ChangePrice:    quote.ChangePrice,
		ChangeRate:     quote.ChangeRate,
		MarketCap:      format.KoreanAmount(quote.MarketCap),
		High52wPrice:   quote.High52wPrice,
		Low52wPrice:    quote.Low52wPrice,
		ForeignRatio:   quote.ForeignRatio,
		PER:            quote.PER,
		PBR:            quote.PBR,
		ROE:            quote.ROE,

		ReportList: windowReports,
		PriceAvg:   contracts.PriceOpinion{Value: priceAvg, HasData: hasOpinion},
		ExpYield:   expYield,
		Score:      contracts.StockScore{Value: score, HasData: scoreOK},

		PastData:      pastData,
		InvStatistics: flows,
		News:          news,
		NewsTitles:    buildNewsTitles(news, quote.Name),
	}, nil
}

// memberReports is one sector member's report group
type memberReports struct {
	stockID string
	sSector string
	goals   []int64
}

// SectorOverview assembles the sector response: per-member metrics from
// report groups plus a live snapshot each, then narrow-sector rankings.
//
// 시세 조회가 실패한 종목은 요청 전체를 깨지 않고 빠진다.
func (s *Service) SectorOverview(ctx context.Context, sectorName string, since time.Time) (*contracts.SectorOverview, error) {
	records, err := s.store.QueryBySector(ctx, sectorName, since)
	if err != nil {
		return nil, err
	}

	members, order := groupBySector(records)

	// Snapshot fetches, bounded by the semaphore and paced by the limiter
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, s.concurrency)

		stockList = make(map[string]*contracts.StockMetrics, len(order))
	)

	for _, name := range order {
		wg.Add(1)
		go func(name string, m memberReports) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.WithFields(map[string]interface{}{
					"stock_name": name, "error": err.Error(),
				}).Warn("Rate limit wait aborted, dropping sector member")
				return
			}

			snap, err := s.gateway.FetchSnapshot(ctx, m.stockID)
			if err != nil {
				s.logger.WithFields(map[string]interface{}{
					"stock_name": name, "stock_id": m.stockID, "error": err.Error(),
				}).Warn("Snapshot failed, dropping sector member")
				return
			}

			priceAvg := meanInt64(m.goals)
			expYield := metrics.ExpectedYield(priceAvg, snap.TradePrice)

			mu.Lock()
			stockList[name] = &contracts.StockMetrics{
				StockID:    m.stockID,
				SSector:    m.sSector,
				TradePrice: snap.TradePrice,
				ChangeRate: snap.ChangeRate,
				PriceAvg:   priceAvg,
				ExpYield:   expYield,
				CCount:     len(m.goals),
				Score:      s.scorer(expYield, len(m.goals)),
			}
			mu.Unlock()
		}(name, members[name])
	}
	wg.Wait()

	return &contracts.SectorOverview{
		StockList: stockList,
		AvgYield:  sector.AvgYield(stockList),
		Top3List:  sector.Top3(sector.Rollup(stockList, order)),
	}, nil
}

// groupBySector groups sector records by stock name in first-encounter
// order. 목표가 없는 레코드는 집계에서 빠진다.
func groupBySector(records []contracts.ReportRecord) (map[string]memberReports, []string) {
	members := make(map[string]memberReports)
	var order []string

	for _, rec := range records {
		if !rec.HasPriceGoal() {
			continue
		}

		m, seen := members[rec.StockName]
		if !seen {
			m = memberReports{stockID: rec.StockID, sSector: rec.SSector}
			order = append(order, rec.StockName)
		}
		m.goals = append(m.goals, rec.PriceGoal)
		members[rec.StockName] = m
	}

	return members, order
}

func meanInt64(vs []int64) int64 {
	if len(vs) == 0 {
		return 0
	}
	var sum int64
	for _, v := range vs {
		sum += v
	}
	return int64(math.Round(float64(sum) / float64(len(vs))))
}

// 뉴스 제목 요약 정리용 패턴
var (
	bracketPattern = regexp.MustCompile(` *\[[^)]*\] *`)
	symbolPattern  = regexp.MustCompile(`[^가-힣a-zA-Z0-9 ]`)
	spacePattern   = regexp.MustCompile(` +`)
)

// buildNewsTitles concatenates news titles into one keyword-friendly
// string: 종목명과 말머리, 특수문자를 걷어내고 공백을 정리한다.
func buildNewsTitles(news []contracts.NewsItem, stockName string) string {
	titles := make([]string, 0, len(news))
	for _, n := range news {
		titles = append(titles, n.Title)
	}

	joined := strings.Join(titles, " ")
	joined = strings.ReplaceAll(joined, stockName, "")
	joined = bracketPattern.ReplaceAllString(joined, " ")
	joined = symbolPattern.ReplaceAllString(joined, " ")
	joined = spacePattern.ReplaceAllString(joined, " ")
	return strings.TrimSpace(joined)
}
