package overview

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/pkg/config"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// --- stubs ---

type stubGateway struct {
	quote    *contracts.QuoteData
	quoteErr error

	snapshots   map[string]*contracts.QuoteSnapshot
	pastData    []contracts.PastPrice
	flows       []contracts.InvestorFlow
	news        []contracts.NewsItem
	pastCount   int
	pastPeriod  string
	flowISUCode string
}

func (g *stubGateway) FetchQuote(ctx context.Context, stockID string) (*contracts.QuoteData, error) {
	if g.quoteErr != nil {
		return nil, g.quoteErr
	}
	return g.quote, nil
}

func (g *stubGateway) FetchSnapshot(ctx context.Context, stockID string) (*contracts.QuoteSnapshot, error) {
	snap, ok := g.snapshots[stockID]
	if !ok {
		return nil, contracts.ErrQuoteUnavailable
	}
	return snap, nil
}

func (g *stubGateway) FetchHistoricalPrices(ctx context.Context, stockID string, count int, timeframe string) []contracts.PastPrice {
	g.pastCount, g.pastPeriod = count, timeframe
	return g.pastData
}

func (g *stubGateway) FetchInvestorFlows(ctx context.Context, isuCode string) []contracts.InvestorFlow {
	g.flowISUCode = isuCode
	return g.flows
}

func (g *stubGateway) FetchNews(ctx context.Context, stockName string) []contracts.NewsItem {
	return g.news
}

type stubStore struct {
	byStock  []contracts.ReportRecord
	bySector []contracts.ReportRecord
	score    float64
	scoreOK  bool
	err      error
}

func (s *stubStore) QueryByStock(ctx context.Context, stockID string) ([]contracts.ReportRecord, error) {
	return s.byStock, s.err
}

func (s *stubStore) QueryBySector(ctx context.Context, sectorName string, since time.Time) ([]contracts.ReportRecord, error) {
	return s.bySector, s.err
}

func (s *stubStore) QueryScore(ctx context.Context, stockID string) (float64, bool, error) {
	return s.score, s.scoreOK, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Overview: config.OverviewConfig{
			QuoteConcurrency: 4,
			QuoteRatePerSec:  100,
			PastDataCount:    250,
		},
	}
}

func newTestService(g *stubGateway, st *stubStore) *Service {
	return NewService(g, st, nil, testConfig(), logger.NewNop())
}

func samsungQuote() *contracts.QuoteData {
	return &contracts.QuoteData{
		Name:       "삼성전자",
		Code:       "KR7005930003",
		SectorName: "반도체와반도체장비",
		TradePrice: 71500,
		MarketCap:  426_800_000_000_000,
		ROE:        10.2,
	}
}

func since(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// --- stock path ---

func TestStockOverview(t *testing.T) {
	gw := &stubGateway{
		quote: samsungQuote(),
		flows: []contracts.InvestorFlow{{Date: "2024-01-03"}},
		news: []contracts.NewsItem{
			{Title: "삼성전자 [특징주] 반도체 강세!!"},
			{Title: "외국인, 삼성전자 집중 매수"},
		},
	}
	store := &stubStore{
		byStock: []contracts.ReportRecord{
			{Date: "2024-01-05", PriceGoal: 95000},
			{Date: "2024-01-02", PriceGoal: 85000},
			{Date: "2023-11-20", PriceGoal: 70000}, // 구간 밖
		},
		score:   7.5,
		scoreOK: true,
	}
	svc := newTestService(gw, store)

	out, err := svc.StockOverview(context.Background(), "005930", since("2024-01-01"))
	require.NoError(t, err)

	// 구간 내 리포트만 집계된다
	assert.Len(t, out.ReportList, 2)
	assert.Equal(t, int64(90000), out.PriceAvg.Value)
	assert.True(t, out.PriceAvg.HasData)
	assert.Equal(t, 25.9, out.ExpYield)
	assert.Equal(t, 7.5, out.Score.Value)
	assert.True(t, out.Score.HasData)

	assert.Equal(t, "426조 8,000억", out.MarketCap)

	// 과거 시세는 설정된 캔들 수의 일봉
	assert.Equal(t, 250, gw.pastCount)
	assert.Equal(t, "day", gw.pastPeriod)
	// 수급 조회는 ISU 코드로 나간다
	assert.Equal(t, "KR7005930003", gw.flowISUCode)

	// 종목명/말머리/특수문자가 정리된 키워드 문자열
	assert.Equal(t, "반도체 강세 외국인 집중 매수", out.NewsTitles)
}

func TestStockOverviewNoOpinion(t *testing.T) {
	gw := &stubGateway{quote: samsungQuote()}
	store := &stubStore{
		byStock: []contracts.ReportRecord{{Date: "2024-01-05", PriceGoal: 0}},
	}
	svc := newTestService(gw, store)

	out, err := svc.StockOverview(context.Background(), "005930", since("2024-01-01"))
	require.NoError(t, err)

	assert.False(t, out.PriceAvg.HasData)
	assert.Zero(t, out.ExpYield)
	assert.False(t, out.Score.HasData)

	// 센티넬이 그대로 직렬화되는지
	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"priceAvg":"의견 없음"`)
	assert.Contains(t, string(body), `"score":"-"`)
}

func TestStockOverviewQuoteFailure(t *testing.T) {
	gw := &stubGateway{quoteErr: contracts.ErrQuoteUnavailable}
	svc := newTestService(gw, &stubStore{})

	_, err := svc.StockOverview(context.Background(), "999999", since("2024-01-01"))
	assert.ErrorIs(t, err, contracts.ErrStockNotFound)
}

func TestStockOverviewStoreFailureFatal(t *testing.T) {
	gw := &stubGateway{quote: samsungQuote()}
	store := &stubStore{err: contracts.ErrStoreUnavailable}
	svc := newTestService(gw, store)

	_, err := svc.StockOverview(context.Background(), "005930", since("2024-01-01"))
	assert.ErrorIs(t, err, contracts.ErrStoreUnavailable)
}

// --- sector path ---

func sectorRecords() []contracts.ReportRecord {
	return []contracts.ReportRecord{
		{StockName: "삼성전자", StockID: "005930", SSector: "반도체와반도체장비", PriceGoal: 90000},
		{StockName: "SK하이닉스", StockID: "000660", SSector: "반도체와반도체장비", PriceGoal: 150000},
		{StockName: "삼성전자", StockID: "005930", SSector: "반도체와반도체장비", PriceGoal: 80000},
		{StockName: "삼성SDS", StockID: "018260", SSector: "IT서비스", PriceGoal: 0}, // 목표가 없음
		{StockName: "카카오", StockID: "035720", SSector: "IT서비스", PriceGoal: 60000},
	}
}

func TestSectorOverview(t *testing.T) {
	gw := &stubGateway{snapshots: map[string]*contracts.QuoteSnapshot{
		"005930": {TradePrice: 71500, ChangeRate: -0.7},
		"000660": {TradePrice: 130000, ChangeRate: 1.2},
		"035720": {TradePrice: 45000, ChangeRate: 0.4},
	}}
	store := &stubStore{bySector: sectorRecords()}
	svc := newTestService(gw, store)

	out, err := svc.SectorOverview(context.Background(), "IT", since("2024-01-01"))
	require.NoError(t, err)

	// 목표가 없는 삼성SDS는 집계에 없다
	require.Len(t, out.StockList, 3)
	require.NotContains(t, out.StockList, "삼성SDS")

	samsung := out.StockList["삼성전자"]
	require.NotNil(t, samsung)
	assert.Equal(t, int64(85000), samsung.PriceAvg) // (90000+80000)/2
	assert.Equal(t, 2, samsung.CCount)
	assert.Equal(t, 18.9, samsung.ExpYield)
	assert.Equal(t, -0.7, samsung.ChangeRate)

	kakao := out.StockList["카카오"]
	require.NotNil(t, kakao)
	assert.Equal(t, 33.3, kakao.ExpYield)

	// top3: 반도체(평균 17.2) < IT서비스(33.3)
	assert.Equal(t, "IT서비스", out.Top3List.First)
	assert.Equal(t, "반도체와반도체장비", out.Top3List.Second)
	assert.Equal(t, contracts.NoSector, out.Top3List.Third)
	assert.Zero(t, out.Top3List.ThirdYield)
}

// 시세가 안 잡히는 종목은 빠지고 나머지는 정상 조립된다
func TestSectorOverviewDropsFailedMember(t *testing.T) {
	gw := &stubGateway{snapshots: map[string]*contracts.QuoteSnapshot{
		"005930": {TradePrice: 71500},
		"035720": {TradePrice: 45000},
		// 000660 누락
	}}
	store := &stubStore{bySector: sectorRecords()}
	svc := newTestService(gw, store)

	out, err := svc.SectorOverview(context.Background(), "IT", since("2024-01-01"))
	require.NoError(t, err)

	assert.Len(t, out.StockList, 2)
	assert.NotContains(t, out.StockList, "SK하이닉스")
	assert.Contains(t, out.StockList, "삼성전자")
	assert.Contains(t, out.StockList, "카카오")
}

func TestSectorOverviewStoreFailureFatal(t *testing.T) {
	svc := newTestService(&stubGateway{}, &stubStore{err: contracts.ErrStoreUnavailable})

	_, err := svc.SectorOverview(context.Background(), "IT", since("2024-01-01"))
	assert.ErrorIs(t, err, contracts.ErrStoreUnavailable)
}

func TestSectorOverviewEmpty(t *testing.T) {
	svc := newTestService(&stubGateway{}, &stubStore{})

	out, err := svc.SectorOverview(context.Background(), "없는섹터", since("2024-01-01"))
	require.NoError(t, err)

	assert.Empty(t, out.StockList)
	assert.Zero(t, out.AvgYield)
	assert.Equal(t, contracts.NoSector, out.Top3List.First)
}

// --- helpers ---

func TestGroupBySectorOrder(t *testing.T) {
	members, order := groupBySector(sectorRecords())

	assert.Equal(t, []string{"삼성전자", "SK하이닉스", "카카오"}, order)
	assert.Equal(t, []int64{90000, 80000}, members["삼성전자"].goals)
}

func TestBuildNewsTitles(t *testing.T) {
	news := []contracts.NewsItem{
		{Title: "삼성전자 [특징주] 7만전자 탈환... '기대감' 커져"},
		{Title: "반도체 업황 회복"},
	}

	got := buildNewsTitles(news, "삼성전자")
	assert.Equal(t, "7만전자 탈환 기대감 커져 반도체 업황 회복", got)
	assert.False(t, strings.Contains(got, "삼성전자"))
}
