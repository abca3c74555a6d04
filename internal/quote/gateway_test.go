package quote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/internal/external/naver"
	"github.com/wonny/finsight/backend/internal/external/wise"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// --- stubs ---

type stubProvider struct {
	name  string
	quote *contracts.QuoteData
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) TryFetch(ctx context.Context, stockID string) (*contracts.QuoteData, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quote
	return &q, nil
}

type stubCompany struct {
	profile *wise.CompanyProfile
	err     error
}

func (s *stubCompany) FetchCompany(ctx context.Context, stockID string) (*wise.CompanyProfile, error) {
	return s.profile, s.err
}

type stubRealtime struct {
	item       *naver.ItemQuote
	itemErr    error
	summary    *naver.ItemSummary
	summaryErr error
}

func (s *stubRealtime) FetchItemQuote(ctx context.Context, stockID string) (*naver.ItemQuote, error) {
	return s.item, s.itemErr
}

func (s *stubRealtime) FetchItemSummary(ctx context.Context, stockID string) (*naver.ItemSummary, error) {
	return s.summary, s.summaryErr
}

type stubISU struct {
	code string
	err  error
}

func (s *stubISU) FetchISUCode(ctx context.Context, stockID string) (string, error) {
	return s.code, s.err
}

type stubCharts struct {
	prices []contracts.PastPrice
	err    error
}

func (s *stubCharts) FetchPastPrices(ctx context.Context, stockID string, count int, timeframe string) ([]contracts.PastPrice, error) {
	return s.prices, s.err
}

type stubFlows struct {
	flows []contracts.InvestorFlow
	err   error
}

func (s *stubFlows) FetchInvestorFlows(ctx context.Context, isuCode string) ([]contracts.InvestorFlow, error) {
	return s.flows, s.err
}

type stubNews struct {
	items []contracts.NewsItem
	err   error
}

func (s *stubNews) FetchNews(ctx context.Context, stockName string) ([]contracts.NewsItem, error) {
	return s.items, s.err
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func newTestGateway(providers []contracts.QuoteProvider, charts chartSource, flows flowSource, news newsSource) *Gateway {
	rt := &stubRealtime{item: &naver.ItemQuote{Base: 100, Now: 90, Rate: 10}}
	return NewGateway(providers, rt, charts, flows, news, logger.NewNop())
}

// --- gateway chain ---

func TestFetchQuoteFallsBackToNextProvider(t *testing.T) {
	primary := &stubProvider{name: "daum", err: errors.New("blocked")}
	secondary := &stubProvider{name: "composite", quote: &contracts.QuoteData{
		Name: "삼성전자", TradePrice: 71500, EPS: 5302, BPS: 52002,
	}}

	g := newTestGateway([]contracts.QuoteProvider{primary, secondary}, nil, nil, nil)

	quote, err := g.FetchQuote(context.Background(), "005930")
	if err != nil {
		t.Fatalf("FetchQuote() failed: %v", err)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
	if quote.Name != "삼성전자" {
		t.Errorf("Name = %s, want 삼성전자", quote.Name)
	}
}

func TestFetchQuoteExhaustedChain(t *testing.T) {
	g := newTestGateway([]contracts.QuoteProvider{
		&stubProvider{name: "daum", err: errors.New("down")},
		&stubProvider{name: "composite", err: errors.New("down")},
	}, nil, nil, nil)

	_, err := g.FetchQuote(context.Background(), "005930")
	if !errors.Is(err, contracts.ErrQuoteUnavailable) {
		t.Errorf("err = %v, want ErrQuoteUnavailable", err)
	}
}

func TestFetchQuoteDerivesROE(t *testing.T) {
	tests := []struct {
		name string
		eps  float64
		bps  float64
		want float64
	}{
		{"normal", 5302, 52002, 10.2},
		{"zero bps", 5302, 0, 0},
		{"negative eps", -1200, 30000, -4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{name: "daum", quote: &contracts.QuoteData{
				Name: "테스트", TradePrice: 1000, EPS: tt.eps, BPS: tt.bps,
				ROE: 99.9, // 프로바이더가 준 값은 무시된다
			}}
			g := newTestGateway([]contracts.QuoteProvider{p}, nil, nil, nil)

			quote, err := g.FetchQuote(context.Background(), "000000")
			if err != nil {
				t.Fatalf("FetchQuote() failed: %v", err)
			}
			if quote.ROE != tt.want {
				t.Errorf("ROE = %v, want %v", quote.ROE, tt.want)
			}
		})
	}
}

func TestFetchSnapshotSign(t *testing.T) {
	g := newTestGateway(nil, nil, nil, nil)

	snap, err := g.FetchSnapshot(context.Background(), "005930")
	if err != nil {
		t.Fatalf("FetchSnapshot() failed: %v", err)
	}
	if snap.TradePrice != 90 {
		t.Errorf("TradePrice = %d, want 90", snap.TradePrice)
	}
	// 기준가 아래이므로 등락률은 음수
	if snap.ChangeRate != -10 {
		t.Errorf("ChangeRate = %v, want -10", snap.ChangeRate)
	}
}

// --- enrichment absorption ---

func TestFetchHistoricalPricesAbsorbsFailure(t *testing.T) {
	g := newTestGateway(nil, &stubCharts{err: errors.New("down")}, nil, nil)

	prices := g.FetchHistoricalPrices(context.Background(), "005930", 250, "day")
	if prices == nil || len(prices) != 0 {
		t.Errorf("prices = %v, want empty non-nil slice", prices)
	}
}

func TestFetchInvestorFlowsTimeoutPlaceholder(t *testing.T) {
	g := newTestGateway(nil, nil, &stubFlows{err: fmt.Errorf("fetch: %w", timeoutErr{})}, nil)

	flows := g.FetchInvestorFlows(context.Background(), "KR7005930003")
	if len(flows) != 1 {
		t.Fatalf("len(flows) = %d, want 1", len(flows))
	}
	if flows[0].Date != contracts.FlowMaintenance {
		t.Errorf("Date = %q, want %q", flows[0].Date, contracts.FlowMaintenance)
	}
}

func TestFetchInvestorFlowsNonTimeoutEmpty(t *testing.T) {
	g := newTestGateway(nil, nil, &stubFlows{err: errors.New("malformed amount")}, nil)

	flows := g.FetchInvestorFlows(context.Background(), "KR7005930003")
	if len(flows) != 0 {
		t.Errorf("len(flows) = %d, want 0", len(flows))
	}
}

func TestFetchNewsAbsorbsFailure(t *testing.T) {
	g := newTestGateway(nil, nil, nil, &stubNews{err: errors.New("quota exceeded")})

	items := g.FetchNews(context.Background(), "삼성전자")
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}

// --- composite provider ---

func healthySources() (*stubCompany, *stubRealtime, *stubISU) {
	return &stubCompany{profile: &wise.CompanyProfile{
			Name:         "삼성전자",
			SectorName:   "반도체와반도체장비",
			Summary:      "한국 및 CE, IM부문 지역총괄 생산/판매법인.",
			High52w:      88800,
			Low52w:       65800,
			ForeignRatio: 54.32,
		}},
		&stubRealtime{
			item: &naver.ItemQuote{
				Base: 72000, Now: 71500, Diff: 500, Rate: 0.69,
				Open: 71800, High: 72200, Low: 71300,
				EPS: 5302, BPS: 52002,
			},
			summary: &naver.ItemSummary{MarketCap: 426_837_862_000_000, PER: 13.48, PBR: 1.37},
		},
		&stubISU{code: "KR7005930003"}
}

func TestCompositeProviderMergesAllSources(t *testing.T) {
	company, realtime, isu := healthySources()
	p := NewCompositeProvider(company, realtime, isu, logger.NewNop())

	quote, err := p.TryFetch(context.Background(), "005930")
	if err != nil {
		t.Fatalf("TryFetch() failed: %v", err)
	}

	if quote.Name != "삼성전자" || quote.SectorName != "반도체와반도체장비" {
		t.Errorf("profile fields = %s/%s", quote.Name, quote.SectorName)
	}
	if quote.Code != "KR7005930003" {
		t.Errorf("Code = %s, want KR7005930003", quote.Code)
	}
	if quote.TradePrice != 71500 || quote.OpeningPrice != 71800 {
		t.Errorf("prices = %d/%d", quote.TradePrice, quote.OpeningPrice)
	}
	// 기준가 아래이므로 부호 정규화
	if quote.ChangePrice != -500 || quote.ChangeRate != -0.7 {
		t.Errorf("change = %d/%v, want -500/-0.7", quote.ChangePrice, quote.ChangeRate)
	}
	if quote.MarketCap != 426_837_862_000_000 || quote.PER != 13.48 {
		t.Errorf("valuation = %d/%v", quote.MarketCap, quote.PER)
	}
	if quote.High52wPrice != 88800 || quote.Low52wPrice != 65800 {
		t.Errorf("52w = %d/%d", quote.High52wPrice, quote.Low52wPrice)
	}
}

func TestCompositeProviderAllOrNothing(t *testing.T) {
	tests := []struct {
		name string
		fail func(*stubCompany, *stubRealtime, *stubISU)
	}{
		{"company fails", func(c *stubCompany, r *stubRealtime, i *stubISU) { c.err = errors.New("down") }},
		{"realtime fails", func(c *stubCompany, r *stubRealtime, i *stubISU) { r.itemErr = errors.New("down") }},
		{"summary fails", func(c *stubCompany, r *stubRealtime, i *stubISU) { r.summaryErr = errors.New("down") }},
		{"isu fails", func(c *stubCompany, r *stubRealtime, i *stubISU) { i.err = errors.New("down") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company, realtime, isu := healthySources()
			tt.fail(company, realtime, isu)
			p := NewCompositeProvider(company, realtime, isu, logger.NewNop())

			if _, err := p.TryFetch(context.Background(), "005930"); err == nil {
				t.Error("TryFetch() succeeded with a failed sub-fetch, want error")
			}
		})
	}
}
