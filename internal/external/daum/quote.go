package daum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/pkg/format"
	"github.com/wonny/finsight/backend/pkg/httputil"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// Provider fetches stock quotes from Daum Finance (primary source)
// ⭐ SSOT: Daum Finance 호출은 이 프로바이더에서만
type Provider struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewProvider creates a new Daum quote provider
func NewProvider(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Provider {
	return &Provider{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name identifies the provider in gateway logs
func (p *Provider) Name() string {
	return "daum"
}

// quoteResponse mirrors the Daum quotes API payload
type quoteResponse struct {
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	CompanySummary string  `json:"companySummary"`
	WicsSectorName string  `json:"wicsSectorName"`
	OpeningPrice   float64 `json:"openingPrice"`
	HighPrice      float64 `json:"highPrice"`
	LowPrice       float64 `json:"lowPrice"`
	TradePrice     float64 `json:"tradePrice"`
	Change         string  `json:"change"` // RISE | FALL | EVEN
	ChangePrice    float64 `json:"changePrice"`
	ChangeRate     float64 `json:"changeRate"` // 비율 (0.0143 = 1.43%)
	MarketCap      float64 `json:"marketCap"`
	High52wPrice   float64 `json:"high52wPrice"`
	Low52wPrice    float64 `json:"low52wPrice"`
	ForeignRatio   float64 `json:"foreignRatio"`
	PER            float64 `json:"per"`
	PBR            float64 `json:"pbr"`
	EPS            float64 `json:"eps"`
	BPS            float64 `json:"bps"`
}

// TryFetch fetches a full quote for the stock.
// Daum requires a matching referer header per stock page.
func (p *Provider) TryFetch(ctx context.Context, stockID string) (*contracts.QuoteData, error) {
	url := fmt.Sprintf("%s/api/quotes/A%s?summary=false&changeStatistics=true", p.baseURL, stockID)
	headers := map[string]string{
		"Referer":    fmt.Sprintf("%s/quotes/A%s", p.baseURL, stockID),
		"User-Agent": "Mozilla/5.0",
	}

	resp, err := p.httpClient.GetWithHeaders(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	quote, err := parseQuote(body)
	if err != nil {
		return nil, err
	}

	p.logger.WithFields(map[string]interface{}{
		"stock_id": stockID,
		"name":     quote.Name,
	}).Debug("Fetched quote from Daum")
	return quote, nil
}

// parseQuote decodes and normalizes the Daum payload.
// 하락(FALL)은 음수로 부호 정규화한다.
func parseQuote(body []byte) (*contracts.QuoteData, error) {
	var raw quoteResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Required fields - fall back to secondary providers otherwise
	if raw.Name == "" || raw.TradePrice <= 0 {
		return nil, fmt.Errorf("incomplete quote payload")
	}

	sign := 1.0
	if raw.Change == "FALL" {
		sign = -1.0
	}

	return &contracts.QuoteData{
		Name:           raw.Name,
		Code:           raw.Code,
		CompanySummary: strings.TrimSpace(raw.CompanySummary),
		SectorName:     raw.WicsSectorName,
		OpeningPrice:   int64(raw.OpeningPrice),
		HighPrice:      int64(raw.HighPrice),
		LowPrice:       int64(raw.LowPrice),
		TradePrice:     int64(raw.TradePrice),
		ChangePrice:    int64(sign * raw.ChangePrice),
		ChangeRate:     sign * format.Round1(raw.ChangeRate*100),
		MarketCap:      int64(raw.MarketCap),
		High52wPrice:   int64(raw.High52wPrice),
		Low52wPrice:    int64(raw.Low52wPrice),
		ForeignRatio:   raw.ForeignRatio,
		PER:            raw.PER,
		PBR:            raw.PBR,
		EPS:            raw.EPS,
		BPS:            raw.BPS,
	}, nil
}
