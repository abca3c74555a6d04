package daum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GlobalIndexData is one overseas index quote from Daum Finance
type GlobalIndexData struct {
	Symbol      string  `json:"symbolCode"`
	Name        string  `json:"name"`
	TradePrice  float64 `json:"tradePrice"`
	Change      string  `json:"change"` // RISE | FALL | EVEN
	ChangePrice float64 `json:"changePrice"`
	ChangeRate  float64 `json:"changeRate"`
}

// SignedChange returns the change normalized to a signed value
func (g GlobalIndexData) SignedChange() float64 {
	if g.Change == "FALL" {
		return -g.ChangePrice
	}
	return g.ChangePrice
}

// FetchGlobalIndexes fetches overseas market index quotes
func (p *Provider) FetchGlobalIndexes(ctx context.Context) ([]GlobalIndexData, error) {
	url := fmt.Sprintf("%s/api/global/quotes", p.baseURL)
	headers := map[string]string{
		"Referer":    fmt.Sprintf("%s/global", p.baseURL),
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

	var payload struct {
		Data []GlobalIndexData `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return payload.Data, nil
}
