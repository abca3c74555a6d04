package naver

import (
	"context"
	"encoding/json"
	"fmt"
)

const pollingBaseURL = "https://polling.finance.naver.com/api/realtime"

// ItemQuote is one entry of the polling realtime API.
// cv/cr은 부호 없는 크기이며 방향은 기준가 대비로 판단한다.
type ItemQuote struct {
	Code string  `json:"cd"`
	Name string  `json:"nm"`
	Base float64 `json:"sv"` // 기준가 (전일 종가)
	Now  float64 `json:"nv"`
	Diff float64 `json:"cv"` // 대비 크기
	Rate float64 `json:"cr"` // 등락률 크기
	Open float64 `json:"ov"`
	High float64 `json:"hv"`
	Low  float64 `json:"lv"`
	EPS  float64 `json:"eps"`
	BPS  float64 `json:"bps"`
}

// Falling reports whether the item trades at or below its base price
func (q ItemQuote) Falling() bool {
	return q.Base-q.Now >= 0
}

// SignedDiff returns 대비 normalized to a signed value
func (q ItemQuote) SignedDiff() float64 {
	if q.Falling() {
		return -q.Diff
	}
	return q.Diff
}

// SignedRate returns 등락률 normalized to a signed value
func (q ItemQuote) SignedRate() float64 {
	if q.Falling() {
		return -q.Rate
	}
	return q.Rate
}

// realtimeResponse mirrors the polling API envelope
type realtimeResponse struct {
	ResultCode string `json:"resultCode"`
	Result     struct {
		Areas []struct {
			Name  string      `json:"name"`
			Datas []ItemQuote `json:"datas"`
		} `json:"areas"`
	} `json:"result"`
}

// FetchItemQuote fetches the realtime quote of a single stock
func (c *Client) FetchItemQuote(ctx context.Context, stockID string) (*ItemQuote, error) {
	items, err := c.fetchRealtime(ctx, "SERVICE_ITEM:"+stockID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no realtime data for %s", stockID)
	}
	return &items[0], nil
}

// FetchIndexQuotes fetches the domestic market indexes (KOSPI, KOSDAQ, KPI200)
func (c *Client) FetchIndexQuotes(ctx context.Context) ([]ItemQuote, error) {
	return c.fetchRealtime(ctx, "SERVICE_INDEX:KOSPI,KOSDAQ,KPI200")
}

// fetchRealtime queries the polling API with a service query expression
func (c *Client) fetchRealtime(ctx context.Context, query string) ([]ItemQuote, error) {
	url := fmt.Sprintf("%s?query=%s", pollingBaseURL, query)

	body, err := c.fetch(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	var payload realtimeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.ResultCode != "success" || len(payload.Result.Areas) == 0 {
		return nil, fmt.Errorf("realtime query rejected: %q", payload.ResultCode)
	}

	return payload.Result.Areas[0].Datas, nil
}
