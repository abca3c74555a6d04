package naver

import (
	"context"
	"encoding/json"
	"fmt"
)

const itemSummaryURL = "https://m.stock.naver.com/api/item/itemSummary.nhn?code=%s"

// ItemSummary holds the mobile summary figures for a stock
type ItemSummary struct {
	MarketCap int64   // 원 단위
	PER       float64
	PBR       float64
}

// itemSummaryResponse mirrors the mobile API payload.
// marketSum은 백만원 단위로 내려온다.
type itemSummaryResponse struct {
	MarketSum float64 `json:"marketSum"`
	PER       float64 `json:"per"`
	PBR       float64 `json:"pbr"`
}

// FetchItemSummary fetches valuation figures from the mobile summary API
func (c *Client) FetchItemSummary(ctx context.Context, stockID string) (*ItemSummary, error) {
	body, err := c.fetch(ctx, fmt.Sprintf(itemSummaryURL, stockID), nil)
	if err != nil {
		return nil, err
	}
	return parseItemSummary(body)
}

func parseItemSummary(body []byte) (*ItemSummary, error) {
	var raw itemSummaryResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &ItemSummary{
		MarketCap: int64(raw.MarketSum) * 1_000_000,
		PER:       raw.PER,
		PBR:       raw.PBR,
	}, nil
}
