package krx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// isuResponse mirrors the stock finder dataset
type isuResponse struct {
	Block1 []struct {
		FullCode  string `json:"full_code"`
		ShortCode string `json:"short_code"`
		Name      string `json:"codeName"`
	} `json:"block1"`
}

// FetchISUCode resolves a stock ID to its KRX ISU code (KR7...).
// 수급 통계 조회의 isuCd 파라미터로 쓰인다.
func (c *Client) FetchISUCode(ctx context.Context, stockID string) (string, error) {
	params := url.Values{
		"bld":        {"dbms/comm/finder/finder_stkisu"},
		"mktsel":     {"ALL"},
		"searchText": {stockID},
	}

	body, err := c.fetchJSON(ctx, params)
	if err != nil {
		return "", err
	}

	return parseISUCode(body)
}

func parseISUCode(body []byte) (string, error) {
	var raw isuResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(raw.Block1) == 0 || raw.Block1[0].FullCode == "" {
		return "", fmt.Errorf("stock not found in KRX finder")
	}
	return raw.Block1[0].FullCode, nil
}
