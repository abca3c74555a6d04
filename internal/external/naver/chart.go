package naver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wonny/finsight/backend/internal/contracts"
)

const chartURL = "https://fchart.stock.naver.com/sise.nhn?requestType=0&symbol=%s&count=%d&timeframe=%s"

// itemPattern extracts candle rows from the fchart XML payload
var itemPattern = regexp.MustCompile(`<item data="([^"]+)"`)

// FetchPastPrices fetches daily/weekly/monthly candles for a stock.
// timeframe은 day | week | month, 응답 순서를 그대로 보존한다.
func (c *Client) FetchPastPrices(ctx context.Context, stockID string, count int, timeframe string) ([]contracts.PastPrice, error) {
	body, err := c.fetch(ctx, fmt.Sprintf(chartURL, stockID, count, timeframe), nil)
	if err != nil {
		return nil, err
	}
	return parsePastPrices(body)
}

// parsePastPrices decodes the fchart XML.
// 각 row는 날짜|시가|고가|저가|종가|거래량 형식이다.
func parsePastPrices(body []byte) ([]contracts.PastPrice, error) {
	matches := itemPattern.FindAllStringSubmatch(string(body), -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no candle rows in chart payload")
	}

	prices := make([]contracts.PastPrice, 0, len(matches))
	for _, m := range matches {
		fields := strings.Split(m[1], "|")
		if len(fields) != 6 {
			return nil, fmt.Errorf("malformed candle row: %q", m[1])
		}

		nums := make([]int64, 5)
		for i, f := range fields[1:] {
			n, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed candle value %q: %w", f, err)
			}
			nums[i] = n
		}

		prices = append(prices, contracts.PastPrice{
			Date:   formatChartDate(fields[0]),
			Start:  nums[0],
			High:   nums[1],
			Low:    nums[2],
			End:    nums[3],
			Volume: nums[4],
		})
	}

	return prices, nil
}

// formatChartDate converts YYYYMMDD to YYYY-MM-DD
func formatChartDate(d string) string {
	if len(d) != 8 {
		return d
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}
