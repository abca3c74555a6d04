package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/wonny/finsight/backend/internal/contracts"
)

const newsSearchURL = "https://openapi.naver.com/v1/search/news.json?query=%s&display=100&sort=sim"

// markupPattern matches HTML tags and escaped quotes left by the search API
var markupPattern = regexp.MustCompile(`(?i)(&quot;|<[^>]+>)`)

// newsResponse mirrors the Naver news search payload
type newsResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
	} `json:"items"`
}

// FetchNews searches recent news articles by stock name
func (c *Client) FetchNews(ctx context.Context, stockName string) ([]contracts.NewsItem, error) {
	headers := map[string]string{
		"X-Naver-Client-Id":     c.newsClientID,
		"X-Naver-Client-Secret": c.newsClientSecret,
	}

	body, err := c.fetch(ctx, fmt.Sprintf(newsSearchURL, url.QueryEscape(stockName)), headers)
	if err != nil {
		return nil, err
	}
	return parseNews(body)
}

func parseNews(body []byte) ([]contracts.NewsItem, error) {
	var raw newsResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]contracts.NewsItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		items = append(items, contracts.NewsItem{
			Title:       stripMarkup(it.Title),
			Description: stripMarkup(it.Description),
			Date:        formatNewsDate(it.PubDate),
			Link:        it.Link,
		})
	}

	return items, nil
}

// stripMarkup removes tags and escaped quotes from search snippets
func stripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}

// formatNewsDate converts the RFC1123Z pubDate to YYYY-MM-DD.
// 파싱 실패 시 원문을 그대로 둔다.
func formatNewsDate(d string) string {
	t, err := time.Parse(time.RFC1123Z, d)
	if err != nil {
		return d
	}
	return t.Format("2006-01-02")
}
