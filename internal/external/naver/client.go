package naver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wonny/finsight/backend/pkg/httputil"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// Client handles communication with Naver Finance endpoints
// ⭐ SSOT: Naver 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger

	// 뉴스 검색 open API credentials
	newsClientID     string
	newsClientSecret string
}

// NewClient creates a new Naver client
func NewClient(httpClient *httputil.Client, log *logger.Logger, newsClientID, newsClientSecret string) *Client {
	return &Client{
		httpClient:       httpClient,
		logger:           log,
		newsClientID:     newsClientID,
		newsClientSecret: newsClientSecret,
	}
}

// fetch performs a GET and returns the raw body
func (c *Client) fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, url, headers)
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

	return body, nil
}
