package krx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/wonny/finsight/backend/pkg/httputil"
	"github.com/wonny/finsight/backend/pkg/logger"
)

const dataURL = "http://data.krx.co.kr/comm/bldAttendant/getJsonData.cmd"

// Client queries the KRX open data endpoint
// ⭐ SSOT: KRX 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewClient creates a new KRX client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{httpClient: httpClient, logger: log}
}

// fetchJSON queries a bld dataset with the given parameters
func (c *Client) fetchJSON(ctx context.Context, params url.Values) ([]byte, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, dataURL+"?"+params.Encode(), map[string]string{
		"Referer": "http://data.krx.co.kr/contents/MDC/MDI/mdiLoader",
	})
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
