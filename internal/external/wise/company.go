package wise

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/finsight/backend/pkg/httputil"
	"github.com/wonny/finsight/backend/pkg/logger"
)

const companyPageURL = "https://comp.wisereport.co.kr/company/cF1002.aspx?finGubun=MAIN&frq=0&cmp_cd=%s"

// Client scrapes company profile pages from WiseReport
// ⭐ SSOT: WiseReport 스크레이핑은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewClient creates a new WiseReport client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{httpClient: httpClient, logger: log}
}

// CompanyProfile holds the fields scraped from a company page
type CompanyProfile struct {
	Name         string
	SectorName   string // WICS 소분류
	Summary      string // 기업개요, 줄바꿈으로 연결
	High52w      int64
	Low52w       int64
	ForeignRatio float64
}

// FetchCompany scrapes the profile page for a stock
func (c *Client) FetchCompany(ctx context.Context, stockID string) (*CompanyProfile, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, fmt.Sprintf(companyPageURL, stockID), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	return parseCompany(doc)
}

// parseCompany extracts the profile fields from the page DOM
func parseCompany(doc *goquery.Document) (*CompanyProfile, error) {
	name := strings.TrimSpace(doc.Find(".name").First().Text())
	if name == "" {
		return nil, fmt.Errorf("company name not found")
	}

	profile := &CompanyProfile{
		Name:       name,
		SectorName: parseSector(doc.Find(".td0101 dt:nth-child(4)").Text()),
		Summary:    parseSummary(doc),
	}

	// 52주 최고/최저는 "72,500원 / 65,800원" 형식
	high, low, err := parse52Week(doc.Find("#cTB11 tr:nth-child(2) .num").Text())
	if err != nil {
		return nil, err
	}
	profile.High52w, profile.Low52w = high, low

	ratio, err := parsePercent(doc.Find("#cTB11 tr:nth-child(8) .num").Text())
	if err != nil {
		return nil, err
	}
	profile.ForeignRatio = ratio

	return profile, nil
}

// parseSector strips the "WICS : " prefix from the sector cell
func parseSector(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "WICS : "); i >= 0 {
		return strings.TrimSpace(s[i+len("WICS : "):])
	}
	return s
}

// parseSummary joins the 기업개요 bullet lines with newlines
func parseSummary(doc *goquery.Document) string {
	var lines []string
	doc.Find("ul .dot_cmp").Each(func(_ int, sel *goquery.Selection) {
		if line := strings.TrimSpace(sel.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	return strings.Join(lines, "\n")
}

func parse52Week(s string) (int64, int64, error) {
	parts := strings.Split(stripPriceMarks(s), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed 52-week cell: %q", s)
	}

	var high, low int64
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &high); err != nil {
		return 0, 0, fmt.Errorf("malformed 52-week high: %q", parts[0])
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &low); err != nil {
		return 0, 0, fmt.Errorf("malformed 52-week low: %q", parts[1])
	}
	return high, low, nil
}

// stripPriceMarks removes commas and the 원 suffix from price text
func stripPriceMarks(s string) string {
	return strings.NewReplacer(",", "", "원", "").Replace(s)
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil {
		return 0, fmt.Errorf("malformed percent cell: %q", s)
	}
	return v, nil
}
