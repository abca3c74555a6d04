package naver

import (
	"testing"
)

func TestItemQuoteSigns(t *testing.T) {
	tests := []struct {
		name     string
		quote    ItemQuote
		wantDiff float64
		wantRate float64
	}{
		{
			name:     "falling",
			quote:    ItemQuote{Base: 72000, Now: 71500, Diff: 500, Rate: 0.69},
			wantDiff: -500,
			wantRate: -0.69,
		},
		{
			name:     "rising",
			quote:    ItemQuote{Base: 71500, Now: 72000, Diff: 500, Rate: 0.7},
			wantDiff: 500,
			wantRate: 0.7,
		},
		{
			// 보합은 하락으로 취급하되 크기가 0이라 부호가 드러나지 않는다
			name:     "flat",
			quote:    ItemQuote{Base: 71500, Now: 71500, Diff: 0, Rate: 0},
			wantDiff: 0,
			wantRate: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote.SignedDiff(); got != tt.wantDiff {
				t.Errorf("SignedDiff() = %v, want %v", got, tt.wantDiff)
			}
			if got := tt.quote.SignedRate(); got != tt.wantRate {
				t.Errorf("SignedRate() = %v, want %v", got, tt.wantRate)
			}
		})
	}
}

func TestParseItemSummary(t *testing.T) {
	body := []byte(`{"marketSum": 426837862, "per": 13.48, "pbr": 1.37}`)

	sum, err := parseItemSummary(body)
	if err != nil {
		t.Fatalf("parseItemSummary() failed: %v", err)
	}

	// marketSum은 백만원 단위, 원 단위로 환산된다
	if sum.MarketCap != 426_837_862_000_000 {
		t.Errorf("MarketCap = %d, want 426837862000000", sum.MarketCap)
	}
	if sum.PER != 13.48 {
		t.Errorf("PER = %v, want 13.48", sum.PER)
	}
}

func TestParsePastPrices(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="EUC-KR" ?>
<protocol>
	<chartdata symbol="005930" count="3">
		<item data="20240102|71800|72200|71300|71500|12345678" />
		<item data="20240103|71500|72000|71000|71900|9876543" />
		<item data="20240104|71900|72500|71700|72400|8765432" />
	</chartdata>
</protocol>`)

	prices, err := parsePastPrices(body)
	if err != nil {
		t.Fatalf("parsePastPrices() failed: %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("len(prices) = %d, want 3", len(prices))
	}

	// 응답 순서 보존
	first := prices[0]
	if first.Date != "2024-01-02" {
		t.Errorf("Date = %s, want 2024-01-02", first.Date)
	}
	if first.Start != 71800 || first.High != 72200 || first.Low != 71300 || first.End != 71500 {
		t.Errorf("candle = %+v", first)
	}
	if first.Volume != 12345678 {
		t.Errorf("Volume = %d, want 12345678", first.Volume)
	}
	if prices[2].Date != "2024-01-04" {
		t.Errorf("last Date = %s, want 2024-01-04", prices[2].Date)
	}
}

func TestParsePastPricesMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no rows", `<protocol><chartdata /></protocol>`},
		{"short row", `<item data="20240102|71800|72200" />`},
		{"non numeric", `<item data="20240102|71800|72200|71300|71500|N/A" />`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePastPrices([]byte(tt.body)); err == nil {
				t.Error("parsePastPrices() succeeded on malformed payload, want error")
			}
		})
	}
}

func TestParseNews(t *testing.T) {
	body := []byte(`{
		"items": [
			{
				"title": "<b>삼성전자</b>, &quot;반도체 호황&quot; 수혜 전망",
				"description": "증권가는 <b>삼성전자</b>의 실적 개선을 점쳤다.",
				"link": "https://n.news.naver.com/article/001/0001",
				"pubDate": "Tue, 02 Jan 2024 09:30:00 +0900"
			}
		]
	}`)

	items, err := parseNews(body)
	if err != nil {
		t.Fatalf("parseNews() failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	got := items[0]
	if got.Title != "삼성전자, 반도체 호황 수혜 전망" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Description != "증권가는 삼성전자의 실적 개선을 점쳤다." {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Date != "2024-01-02" {
		t.Errorf("Date = %s, want 2024-01-02", got.Date)
	}
}

func TestFormatNewsDateFallback(t *testing.T) {
	if got := formatNewsDate("not a date"); got != "not a date" {
		t.Errorf("formatNewsDate() = %q, want original string", got)
	}
}
