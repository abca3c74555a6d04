package daum

import "testing"

func TestParseQuote(t *testing.T) {
	body := []byte(`{
		"name": "삼성전자",
		"code": "KR7005930003",
		"companySummary": "  한국 및 CE, IM부문 해외 9개 지역총괄 생산/판매법인.  ",
		"wicsSectorName": "반도체와반도체장비",
		"openingPrice": 71800,
		"highPrice": 72200,
		"lowPrice": 71300,
		"tradePrice": 71500,
		"change": "FALL",
		"changePrice": 500,
		"changeRate": 0.00694,
		"marketCap": 426837862350000,
		"high52wPrice": 88800,
		"low52wPrice": 65800,
		"foreignRatio": 54.32,
		"per": 13.48,
		"pbr": 1.37,
		"eps": 5302,
		"bps": 52002
	}`)

	quote, err := parseQuote(body)
	if err != nil {
		t.Fatalf("parseQuote() failed: %v", err)
	}

	if quote.Name != "삼성전자" {
		t.Errorf("Name = %s, want 삼성전자", quote.Name)
	}
	if quote.TradePrice != 71500 {
		t.Errorf("TradePrice = %d, want 71500", quote.TradePrice)
	}

	// FALL direction must flip the sign of price and rate
	if quote.ChangePrice != -500 {
		t.Errorf("ChangePrice = %d, want -500", quote.ChangePrice)
	}
	if quote.ChangeRate != -0.7 {
		t.Errorf("ChangeRate = %v, want -0.7", quote.ChangeRate)
	}

	// Summary whitespace is trimmed
	if quote.CompanySummary != "한국 및 CE, IM부문 해외 9개 지역총괄 생산/판매법인." {
		t.Errorf("CompanySummary = %q", quote.CompanySummary)
	}
}

func TestParseQuoteRise(t *testing.T) {
	body := []byte(`{
		"name": "카카오",
		"code": "KR7035720002",
		"tradePrice": 45000,
		"change": "RISE",
		"changePrice": 1200,
		"changeRate": 0.0274
	}`)

	quote, err := parseQuote(body)
	if err != nil {
		t.Fatalf("parseQuote() failed: %v", err)
	}

	if quote.ChangePrice != 1200 {
		t.Errorf("ChangePrice = %d, want 1200", quote.ChangePrice)
	}
	if quote.ChangeRate != 2.7 {
		t.Errorf("ChangeRate = %v, want 2.7", quote.ChangeRate)
	}
}

func TestParseQuoteIncomplete(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"tradePrice": 71500}`},
		{"zero trade price", `{"name": "삼성전자", "tradePrice": 0}`},
		{"not json", `<html>blocked</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseQuote([]byte(tt.body)); err == nil {
				t.Error("parseQuote() succeeded on incomplete payload, want error")
			}
		})
	}
}

func TestGlobalIndexSignedChange(t *testing.T) {
	fall := GlobalIndexData{Change: "FALL", ChangePrice: 12.5}
	if fall.SignedChange() != -12.5 {
		t.Errorf("SignedChange() = %v, want -12.5", fall.SignedChange())
	}

	rise := GlobalIndexData{Change: "RISE", ChangePrice: 8.25}
	if rise.SignedChange() != 8.25 {
		t.Errorf("SignedChange() = %v, want 8.25", rise.SignedChange())
	}
}
