package contracts

// QuoteData is a stock's live quote and basic info, composed per request from
// one or more providers. Request-scoped; never persisted.
type QuoteData struct {
	Name           string
	Code           string // 거래소 종목 코드 (KRX 수급 조회용 ISU 코드)
	CompanySummary string
	SectorName     string // WICS 소분류

	OpeningPrice int64
	HighPrice    int64
	LowPrice     int64
	TradePrice   int64
	ChangePrice  int64 // signed: 하락이면 음수
	ChangeRate   float64

	MarketCap    int64
	High52wPrice int64
	Low52wPrice  int64
	ForeignRatio float64

	PER float64
	PBR float64
	EPS float64
	BPS float64

	// ROE is always derived as (EPS/BPS)*100, never taken from a provider
	ROE float64
}

// QuoteSnapshot is the light per-stock quote used by the sector path
type QuoteSnapshot struct {
	TradePrice int64
	ChangeRate float64
}

// PastPrice is one daily/weekly/monthly candle from the chart provider
type PastPrice struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Start  int64  `json:"start"`
	High   int64  `json:"high"`
	Low    int64  `json:"low"`
	End    int64  `json:"end"`
	Volume int64  `json:"volume"`
}

// FlowAmounts holds raw net trading values by investor type (원 단위)
type FlowAmounts struct {
	Individual   int64 `json:"individual"`
	Foreign      int64 `json:"foreign"`
	Institutions int64 `json:"institutions"`
}

// FlowStrings holds the same values in 조/억/만 표기
type FlowStrings struct {
	Individual   string `json:"individual"`
	Foreign      string `json:"foreign"`
	Institutions string `json:"institutions"`
}

// InvestorFlow is one trading day of investor statistics.
// Date carries FlowMaintenance when the provider timed out.
type InvestorFlow struct {
	Date  string      `json:"date"` // YYYY-MM-DD
	InKR  FlowStrings `json:"inKR"`
	InVal FlowAmounts `json:"inVal"`
}

// FlowMaintenance is the date sentinel of the single placeholder record
// returned when the investor-flow provider times out
const FlowMaintenance = "점검중"

// NewsItem is one news article related to a stock, markup already stripped
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD
	Link        string `json:"link"`
}
