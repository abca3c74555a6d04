package contracts

import "encoding/json"

// Sentinel values used in the public response contract.
// 실패/부재 필드는 생략하지 않고 문서화된 센티넬로 내려간다
const (
	NoOpinion = "의견 없음" // priceAvg: 유효 목표가 0건
	NoScore   = "-"       // score: 파이프라인 점수 부재
	NoSector  = "-"       // top3: 섹터 수 부족 패딩
)

// PriceOpinion is the average analyst price target, or "no opinion" when no
// report in range carried a target. Marshals to an integer or NoOpinion.
type PriceOpinion struct {
	Value   int64
	HasData bool
}

// MarshalJSON renders the value or the 의견 없음 sentinel
func (p PriceOpinion) MarshalJSON() ([]byte, error) {
	if !p.HasData {
		return json.Marshal(NoOpinion)
	}
	return json.Marshal(p.Value)
}

// StockScore is a pipeline-computed recommendation score read from the store.
// Marshals to a number or NoScore.
type StockScore struct {
	Value   float64
	HasData bool
}

// MarshalJSON renders the value or the "-" sentinel
func (s StockScore) MarshalJSON() ([]byte, error) {
	if !s.HasData {
		return json.Marshal(NoScore)
	}
	return json.Marshal(s.Value)
}

// StockOverview is the assembled single-stock response.
// Every field is always present; failed non-fatal sources degrade to
// empty sequences or sentinels, never to missing keys.
type StockOverview struct {
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	CompanySummary string  `json:"companySummary"`
	SectorName     string  `json:"wicsSectorName"`
	OpeningPrice   int64   `json:"openingPrice"`
	HighPrice      int64   `json:"highPrice"`
	LowPrice       int64   `json:"lowPrice"`
	TradePrice     int64   `json:"tradePrice"`
	ChangePrice    int64   `json:"changePrice"`
	ChangeRate     float64 `json:"changeRate"`
	MarketCap      string  `json:"marketCap"` // 조/억/만 표기
	High52wPrice   int64   `json:"high52wPrice"`
	Low52wPrice    int64   `json:"low52wPrice"`
	ForeignRatio   float64 `json:"foreignRatio"`
	PER            float64 `json:"per"`
	PBR            float64 `json:"pbr"`
	ROE            float64 `json:"roe"`

	ReportList []ReportRecord `json:"reportList"`
	PriceAvg   PriceOpinion   `json:"priceAvg"`
	ExpYield   float64        `json:"expYield"`
	Score      StockScore     `json:"score"`

	PastData      []PastPrice    `json:"pastData"`
	InvStatistics []InvestorFlow `json:"invStatistics"`
	News          []NewsItem     `json:"news"`
	NewsTitles    string         `json:"newsTitles"`
}

// StockMetrics is the per-stock derived record of a sector overview
type StockMetrics struct {
	StockID    string  `json:"stockId"`
	SSector    string  `json:"sSector"`
	TradePrice int64   `json:"tradePrice"`
	ChangeRate float64 `json:"changeRate"`
	PriceAvg   int64   `json:"priceAvg"`
	ExpYield   float64 `json:"expYield"`
	CCount     int     `json:"cCount"` // 평균에 반영된 리포트 수
	Score      float64 `json:"score"`
}

// SectorRollup is one narrow sector's mean expected yield
type SectorRollup struct {
	SectorName   string  `json:"sectorName"`
	MeanExpYield float64 `json:"meanExpYield"`
}

// Top3List ranks the three best narrow sectors by mean expected yield.
// Missing ranks carry NoSector / 0.
type Top3List struct {
	First       string  `json:"first"`
	FirstYield  float64 `json:"firstYield"`
	Second      string  `json:"second"`
	SecondYield float64 `json:"secondYield"`
	Third       string  `json:"third"`
	ThirdYield  float64 `json:"thirdYield"`
}

// SectorOverview is the assembled sector response
type SectorOverview struct {
	StockList map[string]*StockMetrics `json:"stockList"` // 종목명 -> 지표
	AvgYield  float64                  `json:"avgYield"`
	Top3List  Top3List                 `json:"top3List"`
}
