package contracts

import "time"

// ReportRecord is a single analyst report row from the report store.
// 외부 수집 파이프라인이 적재하며, 이 서비스는 읽기 전용
type ReportRecord struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StockName string `json:"stockName"`
	StockID   string `json:"stockId"`
	PriceGoal int64  `json:"priceGoal"` // 0 = 의견 없음 (목표가 미제시)
	LSector   string `json:"lSector"`   // 대분류 섹터
	SSector   string `json:"sSector"`   // 소분류 섹터
	Analyst   string `json:"analyst"`
	Firm      string `json:"firm"`
	ReportID  string `json:"reportId"`
}

// HasPriceGoal reports whether the analyst actually issued a target price
func (r ReportRecord) HasPriceGoal() bool {
	return r.PriceGoal != 0
}

// ParsedDate returns the report date as time.Time (zero value on malformed rows)
func (r ReportRecord) ParsedDate() time.Time {
	t, _ := time.Parse("2006-01-02", r.Date)
	return t
}
