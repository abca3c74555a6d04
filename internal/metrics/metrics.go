// Package metrics derives the per-stock figures built from analyst
// reports and a live price: 목표가 평균, 기대수익률, 종목 점수.
package metrics

import (
	"math"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/pkg/format"
)

// AveragePriceGoal averages the price targets of the given reports,
// skipping records without one. ok=false면 유효한 목표가가 없다.
func AveragePriceGoal(reports []contracts.ReportRecord) (int64, bool) {
	var sum, n int64
	for _, r := range reports {
		if !r.HasPriceGoal() {
			continue
		}
		sum += r.PriceGoal
		n++
	}
	if n == 0 {
		return 0, false
	}
	return int64(math.Round(float64(sum) / float64(n))), true
}

// ExpectedYield is the percent upside of the average price target
// against the current trade price, one decimal place.
func ExpectedYield(priceAvg, tradePrice int64) float64 {
	if tradePrice == 0 {
		return 0
	}
	return format.Round1((float64(priceAvg) - float64(tradePrice)) / float64(tradePrice) * 100)
}

// ScoreFunc computes a stock score from its expected yield and the
// number of reports backing it. 섹터 경로의 점수 산출 전략.
type ScoreFunc func(expYield float64, reportCount int) float64

// DefaultScore weighs expected yield by analyst coverage. A stock with
// more reports behind the same upside scores higher; both inputs are
// strictly monotonic.
func DefaultScore(expYield float64, reportCount int) float64 {
	return format.Round1(expYield + 10*math.Log10(1+float64(reportCount)))
}
