// Package sector rolls per-stock metrics up into narrow-sector rankings.
package sector

import (
	"sort"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/pkg/format"
)

// Rollup groups stock metrics by narrow sector and averages their
// expected yields. 섹터는 첫 등장 순서를 유지한다.
func Rollup(stocks map[string]*contracts.StockMetrics, order []string) []contracts.SectorRollup {
	type bucket struct {
		sum float64
		n   int
	}

	buckets := make(map[string]*bucket)
	var sectors []string
	for _, name := range order {
		m, ok := stocks[name]
		if !ok {
			continue
		}

		b, seen := buckets[m.SSector]
		if !seen {
			b = &bucket{}
			buckets[m.SSector] = b
			sectors = append(sectors, m.SSector)
		}
		b.sum += m.ExpYield
		b.n++
	}

	rollups := make([]contracts.SectorRollup, 0, len(sectors))
	for _, s := range sectors {
		b := buckets[s]
		rollups = append(rollups, contracts.SectorRollup{
			SectorName:   s,
			MeanExpYield: format.Round1(b.sum / float64(b.n)),
		})
	}
	return rollups
}

// Top3 ranks the three best narrow sectors by mean expected yield.
// 동률은 먼저 등장한 섹터가 앞서고, 모자라는 순위는 센티넬로 채운다.
func Top3(rollups []contracts.SectorRollup) contracts.Top3List {
	ranked := make([]contracts.SectorRollup, len(rollups))
	copy(ranked, rollups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MeanExpYield > ranked[j].MeanExpYield
	})

	pick := func(i int) (string, float64) {
		if i >= len(ranked) {
			return contracts.NoSector, 0
		}
		return ranked[i].SectorName, ranked[i].MeanExpYield
	}

	var top contracts.Top3List
	top.First, top.FirstYield = pick(0)
	top.Second, top.SecondYield = pick(1)
	top.Third, top.ThirdYield = pick(2)
	return top
}

// AvgYield is the mean expected yield across all stocks in the overview
func AvgYield(stocks map[string]*contracts.StockMetrics) float64 {
	if len(stocks) == 0 {
		return 0
	}

	var sum float64
	for _, m := range stocks {
		sum += m.ExpYield
	}
	return format.Round1(sum / float64(len(stocks)))
}
