package jobs

import (
	"context"

	"github.com/wonny/finsight/backend/internal/market"
)

// IndicatorWarmJob keeps the market indicator cache hot during trading
// hours so the board endpoint rarely hits the upstreams directly.
type IndicatorWarmJob struct {
	market *market.Service
}

// NewIndicatorWarmJob creates the cache warm job
func NewIndicatorWarmJob(svc *market.Service) *IndicatorWarmJob {
	return &IndicatorWarmJob{market: svc}
}

// Name returns the job name
func (j *IndicatorWarmJob) Name() string {
	return "indicator-warm"
}

// Schedule runs every minute during KRX trading hours (주중 09-15시)
func (j *IndicatorWarmJob) Schedule() string {
	return "0 * 9-15 * * MON-FRI"
}

// Run refreshes the indicator snapshot cache
func (j *IndicatorWarmJob) Run(ctx context.Context) error {
	return j.market.Refresh(ctx)
}
