// Package market serves the market indicator snapshot shown alongside
// overviews: 국내 지수와 해외 지수.
package market

import (
	"context"
	"fmt"

	"github.com/wonny/finsight/backend/internal/external/daum"
	"github.com/wonny/finsight/backend/internal/external/naver"
	"github.com/wonny/finsight/backend/pkg/format"
	"github.com/wonny/finsight/backend/pkg/logger"
	"github.com/wonny/finsight/backend/pkg/redis"
)

// Indicator is one index quote in the snapshot
type Indicator struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Change     float64 `json:"change"`
	ChangeRate float64 `json:"changeRate"`
}

// Snapshot groups the indicator board by market scope
type Snapshot struct {
	Domestic []Indicator `json:"domestic"`
	Global   []Indicator `json:"global"`
}

// domesticSource provides KR index quotes (naver.Client)
type domesticSource interface {
	FetchIndexQuotes(ctx context.Context) ([]naver.ItemQuote, error)
}

// globalSource provides overseas index quotes (daum.Provider)
type globalSource interface {
	FetchGlobalIndexes(ctx context.Context) ([]daum.GlobalIndexData, error)
}

// Service fetches and caches the market indicator snapshot
type Service struct {
	domestic domesticSource
	global   globalSource
	cache    *redis.Cache
	logger   *logger.Logger
}

// NewService creates the market indicator service
func NewService(domestic domesticSource, global globalSource, cache *redis.Cache, log *logger.Logger) *Service {
	return &Service{
		domestic: domestic,
		global:   global,
		cache:    cache,
		logger:   log,
	}
}

// Indicators returns the indicator snapshot, cached for a short TTL.
// 한쪽 스코프 실패는 빈 목록으로 흡수되고 양쪽 다 실패해야 오류다.
func (s *Service) Indicators(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	err := s.cache.GetOrSet(ctx, redis.MarketIndicatorKey("all"), &snap, redis.TTLShort, func() (interface{}, error) {
		return s.fetchSnapshot(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Refresh forces a fetch and repopulates the cache (warm job entry point)
func (s *Service) Refresh(ctx context.Context) error {
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, redis.MarketIndicatorKey("all"), snap, redis.TTLShort)
}

func (s *Service) fetchSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Domestic: []Indicator{}, Global: []Indicator{}}

	domestic, domErr := s.domestic.FetchIndexQuotes(ctx)
	if domErr != nil {
		s.logger.WithFields(map[string]interface{}{"error": domErr.Error()}).
			Warn("Domestic index fetch failed")
	}
	for _, q := range domestic {
		snap.Domestic = append(snap.Domestic, Indicator{
			Symbol:     q.Code,
			Name:       q.Name,
			Value:      q.Now,
			Change:     q.SignedDiff(),
			ChangeRate: format.Round1(q.SignedRate()),
		})
	}

	global, glbErr := s.global.FetchGlobalIndexes(ctx)
	if glbErr != nil {
		s.logger.WithFields(map[string]interface{}{"error": glbErr.Error()}).
			Warn("Global index fetch failed")
	}
	for _, g := range global {
		snap.Global = append(snap.Global, Indicator{
			Symbol:     g.Symbol,
			Name:       g.Name,
			Value:      g.TradePrice,
			Change:     g.SignedChange(),
			ChangeRate: format.Round1(g.ChangeRate * 100),
		})
	}

	if domErr != nil && glbErr != nil {
		return nil, fmt.Errorf("every indicator source failed: %v / %v", domErr, glbErr)
	}
	return snap, nil
}
