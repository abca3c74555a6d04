package commands

import (
	"fmt"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/internal/external/daum"
	"github.com/wonny/finsight/backend/internal/external/krx"
	"github.com/wonny/finsight/backend/internal/external/naver"
	"github.com/wonny/finsight/backend/internal/external/wise"
	"github.com/wonny/finsight/backend/internal/market"
	"github.com/wonny/finsight/backend/internal/overview"
	"github.com/wonny/finsight/backend/internal/quote"
	"github.com/wonny/finsight/backend/internal/reports"
	"github.com/wonny/finsight/backend/pkg/config"
	"github.com/wonny/finsight/backend/pkg/database"
	"github.com/wonny/finsight/backend/pkg/httputil"
	"github.com/wonny/finsight/backend/pkg/logger"
	"github.com/wonny/finsight/backend/pkg/redis"
)

// app bundles the wired collaborators of a CLI command
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	redis    *redis.Client
	overview *overview.Service
	market   *market.Service
}

// buildApp wires the full service graph from configuration.
// ⭐ SSOT: 의존성 조립은 이 함수에서만
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	limiter := redis.NewRateLimiter(redisClient, "finsight")

	// External clients. 뉴스 검색과 KRX는 호출 한도가 있어 각자 리미터를 달고,
	// 시세 계열은 재시도만 쓴다.
	quoteHTTP := httputil.New(cfg, log)
	naverHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.NaverRateLimit)
	krxHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.KRXRateLimit)

	daumProvider := daum.NewProvider(quoteHTTP, log, cfg.Daum.BaseURL)
	naverClient := naver.NewClient(naverHTTP, log, cfg.Naver.ClientID, cfg.Naver.ClientSecret)
	wiseClient := wise.NewClient(quoteHTTP, log)
	krxClient := krx.NewClient(krxHTTP, log)

	// Provider chain: Daum first, then the composite of secondary sources
	composite := quote.NewCompositeProvider(wiseClient, naverClient, krxClient, log)
	gateway := quote.NewGateway(
		[]contracts.QuoteProvider{daumProvider, composite},
		naverClient, naverClient, krxClient, naverClient,
		log,
	)

	store := reports.NewRepository(db.Pool)
	overviewSvc := overview.NewService(gateway, store, nil, cfg, log)

	cache := redis.NewCache(redisClient, "finsight")
	marketSvc := market.NewService(naverClient, daumProvider, cache, log)

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		redis:    redisClient,
		overview: overviewSvc,
		market:   marketSvc,
	}, nil
}

// close releases the app's connections
func (a *app) close() {
	a.db.Close()
	a.redis.Close()
}
