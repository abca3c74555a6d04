package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/finsight/backend/internal/api"
	"github.com/wonny/finsight/backend/internal/api/handlers"
	"github.com/wonny/finsight/backend/internal/scheduler"
	"github.com/wonny/finsight/backend/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET /health                         - Health check
  GET /api/stocks/{code}/overview     - 종목 오버뷰
  GET /api/sectors/{name}/overview    - 섹터 오버뷰
  GET /api/market/indicators          - 시장 지표 보드

Example:
  go run ./cmd/finsight api
  go run ./cmd/finsight api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Finsight API Server ===")

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	log := a.log
	log.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
		"env":  a.cfg.Env,
	}).Info("Initializing API server")

	// Handlers and router
	overviewHandler := handlers.NewOverviewHandler(a.overview, log)
	marketHandler := handlers.NewMarketHandler(a.market, log)
	healthHandler := handlers.NewHealthHandler(a.db, log)
	router := api.NewRouter(overviewHandler, marketHandler, healthHandler, log)

	server := api.New(a.cfg, log, router)

	// Indicator cache warm job
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewIndicatorWarmJob(a.market)); err != nil {
		return fmt.Errorf("register warm job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/stocks/{code}/overview")
	fmt.Println("  GET /api/sectors/{name}/overview")
	fmt.Println("  GET /api/market/indicators")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
