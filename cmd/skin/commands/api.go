package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/skinadvisor/backend/internal/advisor"
	"github.com/wonny/skinadvisor/backend/internal/api"
	"github.com/wonny/skinadvisor/backend/internal/api/handlers"
	"github.com/wonny/skinadvisor/backend/internal/scheduler"
	"github.com/wonny/skinadvisor/backend/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API + 키오스크 WebSocket 서버를 시작합니다.

Endpoints:
  GET  /health                 - Health check
  GET  /metrics                - Prometheus metrics
  POST /api/recommend          - 추천 실행
  POST /api/analysis           - 측정값 저장 → analysis_id
  GET  /api/history/{user_id}  - 추천 이력
  GET  /api/catalog            - 현재 카탈로그 스냅샷
  POST /api/catalog/refresh    - 카탈로그 수동 갱신 (X-Admin-Secret)
  GET  /ws/kiosk               - 키오스크 WebSocket

Example:
  go run ./cmd/skin api
  go run ./cmd/skin api --port 8080 --catalog catalog.json`,
	RunE: runAPIServer,
}

var (
	apiPort          string
	apiCatalogFile   string
	apiWithScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
	apiCmd.Flags().StringVar(&apiCatalogFile, "catalog", "", "시작 카탈로그 JSON (DB보다 우선)")
	apiCmd.Flags().BoolVar(&apiWithScheduler, "with-scheduler", true, "카탈로그 자동 갱신 스케줄러 함께 실행")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Wire dependencies
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	// 2. First catalog snapshot
	if err := a.loadCatalog(ctx, apiCatalogFile); err != nil {
		return err
	}

	// 3. Advisor service
	svc := advisor.NewService(advisor.Deps{
		Engine:   a.engine,
		Catalog:  a.catalog,
		Weather:  a.weather,
		Analyses: a.analyses,
		History:  a.history,
	}, a.log)

	// 4. Handlers
	checks := map[string]handlers.Check{}
	if a.db != nil {
		checks["database"] = a.db.Ping
	}
	if a.redis.Enabled() {
		checks["redis"] = a.redis.Ping
	}

	var refresher handlers.Refresher
	if a.refresher != nil {
		refresher = a.refresher
	}

	router := api.NewRouter(api.Handlers{
		Health:    handlers.NewHealthHandler("skinadvisor", svc.ConfigHash(), a.catalog, checks),
		Recommend: handlers.NewRecommendHandler(svc, a.log),
		Catalog: handlers.NewCatalogHandler(a.catalog, refresher, handlers.AdminAuth{
			Secret:    a.cfg.AdminSecret,
			AllowOpen: a.cfg.Env == "development",
		}, a.log),
		Kiosk:     handlers.NewKioskHandler(svc, a.log),
		Metrics:   a.cfg.MetricsEnabled,
	}, a.log)

	// 5. Optional scheduler
	var sched *scheduler.Scheduler
	if apiWithScheduler && a.refresher != nil {
		sched = scheduler.New(a.log, scheduler.DefaultOptions())
		if err := sched.AddJob(jobs.NewCatalogRefreshJob(a.refresher, a.cfg.Catalog.RefreshSchedule, a.log)); err != nil {
			return fmt.Errorf("schedule catalog refresh: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 6. Start server with graceful shutdown
	server := api.New(a.cfg, a.log, router)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
