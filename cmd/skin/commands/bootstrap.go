package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engine"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
	"github.com/wonny/skinadvisor/backend/internal/external/naver"
	"github.com/wonny/skinadvisor/backend/internal/external/weather"
	"github.com/wonny/skinadvisor/backend/internal/store"
	"github.com/wonny/skinadvisor/backend/pkg/config"
	"github.com/wonny/skinadvisor/backend/pkg/database"
	"github.com/wonny/skinadvisor/backend/pkg/httputil"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
	"github.com/wonny/skinadvisor/backend/pkg/redis"
)

// cachePrefix redis 키 접두어
const cachePrefix = "skinadvisor"

// app holds the wired dependencies shared by the commands
// DB/Redis/외부 API는 모두 선택 사항 (없으면 해당 기능만 비활성)
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	engine *engine.Engine

	db    *database.DB // nil → 영속화 비활성
	redis *redis.Client

	catalog   *catalog.Store
	refresher *catalog.Refresher // nil → 네이버 API 미설정

	weather  contracts.WeatherProvider
	products contracts.ProductRepository
	analyses contracts.AnalysisRepository
	history  contracts.HistoryRepository
}

// loadConfig reads env config and builds the logger
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if engineConfigFile != "" {
		cfg.EngineConfigPath = engineConfigFile
	}
	return cfg, logger.New(cfg), nil
}

// loadEngine builds the engine from the configured YAML
// 설정 오류 → 즉시 실패 (자동 보정 없음)
func loadEngine(path string, log *logger.Logger) (*engine.Engine, error) {
	engCfg, _, err := engineconfig.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load engine config: %w", err)
	}
	for _, w := range engineconfig.Warn(engCfg) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	eng, err := engine.New(engCfg)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"config_id":   engCfg.Meta.ConfigID,
		"config_hash": eng.ConfigHash(),
	}).Info("Engine ready")
	return eng, nil
}

// bootstrap connects every configured dependency
func bootstrap(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	eng, err := loadEngine(cfg.EngineConfigPath, log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		engine:  eng,
		catalog: catalog.NewStore(log),
	}

	// 1. Database
	db, err := database.New(ctx, cfg)
	switch {
	case errors.Is(err, database.ErrDisabled):
		log.Warn("DATABASE_URL not set: history and catalog persistence disabled")
	case err != nil:
		return nil, fmt.Errorf("connect to database: %w", err)
	default:
		if err := db.Migrate(ctx, store.Schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = db
		a.products = store.NewProductRepository(db.Pool)
		a.analyses = store.NewAnalysisRepository(db.Pool)
		a.history = store.NewHistoryRepository(db.Pool)
		log.Info("Connected to database")
	}

	// 2. Redis (캐시 전용 → 실패해도 계속)
	rc, err := redis.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, weather cache disabled")
		rc = redis.Disabled()
	}
	a.redis = rc

	// 3. Weather
	if cfg.Weather.APIKey != "" {
		hc := httputil.New(log, cfg.Weather.Timeout)
		a.weather = weather.NewClient(hc, redis.NewCache(rc, cachePrefix), log, weather.Options{
			BaseURL:  cfg.Weather.BaseURL,
			APIKey:   cfg.Weather.APIKey,
			Lat:      cfg.Weather.Lat,
			Lon:      cfg.Weather.Lon,
			CacheTTL: cfg.Weather.CacheTTL,
		})
	} else {
		log.Warn("OPENWEATHER_API_KEY not set: weather modulation needs inline weather")
	}

	// 4. Catalog refresher (Naver shopping)
	hc := httputil.New(log, 10*time.Second).WithRateLimit(cfg.Catalog.RatePerSec)
	nc := naver.NewClient(hc, log, cfg.Naver.BaseURL, cfg.Naver.ClientID, cfg.Naver.ClientSecret)
	if nc.Configured() {
		a.refresher = catalog.NewRefresher(nc, a.products, a.catalog, catalog.RefresherConfig{
			Keywords:        naver.SearchKeywords,
			Concurrency:     cfg.Catalog.Concurrency,
			ItemsPerKeyword: cfg.Catalog.ItemsPerKeyword,
		}, log)
	}

	return a, nil
}

// loadCatalog publishes the first snapshot: explicit file, then DB, then seed file
// 모두 없으면 빈 카탈로그로 시작 (추천은 빈 top3)
func (a *app) loadCatalog(ctx context.Context, file string) error {
	if file != "" {
		return a.publishFile(file)
	}

	if a.products != nil {
		c, err := catalog.LoadFromRepository(ctx, a.products, a.catalog)
		if err == nil {
			a.log.WithField("products", c.Len()).Info("Catalog loaded from database")
			return nil
		}
		if !errors.Is(err, contracts.ErrEmptyCatalog) {
			return fmt.Errorf("load catalog: %w", err)
		}
	}

	if a.cfg.Catalog.SeedFile != "" {
		return a.publishFile(a.cfg.Catalog.SeedFile)
	}

	a.log.Warn("No catalog available: run `catalog refresh` or set CATALOG_SEED_FILE")
	return nil
}

func (a *app) publishFile(path string) error {
	c, err := catalog.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load catalog file: %w", err)
	}
	a.catalog.Publish(c)
	return nil
}

// Close releases connections
func (a *app) Close() {
	a.db.Close()
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Redis close failed")
	}
}
