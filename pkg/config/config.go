package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// AdminSecret guards admin endpoints (X-Admin-Secret)
	AdminSecret string

	// Database (URL 비어 있으면 영속화 비활성)
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Engine (YAML 튜닝 테이블 경로)
	EngineConfigPath string

	// External APIs
	Weather WeatherConfig
	Naver   NaverConfig

	// Catalog
	Catalog CatalogConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether a database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// WeatherConfig holds OpenWeatherMap configuration
type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	Lat      float64
	Lon      float64
	Timeout  time.Duration
	CacheTTL time.Duration
}

// NaverConfig holds Naver shopping search API configuration
type NaverConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// CatalogConfig holds catalog refresh settings
type CatalogConfig struct {
	RefreshSchedule string // cron (초 포함 6필드)
	RatePerSec      float64
	Concurrency     int
	ItemsPerKeyword int
	SeedFile        string // DB 없을 때 시작 카탈로그 (JSON)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		AdminSecret: getEnv("ADMIN_SECRET", ""),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "skinadvisor"),
			User:            getEnv("DB_USER", "skinadvisor"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		EngineConfigPath: getEnv("ENGINE_CONFIG", "config/engine/default.yaml"),

		// External APIs
		Weather: WeatherConfig{
			APIKey:   getEnv("OPENWEATHER_API_KEY", ""),
			BaseURL:  getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			Lat:      getEnvAsFloat("WEATHER_LAT", 37.5665), // 서울
			Lon:      getEnvAsFloat("WEATHER_LON", 126.9780),
			Timeout:  getEnvAsDuration("WEATHER_TIMEOUT", "5s"),
			CacheTTL: getEnvAsDuration("WEATHER_CACHE_TTL", "10m"),
		},

		Naver: NaverConfig{
			BaseURL:      getEnv("NAVER_BASE_URL", "https://openapi.naver.com"),
			ClientID:     getEnv("NAVER_CLIENT_ID", ""),
			ClientSecret: getEnv("NAVER_CLIENT_SECRET", ""),
		},

		Catalog: CatalogConfig{
			RefreshSchedule: getEnv("CATALOG_REFRESH_SCHEDULE", "0 0 4 * * *"), // 매일 04:00
			RatePerSec:      getEnvAsFloat("CATALOG_RATE_PER_SEC", 5),
			Concurrency:     getEnvAsInt("CATALOG_CONCURRENCY", 4),
			ItemsPerKeyword: getEnvAsInt("CATALOG_ITEMS_PER_KEYWORD", 40),
			SeedFile:        getEnv("CATALOG_SEED_FILE", ""),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	// production은 이력 저장 필수
	if c.Env == "production" && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	if c.Env == "production" && c.AdminSecret == "" {
		return fmt.Errorf("ADMIN_SECRET is required in production")
	}

	if c.Weather.Lat < -90 || c.Weather.Lat > 90 || c.Weather.Lon < -180 || c.Weather.Lon > 180 {
		return fmt.Errorf("WEATHER_LAT/WEATHER_LON out of range")
	}

	if c.Catalog.RatePerSec <= 0 {
		return fmt.Errorf("CATALOG_RATE_PER_SEC must be > 0")
	}
	if c.Catalog.Concurrency < 1 {
		return fmt.Errorf("CATALOG_CONCURRENCY must be >= 1")
	}
	if c.Catalog.ItemsPerKeyword < 1 || c.Catalog.ItemsPerKeyword > 100 {
		return fmt.Errorf("CATALOG_ITEMS_PER_KEYWORD must be in [1, 100]")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
