package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/pkg/httputil"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
	"github.com/wonny/skinadvisor/backend/pkg/redis"
)

// ErrNoAPIKey is returned when OPENWEATHER_API_KEY is not configured
var ErrNoAPIKey = errors.New("weather: api key not configured")

// Source tag stored on every Weather produced here
const Source = "openweathermap"

// Client fetches current conditions from OpenWeatherMap One Call
// ⭐ SSOT: 날씨 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	lat, lon   float64
	ttl        time.Duration
}

// Options configure a Client
type Options struct {
	BaseURL  string
	APIKey   string
	Lat, Lon float64
	CacheTTL time.Duration
}

// NewClient creates a weather client; cache may be nil
func NewClient(httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger, opts Options) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log.WithComponent("weather"),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		lat:        opts.Lat,
		lon:        opts.Lon,
		ttl:        opts.CacheTTL,
	}
}

// oneCallResponse mirrors the "current" block of /data/3.0/onecall
type oneCallResponse struct {
	Current struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		UVI      float64 `json:"uvi"`
	} `json:"current"`
}

// Current returns the latest conditions at the configured coordinates
// 캐시 적중 시 API 호출 없음
func (c *Client) Current(ctx context.Context) (*contracts.Weather, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	key := redis.WeatherKey(c.lat, c.lon)
	if c.cache != nil {
		var cached contracts.Weather
		found, err := c.cache.Get(ctx, key, &cached)
		if err != nil {
			c.logger.WithError(err).Warn("Weather cache read failed")
		}
		if found {
			return &cached, nil
		}
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", c.lat))
	params.Set("lon", fmt.Sprintf("%.4f", c.lon))
	params.Set("units", "metric")
	params.Set("exclude", "minutely,hourly,daily,alerts")
	params.Set("appid", c.apiKey)
	fullURL := fmt.Sprintf("%s/data/3.0/onecall?%s", c.baseURL, params.Encode())

	var resp oneCallResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}

	w := &contracts.Weather{
		Humidity:    resp.Current.Humidity,
		UVIndex:     resp.Current.UVI,
		Temperature: resp.Current.Temp,
		Source:      Source,
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, w, c.ttl); err != nil {
			c.logger.WithError(err).Warn("Weather cache write failed")
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"humidity":    w.Humidity,
		"uv_index":    w.UVIndex,
		"temperature": w.Temperature,
	}).Debug("Weather fetched")

	return w, nil
}

var _ contracts.WeatherProvider = (*Client)(nil)
