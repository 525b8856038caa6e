// Package metrics exposes prometheus collectors for the advisor service.
//
// 추천 요청, 카탈로그 갱신, 외부 API(날씨) 결과를 기록합니다.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// RecommendationsTotal counts recommend calls by channel (http, ws, cli) and outcome
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinadvisor_recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"channel", "outcome"},
	)

	// RecommendDuration tracks end-to-end advisor latency
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skinadvisor_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"channel"},
	)

	// OverallScore observes the overall skin score distribution
	OverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skinadvisor_overall_score",
			Help:    "Distribution of overall skin scores (0-100)",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// EmptyTop3Total counts recommendations that found no product
	EmptyTop3Total = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinadvisor_empty_top3_total",
			Help: "Recommendations returned with an empty top3",
		},
	)

	// HistorySaveFailuresTotal counts history rows that could not be persisted
	HistorySaveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinadvisor_history_save_failures_total",
			Help: "Recommendation history writes that failed",
		},
	)

	// WeatherLookupsTotal counts weather resolution by source (inline, provider, none)
	WeatherLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinadvisor_weather_lookups_total",
			Help: "Weather resolution per request by source",
		},
		[]string{"source"},
	)

	// CatalogRefreshTotal counts catalog refresh runs by outcome
	CatalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinadvisor_catalog_refresh_total",
			Help: "Catalog refresh runs by outcome",
		},
		[]string{"outcome"},
	)

	// CatalogProducts is the product count of the current snapshot
	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skinadvisor_catalog_products",
			Help: "Number of products in the current catalog snapshot",
		},
	)

	// KioskConnections is the number of open kiosk websockets
	KioskConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skinadvisor_kiosk_connections",
			Help: "Open kiosk websocket connections",
		},
	)
)

// RecordRecommendation records one advisor call
func RecordRecommendation(channel, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(channel, outcome).Inc()
	RecommendDuration.WithLabelValues(channel).Observe(duration.Seconds())
}

// RecordResult records score distribution and empty results
func RecordResult(overall float64, top3 int) {
	OverallScore.Observe(overall)
	if top3 == 0 {
		EmptyTop3Total.Inc()
	}
}

// RecordCatalogRefresh records a refresh run; products < 0 leaves the gauge untouched
func RecordCatalogRefresh(outcome string, products int) {
	CatalogRefreshTotal.WithLabelValues(outcome).Inc()
	if products >= 0 {
		CatalogProducts.Set(float64(products))
	}
}
