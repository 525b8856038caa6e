package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func counterValue(c prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(g prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := g.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func TestRecordRecommendation(t *testing.T) {
	c := RecommendationsTotal.WithLabelValues("http", OutcomeOK)
	before := counterValue(c)

	RecordRecommendation("http", OutcomeOK, 12*time.Millisecond)

	assert.Equal(t, before+1, counterValue(c))
}

func TestRecordResult_EmptyTop3(t *testing.T) {
	before := counterValue(EmptyTop3Total)

	RecordResult(72.5, 3)
	assert.Equal(t, before, counterValue(EmptyTop3Total))

	RecordResult(40, 0)
	assert.Equal(t, before+1, counterValue(EmptyTop3Total))
}

func TestRecordCatalogRefresh(t *testing.T) {
	RecordCatalogRefresh(OutcomeOK, 42)
	assert.Equal(t, 42.0, gaugeValue(CatalogProducts))

	failed := CatalogRefreshTotal.WithLabelValues(OutcomeError)
	before := counterValue(failed)
	RecordCatalogRefresh(OutcomeError, -1)
	assert.Equal(t, before+1, counterValue(failed))
	assert.Equal(t, 42.0, gaugeValue(CatalogProducts), "gauge untouched on failure")
}
