package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{Enabled: false}}

	client, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(Disabled(), "test")

	// 비활성 상태에서는 모두 no-op
	require.NoError(t, cache.Set(ctx, "key", "value", TTLShort))

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, result)

	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestCache_NilClient(t *testing.T) {
	cache := NewCache(nil, "test")
	var v int
	found, err := cache.Get(context.Background(), "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWeatherKey(t *testing.T) {
	tests := []struct {
		lat, lon float64
		expected string
	}{
		{37.5665, 126.9780, "weather:37.57:126.98"},
		{-33.8688, 151.2093, "weather:-33.87:151.21"},
		{0, 0, "weather:0.00:0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, WeatherKey(tt.lat, tt.lon))
	}
}
