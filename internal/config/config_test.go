package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "fulfillment", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Second, cfg.SettlementDelay)
	assert.InDelta(t, 0.9, cfg.SettlementSuccessRate, 1e-9)
	assert.Equal(t, 2*time.Second, cfg.InventoryCallTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SETTLEMENT_DELAY", "250ms")
	t.Setenv("SETTLEMENT_SUCCESS_RATE", "0.5")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.SettlementDelay)
	assert.InDelta(t, 0.5, cfg.SettlementSuccessRate, 1e-9)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SETTLEMENT_DELAY", "soon")
	t.Setenv("SETTLEMENT_SUCCESS_RATE", "often")

	cfg := Load()

	assert.Equal(t, time.Second, cfg.SettlementDelay)
	assert.InDelta(t, 0.9, cfg.SettlementSuccessRate, 1e-9)
}
