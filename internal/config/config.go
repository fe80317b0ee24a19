package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every tunable the components need. Values are injected at
// construction; nothing reads the environment after Load.
type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string
	RedisAddr   string

	SettlementDelay       time.Duration
	SettlementSuccessRate float64

	InventoryCallTimeout time.Duration
	OrderCallbackTimeout time.Duration
}

func Load() Config {
	return Config{
		ServiceName: getenv("SERVICE_NAME", "fulfillment"),
		Env:         getenv("ENV", "dev"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		SettlementDelay:       getenvDuration("SETTLEMENT_DELAY", time.Second),
		SettlementSuccessRate: getenvFloat("SETTLEMENT_SUCCESS_RATE", 0.9),

		InventoryCallTimeout: getenvDuration("INVENTORY_CALL_TIMEOUT", 2*time.Second),
		OrderCallbackTimeout: getenvDuration("ORDER_CALLBACK_TIMEOUT", 2*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
