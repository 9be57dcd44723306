// Package common provides shared configuration and telemetry for the
// solar analysis tools.
package common

import (
	"os"
	"strconv"
)

// Config holds common configuration for all commands. Values come from
// the environment with sensible defaults; flags override per command.
type Config struct {
	DataDir            string
	ListenAddr         string
	DefaultMetric      string
	ClickHouseHost     string
	ClickHouseDatabase string
	ClickHouseTable    string
	BatchSize          int
	LogLevel           string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:            getEnv("SOLAR_DATA_DIR", "data"),
		ListenAddr:         getEnv("SOLAR_LISTEN_ADDR", ":8080"),
		DefaultMetric:      getEnv("SOLAR_DEFAULT_METRIC", "GHI"),
		ClickHouseHost:     getEnv("CLICKHOUSE_HOST", "127.0.0.1:9000"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "solar"),
		ClickHouseTable:    getEnv("CLICKHOUSE_TABLE", "measurements"),
		BatchSize:          getEnvInt("SOLAR_BATCH_SIZE", 50_000),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
