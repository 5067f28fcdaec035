package util

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/TourPlanner/pkg"
	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)
	viper.SetDefault("PROXY_PORT", 6767)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("AVG_SPEED_KMH", pkg.AVG_SPEED_KMH)
	viper.SetDefault("START_POINT_ID", pkg.DEFAULT_START_POINT_ID)
	viper.SetDefault("POI_FILE", "./data/TurismoCWB.csv")
	viper.SetDefault("TSP_TIMEOUT", "0s")
	viper.SetDefault("MAX_TOUR_POINTS", 10)
	viper.SetDefault("ORACLE_MAX_POINTS", 10)
	viper.SetDefault("NEAREST_RADIUS_KM", 2.0)
	viper.SetDefault("COST_PER_KM", 2.5)
	viper.SetDefault("COST_PER_HOUR", 30.0)
	viper.SetDefault("SENSITIVITY_FROM", 1.0)
	viper.SetDefault("SENSITIVITY_TO", 5.0)
	viper.SetDefault("SENSITIVITY_SAMPLES", 20)
	viper.SetDefault("WEBSOCKET_POOL_SIZE", 16)
	viper.SetDefault("WEBSOCKET_POOL_QUEUE", 64)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 3)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 28)
	viper.SetDefault("LOG_COMPRESS", true)
}

// ReadConfig. reads ./data/config.{yaml,json,toml,...} on top of the defaults.
// a missing config file is not an error, env vars still apply.
func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
