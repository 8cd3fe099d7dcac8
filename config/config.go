package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment          string        `mapstructure:"ENVIRONMENT"`
	ServerPort           int           `mapstructure:"SERVER_PORT"`
	DatabaseDbPath       string        `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string        `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int           `mapstructure:"DATABASE_CACHE_PORT"`
	DashboardCacheTTL    time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`
	AdminSecretHash      string        `mapstructure:"ADMIN_SECRET_HASH"`
	AlertSchedule        string        `mapstructure:"ALERT_SCHEDULE"`
	AlertHorizonDays     int           `mapstructure:"ALERT_HORIZON_DAYS"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	LogFormat            string        `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"ENVIRONMENT":            "development",
	"SERVER_PORT":            8288,
	"DATABASE_DB_PATH":       "data/coutupro.db",
	"DATABASE_CACHE_ADDRESS": "",
	"DATABASE_CACHE_PORT":    6379,
	"DASHBOARD_CACHE_TTL":    "5m",
	"ADMIN_SECRET_HASH":      "",
	"ALERT_SCHEDULE":         "0 8 * * *",
	"ALERT_HORIZON_DAYS":     2,
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "text",
}

func InitConfig() (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.DatabaseDbPath == "" {
		return errors.New("DATABASE_DB_PATH is required")
	}
	if c.AlertHorizonDays < 0 {
		return errors.New("ALERT_HORIZON_DAYS must not be negative")
	}
	return nil
}

func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != ""
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
