package config

import (
	"fmt"
	"time"

	"github.com/saandeepkondury/py-trends-API/model"
	"github.com/saandeepkondury/py-trends-API/validator"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

var defaults = map[string]any{
	"port":                   "8080",
	"environment":            "development",
	"api_key":                "",
	"log_level":              "info",
	"log_format":             "json",
	"cors_origins":           []string{"*"},
	"rate_limiter":           false,
	"rate_limit_rps":         5.0,
	"rate_limit_burst":       15,
	"trends_base_url":        "https://trends.google.com",
	"trends_hl":              "en-US",
	"trends_tz":              0,
	"trends_connect_timeout": 10 * time.Second,
	"trends_read_timeout":    25 * time.Second,
	"trends_retries":         2,
	"trends_backoff_factor":  100 * time.Millisecond,
}

// LoadConfigs reads the environment (and a .env file when present) once.
// The returned configuration is never mutated afterwards.
func LoadConfigs() (*SystemConfigs, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var envCfg model.EnvConfig
	err := v.Unmarshal(&envCfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}

	if err := validator.ValidateEnvConfig(&envCfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &SystemConfigs{
		Config: &envCfg,
	}, nil
}
