package validator

import (
	"fmt"

	"github.com/saandeepkondury/py-trends-API/model"

	"github.com/Oudwins/zog"
)

var TrendsClientShape = zog.Shape{
	"BaseURL": zog.String().URL().Required(),
	"HL":      zog.String().Min(2).Required(),
	"Retries": zog.Int().GTE(0).LTE(10),
}

var EnvConfigShape = zog.Shape{
	"Port":           zog.String().Required(),
	"LogFormat":      zog.String().OneOf([]string{"json", "console"}),
	"RateLimitBurst": zog.Int().GT(0),
	"Trends":         zog.Struct(TrendsClientShape),
}

var envConfigSchema = zog.Struct(EnvConfigShape)

// ValidateEnvConfig checks the loaded environment. Durations and floats are
// checked by hand since zog shapes cover strings and ints here.
func ValidateEnvConfig(cfg *model.EnvConfig) error {
	if issues := envConfigSchema.Validate(cfg); len(issues) > 0 {
		return fmt.Errorf("config validation failed: %v", issues)
	}

	if cfg.RateLimitRPS <= 0 {
		return fmt.Errorf("rate_limit_rps must be positive, got %v", cfg.RateLimitRPS)
	}
	if cfg.Trends.ConnectTimeout <= 0 || cfg.Trends.ReadTimeout <= 0 {
		return fmt.Errorf("trends timeouts must be positive")
	}
	if cfg.Trends.BackoffFactor < 0 {
		return fmt.Errorf("trends_backoff_factor cannot be negative")
	}
	return nil
}
