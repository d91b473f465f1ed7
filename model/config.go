package model

import "time"

// --- SYSTEM CONFIG ---
// EnvConfig holds settings read once from the environment at startup.
// ApiKey is the shared secret for the trends endpoints; empty disables the check.
type EnvConfig struct {
	Port           string             `mapstructure:"port"`
	Environment    string             `mapstructure:"environment"`
	ApiKey         string             `mapstructure:"api_key"`
	LogLevel       string             `mapstructure:"log_level"`
	LogFormat      string             `mapstructure:"log_format"`
	CorsOrigins    []string           `mapstructure:"cors_origins"`
	RateLimiter    bool               `mapstructure:"rate_limiter"`
	RateLimitRPS   float64            `mapstructure:"rate_limit_rps"`
	RateLimitBurst int                `mapstructure:"rate_limit_burst"`
	Trends         TrendsClientConfig `mapstructure:",squash"`
}

// TrendsClientConfig is handed to the provider client as-is.
type TrendsClientConfig struct {
	BaseURL        string        `mapstructure:"trends_base_url"`
	HL             string        `mapstructure:"trends_hl"`
	TZ             int           `mapstructure:"trends_tz"`
	ConnectTimeout time.Duration `mapstructure:"trends_connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"trends_read_timeout"`
	Retries        int           `mapstructure:"trends_retries"`
	BackoffFactor  time.Duration `mapstructure:"trends_backoff_factor"`
}

func (c *EnvConfig) IsProduction() bool {
	return c.Environment == "production"
}
