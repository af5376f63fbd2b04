package main

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	AllowedClasses     []string      `mapstructure:"ALLOWED_CLASSES"`
	BaseURL            string        `mapstructure:"BASE_URL"`
	DefaultContentType string        `mapstructure:"DEFAULT_CONTENT_TYPE"`
	MaxContentBytes    int           `mapstructure:"MAX_CONTENT_BYTES"`
	ExcerptWidth       int           `mapstructure:"EXCERPT_WIDTH"`
	CacheTTL           time.Duration `mapstructure:"CACHE_TTL"`
	CacheCleanup       time.Duration `mapstructure:"CACHE_CLEANUP"`

	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`
	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`
}

var configDefaults = map[string]any{
	"PORT":                 ":4000",
	"ENVIRONMENT":          "development",
	"VERSION":              "1.0.0",
	"ALLOWED_CLASSES":      "lang-xml,lang-js,lang-css,external",
	"DEFAULT_CONTENT_TYPE": "text/plain",
	"MAX_CONTENT_BYTES":    512 * 1024,
	"EXCERPT_WIDTH":        200,
	"CACHE_TTL":            "5m",
	"CACHE_CLEANUP":        "10m",
	"RATE_LIMIT_RPS":       2,
	"RATE_LIMIT_BURST":     4,
	"RATE_LIMIT_ENABLED":   true,
	"RABBITMQ_PORT":        "5672",
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
