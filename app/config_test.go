package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")

	// Write test configuration to the temporary file
	configData := []byte(`
PORT=8080
ENVIRONMENT=development
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
ALLOWED_CLASSES="note,external"
BASE_URL=http://example.org/blog/
DEFAULT_CONTENT_TYPE=application/xhtml+xml
EXCERPT_WIDTH=80
CACHE_TTL=1m
RATE_LIMIT_RPS=5
RATE_LIMIT_BURST=10
RATE_LIMIT_ENABLED=false
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
`)
	require.NoError(t, os.WriteFile(path, configData, 0o600))

	// Load the config from the temporary file
	config, err := loadConfig(path)
	require.NoError(t, err)

	// Verify the loaded config values
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, []string{"note", "external"}, config.AllowedClasses)
	assert.Equal(t, "http://example.org/blog/", config.BaseURL)
	assert.Equal(t, "application/xhtml+xml", config.DefaultContentType)
	assert.Equal(t, 80, config.ExcerptWidth)
	assert.Equal(t, time.Minute, config.CacheTTL)
	assert.Equal(t, 5.0, config.RateLimitRPS)
	assert.Equal(t, 10, config.RateLimitBurst)
	assert.False(t, config.RateLimitEnabled)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=:9000\n"), 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", config.Port)
	assert.Equal(t, []string{"lang-xml", "lang-js", "lang-css", "external"}, config.AllowedClasses)
	assert.Equal(t, "text/plain", config.DefaultContentType)
	assert.Equal(t, 5*time.Minute, config.CacheTTL)
	assert.Equal(t, 200, config.ExcerptWidth)
	assert.True(t, config.RateLimitEnabled)
	assert.Empty(t, config.MQHost)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestNewApplication(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{name: "valid", modify: func(cfg *Config) { cfg.BaseURL = "http://example.org/" }},
		{name: "relative base url", modify: func(cfg *Config) { cfg.BaseURL = "/blog/" }, wantErr: `invalid BASE_URL "/blog/"`},
		{name: "unknown default type", modify: func(cfg *Config) { cfg.DefaultContentType = "text/rtf" }, wantErr: `unknown DEFAULT_CONTENT_TYPE "text/rtf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)

			app, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://example.org/", app.baseURL.String())
		})
	}
}
