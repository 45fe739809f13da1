package testutil

import (
	"testing"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/lib/health"
	"github.com/deppfellow/foodgram/internal/lib/storage"
	"github.com/deppfellow/foodgram/internal/logger"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/rs/zerolog"
)

// PublicURL is the site origin test servers are configured with.
const PublicURL = "http://testserver"

// PNG is a 1x1 transparent PNG as a data URL.
const PNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// NewConfig returns a config that passes validation and keeps media in a
// per-test temporary directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
			PublicURL:          PublicURL,
			RateLimit:          1000,
		},
		Auth: config.AuthConfig{BcryptCost: 4},
		Storage: &config.StorageConfig{
			MediaRoot:     t.TempDir(),
			MediaURL:      "/media",
			MaxImageBytes: 1 << 20,
		},
		Seed:          config.DefaultSeedConfig(),
		Observability: config.DefaultObservabilityConfig(),
	}
	cfg.Observability.Environment = cfg.Primary.Env
	return cfg
}

// NewServer builds a Server without database, Redis or background jobs.
// The health monitor has no checks, so /status always reports healthy.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := NewConfig(t)
	log := zerolog.Nop()

	return &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
		Storage:       storage.New(cfg, &log),
		Health:        health.NewMonitor(cfg.Observability.HealthChecks, &log, nil),
	}
}
