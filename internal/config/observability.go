package config

import (
	"fmt"
	"slices"
	"time"
)

// Log levels and health checks accepted by Validate.
var (
	LogLevels    = []string{"debug", "info", "warn", "error"}
	HealthProbes = []string{"database", "redis"}
)

// ObservabilityConfig covers logging, New Relic and the dependency health monitor.
type ObservabilityConfig struct {
	// ServiceName and Environment tag every log line and trace.
	// LoadConfig forces them to "foodgram" and primary.env.
	ServiceName string `koanf:"service_name" validate:"required"`
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic" validate:"required"`
	HealthChecks HealthChecksConfig `koanf:"health_checks" validate:"required"`
}

type LoggingConfig struct {
	Level string `koanf:"level" validate:"required"`

	// Format is "json" or "console". JSON is only used in production.
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold marks queries that get logged at warn level.
	// Durations are strings in env ("100ms"); a bare "100" means 100ns.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig leaves the agent off while LicenseKey is empty.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`

	// DebugLogging writes the agent's own logs to stdout.
	DebugLogging bool `koanf:"debug_logging"`
}

// HealthChecksConfig drives the cron health monitor and /status.
type HealthChecksConfig struct {
	// Enabled starts the periodic monitor. /status always runs the probes.
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval" validate:"min=1s"`
	Timeout  time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks names the probes to run; empty means all of them.
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig is used when no observability.* variable is set.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "foodgram",
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// Validate checks the enum-like values struct tags cannot express.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	if !slices.Contains(LogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	for _, check := range c.HealthChecks.Checks {
		if !slices.Contains(HealthProbes, check) {
			return fmt.Errorf("invalid health check: %s (must be one of: database, redis)", check)
		}
	}

	return nil
}

// GetLogLevel falls back to info in production and debug in development
// when no level is configured.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	switch c.Environment {
	case "production":
		return "info"
	case "development":
		return "debug"
	}
	return ""
}

func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}
