// Package config loads FOODGRAM_* environment variables into typed settings.
//
// A .env file in the working directory is loaded first when present.
// Nesting uses "." so FOODGRAM_SERVER.PORT maps to Config.Server.Port;
// FOODGRAM_SERVER_PORT would land on the key "server_port" and be ignored.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix is the prefix every variable must carry to be picked up.
const EnvPrefix = "FOODGRAM_"

// Config is the root configuration. The pointer blocks are optional and get
// defaults in LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Storage       *StorageConfig       `koanf:"storage"`
	Seed          *SeedConfig          `koanf:"seed"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary.Env tags logs and traces. "local" turns on SQL logging and
// disables automatic migrations.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// PublicURL is the externally visible origin of the site (scheme + host),
	// used to build short links and media URLs.
	PublicURL string `koanf:"public_url" validate:"required,url"`

	// RateLimit is the sustained number of requests per second allowed per client IP.
	// Zero falls back to DefaultRateLimit.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// DefaultRateLimit is used when server.rate_limit is not set.
const DefaultRateLimit = 20

type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig.Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig controls token authentication.
type AuthConfig struct {
	// TokenCacheTTL is how long a token -> user lookup stays in Redis.
	// Zero disables caching.
	TokenCacheTTL time.Duration `koanf:"token_cache_ttl"`

	// BcryptCost is the password hashing cost. Zero means bcrypt.DefaultCost.
	BcryptCost int `koanf:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
}

// IntegrationConfig holds credentials for third-party services.
//
// An empty ResendAPIKey keeps the email job registered but Email sending
// is skipped (logged) instead of failing every retry.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// StorageConfig controls where uploaded images (recipe pictures, avatars) live.
type StorageConfig struct {
	// MediaRoot is the directory files are written to.
	MediaRoot string `koanf:"media_root" validate:"required"`

	// MediaURL is the URL prefix files are served under.
	MediaURL string `koanf:"media_url" validate:"required"`

	// MaxImageBytes caps the decoded size of a single uploaded image.
	MaxImageBytes int `koanf:"max_image_bytes" validate:"gt=0"`
}

// DefaultStorageConfig stores media in ./media and serves it at /media.
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		MediaRoot:     "media",
		MediaURL:      "/media",
		MaxImageBytes: 5 << 20,
	}
}

// SeedConfig carries the credentials used by the create-superuser command.
type SeedConfig struct {
	SuperuserUsername  string `koanf:"superuser_username" validate:"required"`
	SuperuserEmail     string `koanf:"superuser_email" validate:"required,email"`
	SuperuserPassword  string `koanf:"superuser_password" validate:"required,min=8"`
	SuperuserFirstName string `koanf:"superuser_first_name"`
	SuperuserLastName  string `koanf:"superuser_last_name"`

	// DataDir is where import-data looks for ingredients.json and tags.json.
	DataDir string `koanf:"data_dir"`
}

// DefaultSeedConfig mirrors the defaults the project always shipped with.
// Override them outside local development.
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		SuperuserUsername:  "admin",
		SuperuserEmail:     "admin@example.com",
		SuperuserPassword:  "adminpassword",
		SuperuserFirstName: "Admin",
		SuperuserLastName:  "User",
		DataDir:            "data",
	}
}

// LoadConfig reads, defaults and validates the configuration. Invalid
// configuration is fatal, so a returned config is always usable.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load initial env variables")
	}

	mainConfig := &Config{}

	if err = k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal main config")
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err = validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// applyDefaults fills every optional block that was not provided.
func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	c.Observability.ServiceName = "foodgram"
	c.Observability.Environment = c.Primary.Env

	if c.Storage == nil {
		c.Storage = DefaultStorageConfig()
	}
	if c.Seed == nil {
		c.Seed = DefaultSeedConfig()
	}
	if c.Seed.DataDir == "" {
		c.Seed.DataDir = "data"
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	c.Server.PublicURL = strings.TrimRight(c.Server.PublicURL, "/")
}
