// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one exists), loads them into structured Go types, and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Provide defaults for every optional variable.
//   - Validate the result so the app fails fast on bad config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	The service reads plain, unprefixed variable names (DATABASE_URL, PORT,
	ENV, ...) because those are what hosting platforms hand out. koanf only
	sees the variables listed in envKeys; everything else in the environment
	is ignored. Each entry maps a variable to a dotted koanf key, and the
	dotted keys map onto the nested structs through their `koanf` tags:

		DATABASE_URL -> database.url -> Config.Database.URL
*/

// envKeys is the whitelist of recognised environment variables.
var envKeys = map[string]string{
	"ENV":       "primary.env",
	"API_TITLE": "primary.title",

	"PORT":                 "server.port",
	"ALLOWED_ORIGINS":      "server.allowed_origins",
	"SERVER_READ_TIMEOUT":  "server.read_timeout",
	"SERVER_WRITE_TIMEOUT": "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":  "server.idle_timeout",

	"DATABASE_URL":          "database.url",
	"DB_MAX_OPEN_CONNS":     "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":     "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME":  "database.conn_max_lifetime",
	"DB_CONN_MAX_IDLE_TIME": "database.conn_max_idle_time",

	"LOG_LEVEL":                             "observability.logging.level",
	"LOG_FORMAT":                            "observability.logging.format",
	"NEW_RELIC_LICENSE_KEY":                 "observability.new_relic.license_key",
	"NEW_RELIC_APP_LOG_FORWARDING_ENABLED":  "observability.new_relic.app_log_forwarding_enabled",
	"NEW_RELIC_DISTRIBUTED_TRACING_ENABLED": "observability.new_relic.distributed_tracing_enabled",
	"NEW_RELIC_DEBUG_LOGGING":               "observability.new_relic.debug_logging",
}

// ServiceName identifies this service in logs and APM dashboards.
const ServiceName = "miwebservice"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary             `koanf:"primary" validate:"required"`
	Server        ServerConfig        `koanf:"server" validate:"required"`
	Database      DatabaseConfig      `koanf:"database" validate:"required"`
	Observability ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
// Env tags logs and switches behaviour (log format, SQL tracing);
// Title is reported in the API documentation and startup log.
type Primary struct {
	Env   string `koanf:"env" validate:"required"`
	Title string `koanf:"title" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port           string `koanf:"port" validate:"required,numeric"`
	ReadTimeout    int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout   int    `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout    int    `koanf:"idle_timeout" validate:"min=1"`
	AllowedOrigins string `koanf:"allowed_origins" validate:"required"`
}

// CORSAllowedOrigins splits AllowedOrigins into the list handed to the CORS
// middleware. "*" stays a single wildcard entry; blanks are dropped.
func (s ServerConfig) CORSAllowedOrigins() []string {
	if strings.TrimSpace(s.AllowedOrigins) == "*" {
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(s.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// AllowsAnyOrigin reports whether CORS is unrestricted.
func (s ServerConfig) AllowsAnyOrigin() bool {
	origins := s.CORSAllowedOrigins()
	return len(origins) == 1 && origins[0] == "*"
}

// DatabaseConfig contains the store connection string and pool tuning.
// Lifetimes are whole seconds.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Primary: Primary{
			Env:   "development",
			Title: "Mi Web Service",
		},
		Server: ServerConfig{
			Port:           "8000",
			ReadTimeout:    30,
			WriteTimeout:   30,
			IdleTimeout:    60,
			AllowedOrigins: "*",
		},
		Database: DatabaseConfig{
			URL:             "sqlite:///./demo.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Observability: *DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// Default(), validates it, and returns the result.
//
// Behavior summary:
//   - Reads only the variables listed in envKeys
//   - Unmarshals them over the defaults (unset keys keep their default)
//   - Validates struct tags, then the observability rules
//   - Forces observability service name + environment from the primary block
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Returning "" from the mapper tells the provider to skip the variable.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
