// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable before it is mapped to a key.
const EnvPrefix = "LIGHTBNB_"

// Config is the root configuration object.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"required"` tags are enforced by go-playground/validator.
//
// Observability and Seed are pointers because they are optional. If not
// provided, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
	Seed          *SeedConfig          `koanf:"seed"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Lifetimes are expressed in seconds. Pool tuning fields are optional; a zero
// value keeps the pgxpool default.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// SeedConfig controls the fixture loader.
type SeedConfig struct {
	// DefaultPassword is hashed and assigned to fixture users that do not
	// carry a password of their own. Only the seed command needs it.
	DefaultPassword string `koanf:"default_password" validate:"omitempty,min=8"`
}

// sections lists the nesting prefixes known to Config, longest first.
var sections = []string{
	"observability_logging_",
	"observability_",
	"primary_",
	"database_",
	"seed_",
}

// envKey turns LIGHTBNB_DATABASE_SSL_MODE into database.ssl_mode and
// LIGHTBNB_OBSERVABILITY_LOGGING_LEVEL into observability.logging.level.
//
// Only section prefixes are converted, so multi-word field names keep their
// underscores.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section) {
			return strings.ReplaceAll(section, "_", ".") + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix LIGHTBNB_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Fills every unset observability and seed field from its default
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	// Optional sections start from their defaults; koanf only overwrites
	// the fields that are actually set.
	mainConfig := &Config{
		Observability: DefaultObservabilityConfig(),
		Seed:          DefaultSeedConfig(),
	}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Service name is fixed and the environment always follows primary.env,
	// so logs are labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// DefaultSeedConfig returns fixture loader defaults. There is no default
// password; fixtures that need one fail to load until it is configured.
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{}
}
