package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every configuration environment variable,
// e.g. SPEND_SERVER_PORT for server.port.
const EnvPrefix = "SPEND"

// envBindings lists the keys bound explicitly so they are picked up by
// Unmarshal even when no config file mentions them. Additional names are
// accepted as aliases, the first set variable wins.
var envBindings = map[string][]string{
	"server.port":                     {"SPEND_SERVER_PORT"},
	"server.log_level":                {"SPEND_SERVER_LOG_LEVEL"},
	"server.shutdown_timeout_seconds": {"SPEND_SERVER_SHUTDOWN_TIMEOUT_SECONDS"},
	"database.driver":                 {"SPEND_DATABASE_DRIVER"},
	"database.url":                    {"SPEND_DATABASE_URL", "DATABASE_URL"},
	"database.max_open_conns":         {"SPEND_DATABASE_MAX_OPEN_CONNS"},
	"database.max_idle_conns":         {"SPEND_DATABASE_MAX_IDLE_CONNS"},
	"database.auto_migrate":           {"SPEND_DATABASE_AUTO_MIGRATE"},
	"auth.jwt_secret":                 {"SPEND_AUTH_JWT_SECRET"},
	"auth.token_lifetime_minutes":     {"SPEND_AUTH_TOKEN_LIFETIME_MINUTES"},
	"auth.bcrypt_cost":                {"SPEND_AUTH_BCRYPT_COST"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Variables from a .env file are loaded first and
// never override variables already set in the environment.
// Environment variables take precedence over values from config files.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given YAML file instead of looking
// for config.yaml. A missing explicit file is an error.
func LoadFile(configPath string) (*Config, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabaseFile reads configuration like LoadFile but only validates the
// database section and the bcrypt cost. Offline tools that never issue tokens
// use it so they run without auth.jwt_secret.
func LoadDatabaseFile(configPath string) (*Config, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	if err := ValidateDatabase(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding environment variables for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// ValidateDatabase checks the database section and the bcrypt cost of cfg.
func ValidateDatabase(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg.Database); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := validate.StructPartial(cfg.Auth, "BCryptCost"); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
