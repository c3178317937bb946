package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`
	APIPrefix       string        `mapstructure:"API_PREFIX" validate:"required,startswith=/"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	StoreDriver string `mapstructure:"STORE_DRIVER" validate:"required,oneof=mongo postgres sqlite"`
	MongoURL    string `mapstructure:"MONGO_URL" validate:"required_if=StoreDriver mongo"`
	DBName      string `mapstructure:"DB_NAME" validate:"required_if=StoreDriver mongo"`
	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required_unless=StoreDriver mongo"`

	UploadDir       string `mapstructure:"UPLOAD_DIR" validate:"required"`
	MaxUploadMemory int64  `mapstructure:"MAX_UPLOAD_MEMORY" validate:"gte=1"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	keys = []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"API_PREFIX",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"STORE_DRIVER",
		"MONGO_URL",
		"DB_NAME",
		"DATABASE_URL",
		"UPLOAD_DIR",
		"MAX_UPLOAD_MEMORY",
		"CORS_ORIGINS",
	}
)

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_MEMORY", 32<<20)
	v.SetDefault("CORS_ORIGINS", "*")

	// Optional config file
	_ = v.ReadInConfig()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	if s := v.GetString("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}
	c.APIPrefix = strings.TrimSuffix(c.APIPrefix, "/")
	if c.APIPrefix == "" {
		c.APIPrefix = "/"
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// AllowedOrigins splits CORS_ORIGINS on commas, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// DSN returns the connection string for the configured store driver.
func (c *Config) DSN() string {
	if c.StoreDriver == DriverMongo {
		return c.MongoURL
	}
	return c.DatabaseURL
}
