// Package config loads service settings from a YAML file, an optional .env
// file and FORECASTER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORECASTER_"

// DevJWTSecret is the signing secret used when none is configured.
const DevJWTSecret = "dev-secret-change-me"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Redis     RedisConfig     `yaml:"redis"`
	NATS      NATSConfig      `yaml:"nats"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	FrontendDir     string        `yaml:"frontend_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ArtifactsConfig selects where the model bundle is read from. A non-empty
// Minio.Endpoint takes precedence over Dir.
type ArtifactsConfig struct {
	Dir   string      `yaml:"dir"`
	Minio MinioConfig `yaml:"minio"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Secure    bool   `yaml:"secure"`
}

// RedisConfig enables the forecast cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// NATSConfig enables forecast events when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// DatabaseConfig selects PostgreSQL for accounts when URL is set; otherwise
// accounts live in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			FrontendDir:     "frontend",
			ShutdownTimeout: 5 * time.Second,
		},
		Log:       LogConfig{Level: "info"},
		Artifacts: ArtifactsConfig{Dir: "model"},
		Redis:     RedisConfig{TTL: 6 * time.Hour},
		NATS:      NATSConfig{Subject: "forecast.completed"},
		Auth: AuthConfig{
			JWTSecret: DevJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
	}
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads path (if non-empty) over the defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Artifacts.Minio.Endpoint == "" && c.Artifacts.Dir == "" {
		return errors.New("artifacts.dir or artifacts.minio.endpoint is required")
	}
	if c.Artifacts.Minio.Endpoint != "" && c.Artifacts.Minio.Bucket == "" {
		return errors.New("artifacts.minio.bucket is required with a minio endpoint")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must not be empty")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	var errs []error
	boolean := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	str("ADDR", &cfg.Server.Addr)
	str("FRONTEND_DIR", &cfg.Server.FrontendDir)
	duration("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	str("LOG_LEVEL", &cfg.Log.Level)
	boolean("LOG_DEVELOPMENT", &cfg.Log.Development)

	str("ARTIFACTS_DIR", &cfg.Artifacts.Dir)
	str("MINIO_ENDPOINT", &cfg.Artifacts.Minio.Endpoint)
	str("MINIO_ACCESS_KEY", &cfg.Artifacts.Minio.AccessKey)
	str("MINIO_SECRET_KEY", &cfg.Artifacts.Minio.SecretKey)
	str("MINIO_BUCKET", &cfg.Artifacts.Minio.Bucket)
	str("MINIO_PREFIX", &cfg.Artifacts.Minio.Prefix)
	boolean("MINIO_SECURE", &cfg.Artifacts.Minio.Secure)

	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	integer("REDIS_DB", &cfg.Redis.DB)
	duration("CACHE_TTL", &cfg.Redis.TTL)

	str("NATS_URL", &cfg.NATS.URL)
	str("NATS_SUBJECT", &cfg.NATS.Subject)

	str("DATABASE_URL", &cfg.Database.URL)

	str("JWT_SECRET", &cfg.Auth.JWTSecret)
	duration("TOKEN_TTL", &cfg.Auth.TokenTTL)

	return errors.Join(errs...)
}
