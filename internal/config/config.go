package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "bmi.yaml"

// Config holds the service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Events  EventsConfig  `yaml:"events"`
	Logging LoggingConfig `yaml:"logging"`
	Advisor AdvisorConfig `yaml:"advisor"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"` // e.g. ":8080"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // sqlite file, or ":memory:"
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type EventsConfig struct {
	AMQPAddr string `yaml:"amqp_addr"` // empty disables publishing
	Queue    string `yaml:"queue"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug | info | warn | error
	Development bool   `yaml:"development"`
}

// AdvisorConfig overrides the ideal-weight formulas. Expressions may use the
// variable "height" in centimetres.
type AdvisorConfig struct {
	IdealWeight IdealWeightConfig `yaml:"ideal_weight"`
}

type IdealWeightConfig struct {
	Male   string `yaml:"male"`
	Female string `yaml:"female"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Path: "bmi.db",
		},
		Auth: AuthConfig{
			TokenTTL: 72 * time.Hour,
		},
		Events: EventsConfig{
			Queue: "bmi_readings",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = def.Auth.TokenTTL
	}
	if cfg.Events.Queue == "" {
		cfg.Events.Queue = def.Events.Queue
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("BMI_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BMI_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("BMI_JWT_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("BMI_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BMI_TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	if v := os.Getenv("BMI_AMQP_ADDR"); v != "" {
		cfg.Events.AMQPAddr = v
	}
	if v := os.Getenv("BMI_AMQP_QUEUE"); v != "" {
		cfg.Events.Queue = v
	}
	if v := os.Getenv("BMI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate reports configuration that cannot work. The JWT secret is only
// required by the HTTP service, see ValidateServe.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

var ErrMissingSecret = errors.New("auth.secret (or BMI_JWT_SECRET) is required")

func (c *Config) ValidateServe() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}
