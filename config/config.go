package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"library-catalog/library"
	"library-catalog/logger"
)

type Config struct {
	Store    string     `envconfig:"LIBRARY_STORE" default:"memory" json:"store"`
	SeedFile string     `envconfig:"LIBRARY_SEED_FILE" json:"seedFile"`
	Log      logger.Log `json:"log"`
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.Level = level
	}
}

func WithStore(kind string) Option {
	return func(c *Config) {
		c.Store = kind
	}
}

func WithSeedFile(path string) Option {
	return func(c *Config) {
		c.SeedFile = path
	}
}

// NewConfig reads config from the environment, then applies ops on top.
func NewConfig(ops ...Option) (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "process env")
	}
	for _, op := range ops {
		op(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case library.StoreMemory, library.StoreSQLite:
	default:
		return errors.Errorf("LIBRARY_STORE: unknown store %q", c.Store)
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return errors.Errorf("LIBRARY_LOG_ENCODING: unknown encoding %q", c.Log.Encoding)
	}
	return nil
}
