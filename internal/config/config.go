package config

import (
	"fmt"

	"github.com/weiawesome/wes-io-live/smallid/internal/generator"
	pkgconfig "github.com/weiawesome/wes-io-live/smallid/pkg/config"
)

type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type GeneratorConfig struct {
	Source   string `mapstructure:"source"`
	Seed     uint64 `mapstructure:"seed"`
	MaxBatch int    `mapstructure:"max_batch"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Addr returns host:port for the HTTP listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads config.yaml from dir (if present) and the environment on top of
// the defaults below.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "./config"
	}
	v, err := pkgconfig.Load(dir, "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("generator.source", generator.SourceNanoID)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.max_batch", generator.DefaultMaxBatch)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("generator.source", "SMALLID_SOURCE")
	v.BindEnv("generator.seed", "SMALLID_SEED")
	v.BindEnv("generator.max_batch", "SMALLID_MAX_BATCH")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.pretty", "LOG_PRETTY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Generator.MaxBatch < 1 {
		return nil, fmt.Errorf("generator.max_batch must be at least 1, got %d", cfg.Generator.MaxBatch)
	}
	if _, err := generator.NewSource(cfg.Generator.Source, cfg.Generator.Seed); err != nil {
		return nil, fmt.Errorf("generator.source: %w", err)
	}

	return &cfg, nil
}

// NewGenerator builds the identifier generator described by cfg.
func (c *Config) NewGenerator() (*generator.ShortIDGenerator, error) {
	source, err := generator.NewSource(c.Generator.Source, c.Generator.Seed)
	if err != nil {
		return nil, err
	}
	return generator.NewShortIDGenerator(source, c.Generator.MaxBatch)
}
