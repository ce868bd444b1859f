// Package config loads application configuration from an optional YAML file
// with CILIN_* environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/cilin/similarity"
	"github.com/poiesic/cilin/thesaurus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level application configuration.
type Config struct {
	Taxonomy   TaxonomyConfig   `yaml:"taxonomy"`
	Store      StoreConfig      `yaml:"store"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Align      AlignConfig      `yaml:"align"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// TaxonomyConfig locates the taxonomy source file.
type TaxonomyConfig struct {
	Path     string `yaml:"path"`
	Encoding string `yaml:"encoding"`
}

// StoreConfig locates the persistent snapshot store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// SimilarityConfig selects the default strategy.
type SimilarityConfig struct {
	Strategy string `yaml:"strategy"`
	Memoize  bool   `yaml:"memoize"`
}

// AlignConfig controls text alignment.
type AlignConfig struct {
	PoolSize           int      `yaml:"poolSize"`
	ExcludedCategories []string `yaml:"excludedCategories"`
	Dictionary         string   `yaml:"dictionary"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if path is non-empty) over the defaults
// and applies environment overrides. It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Taxonomy: TaxonomyConfig{
			Encoding: string(thesaurus.EncodingUTF8),
		},
		Similarity: SimilarityConfig{
			Strategy: similarity.Legacy.String(),
			Memoize:  true,
		},
		Align: AlignConfig{
			PoolSize:           max(runtime.NumCPU(), 1),
			ExcludedCategories: []string{"u", "x", "w"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks field values and cross-field requirements.
func (c *Config) Validate() error {
	if c.Taxonomy.Path == "" && c.Store.Path == "" {
		return fmt.Errorf("%w: taxonomy.path or store.path is required", ErrInvalidConfig)
	}
	if _, err := thesaurus.ParseEncoding(c.Taxonomy.Encoding); err != nil {
		return fmt.Errorf("%w: taxonomy.encoding: %w", ErrInvalidConfig, err)
	}
	if _, err := similarity.ParseStrategy(c.Similarity.Strategy); err != nil {
		return fmt.Errorf("%w: similarity.strategy: %w", ErrInvalidConfig, err)
	}
	if c.Align.PoolSize < 1 {
		return fmt.Errorf("%w: align.poolSize must be at least 1", ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// applyEnvOverrides reads CILIN_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CILIN_TAXONOMY_PATH"); v != "" {
		cfg.Taxonomy.Path = v
	}
	if v := os.Getenv("CILIN_TAXONOMY_ENCODING"); v != "" {
		cfg.Taxonomy.Encoding = v
	}
	if v := os.Getenv("CILIN_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("CILIN_SIMILARITY_STRATEGY"); v != "" {
		cfg.Similarity.Strategy = v
	}
	if v := os.Getenv("CILIN_SIMILARITY_MEMOIZE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CILIN_SIMILARITY_MEMOIZE: %w", err)
		}
		cfg.Similarity.Memoize = b
	}
	if v := os.Getenv("CILIN_ALIGN_POOL_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CILIN_ALIGN_POOL_SIZE: %w", err)
		}
		cfg.Align.PoolSize = n
	}
	if v := os.Getenv("CILIN_ALIGN_EXCLUDED_CATEGORIES"); v != "" {
		cfg.Align.ExcludedCategories = strings.Split(v, ",")
	}
	if v := os.Getenv("CILIN_ALIGN_DICTIONARY"); v != "" {
		cfg.Align.Dictionary = v
	}
	if v := os.Getenv("CILIN_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CILIN_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CILIN_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CILIN_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CILIN_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	return nil
}
