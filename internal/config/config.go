// Package config provides configuration management for the semantic memory
// layer. It loads settings from environment variables with the HOLONS_
// prefix and provides sensible defaults for all configuration options.
//
// A YAML file may overlay the environment (LoadConfigFile). Measure settings
// may also be persisted in the host application's settings table:
// LoadConfigFromDB reads from the database first and falls back to
// environment variables, SaveConfig writes them back.
package config

import (
	"database/sql"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/scrypster/holons/internal/holon"
	"github.com/scrypster/holons/internal/logging"
	"github.com/scrypster/holons/internal/measure"
)

// Config holds all configuration settings.
type Config struct {
	Measure MeasureConfig `yaml:"measure"`
	Matcher MatcherConfig `yaml:"matcher"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeasureConfig selects the distance rule and its acceptance threshold.
type MeasureConfig struct {
	// Strategy is the scoring rule: strict or soft (default: soft).
	// Env var: HOLONS_MEASURE_STRATEGY
	// Database key: measure_strategy
	Strategy string `yaml:"strategy"`

	// MaxThreshold is the largest accepted distance (default: 0).
	// Env var: HOLONS_MAX_THRESHOLD
	// Database key: max_threshold
	MaxThreshold float64 `yaml:"max_threshold"`
}

// MatcherConfig contains context matcher settings.
type MatcherConfig struct {
	Workers int `yaml:"workers"` // Concurrent scoring workers (default: 4)
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	JSON  bool   `yaml:"json"`  // JSON output (default: false)
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

const (
	keyMeasureStrategy = "measure_strategy"
	keyMaxThreshold    = "max_threshold"
)

// LoadConfig loads configuration from environment variables with sensible defaults.
func LoadConfig() (*Config, error) {
	cfg := buildBaseConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile loads the environment-derived configuration and overlays
// the YAML file at path. Keys absent from the file keep their env/default
// values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	cfg := buildBaseConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromDB loads configuration from both environment variables and the
// database. Database values take precedence over environment variables for
// measure settings. Falls back to the environment when no row exists.
//
// Returns an error if db is nil.
func LoadConfigFromDB(db *sql.DB) (*Config, error) {
	if db == nil {
		return nil, errors.New("config: database connection is required")
	}

	cfg := buildBaseConfig()

	strategy, err := getSetting(db, keyMeasureStrategy)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "config: failed to load measure_strategy from database")
	}
	if strategy != "" {
		cfg.Measure.Strategy = strategy
	}

	threshold, err := getSetting(db, keyMaxThreshold)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "config: failed to load max_threshold from database")
	}
	if threshold != "" {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "config: stored max_threshold %q", threshold)
		}
		cfg.Measure.MaxThreshold = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig persists the measure settings to the settings table using
// upsert semantics.
//
// Returns an error if db is nil.
func (c *Config) SaveConfig(db *sql.DB) error {
	if db == nil {
		return errors.New("config: database connection is required")
	}

	if err := setSetting(db, keyMeasureStrategy, c.Measure.Strategy); err != nil {
		return errors.Wrap(err, "config: failed to save measure_strategy")
	}
	threshold := strconv.FormatFloat(c.Measure.MaxThreshold, 'g', -1, 64)
	if err := setSetting(db, keyMaxThreshold, threshold); err != nil {
		return errors.Wrap(err, "config: failed to save max_threshold")
	}

	return nil
}

// Validate checks that the configuration can build working components.
func (c *Config) Validate() error {
	if _, err := measure.ParseKind(c.Measure.Strategy); err != nil {
		return errors.Wrap(err, "config: measure.strategy")
	}
	if err := measure.ValidateThreshold(c.Measure.MaxThreshold); err != nil {
		return errors.Wrap(err, "config: measure.max_threshold")
	}
	if c.Matcher.Workers < 1 {
		return errors.Newf("config: matcher.workers must be at least 1, got %d", c.Matcher.Workers)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "config: logging.level")
	}
	return nil
}

// NewDistance builds the configured distance.
func (c *Config) NewDistance() (*measure.Distance, error) {
	kind, err := measure.ParseKind(c.Measure.Strategy)
	if err != nil {
		return nil, err
	}
	return measure.NewDistanceOfKind(kind, c.Measure.MaxThreshold)
}

// NewMatcher builds a context matcher over the configured distance, scoring
// with Matcher.Workers goroutines.
func (c *Config) NewMatcher(logger *zap.SugaredLogger) (*holon.Matcher, error) {
	d, err := c.NewDistance()
	if err != nil {
		return nil, errors.Wrap(err, "config: matcher distance")
	}
	return holon.NewMatcher(d, c.Matcher.Workers, logger)
}

// LoggingOptions converts the logging section for logging.New.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{JSON: c.Logging.JSON, Level: c.Logging.Level}
}

// getSetting retrieves a single setting value by key from the settings table.
// Returns an empty string and sql.ErrNoRows if the key does not exist.
func getSetting(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// setSetting writes a key-value pair to the settings table using upsert semantics.
func setSetting(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// buildBaseConfig constructs a Config with values from environment variables
// and defaults. This is the shared base for every loader.
func buildBaseConfig() *Config {
	return &Config{
		Measure: MeasureConfig{
			Strategy:     getEnv("HOLONS_MEASURE_STRATEGY", "soft"),
			MaxThreshold: getEnvFloat("HOLONS_MAX_THRESHOLD", 0),
		},
		Matcher: MatcherConfig{
			Workers: getEnvInt("HOLONS_MATCHER_WORKERS", 4),
		},
		Logging: LoggingConfig{
			JSON:  getEnvBool("HOLONS_LOG_JSON", false),
			Level: getEnv("HOLONS_LOG_LEVEL", "info"),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// It recognizes "true", "1", "yes" as true and "false", "0", "no" as false (case-insensitive).
// If the environment variable exists but cannot be parsed as a boolean,
// it returns the default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}
