// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/pdftext/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the configuration.
const EnvPrefix = "PDFTEXT"

// LogConfig controls log verbosity and formatting.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ThresholdConfig holds the per-strategy acceptance thresholds.
type ThresholdConfig struct {
	TextObjects    float64 `mapstructure:"text_objects" yaml:"text_objects"`
	Streams        float64 `mapstructure:"streams" yaml:"streams"`
	RawText        float64 `mapstructure:"raw_text" yaml:"raw_text"`
	CharacterCodes float64 `mapstructure:"character_codes" yaml:"character_codes"`
}

// ExtractionConfig tunes budgets and work caps of the extraction pipeline.
type ExtractionConfig struct {
	TotalBudget       time.Duration   `mapstructure:"total_budget" yaml:"total_budget"`
	StageReserve      time.Duration   `mapstructure:"stage_reserve" yaml:"stage_reserve"`
	TextObjectsBudget time.Duration   `mapstructure:"text_objects_budget" yaml:"text_objects_budget"`
	CharCodesBudget   time.Duration   `mapstructure:"char_codes_budget" yaml:"char_codes_budget"`
	Thresholds        ThresholdConfig `mapstructure:"thresholds" yaml:"thresholds"`

	MaxMatchesPerPattern int `mapstructure:"max_matches_per_pattern" yaml:"max_matches_per_pattern"`
	MaxFragments         int `mapstructure:"max_fragments" yaml:"max_fragments"`
	MaxStreams           int `mapstructure:"max_streams" yaml:"max_streams"`
	RawTextMaxMatches    int `mapstructure:"raw_text_max_matches" yaml:"raw_text_max_matches"`
	RawTextMaxChars      int `mapstructure:"raw_text_max_chars" yaml:"raw_text_max_chars"`
	CharCodesScanBytes   int `mapstructure:"char_codes_scan_bytes" yaml:"char_codes_scan_bytes"`
	CharCodesMaxChars    int `mapstructure:"char_codes_max_chars" yaml:"char_codes_max_chars"`

	EnableCharacterCodes bool    `mapstructure:"enable_character_codes" yaml:"enable_character_codes"`
	MinResultLength      int     `mapstructure:"min_result_length" yaml:"min_result_length"`
	MinResultQuality     float64 `mapstructure:"min_result_quality" yaml:"min_result_quality"`
}

// LexiconConfig points at an optional YAML file of extra legal terms.
type LexiconConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// OutputConfig selects the default rendering of results.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// BatchConfig bounds directory processing.
type BatchConfig struct {
	Workers       int   `mapstructure:"workers" yaml:"workers"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	Lexicon    LexiconConfig    `mapstructure:"lexicon" yaml:"lexicon"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Batch      BatchConfig      `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig loads configuration from the default search paths.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load initializes Viper configuration with hierarchical loading.
// An explicit configFile replaces the search paths and must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pdftext")
		v.AddConfigPath(".pdftext")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logging.GetLogger().Warn("Error reading config file, continuing with defaults",
				logging.Field{Key: logging.FieldFile, Value: v.ConfigFileUsed()},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Extraction defaults
	v.SetDefault("extraction.total_budget", "15s")
	v.SetDefault("extraction.stage_reserve", "1s")
	v.SetDefault("extraction.text_objects_budget", "8s")
	v.SetDefault("extraction.char_codes_budget", "3s")
	v.SetDefault("extraction.thresholds.text_objects", 0.3)
	v.SetDefault("extraction.thresholds.streams", 0.25)
	v.SetDefault("extraction.thresholds.raw_text", 0.2)
	v.SetDefault("extraction.thresholds.character_codes", 0.1)
	v.SetDefault("extraction.max_matches_per_pattern", 1000)
	v.SetDefault("extraction.max_fragments", 500)
	v.SetDefault("extraction.max_streams", 100)
	v.SetDefault("extraction.raw_text_max_matches", 500)
	v.SetDefault("extraction.raw_text_max_chars", 50000)
	v.SetDefault("extraction.char_codes_scan_bytes", 50000)
	v.SetDefault("extraction.char_codes_max_chars", 5000)
	v.SetDefault("extraction.enable_character_codes", true)
	v.SetDefault("extraction.min_result_length", 30)
	v.SetDefault("extraction.min_result_quality", 0.1)

	// Lexicon defaults
	v.SetDefault("lexicon.file", "")

	// Output defaults
	v.SetDefault("output.format", "text")

	// Batch defaults
	v.SetDefault("batch.workers", 0)
	v.SetDefault("batch.max_file_size_mb", 100)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	ex := config.Extraction
	if ex.TotalBudget <= 0 {
		return fmt.Errorf("extraction.total_budget must be positive, got: %s", ex.TotalBudget)
	}
	if ex.StageReserve < 0 || ex.StageReserve >= ex.TotalBudget {
		return fmt.Errorf("extraction.stage_reserve must be in [0, total_budget), got: %s", ex.StageReserve)
	}
	if ex.TextObjectsBudget <= 0 || ex.CharCodesBudget <= 0 {
		return fmt.Errorf("extraction strategy budgets must be positive")
	}

	thresholds := map[string]float64{
		"text_objects":    ex.Thresholds.TextObjects,
		"streams":         ex.Thresholds.Streams,
		"raw_text":        ex.Thresholds.RawText,
		"character_codes": ex.Thresholds.CharacterCodes,
	}
	for name, value := range thresholds {
		if value < 0.0 || value > 1.0 {
			return fmt.Errorf("extraction.thresholds.%s must be between 0.0 and 1.0, got: %f", name, value)
		}
	}
	if ex.MinResultQuality < 0.0 || ex.MinResultQuality > 1.0 {
		return fmt.Errorf("extraction.min_result_quality must be between 0.0 and 1.0, got: %f", ex.MinResultQuality)
	}

	caps := map[string]int{
		"max_matches_per_pattern": ex.MaxMatchesPerPattern,
		"max_fragments":           ex.MaxFragments,
		"max_streams":             ex.MaxStreams,
		"raw_text_max_matches":    ex.RawTextMaxMatches,
		"raw_text_max_chars":      ex.RawTextMaxChars,
		"char_codes_scan_bytes":   ex.CharCodesScanBytes,
		"char_codes_max_chars":    ex.CharCodesMaxChars,
	}
	for name, value := range caps {
		if value < 1 {
			return fmt.Errorf("extraction.%s must be at least 1, got: %d", name, value)
		}
	}

	// Validate output format
	switch config.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be 'text', 'json' or 'yaml')", config.Output.Format)
	}

	if config.Batch.Workers < 0 || config.Batch.Workers > 256 {
		return fmt.Errorf("batch.workers must be between 0 and 256, got: %d", config.Batch.Workers)
	}
	if config.Batch.MaxFileSizeMB < 1 {
		return fmt.Errorf("batch.max_file_size_mb must be at least 1, got: %d", config.Batch.MaxFileSizeMB)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a Logger from the Config struct.
// Log lines go to stderr so stdout stays free for extracted text.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
