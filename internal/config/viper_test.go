package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 15*time.Second, config.Extraction.TotalBudget)
	assert.Equal(t, time.Second, config.Extraction.StageReserve)
	assert.Equal(t, 8*time.Second, config.Extraction.TextObjectsBudget)
	assert.Equal(t, 3*time.Second, config.Extraction.CharCodesBudget)
	assert.Equal(t, 0.3, config.Extraction.Thresholds.TextObjects)
	assert.Equal(t, 0.25, config.Extraction.Thresholds.Streams)
	assert.Equal(t, 0.2, config.Extraction.Thresholds.RawText)
	assert.Equal(t, 0.1, config.Extraction.Thresholds.CharacterCodes)
	assert.Equal(t, 1000, config.Extraction.MaxMatchesPerPattern)
	assert.Equal(t, 500, config.Extraction.MaxFragments)
	assert.Equal(t, 100, config.Extraction.MaxStreams)
	assert.True(t, config.Extraction.EnableCharacterCodes)
	assert.Equal(t, 30, config.Extraction.MinResultLength)
	assert.Equal(t, "", config.Lexicon.File)
	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, 0, config.Batch.Workers)
	assert.Equal(t, int64(100), config.Batch.MaxFileSizeMB)
}

func TestDefault_MatchesInitializeConfig(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	loaded, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, loaded, Default())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("PDFTEXT_LOG_LEVEL", "debug")
	t.Setenv("PDFTEXT_LOG_FORMAT", "json")
	t.Setenv("PDFTEXT_EXTRACTION_TOTAL_BUDGET", "5s")
	t.Setenv("PDFTEXT_EXTRACTION_THRESHOLDS_STREAMS", "0.4")
	t.Setenv("PDFTEXT_EXTRACTION_ENABLE_CHARACTER_CODES", "false")
	t.Setenv("PDFTEXT_BATCH_WORKERS", "3")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 5*time.Second, config.Extraction.TotalBudget)
	assert.Equal(t, 0.4, config.Extraction.Thresholds.Streams)
	assert.False(t, config.Extraction.EnableCharacterCodes)
	assert.Equal(t, 3, config.Batch.Workers)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
extraction:
  total_budget: "20s"
  max_streams: 50
lexicon:
  file: "terms.yaml"
output:
  format: "yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	t.Chdir(tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 20*time.Second, config.Extraction.TotalBudget)
	assert.Equal(t, 50, config.Extraction.MaxStreams)
	assert.Equal(t, "terms.yaml", config.Lexicon.File)
	assert.Equal(t, "yaml", config.Output.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 500, config.Extraction.MaxFragments)
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  workers: 7\n"), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, config.Batch.Workers)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearTestEnvVars(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
extraction:
  max_fragments: 200
  stage_reserve: "2s"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("PDFTEXT_LOG_LEVEL", "error")
	t.Setenv("PDFTEXT_EXTRACTION_MAX_FRAGMENTS", "300")
	t.Chdir(tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// env vars win over the file, the file wins over defaults
	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, 300, config.Extraction.MaxFragments)
	assert.Equal(t, 2*time.Second, config.Extraction.StageReserve)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "zero total budget",
			modifyConfig: func(c *Config) { c.Extraction.TotalBudget = 0 },
			expectError:  "extraction.total_budget must be positive",
		},
		{
			name:         "reserve exceeds budget",
			modifyConfig: func(c *Config) { c.Extraction.StageReserve = 20 * time.Second },
			expectError:  "extraction.stage_reserve",
		},
		{
			name:         "threshold out of range",
			modifyConfig: func(c *Config) { c.Extraction.Thresholds.RawText = 1.5 },
			expectError:  "extraction.thresholds.raw_text must be between 0.0 and 1.0",
		},
		{
			name:         "zero fragment cap",
			modifyConfig: func(c *Config) { c.Extraction.MaxFragments = 0 },
			expectError:  "extraction.max_fragments must be at least 1",
		},
		{
			name:         "unknown output format",
			modifyConfig: func(c *Config) { c.Output.Format = "xml" },
			expectError:  "invalid output format",
		},
		{
			name:         "negative workers",
			modifyConfig: func(c *Config) { c.Batch.Workers = -1 },
			expectError:  "batch.workers must be between 0 and 256",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			config := Default()
			config.Log.Format = format
			assert.NotNil(t, ConfigureLoggingFromConfig(config))
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PDFTEXT_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("PDFTEXT_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("PDFTEXT_TEST_UNSET_VALUE", "fallback"))
}

// clearTestEnvVars blanks every variable the tests above set, restoring them afterwards.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"PDFTEXT_LOG_LEVEL",
		"PDFTEXT_LOG_FORMAT",
		"PDFTEXT_EXTRACTION_TOTAL_BUDGET",
		"PDFTEXT_EXTRACTION_STAGE_RESERVE",
		"PDFTEXT_EXTRACTION_THRESHOLDS_STREAMS",
		"PDFTEXT_EXTRACTION_ENABLE_CHARACTER_CODES",
		"PDFTEXT_EXTRACTION_MAX_FRAGMENTS",
		"PDFTEXT_EXTRACTION_MAX_STREAMS",
		"PDFTEXT_LEXICON_FILE",
		"PDFTEXT_OUTPUT_FORMAT",
		"PDFTEXT_BATCH_WORKERS",
		"PDFTEXT_BATCH_MAX_FILE_SIZE_MB",
	}

	for _, envVar := range envVars {
		if value, ok := os.LookupEnv(envVar); ok {
			t.Setenv(envVar, value)
			require.NoError(t, os.Unsetenv(envVar))
		}
	}
}
