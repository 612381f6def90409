package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bardspeak/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		OracleModel:       "gpt-4o-mini",
		OracleTimeoutSecs: 8,
		SpeechLanguage:    "en-US",
		SpeechTimeoutSecs: 20,
		AudioDir:          "static/audio",
		CertCacheDir:      "certificates",
		AttemptsPerDay:    10,
		RenderWorkerCount: 1,
		RenderQueueSize:   16,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{
			name:  "uppercase info",
			level: "INFO",
		},
		{
			name:  "lowercase debug",
			level: "debug",
		},
		{
			name:  "warning alias",
			level: "WARNING",
		},
		{
			name:    "unknown level",
			level:   "LOUD",
			wantErr: true,
		},
		{
			name:    "empty level",
			level:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NonPositiveValues(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero oracle timeout",
			mutate:        func(c *config.Config) { c.OracleTimeoutSecs = 0 },
			expectedError: "ORACLE_TIMEOUT_SECONDS",
		},
		{
			name:          "negative speech timeout",
			mutate:        func(c *config.Config) { c.SpeechTimeoutSecs = -1 },
			expectedError: "SPEECH_TIMEOUT_SECONDS",
		},
		{
			name:          "zero attempts per day",
			mutate:        func(c *config.Config) { c.AttemptsPerDay = 0 },
			expectedError: "ATTEMPTS_PER_DAY",
		},
		{
			name:          "zero render workers",
			mutate:        func(c *config.Config) { c.RenderWorkerCount = 0 },
			expectedError: "RENDER_WORKER_COUNT",
		},
		{
			name:          "zero render queue",
			mutate:        func(c *config.Config) { c.RenderQueueSize = 0 },
			expectedError: "RENDER_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "ORACLE_TIMEOUT_SECONDS")
	assert.Contains(t, errStr, "SPEECH_TIMEOUT_SECONDS")
	assert.Contains(t, errStr, "ATTEMPTS_PER_DAY")
	assert.Contains(t, errStr, "RENDER_WORKER_COUNT")
	assert.Contains(t, errStr, "RENDER_QUEUE_SIZE")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "ATTEMPTS_PER_DAY"} {
		if v := os.Getenv(key); v != "" {
			t.Skipf("%s set in environment", key)
		}
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:bardspeak.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.AttemptsPerDay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// Save original values
	originalAddr := os.Getenv("ADDR")
	originalDBPath := os.Getenv("DB_PATH")

	defer func() {
		if originalAddr != "" {
			os.Setenv("ADDR", originalAddr)
		} else {
			os.Unsetenv("ADDR")
		}
		if originalDBPath != "" {
			os.Setenv("DB_PATH", originalDBPath)
		} else {
			os.Unsetenv("DB_PATH")
		}
	}()

	os.Setenv("ADDR", ":9090")
	os.Setenv("DB_PATH", "custom.db")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
}
