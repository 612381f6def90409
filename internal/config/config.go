package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	OracleAPIKey      string
	OracleBaseURL     string
	OracleModel       string
	OracleTimeoutSecs int

	SpeechCredentialsFile string
	SpeechLanguage        string
	SpeechTimeoutSecs     int

	AudioDir     string
	CertFontPath string
	CertCacheDir string

	AttemptsPerDay    int
	RenderWorkerCount int
	RenderQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:bardspeak.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		OracleAPIKey:      envOr("ORACLE_API_KEY", ""),
		OracleBaseURL:     envOr("ORACLE_BASE_URL", ""),
		OracleModel:       envOr("ORACLE_MODEL", "gpt-4o-mini"),
		OracleTimeoutSecs: envIntOr("ORACLE_TIMEOUT_SECONDS", 8),

		SpeechCredentialsFile: envOr("SPEECH_CREDENTIALS_FILE", ""),
		SpeechLanguage:        envOr("SPEECH_LANGUAGE", "en-US"),
		SpeechTimeoutSecs:     envIntOr("SPEECH_TIMEOUT_SECONDS", 20),

		AudioDir:     envOr("AUDIO_DIR", "static/audio"),
		CertFontPath: envOr("CERT_FONT_PATH", ""),
		CertCacheDir: envOr("CERT_CACHE_DIR", "certificates"),

		AttemptsPerDay:    envIntOr("ATTEMPTS_PER_DAY", 10),
		RenderWorkerCount: envIntOr("RENDER_WORKER_COUNT", 1),
		RenderQueueSize:   envIntOr("RENDER_QUEUE_SIZE", 16),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a known level", c.LogLevel))
	}
	if c.OracleTimeoutSecs <= 0 {
		problems = append(problems, "ORACLE_TIMEOUT_SECONDS must be positive")
	}
	if c.SpeechTimeoutSecs <= 0 {
		problems = append(problems, "SPEECH_TIMEOUT_SECONDS must be positive")
	}
	if c.AttemptsPerDay <= 0 {
		problems = append(problems, "ATTEMPTS_PER_DAY must be positive")
	}
	if c.RenderWorkerCount <= 0 {
		problems = append(problems, "RENDER_WORKER_COUNT must be positive")
	}
	if c.RenderQueueSize <= 0 {
		problems = append(problems, "RENDER_QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// OracleTimeout returns the per-call deadline for the quality oracle.
func (c Config) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutSecs) * time.Second
}

// SpeechTimeout returns the per-call deadline for audio transcription.
func (c Config) SpeechTimeout() time.Duration {
	return time.Duration(c.SpeechTimeoutSecs) * time.Second
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
