package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the avatar gateway service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8000"`

	// Directory of static assets (avatar page, VRM model, animations).
	// Served at "/" when non-empty.
	StaticDir string `envconfig:"STATIC_DIR" default:"web"`

	// Ollama generation backend
	OllamaURL   string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OllamaModel string `envconfig:"OLLAMA_MODEL" default:"llama3"`

	// Speech synthesis backend (edge-tts compatible HTTP service)
	TTSURL   string `envconfig:"TTS_URL" default:"http://localhost:5050/api/tts"`
	TTSVoice string `envconfig:"TTS_VOICE" default:"en-US-AvaMultilingualNeural"`
	TTSRate  string `envconfig:"TTS_RATE" default:"+10%"`  // e.g. "+10%", "-5%"
	TTSPitch string `envconfig:"TTS_PITCH" default:"+0Hz"` // e.g. "+15Hz"

	// Display name used in the persona prompt
	AvatarName string `envconfig:"AVATAR_NAME" default:"Mira"`

	// Pipeline configuration
	TurnQueueSize int `envconfig:"TURN_QUEUE_SIZE" default:"16"` // Buffered sentences per in-flight turn

	// Resilience configuration
	BreakerMaxFailures  int `envconfig:"BREAKER_MAX_FAILURES" default:"5"`    // Failures before opening circuit
	BreakerResetTimeout int `envconfig:"BREAKER_RESET_TIMEOUT" default:"30"`  // Seconds before attempting recovery
	RetryMaxAttempts    int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`      // Maximum retry attempts
	RetryInitialBackoff int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"` // Initial backoff in milliseconds

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.OllamaURL == "" {
		return nil, fmt.Errorf("OLLAMA_URL must not be empty")
	}
	if cfg.OllamaModel == "" {
		return nil, fmt.Errorf("OLLAMA_MODEL must not be empty")
	}
	if cfg.TTSURL == "" {
		return nil, fmt.Errorf("TTS_URL must not be empty")
	}
	if cfg.TurnQueueSize < 1 {
		return nil, fmt.Errorf("TURN_QUEUE_SIZE must be at least 1")
	}

	return &cfg, nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
