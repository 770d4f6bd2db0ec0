package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultLocalModel is the model served by the local endpoint out of the box.
const DefaultLocalModel = "Llama-3.2-1B-Instruct-Q8_0-GGUF"

// Config holds runtime configuration read from the environment.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize      int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`  // 10MB in bytes
	AttachmentMaxWords int   `env:"ATTACHMENT_MAX_WORDS" envDefault:"1500"` // words of an attachment sent to the model

	// Data
	LawsCSV     string `env:"LAWS_CSV" envDefault:"laws.csv"`
	LawyersFile string `env:"LAWYERS_FILE"` // empty means the built-in directory

	// LLM
	LLMProvider  string        `env:"LLM_PROVIDER" envDefault:"local"` // "local" (OpenAI-compatible server) or "gemini"
	LLMBaseURL   string        `env:"LLM_BASE_URL" envDefault:"http://localhost:1234/v1"`
	LLMAPIKey    string        `env:"LLM_API_KEY" envDefault:"lm-studio"`
	LLMModel     string        `env:"LLM_MODEL" envDefault:"Llama-3.2-1B-Instruct-Q8_0-GGUF"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"2m"`

	// Sessions
	SessionStore string        `env:"SESSION_STORE" envDefault:"memory"` // "memory" or "redis"
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Insight cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"noop"` // "noop" or "redis"
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"3600"`      // seconds

	// Redis (sessions and cache)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Quiz history
	ResultsStore string `env:"RESULTS_STORE" envDefault:"memory"` // "memory" or "postgres"
	DBURL        string `env:"DB_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
