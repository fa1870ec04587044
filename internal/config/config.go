package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string `env:"PORT" env-default:"8080"`
	Env  string `env:"ENV" env-default:"development"`

	// Frontend (comma-separated CORS origins)
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`

	// Redis (optional; sessions are kept in memory without it)
	RedisURL string `env:"REDIS_URL"`

	// Auth
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	BcryptCost      int           `env:"BCRYPT_COST" env-default:"10"`

	// Chat completion
	ChatProvider           string        `env:"CHAT_PROVIDER" env-default:"groq"`
	GroqAPIKey             string        `env:"GROQ_API_KEY"`
	GroqBaseURL            string        `env:"GROQ_BASE_URL" env-default:"https://api.groq.com/openai/v1"`
	GeminiAPIKey           string        `env:"GEMINI_API_KEY"`
	ChatModel              string        `env:"CHAT_MODEL"`
	ChatMaxTokens          int           `env:"CHAT_MAX_TOKENS" env-default:"300"`
	ChatTimeout            time.Duration `env:"CHAT_TIMEOUT" env-default:"10s"`
	ChatConcurrentRequests int           `env:"CHAT_CONCURRENT_REQUESTS" env-default:"5"`
	ChatRateLimit          int           `env:"CHAT_RATE_LIMIT" env-default:"20"`

	// Realtime
	RealtimeInterval time.Duration `env:"REALTIME_INTERVAL" env-default:"30s"`

	// Uploads
	UploadMaxBytes int64 `env:"UPLOAD_MAX_BYTES" env-default:"10485760"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads .env (if present) into the process environment, then fills
// Config from the environment and validates it.
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.ChatProvider = strings.ToLower(strings.TrimSpace(cfg.ChatProvider))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}

	switch c.ChatProvider {
	case "groq":
		if c.GroqAPIKey == "" {
			errs = append(errs, errors.New("GROQ_API_KEY is required when CHAT_PROVIDER is groq"))
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when CHAT_PROVIDER is gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("CHAT_PROVIDER must be groq or gemini, got %q", c.ChatProvider))
	}

	positive := []struct {
		name string
		ok   bool
	}{
		{"ACCESS_TOKEN_TTL", c.AccessTokenTTL > 0},
		{"REFRESH_TOKEN_TTL", c.RefreshTokenTTL > 0},
		{"CHAT_MAX_TOKENS", c.ChatMaxTokens > 0},
		{"CHAT_TIMEOUT", c.ChatTimeout > 0},
		{"CHAT_CONCURRENT_REQUESTS", c.ChatConcurrentRequests > 0},
		{"CHAT_RATE_LIMIT", c.ChatRateLimit > 0},
		{"REALTIME_INTERVAL", c.RealtimeInterval > 0},
		{"UPLOAD_MAX_BYTES", c.UploadMaxBytes > 0},
	}
	for _, p := range positive {
		if !p.ok {
			errs = append(errs, fmt.Errorf("%s must be positive", p.name))
		}
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}

	return errors.Join(errs...)
}

// ChatModelName returns CHAT_MODEL or the chosen provider's default.
func (c *Config) ChatModelName() string {
	if c.ChatModel != "" {
		return c.ChatModel
	}
	if c.ChatProvider == "gemini" {
		return "gemini-2.0-flash"
	}
	return "llama-3.1-8b-instant"
}
