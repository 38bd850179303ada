package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for every binary in the repo. The
// query clients only read APIURL and LogLevel.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Query client
	APIURL  string `env:"API_URL" envDefault:"http://127.0.0.1:8000"`
	WebPort int    `env:"WEB_PORT" envDefault:"5173"`

	// Answer service
	Port           int      `env:"PORT" envDefault:"8000"`
	DBURL          string   `env:"DB_URL"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`

	// Translation: "demo" answers every question with a fixed query, "openai" asks the model.
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"demo"`
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	LLMModel    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
