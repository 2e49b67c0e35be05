package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey enables the Gemini mentor. Without it Ether uses
	// scripted lessons.
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL"     envDefault:"gemini-2.5-flash"`
	Seed         uint64        `env:"TRAIL_SEED"`
	FPS          int           `env:"TRAIL_FPS"        envDefault:"60"`
	TypeDelay    time.Duration `env:"TRAIL_TYPE_DELAY" envDefault:"25ms"`
	LogFile      string        `env:"TRAIL_LOG_FILE"`
	CardDir      string        `env:"TRAIL_CARD_DIR"   envDefault:"."`
}

// LoadConfig loads the configuration from a .env file in the working
// directory, if there is one, and then from environment variables.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom is LoadConfig with explicit dotenv files. Missing files are
// skipped; variables already set in the environment win.
func LoadConfigFrom(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("TRAIL_FPS must be between 1 and 240, got %d", c.FPS)
	}
	if c.TypeDelay < 0 {
		return fmt.Errorf("TRAIL_TYPE_DELAY must not be negative, got %s", c.TypeDelay)
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	return nil
}

// MentorEnabled reports whether a Gemini key is configured.
func (c *Config) MentorEnabled() bool {
	return c.GeminiAPIKey != ""
}
