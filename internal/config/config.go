package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Groq generation
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// Generation passes
	DraftMaxTokens    int
	PolishMaxTokens   int
	DraftTemperature  float64
	PolishTemperature float64
	Depth             int

	// Fact gathering
	MaxFacts int

	// Rendering
	TemplatePath string
	ChartFont    string
	OutputDir    string

	// Auth
	DeckgenAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqModel:   envOr("GROQ_MODEL", "llama3-8b-8192"),
		GroqBaseURL: envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),

		DraftMaxTokens:    envInt("DRAFT_MAX_TOKENS", 2000),
		PolishMaxTokens:   envInt("POLISH_MAX_TOKENS", 1800),
		DraftTemperature:  envFloat("DRAFT_TEMPERATURE", 0.4),
		PolishTemperature: envFloat("POLISH_TEMPERATURE", 0.2),
		Depth:             envInt("DEPTH", 3),

		MaxFacts: envInt("MAX_FACTS", 5),

		TemplatePath: os.Getenv("TEMPLATE_PATH"),
		ChartFont:    os.Getenv("CHART_FONT"),
		OutputDir:    envOr("OUTPUT_DIR", "decks"),

		DeckgenAPIKey: os.Getenv("DECKGEN_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.DraftMaxTokens <= 0 {
		cfg.DraftMaxTokens = 2000
	}
	if cfg.PolishMaxTokens <= 0 {
		cfg.PolishMaxTokens = 1800
	}
	if cfg.Depth <= 0 {
		cfg.Depth = 3
	}
	if cfg.MaxFacts <= 0 {
		cfg.MaxFacts = 5
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings every mode needs.
func (c Config) Validate() error {
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	return nil
}

// ValidateServe checks the additional settings the HTTP server needs.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DeckgenAPIKey == "" {
		return fmt.Errorf("DECKGEN_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
