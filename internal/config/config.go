// ABOUTME: Centralized configuration for the mindsearch pipeline and CLI
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the archive indexing and search system
type Config struct {
	// Data locations
	DataDir    string
	SourceFile string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Indexing settings
	BatchSize int
	MaxTokens int

	// Search settings
	SearchOverfetch int

	// Insight batch settings
	InsightDelay     time.Duration
	InsightSaveEvery int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults mirror the archive layout the indexer produces
		DataDir:          getEnv("MINDSEARCH_DATA_DIR", "flattened_output"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("MINDSEARCH_CHAT_MODEL", "gpt-3.5-turbo"),
		EmbeddingModel:   getEnv("MINDSEARCH_EMBED_MODEL", "text-embedding-3-small"),
		Timeout:          getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:       getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:       getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		BatchSize:        getEnvInt("MINDSEARCH_BATCH_SIZE", 100),
		MaxTokens:        getEnvInt("MINDSEARCH_MAX_TOKENS", 8192),
		SearchOverfetch:  getEnvInt("MINDSEARCH_SEARCH_OVERFETCH", 20),
		InsightDelay:     getEnvDuration("MINDSEARCH_INSIGHT_DELAY", 1100*time.Millisecond),
		InsightSaveEvery: getEnvInt("MINDSEARCH_INSIGHT_SAVE_EVERY", 5),
	}
	cfg.SourceFile = getEnv("MINDSEARCH_SOURCE", filepath.Join(cfg.DataDir, "conversations.jsonl"))

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("MINDSEARCH_BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("MINDSEARCH_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.SearchOverfetch < 1 {
		return fmt.Errorf("MINDSEARCH_SEARCH_OVERFETCH must be positive, got %d", c.SearchOverfetch)
	}
	if c.InsightSaveEvery < 1 {
		return fmt.Errorf("MINDSEARCH_INSIGHT_SAVE_EVERY must be positive, got %d", c.InsightSaveEvery)
	}
	return nil
}

// RequireOpenAIKey returns an error when no API key is configured.
// Indexing, search and insight generation all need one.
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set (put it in .env or the environment)")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
