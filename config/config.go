// ABOUTME: Environment-driven application configuration
// ABOUTME: Loads .env and exposes an explicit Config struct to constructors
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Config carries all runtime settings. It is built once in main and
// passed explicitly to the components that need it.
type Config struct {
	DatabasePath string
	Host         string
	Port         int

	// Anthropic API settings for the assistant adapter. Empty APIKey
	// means the assistant is unconfigured and fails soft.
	AnthropicAPIKey string
	ClaudeModel     string
	ClaudeMaxTokens int

	// EnableWebEnrichment toggles the onboarding web-search lookup.
	EnableWebEnrichment bool
}

const (
	defaultModel     = "claude-3-5-sonnet-20241022"
	defaultMaxTokens = 1024
	defaultPort      = 5000
)

// Load reads .env (when present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabasePath:        envOr("DATABASE_PATH", filepath.Join(xdg.DataHome, "carnet", "crm.db")),
		Host:                envOr("HOST", "0.0.0.0"),
		Port:                envInt("PORT", defaultPort),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeModel:         envOr("CLAUDE_MODEL", defaultModel),
		ClaudeMaxTokens:     envInt("CLAUDE_MAX_TOKENS", defaultMaxTokens),
		EnableWebEnrichment: envBool("ENABLE_WEB_ENRICHMENT", true),
	}
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
