package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Server
	Port int

	// Ollama LLM (optional -- empty URL disables LLM descriptions)
	OllamaURL   string
	OllamaModel string

	// History persistence (optional -- empty URL disables it)
	HistoryAPIURL string
	HistoryAPIKey string

	// Preview behavior
	JingleDuration float64 // seconds
	Monitor        bool    // play the preview on the local sound card
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port: envInt("JINGLE_PORT", 8080),

		OllamaURL:   envStr("OLLAMA_URL", ""),
		OllamaModel: envStr("OLLAMA_MODEL", "qwen3:8b"),

		HistoryAPIURL: envStr("HISTORY_API_URL", ""),
		HistoryAPIKey: envStr("HISTORY_API_KEY", ""),

		JingleDuration: envFloat("JINGLE_DURATION", 12),
		Monitor:        envBool("JINGLE_MONITOR", false),
	}
}

func envStr(key, fallback string) string {
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
