package config

import (
	"os"
	"testing"
)

var allVars = []string{
	"JINGLE_PORT", "OLLAMA_URL", "OLLAMA_MODEL",
	"HISTORY_API_URL", "HISTORY_API_KEY",
	"JINGLE_DURATION", "JINGLE_MONITOR",
}

func clearEnv() {
	for _, k := range allVars {
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv()

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.OllamaURL != "" {
		t.Errorf("OllamaURL = %q, want empty default", cfg.OllamaURL)
	}
	if cfg.OllamaModel != "qwen3:8b" {
		t.Errorf("OllamaModel = %q, want default", cfg.OllamaModel)
	}
	if cfg.HistoryAPIURL != "" || cfg.HistoryAPIKey != "" {
		t.Error("history API should default to unset")
	}
	if cfg.JingleDuration != 12 {
		t.Errorf("JingleDuration = %v, want 12", cfg.JingleDuration)
	}
	if cfg.Monitor {
		t.Error("Monitor should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("JINGLE_PORT", "9000")
	os.Setenv("OLLAMA_URL", "http://localhost:11434")
	os.Setenv("HISTORY_API_URL", "https://history.example.com")
	os.Setenv("JINGLE_DURATION", "8.5")
	os.Setenv("JINGLE_MONITOR", "true")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.HistoryAPIURL != "https://history.example.com" {
		t.Errorf("HistoryAPIURL = %q", cfg.HistoryAPIURL)
	}
	if cfg.JingleDuration != 8.5 {
		t.Errorf("JingleDuration = %v, want 8.5", cfg.JingleDuration)
	}
	if !cfg.Monitor {
		t.Error("Monitor = false, want true")
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("JINGLE_PORT", "not-a-number")
	os.Setenv("JINGLE_DURATION", "soon")
	os.Setenv("JINGLE_MONITOR", "maybe")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("garbage port parsed to %d, want default 8080", cfg.Port)
	}
	if cfg.JingleDuration != 12 {
		t.Errorf("garbage duration parsed to %v, want default 12", cfg.JingleDuration)
	}
	if cfg.Monitor {
		t.Error("garbage bool parsed to true, want default false")
	}
}
