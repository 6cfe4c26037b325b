package profile

import (
	"os"
	"testing"
)

var aiEnvVars = []string{
	"DASHWISE_AI_ENABLED",
	"DASHWISE_AI_LLM_PROVIDER",
	"DASHWISE_AI_LLM_API_KEY",
	"DASHWISE_AI_LLM_BASE_URL",
	"DASHWISE_AI_LLM_MODEL",
	"DASHWISE_AI_LLM_TIMEOUT_SECONDS",
	"DASHWISE_AI_EMBEDDING_PROVIDER",
	"DASHWISE_AI_EMBEDDING_MODEL",
	"DASHWISE_AI_EMBEDDING_API_KEY",
	"DASHWISE_AI_EMBEDDING_BASE_URL",
	"DASHWISE_AI_EMBEDDING_DIMENSIONS",
}

func clearAIEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range aiEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestProfileDefaults(t *testing.T) {
	clearAIEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"LLMProvider default", "ollama", profile.LLMProvider},
		{"LLMBaseURL default", "http://localhost:11434/v1", profile.LLMBaseURL},
		{"LLMModel default", "llama3.2:1b", profile.LLMModel},
		{"EmbeddingProvider default", "ollama", profile.EmbeddingProvider},
		{"EmbeddingModel default", "nomic-embed-text", profile.EmbeddingModel},
		{"EmbeddingBaseURL default", "http://localhost:11434/v1", profile.EmbeddingBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if !profile.AIEnabled {
		t.Error("AIEnabled should default to true")
	}
	if profile.LLMTimeout != 30 {
		t.Errorf("LLMTimeout: expected 30, got %d", profile.LLMTimeout)
	}
	if profile.EmbeddingDimensions != 768 {
		t.Errorf("EmbeddingDimensions: expected 768, got %d", profile.EmbeddingDimensions)
	}
}

func TestProfileFromEnv(t *testing.T) {
	clearAIEnvVars(t)

	t.Setenv("DASHWISE_AI_LLM_PROVIDER", "openai")
	t.Setenv("DASHWISE_AI_LLM_API_KEY", "test-key")
	t.Setenv("DASHWISE_AI_EMBEDDING_PROVIDER", "siliconflow")

	profile := &Profile{}
	profile.FromEnv()

	if profile.LLMProvider != "openai" {
		t.Errorf("LLMProvider: expected openai, got %q", profile.LLMProvider)
	}
	if profile.LLMAPIKey != "test-key" {
		t.Errorf("LLMAPIKey: expected test-key, got %q", profile.LLMAPIKey)
	}
	if profile.LLMBaseURL != "https://api.openai.com/v1" {
		t.Errorf("LLMBaseURL: expected openai default, got %q", profile.LLMBaseURL)
	}
	if profile.EmbeddingModel != "BAAI/bge-m3" {
		t.Errorf("EmbeddingModel: expected siliconflow default, got %q", profile.EmbeddingModel)
	}
	if profile.EmbeddingDimensions != 1024 {
		t.Errorf("EmbeddingDimensions: expected 1024, got %d", profile.EmbeddingDimensions)
	}
}

func TestProfileUnknownProviderFallsBack(t *testing.T) {
	clearAIEnvVars(t)

	t.Setenv("DASHWISE_AI_LLM_PROVIDER", "something-else")

	profile := &Profile{}
	profile.FromEnv()

	if profile.LLMProvider != "ollama" {
		t.Errorf("LLMProvider: expected fallback to ollama, got %q", profile.LLMProvider)
	}
}

func TestProfileAIDisabled(t *testing.T) {
	clearAIEnvVars(t)

	t.Setenv("DASHWISE_AI_ENABLED", "false")

	profile := &Profile{}
	profile.FromEnv()

	if profile.IsAIEnabled() {
		t.Error("IsAIEnabled should be false when DASHWISE_AI_ENABLED=false")
	}
}

func TestValidateSQLiteDSN(t *testing.T) {
	dir := t.TempDir()
	profile := &Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   dir,
	}

	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if profile.DSN == "" {
		t.Error("expected a generated sqlite DSN")
	}
}
