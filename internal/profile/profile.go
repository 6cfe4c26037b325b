package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
type Profile struct {
	// Unified LLM configuration (OpenAI-compatible protocol)
	// All providers (ollama, openai, deepseek, siliconflow) use the same config
	LLMProvider string // Provider identifier: ollama, openai, deepseek, siliconflow
	LLMAPIKey   string // API key; may be empty for local providers
	LLMBaseURL  string // Base URL (optional, has default per provider)
	LLMModel    string // Model name: llama3.2:1b, gpt-4o-mini, etc.
	LLMTimeout  int    // LLM request timeout in seconds (default: 30)

	// Embedding configuration
	EmbeddingProvider   string
	EmbeddingModel      string
	EmbeddingAPIKey     string
	EmbeddingBaseURL    string
	EmbeddingDimensions int

	Mode        string
	Addr        string
	Port        int
	UNIXSock    string
	Data        string
	Driver      string
	DSN         string
	InstanceURL string
	Version     string
	AIEnabled   bool
}

// Provider default configurations for the LLM and embedding backends.
// Used when the corresponding base URL or model is not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"ollama": {
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3.2:1b",
	},
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	},
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"siliconflow": {
		BaseURL: "https://api.siliconflow.cn/v1",
		Model:   "Qwen/Qwen2.5-7B-Instruct",
	},
}

var embeddingProviderDefaults = map[string]struct {
	BaseURL    string
	Model      string
	Dimensions int
}{
	"ollama": {
		BaseURL:    "http://localhost:11434/v1",
		Model:      "nomic-embed-text",
		Dimensions: 768,
	},
	"openai": {
		BaseURL:    "https://api.openai.com/v1",
		Model:      "text-embedding-3-small",
		Dimensions: 1536,
	},
	"siliconflow": {
		BaseURL:    "https://api.siliconflow.cn/v1",
		Model:      "BAAI/bge-m3",
		Dimensions: 1024,
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the assistant may call the LLM and embedding backends.
// Local providers like ollama need no API key, so this is an explicit switch.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	// Unified LLM configuration
	p.LLMProvider = getEnvOrDefault("DASHWISE_AI_LLM_PROVIDER", "ollama")
	p.LLMAPIKey = getEnvOrDefault("DASHWISE_AI_LLM_API_KEY", "")
	p.LLMBaseURL = getEnvOrDefault("DASHWISE_AI_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("DASHWISE_AI_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("DASHWISE_AI_LLM_TIMEOUT_SECONDS", 30)

	p.AIEnabled = getEnvOrDefault("DASHWISE_AI_ENABLED", "true") == "true"

	if p.LLMProvider != "" {
		if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
			slog.Warn("Unknown LLM provider, using default: ollama", "provider", p.LLMProvider)
			p.LLMProvider = "ollama"
		}
	}
	if p.LLMBaseURL == "" || p.LLMModel == "" {
		if defaults, ok := llmProviderDefaults[p.LLMProvider]; ok {
			if p.LLMBaseURL == "" {
				p.LLMBaseURL = defaults.BaseURL
			}
			if p.LLMModel == "" {
				p.LLMModel = defaults.Model
			}
		}
	}

	// Embedding configuration
	p.EmbeddingProvider = getEnvOrDefault("DASHWISE_AI_EMBEDDING_PROVIDER", "ollama")
	p.EmbeddingModel = getEnvOrDefault("DASHWISE_AI_EMBEDDING_MODEL", "")
	p.EmbeddingAPIKey = getEnvOrDefault("DASHWISE_AI_EMBEDDING_API_KEY", "")
	p.EmbeddingBaseURL = getEnvOrDefault("DASHWISE_AI_EMBEDDING_BASE_URL", "")
	p.EmbeddingDimensions = getEnvOrDefaultInt("DASHWISE_AI_EMBEDDING_DIMENSIONS", 0)

	if _, ok := embeddingProviderDefaults[p.EmbeddingProvider]; !ok {
		slog.Warn("Unknown embedding provider, using default: ollama", "provider", p.EmbeddingProvider)
		p.EmbeddingProvider = "ollama"
	}
	if defaults, ok := embeddingProviderDefaults[p.EmbeddingProvider]; ok {
		if p.EmbeddingBaseURL == "" {
			p.EmbeddingBaseURL = defaults.BaseURL
		}
		if p.EmbeddingModel == "" {
			p.EmbeddingModel = defaults.Model
		}
		if p.EmbeddingDimensions == 0 {
			p.EmbeddingDimensions = defaults.Dimensions
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "dashwise")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/dashwise"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("dashwise_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
