package model

import "time"

// Config is the complete application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Store  StoreConfig  `yaml:"store"`
	Batch  BatchConfig  `yaml:"batch"`
}

// ServerConfig configures the HTTP layer
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Mode           string        `yaml:"mode"`            // "dev" or "prod"
	JWTSecret      string        `yaml:"jwt_secret"`      // Empty disables session endpoints
	SessionTTL     time.Duration `yaml:"session_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"` // CORS origins for browser frontends
}

// LLMConfig configures the completion gateway
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"api_key"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url"`

	// Timeout for API requests
	Timeout int `yaml:"timeout"` // seconds

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens"`
}

// StoreConfig configures the in-memory history/session store
type StoreConfig struct {
	PromptTTL       time.Duration `yaml:"prompt_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// BatchConfig configures the batch reframe runner
type BatchConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Pacing against the generation service
	Burst             int     `yaml:"burst"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Mode:           "dev",
			SessionTTL:     24 * time.Hour,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default: reframe runs in pass-through mode
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Store: StoreConfig{
			PromptTTL:       7 * 24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Batch: BatchConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             2,
		},
	}
}
