package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-lens/internal/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Logging logger.Config
	GitHub  GitHubConfig
	// ServerURL is the review backend used by the terminal UI and lens-cli.
	ServerURL string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxCodeBytes   int64
	RateLimitRPS   float64
	RateLimitBurst int
}

type AIConfig struct {
	LLMProvider     string
	GeminiAPIKey    string
	GeneratorModel  string
	OllamaHost      string
	Temperature     float32
	MaxOutputTokens int32
	Profile         string
	ProfilesDir     string
	LineNumbers     bool
}

type GitHubConfig struct {
	Token string
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets defaults, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "90s")
	v.SetDefault("MAX_CODE_BYTES", 256*1024)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 3)
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("TEMPERATURE", 0.0)
	v.SetDefault("MAX_OUTPUT_TOKENS", 4096)
	v.SetDefault("REVIEW_PROFILE", "senior_reviewer")
	v.SetDefault("LINE_NUMBERS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LENS_SERVER_URL", "http://localhost:3000")
}

func fromViper(v *viper.Viper) *Config {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER")))

	// GOOGLE_GEMINI_KEY is the name older deployments use.
	apiKey := v.GetString("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("GOOGLE_GEMINI_KEY")
	}

	model := v.GetString("GENERATOR_MODEL_NAME")
	if model == "" {
		switch provider {
		case ProviderOllama:
			model = "gemma3:latest"
		default:
			model = "gemini-2.0-flash"
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
			MaxCodeBytes:   v.GetInt64("MAX_CODE_BYTES"),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		},
		AI: AIConfig{
			LLMProvider:     provider,
			GeminiAPIKey:    apiKey,
			GeneratorModel:  model,
			OllamaHost:      v.GetString("OLLAMA_HOST"),
			Temperature:     float32(v.GetFloat64("TEMPERATURE")),
			MaxOutputTokens: v.GetInt32("MAX_OUTPUT_TOKENS"),
			Profile:         v.GetString("REVIEW_PROFILE"),
			ProfilesDir:     v.GetString("PROFILES_DIR"),
			LineNumbers:     v.GetBool("LINE_NUMBERS"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
		GitHub: GitHubConfig{
			Token: v.GetString("GITHUB_TOKEN"),
		},
		ServerURL: strings.TrimRight(v.GetString("LENS_SERVER_URL"), "/"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	if err := c.AI.Validate(); err != nil {
		return fmt.Errorf("invalid AI config: %w", err)
	}
	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("SERVER_PORT must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxCodeBytes <= 0 {
		return fmt.Errorf("MAX_CODE_BYTES must be positive, got %d", c.MaxCodeBytes)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// Validate checks the provider settings. The Gemini key is checked when the
// generator is built so that the CLI can run render-only commands without it.
func (c *AIConfig) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 2, got %v", c.Temperature)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxOutputTokens)
	}
	if c.Profile == "" {
		return fmt.Errorf("REVIEW_PROFILE must be set")
	}
	return nil
}
