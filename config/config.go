package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultProvider = "openai"
	defaultModel    = "gpt-3.5-turbo"
	defaultTimeout  = 180
)

// Config holds credentials and runtime settings.
type Config struct {
	LLM                   LLMConfig      `json:"llm"`
	Unsplash              UnsplashConfig `json:"unsplash"`
	ServerAddr            string         `json:"server_addr,omitempty"`
	OutputDir             string         `json:"output_dir,omitempty"`
	RequestTimeoutSeconds int            `json:"request_timeout_seconds,omitempty"`
}

// LLMConfig 生成模块的模型配置。
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// UnsplashConfig configures the image search client.
type UnsplashConfig struct {
	AccessKey string `json:"access_key,omitempty"`
	AppName   string `json:"app_name,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

// RequestTimeout is the budget for one article, generation and images.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load reads JSON config from disk, then fills empty API keys from the
// environment (a .env file in the working directory is loaded first).
// A missing file at path is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Unsplash.AccessKey == "" {
		c.Unsplash.AccessKey = os.Getenv("UNSPLASH_ACCESS_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = defaultTimeout
	}
}

// Validate checks the settings that do not depend on which clients are used.
// API keys are checked by the client constructors.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "openai":
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if c.LLM.BaseURL == "" {
			return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm model is required")
	}
	return nil
}
