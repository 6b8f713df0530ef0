package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type LLMConfig struct {
	Provider    string        `yaml:"provider"` // together | gemini
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	TopP        float64       `yaml:"top_p"`
	TopK        int           `yaml:"top_k"`
	Timeout     time.Duration `yaml:"timeout"`
	FeedbackTTL time.Duration `yaml:"feedback_ttl"`
}

type ChatConfig struct {
	HistoryLimit  int           `yaml:"history_limit"`
	MaxToolRounds int           `yaml:"max_tool_rounds"`
	DrainMode     string        `yaml:"drain_mode"` // sync | background
	DrainTimeout  time.Duration `yaml:"drain_timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type FilesConfig struct {
	FontPath string `yaml:"font_path"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		// empty DSN runs on the in-memory store
		DSN string `yaml:"url"`
	} `yaml:"database"`
	LLM   LLMConfig   `yaml:"llm"`
	Chat  ChatConfig  `yaml:"chat"`
	Log   LogConfig   `yaml:"log"`
	Auth  AuthConfig  `yaml:"auth"`
	Files FilesConfig `yaml:"files"`
}

// LoadConfig reads the YAML file at path. A missing file is not an error:
// defaults and environment variables are enough to run locally.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		c.Database.DSN = v
	}
	if v, ok := os.LookupEnv("LLM_PROVIDER"); ok {
		c.LLM.Provider = v
	}
	c.LLM.APIKey = usableKey(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "gemini":
			c.LLM.APIKey = usableKey(os.Getenv("GEMINI_API_KEY"))
		default:
			c.LLM.APIKey = usableKey(os.Getenv("TOGETHER_API_KEY"))
		}
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
}

// placeholderAPIKey is the value shipped in the key file template.
const placeholderAPIKey = "your_together_api_key_here"

// usableKey maps the template placeholder to "not configured".
func usableKey(key string) string {
	key = strings.TrimSpace(key)
	if key == placeholderAPIKey {
		return ""
	}
	return key
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8001
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "together"
	}
	if c.LLM.Model == "" && c.LLM.Provider == "together" {
		c.LLM.Model = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = 0.9
	}
	if c.LLM.TopK == 0 {
		c.LLM.TopK = 40
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.FeedbackTTL == 0 {
		c.LLM.FeedbackTTL = time.Hour
	}
	if c.Chat.HistoryLimit == 0 {
		c.Chat.HistoryLimit = 10
	}
	if c.Chat.MaxToolRounds == 0 {
		c.Chat.MaxToolRounds = 3
	}
	if c.Chat.DrainMode == "" {
		c.Chat.DrainMode = "sync"
	}
	if c.Chat.DrainTimeout == 0 {
		c.Chat.DrainTimeout = 2 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Files.FontPath == "" {
		c.Files.FontPath = "assets/fonts/DejaVuSans.ttf"
	}
}

func (c *Config) validate() error {
	switch c.Chat.DrainMode {
	case "sync", "background":
	default:
		return fmt.Errorf("chat.drain_mode must be sync or background, got %q", c.Chat.DrainMode)
	}
	switch c.LLM.Provider {
	case "together", "gemini":
	default:
		return fmt.Errorf("llm.provider must be together or gemini, got %q", c.LLM.Provider)
	}
	return nil
}
