package config

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ModelConfig describes one external model endpoint. Provider selects the
// client implementation: "openai" for any OpenAI-compatible chat API,
// "gemini" for the Google Gemini API.
type ModelConfig struct {
	ID       string            `toml:"id"`
	Provider string            `toml:"provider"`
	Enabled  bool              `toml:"enabled"`
	APIURL   string            `toml:"api_url"`
	APIKey   string            `toml:"api_key"`
	Model    string            `toml:"model"`
	Headers  map[string]string `toml:"headers"`
}

type Config struct {
	App struct {
		Env      string `toml:"env"`
		LogLevel string `toml:"log_level"`
	} `toml:"app"`

	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`

	Classify struct {
		TimeoutSeconds    int `toml:"timeout_seconds"`
		MaxRetries        int `toml:"max_retries"`
		BatchParallelism  int `toml:"batch_parallelism"`
		TechnicalAgeHours int `toml:"technical_age_hours"`
	} `toml:"classify"`

	Rules struct {
		// TargetOrder resolves the escalation target when several triggers
		// fire at once. Entries are trigger names; first match wins.
		TargetOrder      []string `toml:"target_order"`
		SecurityKeywords []string `toml:"security_keywords"`
		LegalKeywords    []string `toml:"legal_keywords"`
		ChurnKeywords    []string `toml:"churn_keywords"`
	} `toml:"rules"`

	AI struct {
		Models []ModelConfig `toml:"models"`
	} `toml:"ai"`
}

// Load reads and parses the TOML config file, applying defaults and basic validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(c *Config) {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Classify.TimeoutSeconds <= 0 {
		c.Classify.TimeoutSeconds = 30
	}
	if c.Classify.MaxRetries < 0 {
		c.Classify.MaxRetries = 0
	}
	if c.Classify.MaxRetries == 0 {
		c.Classify.MaxRetries = 1
	}
	if c.Classify.BatchParallelism <= 0 {
		c.Classify.BatchParallelism = 4
	}
	if c.Classify.TechnicalAgeHours <= 0 {
		c.Classify.TechnicalAgeHours = 24
	}
	if len(c.Rules.TargetOrder) == 0 {
		c.Rules.TargetOrder = []string{"security", "legal", "churn", "enterprise", "duration"}
	}
}

func validate(c *Config) error {
	known := map[string]bool{"security": true, "legal": true, "churn": true, "enterprise": true, "duration": true}
	seen := map[string]bool{}
	for _, name := range c.Rules.TargetOrder {
		name = strings.ToLower(strings.TrimSpace(name))
		if !known[name] {
			return fmt.Errorf("rules.target_order: unknown trigger %q", name)
		}
		if seen[name] {
			return fmt.Errorf("rules.target_order: duplicate trigger %q", name)
		}
		seen[name] = true
	}
	for i, m := range c.AI.Models {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("ai.models[%d]: id is required", i)
		}
		switch strings.ToLower(strings.TrimSpace(m.Provider)) {
		case "openai", "gemini":
		default:
			return fmt.Errorf("ai.models[%d]: unsupported provider %q", i, m.Provider)
		}
		if m.Enabled && strings.TrimSpace(m.Model) == "" {
			return fmt.Errorf("ai.models[%d]: model is required when enabled", i)
		}
	}
	return nil
}
