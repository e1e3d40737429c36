package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Extract  ExtractConfig  `yaml:"extract"`
	Reasoner ReasonerConfig `yaml:"reasoner"`
	Limits   LimitsConfig   `yaml:"limits"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type PipelineConfig struct {
	Workers       int `yaml:"workers"`
	QueueSize     int `yaml:"queue_size"`
	LLMBudgetSecs int `yaml:"llm_budget_secs"`
	StepPaceMs    int `yaml:"step_pace_ms"`
}

type ExtractConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	MaxRetries  int     `yaml:"max_retries"`
}

type ReasonerConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type LimitsConfig struct {
	MinTextLen int `yaml:"min_text_len"`
	MaxTextLen int `yaml:"max_text_len"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a yaml file, for tests and for
// running the binary with no configs/ directory mounted.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Env == "" {
		c.Server.Env = "dev"
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = 4
	}
	if c.Pipeline.QueueSize == 0 {
		c.Pipeline.QueueSize = 64
	}
	if c.Pipeline.LLMBudgetSecs == 0 {
		c.Pipeline.LLMBudgetSecs = 60
	}
	if c.Pipeline.StepPaceMs == 0 {
		c.Pipeline.StepPaceMs = 500
	}
	if c.Extract.Model == "" {
		c.Extract.Model = "claude-sonnet-4-20250514"
	}
	if c.Extract.MaxTokens == 0 {
		c.Extract.MaxTokens = 4096
	}
	if c.Extract.Temperature == 0 {
		c.Extract.Temperature = 0.2
	}
	if c.Extract.MaxRetries == 0 {
		c.Extract.MaxRetries = 2
	}
	if c.Reasoner.Model == "" {
		c.Reasoner.Model = "claude-sonnet-4-20250514"
	}
	if c.Reasoner.MaxTokens == 0 {
		c.Reasoner.MaxTokens = 2048
	}
	if c.Limits.MinTextLen == 0 {
		c.Limits.MinTextLen = 20
	}
	if c.Limits.MaxTextLen == 0 {
		c.Limits.MaxTextLen = 10000
	}
}
