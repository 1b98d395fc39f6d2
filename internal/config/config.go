// internal/config/config.go
package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Config struct {
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float32 `yaml:"temperature"`
	Quiz        struct {
		MinQuestions int `yaml:"min_questions"`
		MaxQuestions int `yaml:"max_questions"`
	} `yaml:"quiz"`
	SubjectiveCount int `yaml:"subjective_count"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.4
	}
	if cfg.Quiz.MinQuestions == 0 {
		cfg.Quiz.MinQuestions = 8
	}
	if cfg.Quiz.MaxQuestions == 0 {
		cfg.Quiz.MaxQuestions = 10
	}
	if cfg.SubjectiveCount == 0 {
		cfg.SubjectiveCount = 5
	}
}
