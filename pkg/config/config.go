package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Provider ProviderConfig `yaml:"provider"`
	Memory   MemoryConfig   `yaml:"memory"`
	Engine   EngineConfig   `yaml:"engine"`
}

type AppConfig struct {
	Name string `yaml:"name"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type MemoryConfig struct {
	Type string `yaml:"type"` // "buffer" or "sqlite"
	Path string `yaml:"path"`
}

type EngineConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "relay"
	}
	if c.Memory.Type == "" {
		c.Memory.Type = "buffer"
	}
	if c.Memory.Type == "sqlite" && c.Memory.Path == "" {
		c.Memory.Path = "relay.db"
	}
}
