package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig     `yaml:"server" json:"server"`
	Providers []ProviderConfig `yaml:"providers" json:"providers"`
}

// envConfig holds the values injected by the hosting platform.
type envConfig struct {
	Port       string `env:"PORT"`
	Platform   string `env:"K_SERVICE"`
	ConfigFile string `env:"CALLBACK_SERVER_CONFIG"`
}

func Load() (*Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	var cfg Config
	if e.ConfigFile != "" {
		f, err := os.Open(e.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file '%s': %w", e.ConfigFile, err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file '%s': %w", e.ConfigFile, err)
		}
	}

	cfg.applyEnv(&e)
	if err := cfg.ValidateAndInitialize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(e *envConfig) {
	if e.Port != "" {
		c.Server.Addr = ":" + e.Port
	}
	if e.Platform != "" {
		c.Server.Production = true
	}
}

func (c *Config) ValidateAndInitialize() error {
	// Apply defaults.
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	if c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = defaultMetricsAddr
	}
	if c.Providers == nil {
		c.Providers = DefaultProviders()
	}

	// Validate providers.
	seen := make(map[string]struct{}, len(c.Providers))
	for i := range c.Providers {
		p := &c.Providers[i]
		if p.Name == "" {
			return fmt.Errorf("providers[%d].name must be set", i)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("providers[%d].name '%s' is duplicated", i, p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Label == "" {
			p.Label = defaultLabel(p.Name)
		}
	}

	return nil
}
