package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL     string `mapstructure:"BASE_URL"`
	Env         string `mapstructure:"ENV"`
	SandboxPort string `mapstructure:"SANDBOX_PORT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("BASE_URL", "http://localhost:8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("SANDBOX_PORT", "8000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("SANDBOX_PORT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable. The base URL is the one
// value every backend call shares, so it must parse and carry a scheme.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BASE_URL must be http or https, got %q", u.Scheme)
	}
	return nil
}
