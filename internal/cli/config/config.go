// Package config loads the benchtop CLI configuration from benchtop.yml
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the benchtop configuration
type Config struct {
	// Catalog is the path to the model catalog file
	Catalog string       `mapstructure:"catalog"`
	Server  ServerConfig `mapstructure:"server"`
}

// ServerConfig represents admin API server configuration
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Load loads the configuration from benchtop.yml or benchtop.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog", "catalog.yaml")
	v.SetDefault("server.address", ":8080")

	v.SetConfigName("benchtop")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
