package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Server struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"`
}

type Data struct {
	// Dir is the directory holding the five CSV sources under their
	// conventional names. Empty means no local dataset; the API then
	// waits for an upload.
	Dir string `mapstructure:"dir"`
}

type Metrics struct {
	TopCategories int `mapstructure:"top_categories"`
}

type Config struct {
	Server  Server  `mapstructure:"server"`
	Data    Data    `mapstructure:"data"`
	Metrics Metrics `mapstructure:"metrics"`
}

// Load reads the dashboard configuration file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_seconds", 10)
	v.SetDefault("data.dir", "")
	v.SetDefault("metrics.top_categories", 10)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard config: %w", err)
	}
	return &cfg, nil
}
