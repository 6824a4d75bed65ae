// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SHOPCORE"

// Config holds everything the binary needs at startup. All values come from
// SHOPCORE_* environment variables with sensible defaults.
type Config struct {
	ServiceName        string        `mapstructure:"service_name"`
	Env                string        `mapstructure:"env"`
	ListenAddress      string        `mapstructure:"listen_address"`
	GatewaySuccessRate float64       `mapstructure:"gateway_success_rate"`
	// DatabasePath selects the sqlite store; empty keeps everything in memory.
	DatabasePath    string        `mapstructure:"database_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_name", "shopcore")
	v.SetDefault("env", "dev")
	v.SetDefault("listen_address", ":8080")
	v.SetDefault("gateway_success_rate", 0.9)
	v.SetDefault("database_path", "")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.GatewaySuccessRate < 0 || cfg.GatewaySuccessRate > 1 {
		return nil, fmt.Errorf("config: gateway success rate %v out of [0,1]", cfg.GatewaySuccessRate)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("config: shutdown timeout must be positive")
	}
	return &cfg, nil
}
