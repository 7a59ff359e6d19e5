// Package config wires the program's knobs through viper: defaults here,
// overridable by RUMMAGE_* environment variables or an optional config
// file in the working directory.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

func defaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("solver-strategy", "incremental")
	v.SetDefault("solver-scorer", "tilecount")
	v.SetDefault("exhaustive-budget", 3*time.Second)
	v.SetDefault("hand-size", 14)
	v.SetDefault("ws-address", ":8087")
	v.SetDefault("selfplay-games", 10)
	v.SetDefault("selfplay-workers", 4)
}

// New creates a config with defaults and environment binding applied. A
// rummage.yaml in the working directory is read if present; a missing file
// is not an error.
func New() *Config {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("rummage")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName("rummage")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// the config file is optional
	_ = v.ReadInConfig()
	return &Config{v: v}
}

func (c *Config) GetString(key string) string          { return c.v.GetString(key) }
func (c *Config) GetBool(key string) bool              { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int                { return c.v.GetInt(key) }
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// Set overrides a value at runtime (the shell's `set` command).
func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// AllSettings dumps the effective settings for display.
func (c *Config) AllSettings() map[string]any { return c.v.AllSettings() }
