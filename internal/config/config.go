package config

import (
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultMaxRules    = 12
	DefaultMaxDistance = 200.0
	DefaultStoragePath = "~/.local/share/prip/prip.db"
	DefaultRulesFile   = "saved_rules.json"
)

// Config holds the values the application consumes, resolved from viper.
type Config struct {
	StoragePath string
	RulesFile   string
	MaxDistance float64
	MaxRules    int
}

// SetDefaults registers the default configuration values with viper.
func SetDefaults() {
	viper.SetDefault("storage.path", DefaultStoragePath)
	viper.SetDefault("rules.file", DefaultRulesFile)
	viper.SetDefault("rules.max", DefaultMaxRules)
	viper.SetDefault("rules.max_distance", DefaultMaxDistance)
}

// FromViper resolves the configuration, expanding file paths.
func FromViper() Config {
	return Config{
		StoragePath: ExpandPath(viper.GetString("storage.path")),
		RulesFile:   ExpandPath(viper.GetString("rules.file")),
		MaxRules:    viper.GetInt("rules.max"),
		MaxDistance: viper.GetFloat64("rules.max_distance"),
	}
}
