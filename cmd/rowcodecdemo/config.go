package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// DemoConfig picks the namespace byte, wire endianness and schema version
// the demo run encodes with, loaded from a single YAML file read through
// viper and unmarshaled with mapstructure tags. Unlike the codec package
// itself (which takes only constructor parameters), this demo binary's own
// settings are ambient CLI scaffolding and may come from a file.
type DemoConfig struct {
	Namespace     byte `mapstructure:"namespace"`
	SchemaVersion int  `mapstructure:"schema_version"`
	LittleEndian  bool `mapstructure:"little_endian"`
}

func defaultDemoConfig() DemoConfig {
	return DemoConfig{Namespace: 'r', SchemaVersion: 1, LittleEndian: false}
}

// loadDemoConfig reads path as YAML into a DemoConfig. An empty path
// returns the defaults unchanged, so the demo still runs with no
// `-config` flag given.
func loadDemoConfig(path string) (DemoConfig, error) {
	cfg := defaultDemoConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return DemoConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return DemoConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
