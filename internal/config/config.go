// Package config handles CLI configuration loading and management.
package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spinelift/meshgen/pkg/mesh"
)

// Config holds all meshgen settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Batch   BatchConfig   `yaml:"batch"`
	Mesh    mesh.Params   `yaml:"mesh"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// BatchConfig holds batch execution settings. Workers of 0 means one
// worker per CPU core; an ItemTimeout of 0 disables per-item deadlines.
type BatchConfig struct {
	Workers     int      `yaml:"workers"`
	ItemTimeout Duration `yaml:"item_timeout"`
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Batch: BatchConfig{
			Workers:     0,
			ItemTimeout: 0,
		},
		Mesh: mesh.DefaultParams(),
	}
}
