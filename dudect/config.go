package dudect

import (
	"os"

	"gopkg.in/yaml.v3"
)

// defaultComputationsPerRun is M, the canonical number of back-to-back
// invocations per measurement run.
const defaultComputationsPerRun = 500

// Config holds the tunables a driver binary exposes, loadable from YAML and
// overridable by CLI flags. None of it changes the core algorithm in
// context.go; it only parameterizes how the driver is wired up.
type Config struct {
	ComputationsPerRun int    `yaml:"computations_per_run"`
	LogLevel           string `yaml:"log_level"`
	MetricsAddr        string `yaml:"metrics_addr"`
	Seed               int64  `yaml:"seed"`
}

// NewConfig returns a Config with the canonical defaults: 500 computations
// per run, info-level logging, metrics disabled, and an unseeded
// (time-based) RNG.
func NewConfig() Config {
	return Config{
		ComputationsPerRun: defaultComputationsPerRun,
		LogLevel:           "info",
		MetricsAddr:        "",
		Seed:               0,
	}
}

// LoadConfig reads a YAML file into a Config seeded with NewConfig's
// defaults, so a partial file only overrides the fields it sets.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
