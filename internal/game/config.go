package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds game tuning options, loadable from a YAML file.
type Config struct {
	// Seed for random number generation. A seed of 0 means a
	// non-deterministic seed is used.
	Seed int64 `yaml:"seed"`

	// EncounterChance is the probability of a random encounter when
	// exploring deeper, in [0, 1].
	EncounterChance float64 `yaml:"encounter_chance"`

	// SearchChance is the probability of finding gold when searching.
	SearchChance float64 `yaml:"search_chance"`

	// SearchGoldMin and SearchGoldMax bound the gold found.
	SearchGoldMin int `yaml:"search_gold_min"`
	SearchGoldMax int `yaml:"search_gold_max"`
}

// DefaultConfig returns the standard tuning values.
func DefaultConfig() Config {
	return Config{
		EncounterChance: 0.7,
		SearchChance:    0.4,
		SearchGoldMin:   10,
		SearchGoldMax:   30,
	}
}

// LoadConfig reads a YAML config file, falling back to defaults when the
// file does not exist. Unknown values keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
