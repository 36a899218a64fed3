package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qnetsim/qnetsim/sim"
)

// loadConfig reads a YAML file at path into a sim.Config and validates
// it before returning. The YAML shape mirrors sim.Config's field tags
// exactly (spec.md §6).
func loadConfig(path string) (sim.Config, error) {
	var cfg sim.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
