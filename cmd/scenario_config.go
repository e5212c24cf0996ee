package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named epidemic parameter preset. Rho is optional: an
// omitted key leaves the initial-condition default (one random node) alone.
type Scenario struct {
	Model string   `yaml:"model"`
	Tau   float64  `yaml:"tau"`
	Gamma float64  `yaml:"gamma"`
	Rho   *float64 `yaml:"rho"`
	TMax  float64  `yaml:"tmax"`
}

// scenarioFileConfig is the top-level structure of a scenario YAML file.
type scenarioFileConfig struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// GetScenario loads the named scenario preset from a YAML file.
func GetScenario(path, name string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var cfg scenarioFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	sc, ok := cfg.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	return &sc, nil
}
