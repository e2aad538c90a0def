// Package config holds the generator's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Generator holds all configuration for the metadata generator: where the
// inputs live and where the generated bindings file goes.
type Generator struct {
	// Inputs
	BurgerPath   string `yaml:"burger_path"`
	MappingsPath string `yaml:"mappings_path"`

	// Output
	OutputPath    string `yaml:"output_path"`
	OutputPackage string `yaml:"output_package"`
}

// DefaultGenerator returns Generator config with the conventional paths:
// extracted data next to the repo, bindings written into the client's
// entity package.
func DefaultGenerator() Generator {
	return Generator{
		BurgerPath:    "data/burger_entities.json",
		MappingsPath:  "data/mappings.txt",
		OutputPath:    "../emerald/entity/metadata_generated.go",
		OutputPackage: "entity",
	}
}

// LoadGenerator loads generator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGenerator(path string) (Generator, error) {
	cfg := DefaultGenerator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
