package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is impalac.yaml's shape: compiler flags a project wants to
// apply to every invocation without repeating them on every command
// line. Command-line flags always win over whatever a config file
// sets (see main.go's flag.Parse ordering).
type Config struct {
	Target   string `yaml:"target"`   // target triple for the Thorin emitter
	Optimize bool   `yaml:"optimize"` // enable Thorin-side optimization passes
}

// loadConfig reads path if it exists, returning a zero Config (not an
// error) when it doesn't — an impalac.yaml is always optional.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
