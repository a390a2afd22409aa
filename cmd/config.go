package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "cgt.yaml"

// Config holds the defaults of the command line flags.
//
//	input: Transactions.csv
//	carry_years: 5
//	currency: EUR
type Config struct {
	Input      string `yaml:"input"`       // transactions file
	CarryYears *int   `yaml:"carry_years"` // number of years losses are carried over
	Currency   string `yaml:"currency"`    // currency of amounts without one
}

// LoadConfig reads the configuration file named by the -config flag. Without
// the flag, the default file is read if it exists.
func LoadConfig() (*Config, error) {
	if *configFile != "" {
		return loadConfig(*configFile, true)
	}
	return loadConfig(defaultConfigFile, false)
}

// loadConfig reads the YAML configuration in name. A missing file is an empty
// configuration unless it is required.
func loadConfig(name string, required bool) (*Config, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", name, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config %q: %w", name, err)
	}
	if cfg.CarryYears != nil && *cfg.CarryYears < 0 {
		return nil, fmt.Errorf("invalid config %q: carry_years must not be negative, got %d", name, *cfg.CarryYears)
	}
	return &cfg, nil
}
