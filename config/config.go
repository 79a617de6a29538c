package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Optimizer OptimizerConfig `yaml:"optimizer"`
}

type OptimizerConfig struct {
	// MaxIterations bounds the driver's fixpoint loop; zero means the
	// default.
	MaxIterations      int      `yaml:"maxIterations"`
	DisabledTransforms []string `yaml:"disabledTransforms"`
}

// DefaultPath is the config location used when none is given explicitly.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "couldn't get user home directory")
	}
	return filepath.Join(home, ".freshet", "config.yml"), nil
}

// ReadConfig reads the configuration at path. A missing file yields the
// zero configuration.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "couldn't open config file")
	}
	defer f.Close()

	var config Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	return &config, nil
}
