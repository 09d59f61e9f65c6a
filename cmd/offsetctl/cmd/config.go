package cmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kafkaclient/gokafka/offsetmanager"
)

// loadConfig returns offsetmanager.DefaultConfig, overridden by path if
// path is non-empty.
func loadConfig(path string) (offsetmanager.Config, error) {
	cfg := offsetmanager.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "error reading config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "error parsing config %s", path)
	}
	return cfg, nil
}
