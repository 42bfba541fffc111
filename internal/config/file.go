package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// applyFile overlays values from a YAML config file. A missing or
// unreadable file is ignored silently: config loading happens before the
// logger exists, and env/defaults keep the service runnable.
func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = yaml.Unmarshal(data, cfg)
}
