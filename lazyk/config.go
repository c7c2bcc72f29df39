package lazyk

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config holds the ambient, non-functional knobs a deployment of this
// interpreter wants to tune without touching code: where the GC kicks
// in, and what output-byte limit new programs start with. It is the
// YAML-file counterpart to the CLI's -limit flag, loaded via
// sigs.k8s.io/yaml so ordinary JSON struct tags double as YAML tags.
type Config struct {
	GCHighWatermark    int  `json:"gcHighWatermark,omitempty"`
	DefaultOutputLimit *int `json:"defaultOutputLimit,omitempty"`
	Verbosity          int  `json:"verbosity,omitempty"`
}

// DefaultConfig returns the compiled-in defaults: the standard GC
// watermark and no output limit.
func DefaultConfig() *Config {
	return &Config{GCHighWatermark: defaultHighWatermark}
}

// LoadConfig reads a YAML config file, filling in DefaultConfig's
// values for anything the file leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.GCHighWatermark <= 0 {
		cfg.GCHighWatermark = defaultHighWatermark
	}
	return cfg, nil
}
