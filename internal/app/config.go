package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CompositionPath string // composition hcl file
	ModulesPath     string // effect manifest hcl files

	Frames       int
	FPS          float64
	Seek         string
	TelemetryURL string
	Watch        bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CompositionPath == "" {
		return nil, errors.New("CompositionPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
