package app

import "errors"

// Config holds everything an App instance needs to run one graph.
type Config struct {
	GraphPath string // a single .hcl file describing nodes and edges

	LogFormat       string // "text" or "json"
	LogLevel        string // "debug", "info", "warn", "error"
	HealthcheckPort int    // 0 disables the health check server
	WorkerCount     int    // 0 selects graph.DefaultWorkers
}

// NewConfig validates cfg and returns it, matching the teacher's
// "construct once, validate once" config shape.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
