package engine

import "log/slog"

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	DefaultMeasure string // measure key used when Query.Measure is empty
	Logger         *slog.Logger
}

// WithDefaultMeasure sets the measure to aggregate when Query.Measure is empty.
func WithDefaultMeasure(measure string) Option {
	return func(c *config) {
		c.DefaultMeasure = measure
	}
}

// WithLogger routes engine diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
