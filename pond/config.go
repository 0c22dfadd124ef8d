package pond

import "log/slog"

// Config holds configuration for a Pond.
type Config struct {
	// FieldPrefix is prepended to a relation kind to name the field a join is
	// attached under.
	// Default: "_" (relation "bar" is attached as "_bar")
	FieldPrefix string

	// Logger receives debug events for every mutation.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FieldPrefix: "_",
		Logger:      slog.Default(),
	}
}

// validate fills zero values with defaults.
func (c *Config) validate() {
	if c.FieldPrefix == "" {
		c.FieldPrefix = "_"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
