package config

import "log/slog"

// Default values.
const (
	DefaultFormat        = "text"
	DefaultLogLevel      = "info"
	DefaultFixtureFormat = "auto"
	DefaultDB            = "opflow.db"
	DefaultGoldenDir     = "testdata/golden"
)

// Config holds all CLI configuration options.
type Config struct {
	// Format is the output format: text or json.
	Format   string `koanf:"format"`
	LogLevel string `koanf:"log_level"`

	// FixtureFormat forces a fixture decoder (cue, yaml) instead of picking
	// one from the file extension (auto).
	FixtureFormat string `koanf:"fixture_format"`

	// DB is the snapshot database path.
	DB        string `koanf:"db"`
	GoldenDir string `koanf:"golden_dir"`

	// Workers bounds concurrent translations. Zero means one per CPU.
	Workers int `koanf:"workers"`

	// Pack runs the pack pass on built graphs.
	Pack bool `koanf:"pack"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Level maps LogLevel to a slog level. Unknown names map to Info;
// Validate rejects them first.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
