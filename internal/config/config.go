// Package config defines process configuration and its loading hooks.
//
// Conventions:
//   - New() returns a Config holding the defaults.
//   - Load layers defaults, an optional YAML file and APPLICANTS_* env vars.
//   - External errors are wrapped with this package's sentinels.
package config

// Default values.
const (
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultOutputPath = "output.json"
)

// Config contains process configuration. The ranking rules are fixed and
// deliberately absent here.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// OutputPath is where the JSON report is written.
	OutputPath string `koanf:"output_path" validate:"required"`

	// MetricsFile, when set, receives a Prometheus textfile dump after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		OutputPath: DefaultOutputPath,
	}
}
