// Package config loads contribplot settings from YAML, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
)

// Sentinel validation errors.
var (
	ErrNoWindows         = errors.New("at least one window is required")
	ErrInvalidWindowDays = errors.New("window days must not be negative")
	ErrInvalidWindowName = errors.New("window name must not be empty")
	ErrDuplicateWindow   = errors.New("duplicate window name")
	ErrInvalidChartSize  = errors.New("chart size must be positive")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrNoOutputDir       = errors.New("output directory is required")
)

// Config holds all configuration for a contribplot run.
type Config struct {
	Repository    string              `mapstructure:"repository"`
	Output        OutputConfig        `mapstructure:"output"`
	Templates     TemplatesConfig     `mapstructure:"templates"`
	Windows       []contrib.Window    `mapstructure:"windows"`
	Chart         ChartConfig         `mapstructure:"chart"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// OutputConfig controls where and what is written.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Overview bool   `mapstructure:"overview"`
	Summary  bool   `mapstructure:"summary"`
}

// TemplatesConfig locates the two report templates.
type TemplatesConfig struct {
	Index string `mapstructure:"index"`
	Tab   string `mapstructure:"tab"`
}

// ChartConfig sets the chart image size.
type ChartConfig struct {
	WidthInches  float64 `mapstructure:"width_inches"`
	HeightInches float64 `mapstructure:"height_inches"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ObservabilityConfig holds telemetry export settings.
type ObservabilityConfig struct {
	OTLPEndpoint    string `mapstructure:"otlp_endpoint"`
	OTLPInsecure    bool   `mapstructure:"otlp_insecure"`
	OTLPHeaders     string `mapstructure:"otlp_headers"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
}

// SlogLevel parses Logging.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(c.Logging.Level)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return level, nil
}

// Validate checks the configuration for values no run can succeed with.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return ErrNoOutputDir
	}

	if len(c.Windows) == 0 {
		return ErrNoWindows
	}

	seen := make(map[string]bool, len(c.Windows))

	for _, w := range c.Windows {
		if w.Name == "" {
			return ErrInvalidWindowName
		}

		if w.Days < 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidWindowDays, w.Name, w.Days)
		}

		if seen[w.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateWindow, w.Name)
		}

		seen[w.Name] = true
	}

	if c.Chart.WidthInches <= 0 || c.Chart.HeightInches <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidChartSize, c.Chart.WidthInches, c.Chart.HeightInches)
	}

	_, levelErr := c.SlogLevel()

	return levelErr
}
