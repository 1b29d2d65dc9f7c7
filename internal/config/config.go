// Package config loads the nqtlfill YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/nqtlfill-go/internal/logging"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/extractor"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/injector"
)

// Accepted ranges for the scan parameters.
const (
	MinWindow     = 10
	MaxWindow     = 15
	MinValueWidth = 3
	MaxValueWidth = 4
)

// Environment variables that override file settings.
const (
	EnvLogLevel    = "NQTLFILL_LOG_LEVEL"
	EnvWindow      = "NQTLFILL_WINDOW"
	EnvValueWidth  = "NQTLFILL_VALUE_WIDTH"
	EnvResetPolicy = "NQTLFILL_RESET_POLICY"
)

// Config holds all nqtlfill configuration.
type Config struct {
	Logging    logging.Config   `yaml:"logging"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Injection  InjectionConfig  `yaml:"injection"`
	// Metrics are appended to the built-in catalog.
	Metrics []MetricConfig `yaml:"metrics,omitempty"`
}

// ExtractionConfig configures the workbook scan.
type ExtractionConfig struct {
	Scope            string `yaml:"scope"`
	AnchorColumns    int    `yaml:"anchor_columns"`
	Window           int    `yaml:"window"`
	ValueWidth       int    `yaml:"value_width"`
	StopAtNextAnchor *bool  `yaml:"stop_at_next_anchor,omitempty"`
	MergeAware       *bool  `yaml:"merge_aware,omitempty"`
}

// InjectionConfig configures the document walk.
type InjectionConfig struct {
	HeaderColumn   int    `yaml:"header_column"`
	LabelPlacement string `yaml:"label_placement"`
	LabelColumn    int    `yaml:"label_column,omitempty"`
	// ResetPolicy is blank-header, blank-row or never; empty picks the
	// placement's default.
	ResetPolicy string `yaml:"reset_policy,omitempty"`
}

// MetricConfig declares an additional metric.
type MetricConfig struct {
	Name      string   `yaml:"name"`
	Group     string   `yaml:"group,omitempty"`
	Fragments []string `yaml:"fragments"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: logging.DefaultConfig(),
		Extraction: ExtractionConfig{
			Scope:         string(extractor.ScopeColumns),
			AnchorColumns: extractor.DefaultAnchorColumns,
			Window:        extractor.DefaultWindow,
			ValueWidth:    extractor.DefaultValueWidth,
		},
		Injection: InjectionConfig{
			LabelPlacement: string(injector.PlacementHeader),
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// Use defaults if config file doesn't exist
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv(EnvWindow); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWindow, err)
		}
		c.Extraction.Window = n
	}
	if v := os.Getenv(EnvValueWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvValueWidth, err)
		}
		c.Extraction.ValueWidth = n
	}
	if policy := os.Getenv(EnvResetPolicy); policy != "" {
		c.Injection.ResetPolicy = policy
	}
	return nil
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch extractor.AnchorScope(c.Extraction.Scope) {
	case extractor.ScopeColumns, extractor.ScopeRow:
	default:
		errs = append(errs, fmt.Errorf("invalid anchor scope: %s (must be columns or row)", c.Extraction.Scope))
	}
	if c.Extraction.AnchorColumns < 1 {
		errs = append(errs, fmt.Errorf("anchor_columns must be at least 1, got %d", c.Extraction.AnchorColumns))
	}
	if c.Extraction.Window < MinWindow || c.Extraction.Window > MaxWindow {
		errs = append(errs, fmt.Errorf("window must be between %d and %d, got %d", MinWindow, MaxWindow, c.Extraction.Window))
	}
	if c.Extraction.ValueWidth < MinValueWidth || c.Extraction.ValueWidth > MaxValueWidth {
		errs = append(errs, fmt.Errorf("value_width must be between %d and %d, got %d", MinValueWidth, MaxValueWidth, c.Extraction.ValueWidth))
	}

	switch injector.LabelPlacement(c.Injection.LabelPlacement) {
	case injector.PlacementHeader, injector.PlacementAdjacent, injector.PlacementFixed:
	default:
		errs = append(errs, fmt.Errorf("invalid label placement: %s (must be header, adjacent or fixed)", c.Injection.LabelPlacement))
	}
	switch injector.ResetPolicy(c.Injection.ResetPolicy) {
	case "", injector.ResetBlankHeader, injector.ResetBlankRow, injector.ResetNever:
	default:
		errs = append(errs, fmt.Errorf("invalid reset policy: %s (must be blank-header, blank-row or never)", c.Injection.ResetPolicy))
	}
	if c.Injection.HeaderColumn < 0 || c.Injection.LabelColumn < 0 {
		errs = append(errs, errors.New("column indexes must not be negative"))
	}

	for i, m := range c.Metrics {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("metrics[%d]: name is required", i))
		}
	}
	if len(c.Metrics) > 0 {
		if err := c.Options().Metrics().Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// MetricEntries converts the configured metrics to catalog entries.
func (c *Config) MetricEntries() []catalog.Entry[string] {
	entries := make([]catalog.Entry[string], 0, len(c.Metrics))
	for _, m := range c.Metrics {
		entries = append(entries, catalog.Entry[string]{
			ID:        m.Name,
			Group:     m.Group,
			Names:     []string{m.Name},
			Fragments: m.Fragments,
		})
	}
	return entries
}

// Options converts the configuration to pipeline options. The logger is
// left unset.
func (c *Config) Options() nqtlfill.Options {
	return nqtlfill.Options{
		Scope:            extractor.AnchorScope(c.Extraction.Scope),
		AnchorColumns:    c.Extraction.AnchorColumns,
		Window:           c.Extraction.Window,
		ValueWidth:       c.Extraction.ValueWidth,
		StopAtNextAnchor: c.Extraction.StopAtNextAnchor,
		MergeAware:       c.Extraction.MergeAware,
		HeaderColumn:     c.Injection.HeaderColumn,
		Placement:        injector.LabelPlacement(c.Injection.LabelPlacement),
		LabelColumn:      c.Injection.LabelColumn,
		Reset:            injector.ResetPolicy(c.Injection.ResetPolicy),
		ExtraMetrics:     c.MetricEntries(),
	}
}
