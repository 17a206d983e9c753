package ops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mdcleaner/internal/pipeline"
)

// FileConfig mirrors the YAML config layout.
type FileConfig struct {
	Input     InputConfig     `yaml:"input"`
	Cleaning  CleaningConfig  `yaml:"cleaning"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

// InputConfig names the two source tables.
type InputConfig struct {
	QuoteCSV     string `yaml:"quote_csv"`
	ReferenceCSV string `yaml:"reference_csv"`
}

// CleaningConfig carries the pipeline options.
type CleaningConfig struct {
	FixDotInSymbol      bool     `yaml:"fix_dot_in_symbol"`
	TrackDroppedRows    bool     `yaml:"track_dropped_rows"`
	ValidateActiveOnly  *bool    `yaml:"validate_active_only"`
	RequiredPriceFields []string `yaml:"required_price_fields"`
	DateFormat          string   `yaml:"date_format"`
}

// OutputConfig names the optional CSV export target.
type OutputConfig struct {
	CleanCSV string `yaml:"clean_csv"`
}

// DatabaseConfig describes the optional postgres sink.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// MetricsConfig enables the prometheus endpoint.
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// ProfilingConfig enables the pyroscope profiler.
type ProfilingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ServerAddress string `yaml:"server_address"`
}

// Load reads a YAML config file and expands ${VAR} environment
// variables before parsing.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg FileConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate loads config and validates it.
func LoadAndValidate(path string) (*FileConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required fields are set and values are valid.
func (c *FileConfig) Validate() error {
	if c.Input.QuoteCSV == "" {
		return fmt.Errorf("input.quote_csv is required")
	}
	if c.Input.ReferenceCSV == "" {
		return fmt.Errorf("input.reference_csv is required")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required when database.enabled")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required when database.enabled")
		}
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	if c.Profiling.Enabled && c.Profiling.ServerAddress == "" {
		return fmt.Errorf("profiling.server_address is required when profiling.enabled")
	}
	return nil
}

// PipelineOptions resolves the cleaning section into pipeline options.
// validate_active_only defaults to true when unset.
func (c *FileConfig) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.FixDotInSymbol = c.Cleaning.FixDotInSymbol
	opts.TrackDroppedRows = c.Cleaning.TrackDroppedRows
	if c.Cleaning.ValidateActiveOnly != nil {
		opts.ValidateActiveOnly = *c.Cleaning.ValidateActiveOnly
	}
	opts.RequiredPriceFields = c.Cleaning.RequiredPriceFields
	opts.DateFormat = c.Cleaning.DateFormat
	return opts
}
