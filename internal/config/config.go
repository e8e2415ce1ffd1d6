// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
)

// Default values applied by MergeWithDefaults when a field is unset.
const (
	DefaultOutputFile     = "matching_pdfs.txt"
	DefaultErrorLog       = "scan_errors.log"
	DefaultReportInterval = 1000
	DefaultChunkSize      = 20

	// maxWorkerCeiling caps the default worker count regardless of CPU count.
	maxWorkerCeiling = 8
)

// Config represents the scanner configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Root string `json:"root,omitempty"` // Directory to scan recursively
	Term string `json:"term,omitempty"` // Keyword to look for (case-insensitive)

	// Outputs
	OutputFile string `json:"output_file,omitempty"` // Matching paths, one per line
	ErrorLog   string `json:"error_log,omitempty"`   // Per-file failure log
	ReportFile string `json:"report_file,omitempty"` // Optional JSON run report

	// Tuning. Zero means "use the default".
	MaxWorkers     int `json:"max_workers,omitempty" validate:"gte=0,lte=256"`
	ReportInterval int `json:"report_interval,omitempty" validate:"gte=0"`
	ChunkSize      int `json:"chunk_size,omitempty" validate:"gte=0,lte=100000"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// DefaultWorkers returns the worker ceiling derived from available parallelism.
func DefaultWorkers() int {
	return min(maxWorkerCeiling, runtime.NumCPU())
}

// Defaults returns the configuration used to fill unset fields.
func Defaults() Config {
	return Config{
		OutputFile:     DefaultOutputFile,
		ErrorLog:       DefaultErrorLog,
		MaxWorkers:     DefaultWorkers(),
		ReportInterval: DefaultReportInterval,
		ChunkSize:      DefaultChunkSize,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CheckRequired after merging flags and defaults.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.OutputFile != "" && c.OutputFile == c.ErrorLog {
		return fmt.Errorf("config error: 'output_file' and 'error_log' must be different files")
	}

	return nil
}

// CheckRequired reports the first required field that is still empty.
func (c *Config) CheckRequired() error {
	if c.Root == "" {
		return fmt.Errorf("--root is required (via flag, config, or PDF_SCAN_ROOT)")
	}
	if c.Term == "" {
		return fmt.Errorf("--term is required (via flag, config, or PDF_SCAN_TERM)")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Root == "" {
		result.Root = defaults.Root
	}
	if result.Term == "" {
		result.Term = defaults.Term
	}
	if result.OutputFile == "" {
		result.OutputFile = defaults.OutputFile
	}
	if result.ErrorLog == "" {
		result.ErrorLog = defaults.ErrorLog
	}
	if result.ReportFile == "" {
		result.ReportFile = defaults.ReportFile
	}

	// Int fields: use default if zero
	if result.MaxWorkers == 0 {
		result.MaxWorkers = defaults.MaxWorkers
	}
	if result.ReportInterval == 0 {
		result.ReportInterval = defaults.ReportInterval
	}
	if result.ChunkSize == 0 {
		result.ChunkSize = defaults.ChunkSize
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
