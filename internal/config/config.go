package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/batchkit/internal/executor"
	"github.com/harrison/batchkit/internal/logger"
	"github.com/harrison/batchkit/internal/plan"
	"github.com/harrison/batchkit/internal/report"
	"github.com/harrison/batchkit/internal/sequence"
)

// APIConfig configures the document API client.
type APIConfig struct {
	// BaseURL is the root URL of the document API
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every HTTP request
	Timeout time.Duration `yaml:"timeout"`

	// Retries is the number of extra attempts for temporary failures
	Retries int `yaml:"retries"`
}

// RenameConfig holds pattern engine and review defaults.
type RenameConfig struct {
	// UseRegex makes replace and remove operations treat their text as a pattern
	UseRegex bool `yaml:"use_regex"`

	// ConflictPolicy is "skip" or "suffix"
	ConflictPolicy string `yaml:"conflict_policy"`
}

// SequenceConfig holds sequence engine defaults used when flags are absent.
type SequenceConfig struct {
	Start         int    `yaml:"start"`
	Step          int    `yaml:"step"`
	Digits        int    `yaml:"digits"`
	KeepExtension bool   `yaml:"keep_extension"`
	DatePattern   string `yaml:"date_pattern"`
}

// PresetsConfig locates the presets database.
type PresetsConfig struct {
	DBPath string `yaml:"db_path"`
}

// OutputConfig controls previews and manifests.
type OutputConfig struct {
	// Format is the preview format: table, json, yaml, markdown or html
	Format string `yaml:"format"`

	// ManifestDir is where processed batches are written
	ManifestDir string `yaml:"manifest_dir"`

	// ManifestFormat is yaml or json
	ManifestFormat string `yaml:"manifest_format"`
}

// Config represents batchkit configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	API      APIConfig      `yaml:"api"`
	Rename   RenameConfig   `yaml:"rename"`
	Sequence SequenceConfig `yaml:"sequence"`
	Presets  PresetsConfig  `yaml:"presets"`
	Output   OutputConfig   `yaml:"output"`
}

// DefaultConfig returns a Config with default values. Relative paths are
// resolved against the home directory by ResolvePaths.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LogDir:   "logs",
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 60 * time.Second,
			Retries: 2,
		},
		Rename: RenameConfig{
			UseRegex:       false,
			ConflictPolicy: plan.PolicySkip,
		},
		Sequence: SequenceConfig{
			Start:       sequence.DefaultStart,
			Step:        sequence.DefaultStep,
			Digits:      sequence.DefaultDigits,
			DatePattern: sequence.DatePatternDay,
		},
		Presets: PresetsConfig{
			DBPath: "presets.db",
		},
		Output: OutputConfig{
			Format:         report.FormatTable,
			ManifestDir:    "manifests",
			ManifestFormat: executor.FormatYAML,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell "absent" from an explicit zero value
	type yamlConfig struct {
		LogLevel *string `yaml:"log_level"`
		LogDir   *string `yaml:"log_dir"`
		API      struct {
			BaseURL *string `yaml:"base_url"`
			Timeout *string `yaml:"timeout"`
			Retries *int    `yaml:"retries"`
		} `yaml:"api"`
		Rename struct {
			UseRegex       *bool   `yaml:"use_regex"`
			ConflictPolicy *string `yaml:"conflict_policy"`
		} `yaml:"rename"`
		Sequence struct {
			Start         *int    `yaml:"start"`
			Step          *int    `yaml:"step"`
			Digits        *int    `yaml:"digits"`
			KeepExtension *bool   `yaml:"keep_extension"`
			DatePattern   *string `yaml:"date_pattern"`
		} `yaml:"sequence"`
		Presets struct {
			DBPath *string `yaml:"db_path"`
		} `yaml:"presets"`
		Output struct {
			Format         *string `yaml:"format"`
			ManifestDir    *string `yaml:"manifest_dir"`
			ManifestFormat *string `yaml:"manifest_format"`
		} `yaml:"output"`
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	setString(&cfg.LogLevel, y.LogLevel)
	setString(&cfg.LogDir, y.LogDir)

	setString(&cfg.API.BaseURL, y.API.BaseURL)
	if y.API.Timeout != nil {
		timeout, err := time.ParseDuration(*y.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api.timeout format %q: %w", *y.API.Timeout, err)
		}
		cfg.API.Timeout = timeout
	}
	setInt(&cfg.API.Retries, y.API.Retries)

	setBool(&cfg.Rename.UseRegex, y.Rename.UseRegex)
	setString(&cfg.Rename.ConflictPolicy, y.Rename.ConflictPolicy)

	setInt(&cfg.Sequence.Start, y.Sequence.Start)
	setInt(&cfg.Sequence.Step, y.Sequence.Step)
	setInt(&cfg.Sequence.Digits, y.Sequence.Digits)
	setBool(&cfg.Sequence.KeepExtension, y.Sequence.KeepExtension)
	setString(&cfg.Sequence.DatePattern, y.Sequence.DatePattern)

	setString(&cfg.Presets.DBPath, y.Presets.DBPath)

	setString(&cfg.Output.Format, y.Output.Format)
	setString(&cfg.Output.ManifestDir, y.Output.ManifestDir)
	setString(&cfg.Output.ManifestFormat, y.Output.ManifestFormat)

	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// LoadConfigFromDir loads configuration from .batchkit/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(ConfigPath(filepath.Join(dir, HomeDirName)))
}

// Flags carries command line overrides. Nil fields leave the configuration
// unchanged.
type Flags struct {
	LogLevel       *string
	LogDir         *string
	APIURL         *string
	Format         *string
	ConflictPolicy *string
	ManifestDir    *string
	UseRegex       *bool
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f Flags) {
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogDir, f.LogDir)
	setString(&c.API.BaseURL, f.APIURL)
	setString(&c.Output.Format, f.Format)
	setString(&c.Rename.ConflictPolicy, f.ConflictPolicy)
	setString(&c.Output.ManifestDir, f.ManifestDir)
	setBool(&c.Rename.UseRegex, f.UseRegex)
}

// ResolvePaths makes relative log, presets and manifest paths relative to home.
func (c *Config) ResolvePaths(home string) {
	for _, p := range []*string{&c.LogDir, &c.Presets.DBPath, &c.Output.ManifestDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(home, *p)
		}
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	valid := false
	for _, l := range logger.ValidLevels {
		if c.LogLevel == l {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0, got %v", c.API.Timeout)
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api.retries must be >= 0, got %d", c.API.Retries)
	}

	if c.Rename.ConflictPolicy != plan.PolicySkip && c.Rename.ConflictPolicy != plan.PolicySuffix {
		return fmt.Errorf("invalid rename.conflict_policy %q, must be skip or suffix", c.Rename.ConflictPolicy)
	}

	if c.Sequence.Digits < 0 {
		return fmt.Errorf("sequence.digits must be >= 0, got %d", c.Sequence.Digits)
	}
	if err := sequence.ValidateDatePattern(c.Sequence.DatePattern); err != nil {
		return fmt.Errorf("sequence.date_pattern: %w", err)
	}

	if c.Presets.DBPath == "" {
		return fmt.Errorf("presets.db_path cannot be empty")
	}

	if !report.ValidFormat(c.Output.Format) {
		return fmt.Errorf("invalid output.format %q, must be one of: table, json, yaml, markdown, html", c.Output.Format)
	}
	if c.Output.ManifestFormat != executor.FormatYAML && c.Output.ManifestFormat != executor.FormatJSON {
		return fmt.Errorf("invalid output.manifest_format %q, must be yaml or json", c.Output.ManifestFormat)
	}

	return nil
}
