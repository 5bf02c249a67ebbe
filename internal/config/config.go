package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/regex-filter/internal/textcodec"
)

const (
	// DefaultOutputDirName is the directory created inside the input directory.
	DefaultOutputDirName = "cleaned_files"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	envPrefix            = "REGEX_FILTER_"
)

// ErrInvalidConfig is returned when the resolved settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	OutputDirName  string
	OutputDir      string
	IgnoreCase     bool
	RenameFiles    bool
	Encoding       string
	FilesPerSecond float64
	LogLevel       string
	LogFormat      string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	OutputDirName  string   `yaml:"output_dir_name"`
	OutputDir      string   `yaml:"output_dir"`
	IgnoreCase     *bool    `yaml:"ignore_case"`
	Rename         *bool    `yaml:"rename"`
	Encoding       string   `yaml:"encoding"`
	FilesPerSecond *float64 `yaml:"files_per_second"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
}

// CLIOverrides holds command-line flag overrides. Nil fields are unset.
type CLIOverrides struct {
	ConfigFile     string
	OutputDirName  *string
	OutputDir      *string
	IgnoreCase     *bool
	RenameFiles    *bool
	Encoding       *string
	FilesPerSecond *float64
	LogLevel       *string
	LogFormat      *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ResolveOutputDir returns the directory filtered files are written to.
func (c Config) ResolveOutputDir(inputDir string) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(inputDir, c.OutputDirName)
}

func defaultConfig() Config {
	return Config{
		OutputDirName: DefaultOutputDirName,
		Encoding:      textcodec.DefaultEncoding,
		LogLevel:      defaultLogLevel,
		LogFormat:     defaultLogFormat,
	}
}

func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.OutputDirName != "" {
		cfg.OutputDirName = yamlCfg.OutputDirName
	}
	if yamlCfg.OutputDir != "" {
		cfg.OutputDir = yamlCfg.OutputDir
	}
	if yamlCfg.IgnoreCase != nil {
		cfg.IgnoreCase = *yamlCfg.IgnoreCase
	}
	if yamlCfg.Rename != nil {
		cfg.RenameFiles = *yamlCfg.Rename
	}
	if yamlCfg.Encoding != "" {
		cfg.Encoding = yamlCfg.Encoding
	}
	if yamlCfg.FilesPerSecond != nil {
		cfg.FilesPerSecond = *yamlCfg.FilesPerSecond
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogFormat != "" {
		cfg.LogFormat = yamlCfg.LogFormat
	}
}

func applyEnvConfig(cfg *Config) {
	if v := env("OUTPUT_DIR_NAME"); v != "" {
		cfg.OutputDirName = v
	}
	if v := env("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := env("IGNORE_CASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IgnoreCase = b
		}
	}
	if v := env("RENAME"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RenameFiles = b
		}
	}
	if v := env("ENCODING"); v != "" {
		cfg.Encoding = v
	}
	if v := env("FILES_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.FilesPerSecond = f
		}
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.OutputDirName != nil && *overrides.OutputDirName != "" {
		cfg.OutputDirName = *overrides.OutputDirName
	}
	if overrides.OutputDir != nil && *overrides.OutputDir != "" {
		cfg.OutputDir = *overrides.OutputDir
	}
	if overrides.IgnoreCase != nil {
		cfg.IgnoreCase = *overrides.IgnoreCase
	}
	if overrides.RenameFiles != nil {
		cfg.RenameFiles = *overrides.RenameFiles
	}
	if overrides.Encoding != nil && *overrides.Encoding != "" {
		cfg.Encoding = *overrides.Encoding
	}
	if overrides.FilesPerSecond != nil && *overrides.FilesPerSecond >= 0 {
		cfg.FilesPerSecond = *overrides.FilesPerSecond
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil && *overrides.LogFormat != "" {
		cfg.LogFormat = *overrides.LogFormat
	}
}

func validateConfig(cfg Config) error {
	name := cfg.OutputDirName
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: output dir name %q must be a plain directory name", ErrInvalidConfig, name)
	}
	if cfg.FilesPerSecond < 0 {
		return fmt.Errorf("%w: files per second must be >= 0", ErrInvalidConfig)
	}
	if _, err := textcodec.New(cfg.Encoding); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log format %q must be json or console", ErrInvalidConfig, cfg.LogFormat)
	}
	return nil
}
