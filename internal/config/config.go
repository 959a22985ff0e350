// Package config loads codeaudit settings from defaults, a YAML file,
// the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the config file searched in the working directory and in
// $HOME/.config/codeaudit.
const FileName = ".codeaudit"

// EnvPrefix prefixes every environment override, e.g. CODEAUDIT_PARALLEL.
const EnvPrefix = "CODEAUDIT"

// Config holds the complete application configuration.
type Config struct {
	Exclude      []string           `mapstructure:"exclude"`
	Kinds        []string           `mapstructure:"kinds"`
	Parallel     int                `mapstructure:"parallel"`
	ReportsDir   string             `mapstructure:"reports_dir"`
	LogLevel     string             `mapstructure:"log_level"`
	FileLength   FileLengthConfig   `mapstructure:"file_length"`
	MethodLength MethodLengthConfig `mapstructure:"method_length"`
	Docs         DocsConfig         `mapstructure:"docs"`
	Strip        StripConfig        `mapstructure:"strip"`
	Watch        WatchConfig        `mapstructure:"watch"`
}

// FileLengthConfig holds the file length analyzer settings.
type FileLengthConfig struct {
	Threshold int `mapstructure:"threshold"`
	Top       int `mapstructure:"top"`
}

// MethodLengthConfig holds the method length analyzer settings.
type MethodLengthConfig struct {
	Threshold int `mapstructure:"threshold"`
	Top       int `mapstructure:"top"`
}

// DocsConfig holds the documentation coverage settings.
type DocsConfig struct {
	Top            int      `mapstructure:"top"`
	IncludeArrows  bool     `mapstructure:"include_arrows"`
	LineComments   bool     `mapstructure:"line_comments"`
	TestCallbacks  []string `mapstructure:"test_callbacks"`
	LifecycleHooks []string `mapstructure:"lifecycle_hooks"`
}

// StripConfig holds the debug statement removal settings.
type StripConfig struct {
	Targets   []string `mapstructure:"targets"`
	BackupDir string   `mapstructure:"backup_dir"`
	Top       int      `mapstructure:"top"`
}

// WatchConfig holds the watch command settings.
type WatchConfig struct {
	DebounceMillis int `mapstructure:"debounce_ms"`
}

// DefaultExclude lists the directory names skipped while walking.
var DefaultExclude = []string{
	"node_modules", ".git", "dist", "build", ".angular", "coverage", ".vscode", ".idea",
}

// DefaultTestCallbacks are call names whose callbacks never need docs.
var DefaultTestCallbacks = []string{
	"describe", "it", "test", "beforeEach", "afterEach", "beforeAll", "afterAll",
}

// DefaultConfig returns a new configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Exclude:    append([]string(nil), DefaultExclude...),
		Parallel:   4,
		ReportsDir: ".codeaudit-reports",
		LogLevel:   "warn",
		FileLength: FileLengthConfig{Threshold: 400, Top: 10},
		MethodLength: MethodLengthConfig{
			Threshold: 14,
			Top:       10,
		},
		Docs: DocsConfig{
			Top:           10,
			TestCallbacks: append([]string(nil), DefaultTestCallbacks...),
		},
		Strip: StripConfig{
			Targets:   []string{"console.log"},
			BackupDir: ".codeaudit-backups",
			Top:       10,
		},
		Watch: WatchConfig{DebounceMillis: 300},
	}
}

// Load reads configuration from defaults, the config file, .env and the
// environment. An explicit configPath must exist; the searched file may not.
func Load(configPath string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/codeaudit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ReportsDir = expandHome(cfg.ReportsDir)
	cfg.Strip.BackupDir = expandHome(cfg.Strip.BackupDir)

	return &cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.FileLength.Threshold <= 0 {
		return fmt.Errorf("file_length.threshold must be positive, got %d", c.FileLength.Threshold)
	}

	if c.MethodLength.Threshold <= 0 {
		return fmt.Errorf("method_length.threshold must be positive, got %d", c.MethodLength.Threshold)
	}

	if c.Parallel <= 0 {
		return fmt.Errorf("parallel must be positive, got %d", c.Parallel)
	}

	for name, top := range map[string]int{
		"file_length.top":   c.FileLength.Top,
		"method_length.top": c.MethodLength.Top,
		"docs.top":          c.Docs.Top,
		"strip.top":         c.Strip.Top,
	} {
		if top < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, top)
		}
	}

	if len(c.Strip.Targets) == 0 {
		return errors.New("strip.targets must not be empty")
	}

	for _, target := range c.Strip.Targets {
		if strings.TrimSpace(target) == "" || strings.ContainsAny(target, " \t()") {
			return fmt.Errorf("invalid strip target %q", target)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("kinds", []string{})
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("reports_dir", defaults.ReportsDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("file_length.threshold", defaults.FileLength.Threshold)
	v.SetDefault("file_length.top", defaults.FileLength.Top)
	v.SetDefault("method_length.threshold", defaults.MethodLength.Threshold)
	v.SetDefault("method_length.top", defaults.MethodLength.Top)
	v.SetDefault("docs.top", defaults.Docs.Top)
	v.SetDefault("docs.include_arrows", defaults.Docs.IncludeArrows)
	v.SetDefault("docs.line_comments", defaults.Docs.LineComments)
	v.SetDefault("docs.test_callbacks", defaults.Docs.TestCallbacks)
	v.SetDefault("docs.lifecycle_hooks", []string{})
	v.SetDefault("strip.targets", defaults.Strip.Targets)
	v.SetDefault("strip.backup_dir", defaults.Strip.BackupDir)
	v.SetDefault("strip.top", defaults.Strip.Top)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMillis)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
