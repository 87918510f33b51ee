package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/25smoking/upcheck/internal/coord"
	"github.com/25smoking/upcheck/internal/embedded"
	appErrors "github.com/25smoking/upcheck/internal/errors"
	"github.com/25smoking/upcheck/internal/retry"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

const (
	KeyPackageManager       = "package_manager"
	KeyCheckIntervalMinutes = "check_interval_minutes"
	KeyAutoCheckOnStartup   = "auto_check_on_startup"
	KeyIncludeAURUpdates    = "include_aur_updates"
	KeyShowNotifications    = "show_notifications"
	KeyShowUpdateCount      = "show_update_count"
	KeyPreferredTerminal    = "preferred_terminal"
	KeyAppID                = "app_id"
	KeyRuntimeDir           = "runtime_dir"
	KeyRetryAttempts        = "retry.attempts"
	KeyRetryLockDelay       = "retry.lock_delay"
	KeyRetryPhaseDelay      = "retry.phase_delay"
	KeyPhaseTimeout         = "phase_timeout"
	KeySyncDebounce         = "sync.debounce"
	KeySyncMinResync        = "sync.min_resync"

	envPrefix = "UPCHECK"
)

// Config is the persisted application configuration.
type Config struct {
	PackageManager       string        `mapstructure:"package_manager" yaml:"package_manager"`
	CheckIntervalMinutes int           `mapstructure:"check_interval_minutes" yaml:"check_interval_minutes"`
	AutoCheckOnStartup   bool          `mapstructure:"auto_check_on_startup" yaml:"auto_check_on_startup"`
	IncludeAURUpdates    bool          `mapstructure:"include_aur_updates" yaml:"include_aur_updates"`
	ShowNotifications    bool          `mapstructure:"show_notifications" yaml:"show_notifications"`
	ShowUpdateCount      bool          `mapstructure:"show_update_count" yaml:"show_update_count"`
	PreferredTerminal    string        `mapstructure:"preferred_terminal" yaml:"preferred_terminal"`
	AppID                string        `mapstructure:"app_id" yaml:"app_id"`
	RuntimeDir           string        `mapstructure:"runtime_dir" yaml:"runtime_dir"`
	Retry                RetryConfig   `mapstructure:"retry" yaml:"retry"`
	PhaseTimeout         time.Duration `mapstructure:"phase_timeout" yaml:"phase_timeout"`
	Sync                 SyncConfig    `mapstructure:"sync" yaml:"sync"`
}

type RetryConfig struct {
	Attempts   int           `mapstructure:"attempts" yaml:"attempts"`
	LockDelay  time.Duration `mapstructure:"lock_delay" yaml:"lock_delay"`
	PhaseDelay time.Duration `mapstructure:"phase_delay" yaml:"phase_delay"`
}

type SyncConfig struct {
	Debounce  time.Duration `mapstructure:"debounce" yaml:"debounce"`
	MinResync time.Duration `mapstructure:"min_resync" yaml:"min_resync"`
}

// Load reads configuration using the precedence:
// embedded defaults < file at path < UPCHECK_* environment < overrides.
// A missing file is not an error.
func Load(path string, overrides map[string]any) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if err := mergeConfigFile(v, path); err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("load config %s", path), err)
	}
	bindEnv(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return decode(v)
}

// LoadFile reads embedded defaults and the file at path only. Use it before
// Save so environment overrides are not written back to disk.
func LoadFile(path string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if err := mergeConfigFile(v, path); err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("load config %s", path), err)
	}
	return decode(v)
}

// SetManager rewrites package_manager in the file at path, leaving the other
// file values as they are. An empty name re-enables detection.
func SetManager(path, name string) error {
	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}
	cfg.PackageManager = name
	return Save(path, cfg)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults without consulting files or env.
func Default() (*Config, error) {
	data, err := embedded.Content.ReadFile(embedded.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read default config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/upcheck/config.yaml (or ~/.config/...).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config dir: %w", err)
	}
	return filepath.Join(dir, coord.DefaultAppID, "config.yaml"), nil
}

// Validate rejects values the checker cannot run with.
func (c *Config) Validate() error {
	if c.CheckIntervalMinutes < 1 {
		return appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("%s must be at least 1, got %d", KeyCheckIntervalMinutes, c.CheckIntervalMinutes), nil)
	}
	if c.Retry.Attempts < 1 {
		return appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("%s must be at least 1, got %d", KeyRetryAttempts, c.Retry.Attempts), nil)
	}
	if c.Retry.LockDelay < 0 || c.Retry.PhaseDelay < 0 || c.PhaseTimeout < 0 {
		return appErrors.New(appErrors.CodeConfigurationError, "delays and timeouts must not be negative", nil)
	}
	if _, _, err := c.Manager(); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, err.Error(), err)
	}
	return nil
}

// Manager returns the configured package manager; ok is false when none is
// set and detection should decide.
func (c *Config) Manager() (m pkg_mgr.Manager, ok bool, err error) {
	if strings.TrimSpace(c.PackageManager) == "" {
		return 0, false, nil
	}
	m, err = pkg_mgr.ParseManager(c.PackageManager)
	if err != nil {
		return 0, false, err
	}
	return m, true, nil
}

func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMinutes) * time.Minute
}

func (c *Config) Paths() coord.Paths {
	return coord.ResolvePaths(c.AppID, c.RuntimeDir)
}

func (c *Config) LockPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: c.Retry.Attempts, Delay: c.Retry.LockDelay}
}

func (c *Config) PhasePolicy() retry.Policy {
	return retry.Policy{MaxAttempts: c.Retry.Attempts, Delay: c.Retry.PhaseDelay}
}

func newViper() (*viper.Viper, error) {
	defaults, err := embedded.Content.ReadFile(embedded.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read default config: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	return v, nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: reads the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
