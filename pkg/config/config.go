// Package config provides configuration management for mirrorget.
// It handles loading, validating and saving the YAML settings file that controls
// where catalogs are fetched from, where downloads land, which operating system
// the resolver targets, and how logging and metrics are written.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/fsutil"
	"github.com/cperrin88/mirrorget/pkg/platform"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// General settings
	Settings Settings `yaml:"settings"`
}

// LogFileConfig configures the optional rotating log file.
type LogFileConfig struct {
	Path         string `yaml:"path,omitempty"`
	MaxMegabytes int    `yaml:"max_megabytes,omitempty"`
	MaxBackups   int    `yaml:"max_backups,omitempty"`
	MaxAgeDays   int    `yaml:"max_age_days,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Download settings
	DownloadDir string `yaml:"download_dir,omitempty"`

	// Catalog sources. CatalogURLs are tried in order at startup; CatalogURL,
	// when set, replaces the catalog after the initial load.
	CatalogURLs []string `yaml:"catalog_urls"`
	CatalogURL  string   `yaml:"catalog_url,omitempty"`

	// OS overrides the operating system used for resolution. Empty means auto-detect.
	OS string `yaml:"os,omitempty"`

	// Network settings
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	CatalogTimeout time.Duration `yaml:"catalog_timeout"`
	UserAgent      string        `yaml:"user_agent,omitempty"`

	// Output settings
	LogLevel    string        `yaml:"log_level"` // debug, info, warn, error
	LogFile     LogFileConfig `yaml:"log_file,omitempty"`
	MetricsFile string        `yaml:"metrics_file,omitempty"`
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the connect and idle-read timeout of a single transfer.
	DefaultHTTPTimeout = 20 * time.Second

	// DefaultCatalogTimeout bounds a single catalog fetch.
	DefaultCatalogTimeout = 10 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "mirrorget/1.0"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2

	// ConfigFileName is the name of the configuration file inside the config directory.
	ConfigFileName = "config.yaml"
)

// DefaultCatalogURLs are the catalog sources tried at startup, in order.
// The archived copies come first so a takedown of the primary host does not
// prevent startup.
var DefaultCatalogURLs = []string{
	"https://web.archive.org/web/2im_/https://raw.githubusercontent.com/calloffreedom/vpndownloader/refs/heads/main/mirrors.json",
	"https://web.archive.org/web/2im_/https://calloffreedom.github.io/vpndownloader/mirrors.json",
	"https://raw.githubusercontent.com/calloffreedom/vpndownloader/refs/heads/main/mirrors.json",
	"https://calloffreedom.github.io/vpndownloader/mirrors.json",
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			CatalogURLs:    append([]string(nil), DefaultCatalogURLs...),
			HTTPTimeout:    DefaultHTTPTimeout,
			CatalogTimeout: DefaultCatalogTimeout,
			UserAgent:      DefaultUserAgent,
			LogLevel:       DefaultLogLevel,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errutils.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errutils.ErrConfigValidation, err)
	}

	return &config, nil
}

// applyDefaults fills in zero values. Timeouts are only defaulted when unset so
// that an explicit negative value still fails validation.
func (c *Config) applyDefaults() {
	s := &c.Settings
	if len(s.CatalogURLs) == 0 && s.CatalogURL == "" {
		s.CatalogURLs = append([]string(nil), DefaultCatalogURLs...)
	}
	if s.HTTPTimeout == 0 {
		s.HTTPTimeout = DefaultHTTPTimeout
	}
	if s.CatalogTimeout == 0 {
		s.CatalogTimeout = DefaultCatalogTimeout
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errutils.Wrap(errutils.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errutils.Wrap(errutils.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := fsutil.ReplaceFile(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errutils.Wrap(errutils.ErrTimeoutNegative, "http_timeout")
	}
	if s.CatalogTimeout < 0 {
		return errutils.Wrap(errutils.ErrTimeoutNegative, "catalog_timeout")
	}
	if _, _, err := platform.Parse(s.OS); err != nil {
		return err
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return errutils.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	if len(s.Sources()) == 0 {
		return errutils.ErrNoCatalogSources
	}
	return nil
}

// Sources returns the non-empty startup catalog URLs in order.
func (s Settings) Sources() []string {
	sources := make([]string, 0, len(s.CatalogURLs))
	for _, u := range s.CatalogURLs {
		if u = strings.TrimSpace(u); u != "" {
			sources = append(sources, u)
		}
	}
	if len(sources) == 0 && s.CatalogURL != "" {
		sources = append(sources, s.CatalogURL)
	}
	return sources
}

// OSOverride returns the configured OS override, or ok=false for auto-detect.
// The value is assumed to have passed Validate.
func (s Settings) OSOverride() (platform.OS, bool) {
	o, ok, err := platform.Parse(s.OS)
	if err != nil {
		return "", false
	}
	return o, ok
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, ConfigFileName), nil
}
