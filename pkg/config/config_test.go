package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/fsutil"
	"github.com/cperrin88/mirrorget/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.Settings.CatalogTimeout)
	assert.Equal(t, DefaultCatalogURLs, cfg.Settings.CatalogURLs)
	assert.Empty(t, cfg.Settings.OS)
	require.NoError(t, cfg.Validate())

	// The defaults must not alias the package-level slice.
	cfg.Settings.CatalogURLs[0] = "changed"
	assert.NotEqual(t, "changed", DefaultCatalogURLs[0])
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `settings:
  download_dir: /tmp/downloads
  catalog_urls:
    - https://one.example/mirrors.json
    - https://two.example/mirrors.json
  os: mac
  http_timeout: 45s
  log_level: debug
  log_file:
    path: /tmp/mirrorget.log
    max_megabytes: 5
  metrics_file: /tmp/mirrorget.prom`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/tmp/downloads", cfg.Settings.DownloadDir)
	assert.Equal(t, []string{"https://one.example/mirrors.json", "https://two.example/mirrors.json"}, cfg.Settings.CatalogURLs)
	assert.Equal(t, 45*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, DefaultCatalogTimeout, cfg.Settings.CatalogTimeout)
	assert.Equal(t, DefaultUserAgent, cfg.Settings.UserAgent)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "/tmp/mirrorget.log", cfg.Settings.LogFile.Path)
	assert.Equal(t, 5, cfg.Settings.LogFile.MaxMegabytes)
	assert.Equal(t, "/tmp/mirrorget.prom", cfg.Settings.MetricsFile)

	o, ok := cfg.Settings.OSOverride()
	assert.True(t, ok)
	assert.Equal(t, platform.MacOS, o)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errutils.ErrEmptyConfigPath)

	_, err = LoadConfigFromReader(strings.NewReader("settings: [unclosed"))
	assert.ErrorIs(t, err, errutils.ErrConfigParse)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  os: beos\n"))
	assert.ErrorIs(t, err, errutils.ErrConfigValidation)
	assert.ErrorIs(t, err, errutils.ErrInvalidOSValue)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.OS = "Windows"
	cfg.Settings.CatalogURL = "https://override.example/mirrors.json"

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "test-config.yaml")

	err := cfg.SaveConfig(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http_timeout: 20s")

	_, err = os.Stat(configPath + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loadedCfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loadedCfg)
}

func TestValidateConfig(t *testing.T) {
	valid := func(mut func(*Settings)) *Config {
		cfg := DefaultConfig()
		mut(&cfg.Settings)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: DefaultConfig(),
		},
		{
			name:   "auto os",
			config: valid(func(s *Settings) { s.OS = "auto" }),
		},
		{
			name:    "invalid OS",
			config:  valid(func(s *Settings) { s.OS = "plan9" }),
			wantErr: errutils.ErrInvalidOSValue,
		},
		{
			name:    "negative http timeout",
			config:  valid(func(s *Settings) { s.HTTPTimeout = -time.Second }),
			wantErr: errutils.ErrTimeoutNegative,
		},
		{
			name:    "negative catalog timeout",
			config:  valid(func(s *Settings) { s.CatalogTimeout = -time.Second }),
			wantErr: errutils.ErrTimeoutNegative,
		},
		{
			name:    "invalid log level",
			config:  valid(func(s *Settings) { s.LogLevel = "verbose" }),
			wantErr: errutils.ErrInvalidLogLevel,
		},
		{
			name:    "no sources",
			config:  valid(func(s *Settings) { s.CatalogURLs = []string{" "} }),
			wantErr: errutils.ErrNoCatalogSources,
		},
		{
			name: "override source only",
			config: valid(func(s *Settings) {
				s.CatalogURLs = nil
				s.CatalogURL = "https://override.example/mirrors.json"
			}),
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: errutils.ErrConfigValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSources(t *testing.T) {
	s := Settings{CatalogURLs: []string{" https://a.example ", "", "https://b.example"}}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.Sources())

	s = Settings{CatalogURL: "https://override.example"}
	assert.Equal(t, []string{"https://override.example"}, s.Sources())
}

func TestGetDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("HOME", "/home/testuser")

	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(path))
	assert.Equal(t, fsutil.AppName, filepath.Base(filepath.Dir(path)))
}
