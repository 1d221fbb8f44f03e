package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the name of the application used in paths
	AppName = "mirrorget"

	// DownloadDirEnv overrides the standard downloads location.
	DownloadDirEnv = "XDG_DOWNLOAD_DIR"
)

// GetConfigDir returns the platform-specific configuration directory for the application
// On Linux: ~/.config/mirrorget/
// On macOS: ~/Library/Application Support/mirrorget/
// On Windows: %AppData%\mirrorget\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// DefaultDownloadDir returns $XDG_DOWNLOAD_DIR when set, ~/Downloads otherwise.
func DefaultDownloadDir() (string, error) {
	if dir := os.Getenv(DownloadDirEnv); dir != "" {
		return ExpandHome(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}

// ResolveDownloadDir picks the first non-empty of flagValue and configured,
// falling back to DefaultDownloadDir. The result is absolute.
func ResolveDownloadDir(flagValue, configured string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		var err error
		if dir, err = DefaultDownloadDir(); err != nil {
			return "", err
		}
	}
	dir, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
