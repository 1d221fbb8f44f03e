// Package fsutil provides file system helpers and permission constants.
package fsutil

// File and directory permission constants.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: downloaded files
	FileModeSecure  = 0o640 // -rw-r-----: config files

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: download directory
	DirModeSecure  = 0o750 // drwxr-x---: config directory
)
