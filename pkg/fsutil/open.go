package fsutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// File manager commands.
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// LinuxFileManagers are tried in order when xdg-open fails.
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

var (
	runCommand = func(name string, args ...string) error {
		return exec.Command(name, args...).Run()
	}
	lookPath = exec.LookPath
)

// OpenInFileManager shows a downloaded file in the system file manager. macOS
// and Windows select the file; elsewhere its directory is opened.
func OpenInFileManager(path string) error {
	return openInFileManager(runtime.GOOS, path)
}

func openInFileManager(goos, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	switch goos {
	case "darwin":
		return runCommand(OpenCommand, "-R", absPath)
	case "windows":
		return runCommand(ExplorerCommand, "/select,"+absPath)
	}

	dir := filepath.Dir(absPath)
	if err := runCommand(XDGOpenCommand, dir); err == nil {
		return nil
	}
	for _, fm := range LinuxFileManagers {
		if _, err := lookPath(fm); err == nil {
			return runCommand(fm, dir)
		}
	}
	return fmt.Errorf("no suitable file manager found")
}
