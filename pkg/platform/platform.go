// Package platform models the operating systems a mirror catalog can target.
package platform

import (
	"runtime"
	"strings"

	"github.com/cperrin88/mirrorget/pkg/errutils"
)

// OS is a catalog operating system name. The string values are the keys used in
// OS-partitioned catalog entries.
type OS string

const (
	// Windows is the Microsoft Windows family.
	Windows OS = "Windows"
	// MacOS is Apple macOS.
	MacOS OS = "macOS"
	// Linux is any Linux distribution. Unrecognized hosts are treated as Linux too.
	Linux OS = "Linux"
)

// Auto is the user-facing spelling of "no override".
const Auto = "auto"

// All returns the supported operating systems in display order.
func All() []OS {
	return []OS{Windows, MacOS, Linux}
}

// ValidOS returns the accepted names for the OS override, including Auto.
func ValidOS() []string {
	return []string{string(Windows), string(MacOS), string(Linux), Auto}
}

// String implements fmt.Stringer.
func (o OS) String() string {
	return string(o)
}

// Valid reports whether o is one of the supported operating systems.
func (o OS) Valid() bool {
	switch o {
	case Windows, MacOS, Linux:
		return true
	default:
		return false
	}
}

// Detect returns the host operating system.
func Detect() OS {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a runtime.GOOS value onto a catalog OS.
func FromGOOS(goos string) OS {
	switch strings.ToLower(goos) {
	case "windows":
		return Windows
	case "darwin", "ios":
		return MacOS
	default:
		return Linux
	}
}

// Parse converts a user supplied OS name. It is case-insensitive and accepts the
// common aliases. An empty string or "auto" yields ok == false, meaning autodetect.
func Parse(s string) (os OS, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", Auto, "auto-detect", "autodetect":
		return "", false, nil
	case "windows", "win", "win32", "win64":
		return Windows, true, nil
	case "macos", "mac", "osx", "darwin":
		return MacOS, true, nil
	case "linux":
		return Linux, true, nil
	default:
		return "", false, errutils.ErrInvalidOSValueWithDetails(s, ValidOS())
	}
}

// Effective returns override when it is set and valid, the detected host OS otherwise.
func Effective(override OS) OS {
	if override.Valid() {
		return override
	}
	return Detect()
}
