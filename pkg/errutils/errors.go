// Package errutils provides the error vocabulary shared by the mirrorget packages.
// It defines sentinel errors for the catalog, download and configuration domains
// and small helpers for wrapping them with context. Callers compare against the
// sentinels with errors.Is.
package errutils

import (
	"fmt"
)

// Common error types used throughout the application.
// Errors are grouped by their domain or functionality.
var (
	// Catalog errors are related to loading and querying the mirror catalog.

	// ErrMalformedCatalog is returned when a catalog document is not a JSON object
	// or one of its entries has an unexpected shape.
	ErrMalformedCatalog = fmt.Errorf("malformed catalog")

	// ErrCatalogUnavailable is returned when none of the configured catalog sources
	// could be fetched and parsed.
	ErrCatalogUnavailable = fmt.Errorf("no catalog source could be loaded")

	// ErrNoCatalog is returned when an operation needs a catalog but none has been loaded yet.
	ErrNoCatalog = fmt.Errorf("catalog not loaded")

	// ErrMirrorListNotFound is returned when a mirror list name is not in the catalog.
	ErrMirrorListNotFound = fmt.Errorf("mirror list not found")

	// ErrItemNotFound is returned when an item key is not in the selected mirror list.
	ErrItemNotFound = fmt.Errorf("item not found")

	// Download errors.

	// ErrNoMirrorsAvailable is returned when the resolver produced no candidates.
	ErrNoMirrorsAvailable = fmt.Errorf("no mirrors available")

	// ErrDownloadInProgress is returned when a download is started while another one is active.
	ErrDownloadInProgress = fmt.Errorf("a download is already in progress")

	// ErrDownloadFailed is returned when a download operation fails.
	ErrDownloadFailed = fmt.Errorf("download failed")

	// ErrDownloadCancelled is returned when a download was cancelled by the user.
	ErrDownloadCancelled = fmt.Errorf("download cancelled")

	// ErrInvalidPath is returned when a file or directory path is invalid.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// Config errors are related to configuration file operations and validation.

	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")

	// ErrConfigFileExists is returned when attempting to create a configuration file that already exists.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	// ErrConfigFileRename is returned when renaming the temporary config file fails.
	ErrConfigFileRename = fmt.Errorf("failed to rename temporary config file")

	// ErrConfigMarshal is returned when marshaling the config to YAML fails.
	ErrConfigMarshal = fmt.Errorf("failed to marshal config to YAML")

	// ErrInvalidOSValue is returned when an invalid operating system value is provided.
	ErrInvalidOSValue = fmt.Errorf("invalid OS value")

	// ErrTimeoutNegative is returned when a timeout setting is negative.
	ErrTimeoutNegative = fmt.Errorf("timeout cannot be negative")

	// ErrNoCatalogSources is returned when neither catalog_urls nor catalog_url is set.
	ErrNoCatalogSources = fmt.Errorf("no catalog sources configured")

	// ErrInvalidLogLevel is returned when an invalid log level is specified.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")

	// ErrInvalidDurationValue is returned when a duration setting cannot be parsed.
	ErrInvalidDurationValue = fmt.Errorf("invalid duration value")

	// ErrUnknownConfigKey is returned when an unknown configuration key is encountered.
	ErrUnknownConfigKey = fmt.Errorf("unknown configuration key")
)

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
//
// Example:
//
//	if err := someOperation(); err != nil {
//	    return errutils.Wrap(err, "failed to perform operation")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidOSValueWithDetails is a helper to create a wrapped error with the invalid value and valid options.
func ErrInvalidOSValueWithDetails(value string, validOS []string) error {
	return fmt.Errorf("%w: %s. Valid values are: %v", ErrInvalidOSValue, value, validOS)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}

// ErrMirrorListNotFoundWithName creates an error for a mirror list missing from the catalog.
func ErrMirrorListNotFoundWithName(name string) error {
	return fmt.Errorf("%w: %s", ErrMirrorListNotFound, name)
}

// ErrItemNotFoundWithName creates an error for an item missing from a mirror list.
func ErrItemNotFoundWithName(list, item string) error {
	return fmt.Errorf("%w: %s in %s", ErrItemNotFound, item, list)
}
