package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/platform"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - download_dir: string - Directory downloads are written to
//   - catalog_urls: string - Comma-separated startup catalog sources
//   - catalog_url: string - Catalog source that replaces the startup catalog
//   - os: string - Windows, macOS, Linux or auto
//   - http_timeout, catalog_timeout: duration (e.g. 20s)
//   - user_agent: string
//   - log_level: string - Logging level (debug, info, warn, error)
//   - log_file: string - Path of the rotating log file
//   - metrics_file: string - Path of the Prometheus textfile
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "download_dir":
		c.Settings.DownloadDir = value
	case "catalog_urls":
		c.Settings.CatalogURLs = splitList(value)
	case "catalog_url":
		c.Settings.CatalogURL = strings.TrimSpace(value)
	case "os":
		o, ok, err := platform.Parse(value)
		if err != nil {
			return err
		}
		if ok {
			c.Settings.OS = o.String()
		} else {
			c.Settings.OS = ""
		}
	case "http_timeout":
		d, err := parseDuration(key, value)
		if err != nil {
			return err
		}
		c.Settings.HTTPTimeout = d
	case "catalog_timeout":
		d, err := parseDuration(key, value)
		if err != nil {
			return err
		}
		c.Settings.CatalogTimeout = d
	case "user_agent":
		c.Settings.UserAgent = value
	case "log_level":
		if !validLogLevels[strings.ToLower(value)] {
			return errutils.ErrInvalidLogLevelWithDetails(value)
		}
		c.Settings.LogLevel = strings.ToLower(value)
	case "log_file":
		c.Settings.LogFile.Path = value
	case "metrics_file":
		c.Settings.MetricsFile = value
	default:
		return fmt.Errorf("%w: %s", errutils.ErrUnknownConfigKey, key)
	}
	return nil
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "download_dir":
		return c.Settings.DownloadDir, nil
	case "catalog_urls":
		return strings.Join(c.Settings.CatalogURLs, ","), nil
	case "catalog_url":
		return c.Settings.CatalogURL, nil
	case "os":
		if c.Settings.OS == "" {
			return platform.Auto, nil
		}
		return c.Settings.OS, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "catalog_timeout":
		return c.Settings.CatalogTimeout.String(), nil
	case "user_agent":
		return c.Settings.UserAgent, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "log_file":
		return c.Settings.LogFile.Path, nil
	case "metrics_file":
		return c.Settings.MetricsFile, nil
	default:
		return "", fmt.Errorf("%w: %s", errutils.ErrUnknownConfigKey, key)
	}
}

// Keys lists the keys accepted by SetValue and GetValue.
func Keys() []string {
	return []string{
		"download_dir", "catalog_urls", "catalog_url", "os",
		"http_timeout", "catalog_timeout", "user_agent",
		"log_level", "log_file", "metrics_file",
	}
}

// ToMap flattens the settings into yaml key/value strings.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Handle yaml tags with options (e.g., "download_dir,omitempty")
		yamlKey := strings.Split(yamlTag, ",")[0]
		fieldValue := settingsValue.Field(i)

		if fieldValue.Kind() == reflect.Struct {
			nestedType := fieldValue.Type()
			for j := 0; j < fieldValue.NumField(); j++ {
				nestedKey := strings.Split(nestedType.Field(j).Tag.Get("yaml"), ",")[0]
				if nestedKey == "" || nestedKey == "-" {
					continue
				}
				result[yamlKey+"."+nestedKey] = formatValue(fieldValue.Field(j))
			}
			continue
		}

		result[yamlKey] = formatValue(fieldValue)
	}

	return result
}

func formatValue(v reflect.Value) string {
	if v.Type() == reflect.TypeOf(time.Duration(0)) {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Slice:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, fmt.Sprint(v.Index(i).Interface()))
		}
		return strings.Join(parts, ",")
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %s", errutils.ErrInvalidDurationValue, key, value)
	}
	if d < 0 {
		return 0, errutils.Wrap(errutils.ErrTimeoutNegative, key)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
