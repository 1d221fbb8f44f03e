package download

import (
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// FallbackFilename is used when neither the response nor the URL names the file.
const FallbackFilename = "downloaded_file"

var (
	extendedFilenameRe = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)`)
	plainFilenameRe    = regexp.MustCompile(`(?i)filename="?([^";]+)"?`)
)

// ResolveFilename picks the local file name for a response: the
// Content-Disposition header first, then the last URL path segment, then
// FallbackFilename. The result never contains a directory component.
func ResolveFilename(contentDisposition, rawURL string) string {
	if name := SanitizeFilename(filenameFromDisposition(contentDisposition)); name != "" {
		return name
	}
	if name := SanitizeFilename(filenameFromURL(rawURL)); name != "" {
		return name
	}
	return FallbackFilename
}

// SanitizeFilename strips directory components from name. It returns "" when
// nothing usable remains.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	switch base {
	case ".", "..", "/":
		return ""
	}
	return base
}

// filenameFromDisposition understands both the RFC 5987 extended form
// (filename*=UTF-8''...) and the plain filename parameter.
func filenameFromDisposition(cd string) string {
	if cd == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}
	// Lenient fallback for headers mime rejects, e.g. unquoted names with spaces.
	if m := extendedFilenameRe.FindStringSubmatch(cd); m != nil {
		if name, err := url.PathUnescape(strings.TrimSpace(m[1])); err == nil {
			return name
		}
	}
	if m := plainFilenameRe.FindStringSubmatch(cd); m != nil {
		return m[1]
	}
	return ""
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return ""
	}
	return path.Base(u.Path)
}
