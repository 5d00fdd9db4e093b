package common

import (
	"net/url"
	"path"
	"strings"
)

// IsImageFormat returns true if the file name or URL ends with one of the supported image extensions
// (png, jpg, jpeg). Query strings and fragments of URLs are ignored.
func IsImageFormat(nameOrURL string) bool {
	if parsed, err := url.Parse(nameOrURL); err == nil && parsed.Path != "" {
		nameOrURL = parsed.Path
	}
	switch strings.ToLower(path.Ext(nameOrURL)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
