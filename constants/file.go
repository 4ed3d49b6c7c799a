package constants

import "strings"

// AllowedSourceExtensions holds the file extensions accepted as batch sources.
var AllowedSourceExtensions = map[string]struct{}{
	"pdf": {},
}

// AllowedRosterExtensions holds the file extensions accepted as roster sources.
var AllowedRosterExtensions = map[string]struct{}{
	"txt":     {},
	"csv":     {},
	"xlsx":    {},
	"db":      {},
	"sqlite":  {},
	"sqlite3": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
