// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/go-richtext/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for unknown highlighting styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForContentTooLarge returns hints for inputs over the size limit.
func ForContentTooLarge(limit int) string {
	return format(fmt.Sprintf("limit is %d bytes; raise limits.maxInputSize or RICHTEXT_MAX_INPUT_SIZE", limit))
}

// ForBaseURL returns hints for malformed base URLs.
func ForBaseURL() string {
	return format("use an absolute http(s) URL such as https://example.com/blog/")
}

// ForUnsupportedInput returns hints for files with unknown extensions.
func ForUnsupportedInput() string {
	return format("supported extensions: .md, .markdown, .html, .htm")
}

// filepathSlash normalizes Windows separators for substring checks.
func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
