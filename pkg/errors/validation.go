package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateLegendName validates a legend name used for series-to-legend
// references and store lookups.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateLegendName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "legend name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "legend name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "legend name contains invalid control characters")
		}
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB hex color literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color literal as used in chart documents.
// The empty string is allowed and means "use the palette default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q (expected #RGB or #RRGGBB)", color)
	}

	return nil
}

// ValidateSpacingPercent validates a spacing value expressed as a percentage
// of the reference glyph. Spacing outside 0-100 is a configuration error.
func ValidateSpacingPercent(what string, pct int) error {
	if pct < 0 || pct > 100 {
		return New(ErrCodeInvalidSpacing, "%s spacing %d%% outside 0-100", what, pct)
	}
	return nil
}

// ValidatePath validates a chart document path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
