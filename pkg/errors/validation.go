package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateViewport checks that a viewport has finite, positive dimensions.
func ValidateViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport dimensions must be finite, got %vx%v", width, height)
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport dimensions must be positive, got %vx%v", width, height)
	}
	return nil
}

// ValidateFontSize checks a style font size. Zero means "use the default".
func ValidateFontSize(name string, size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) || size < 0 {
		return New(ErrCodeInvalidStyle, "%s must be a non-negative number, got %v", name, size)
	}
	if size > 200 {
		return New(ErrCodeInvalidStyle, "%s too large (max 200), got %v", name, size)
	}
	return nil
}

// ValidateColumnName validates a column binding supplied by a user.
//
// Validation rules:
//   - No control characters
//   - Maximum length of 256 characters
//
// An empty name is valid and selects the positional default.
func ValidateColumnName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "column name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}
	return nil
}

// ValidateTablePath validates the path of a table source file: it must be
// non-empty, free of null bytes, and carry a supported extension.
func ValidateTablePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "path contains invalid characters")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json", ".parquet":
		return nil
	}
	return New(ErrCodeUnsupported, "unsupported table file %q (want .csv, .json or .parquet)", filepath.Base(path))
}
