package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxColumns bounds the column count accepted from callers.
const MaxColumns = 1024

// ValidateTileID validates a tile identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTileID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "tile id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "tile id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tile id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateColumns validates a grid column count.
func ValidateColumns(columns int) error {
	if columns <= 0 {
		return New(ErrCodeInvalidInput, "column count must be positive, got %d", columns)
	}
	if columns > MaxColumns {
		return New(ErrCodeInvalidInput, "column count too large (max %d), got %d", MaxColumns, columns)
	}
	return nil
}

// ValidateTileSize validates a tile's pixel dimensions. Both must be finite
// and positive.
func ValidateTileSize(id string, width, height float64) error {
	if !finite(width) || !finite(height) {
		return New(ErrCodeInvalidInput, "tile %q must have a finite size, got %gx%g", id, width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "tile %q must have positive size, got %gx%g", id, width, height)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateInputFilename validates the name of a tile-set or config file.
// Only the extension matters; supported extensions are .json, .yaml, .yml and .toml.
func ValidateInputFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "input path contains invalid characters")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported file type %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
}
