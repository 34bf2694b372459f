package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxPatternLength bounds the length of a single gridded permutation in
// external input. Containment checks are exponential in it.
const MaxPatternLength = 16

// MaxCoordinate bounds cell coordinates in external input.
const MaxCoordinate = 1024

// MaxCells bounds the grid area of a tiling read from external input. Every
// cell of the grid is materialised while a tiling is built and separated.
const MaxCells = 4096

// ValidatePattern checks that patt is a permutation of 0..len(patt)-1 of
// reasonable length.
func ValidatePattern(patt []int) error {
	if len(patt) > MaxPatternLength {
		return New(ErrCodeInvalidTiling, "pattern too long (max %d points)", MaxPatternLength)
	}
	seen := make([]bool, len(patt))
	for _, v := range patt {
		if v < 0 || v >= len(patt) || seen[v] {
			return New(ErrCodeInvalidTiling, "pattern %v is not a permutation of 0..%d", patt, len(patt)-1)
		}
		seen[v] = true
	}
	return nil
}

// ValidateCell checks that a cell coordinate pair is within bounds.
func ValidateCell(col, row int) error {
	if col < 0 || row < 0 {
		return New(ErrCodeInvalidTiling, "cell (%d,%d) has a negative coordinate", col, row)
	}
	if col > MaxCoordinate || row > MaxCoordinate {
		return New(ErrCodeInvalidTiling, "cell (%d,%d) is out of range (max %d)", col, row, MaxCoordinate)
	}
	return nil
}

// ValidateGrid checks that a cols x rows grid fits within MaxCells.
func ValidateGrid(cols, rows int) error {
	if cols*rows > MaxCells {
		return New(ErrCodeInvalidTiling, "grid of %dx%d cells is too large (max %d cells)", cols, rows, MaxCells)
	}
	return nil
}

// ValidateDimension checks a dimension selector. Valid values are "rows",
// "cols" and, if allowBoth is set, "both".
func ValidateDimension(dim string, allowBoth bool) error {
	switch dim {
	case "rows", "cols":
		return nil
	case "both":
		if allowBoth {
			return nil
		}
	}
	return New(ErrCodeInvalidDimension, "invalid dimension %q", dim)
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
