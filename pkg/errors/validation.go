package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds catalog and option identifiers.
const maxIDLength = 64

// ValidateID validates a catalog identifier (module, facade, countertop or
// carcass id). Identifiers are short, printable and free of whitespace so
// they can travel in URLs and cache keys unescaped.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "id %q contains path separators", id)
	}
	return nil
}

// ValidateDimension checks that a physical dimension in meters is finite and
// strictly positive.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidModule, "%s must be a finite number", name)
	}
	if v <= 0 {
		return New(ErrCodeInvalidModule, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateIndex checks that i addresses an element of a sequence of length n.
func ValidateIndex(i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeInvalidIndex, "index %d out of range [0, %d)", i, n)
	}
	return nil
}
