package errors

import (
	"math"
	"strings"
	"unicode"
)

// Bounds on the bar array. MaxArraySize keeps a single frame drawable on a
// terminal and bounds the merge buffer.
const (
	MaxArraySize = 4096
	MaxBarValue  = 1 << 20
)

// Bounds on the pacing multiplier.
const (
	MinSpeed = 1.0 / 64
	MaxSpeed = 64
)

// ValidateAlgorithmID performs the cheap syntactic checks on an algorithm
// identifier received from a user. Whether the identifier names a known
// algorithm is decided by the sorting package.
func ValidateAlgorithmID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAlgorithm, "algorithm cannot be empty")
	}
	if len(id) > 32 {
		return New(ErrCodeInvalidAlgorithm, "algorithm name too long (max 32 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidAlgorithm, "algorithm name contains invalid characters")
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidAlgorithm, "algorithm name cannot contain path separators")
	}
	return nil
}

// ValidateArraySize checks the number of bars in the working array.
func ValidateArraySize(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "array size must be at least 1, got %d", n)
	}
	if n > MaxArraySize {
		return New(ErrCodeInvalidInput, "array size too large (max %d), got %d", MaxArraySize, n)
	}
	return nil
}

// ValidateMaxValue checks the exclusive upper bound of generated bar heights.
func ValidateMaxValue(v int) error {
	if v < 1 {
		return New(ErrCodeInvalidInput, "max value must be at least 1, got %d", v)
	}
	if v > MaxBarValue {
		return New(ErrCodeInvalidInput, "max value too large (max %d), got %d", MaxBarValue, v)
	}
	return nil
}

// ValidateSpeed checks a pacing multiplier. 2.0 runs twice as fast as the
// tuned pacing, 0.5 half as fast.
func ValidateSpeed(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return New(ErrCodeInvalidInput, "speed must be a positive number, got %v", s)
	}
	if s < MinSpeed || s > MaxSpeed {
		return New(ErrCodeInvalidInput, "speed must be between %v and %v, got %v", MinSpeed, MaxSpeed, s)
	}
	return nil
}
