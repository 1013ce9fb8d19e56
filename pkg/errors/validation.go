package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxVertexIDLength bounds vertex identifiers accepted from callers.
const MaxVertexIDLength = 128

// ValidateVertexID validates a vertex identifier supplied by a caller.
//
// The rules are:
//   - No empty ids
//   - No control characters
//   - No '-' separator, which joins endpoint ids into edge ids
//   - No '/' or '.', which join edge ids into bend and crossing ids
//   - Maximum length of MaxVertexIDLength characters
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidVertexID, "vertex id cannot be empty")
	}
	if len(id) > MaxVertexIDLength {
		return New(ErrCodeInvalidVertexID, "vertex id too long (max %d characters)", MaxVertexIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVertexID, "vertex id contains invalid control characters")
		}
	}
	if i := strings.IndexAny(id, "-/."); i >= 0 {
		return New(ErrCodeInvalidVertexID, "vertex id contains reserved character %q", id[i])
	}
	return nil
}

// ValidateCoordinate rejects NaN and infinite coordinates.
func ValidateCoordinate(x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return New(ErrCodeInvalidInput, "coordinate (%v, %v) is not finite", x, y)
	}
	return nil
}

// ValidateCrossingTarget checks that k lies in [0, max].
func ValidateCrossingTarget(k, max int) error {
	if k < 0 || k > max {
		return New(ErrCodeCrossingsOutOfRange, "requested %d crossings, must be within [0, %d]", k, max)
	}
	return nil
}

// MaxSynthVertices bounds the size of synthesized shapes.
const MaxSynthVertices = 500

// ValidateVertexCount checks that a generated shape has at least min and at
// most MaxSynthVertices vertices.
func ValidateVertexCount(shape string, n, min int) error {
	if n < min {
		return New(ErrCodeInsufficientVertices, "%s needs at least %d vertices, got %d", shape, min, n)
	}
	if n > MaxSynthVertices {
		return New(ErrCodeTooManyVertices, "%s is limited to %d vertices, got %d", shape, MaxSynthVertices, n)
	}
	return nil
}

// ValidateShape checks a synthesized shape name against the supported set.
func ValidateShape(shape string) error {
	switch shape {
	case "path", "cycle":
		return nil
	}
	return New(ErrCodeInvalidShape, "unsupported shape %q (want path or cycle)", shape)
}
