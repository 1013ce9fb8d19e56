package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateVertexID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "a", false},
		{"numeric", "42", false},
		{"underscore", "v_1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", MaxVertexIDLength+1), true},
		{"dash", "a-b", true},
		{"slash", "a/b", true},
		{"dot", "a.b", true},
		{"control char", "a\x01", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVertexID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVertexID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVertexID) {
				t.Errorf("ValidateVertexID(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	if err := ValidateCoordinate(1, -2); err != nil {
		t.Errorf("ValidateCoordinate(1, -2) = %v", err)
	}
	if err := ValidateCoordinate(math.NaN(), 0); err == nil {
		t.Error("ValidateCoordinate(NaN, 0) = nil, want error")
	}
	if err := ValidateCoordinate(0, math.Inf(1)); err == nil {
		t.Error("ValidateCoordinate(0, +Inf) = nil, want error")
	}
}

func TestValidateCrossingTarget(t *testing.T) {
	tests := []struct {
		k, max  int
		wantErr bool
	}{
		{0, 0, false},
		{3, 6, false},
		{6, 6, false},
		{-1, 6, true},
		{7, 6, true},
	}

	for _, tt := range tests {
		err := ValidateCrossingTarget(tt.k, tt.max)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCrossingTarget(%d, %d) error = %v, wantErr %v", tt.k, tt.max, err, tt.wantErr)
		}
		if err != nil && GetKind(err) != KindPrecondition {
			t.Errorf("ValidateCrossingTarget kind = %v, want %v", GetKind(err), KindPrecondition)
		}
	}
}

func TestValidateShape(t *testing.T) {
	for _, s := range []string{"path", "cycle"} {
		if err := ValidateShape(s); err != nil {
			t.Errorf("ValidateShape(%q) = %v", s, err)
		}
	}
	if err := ValidateShape("star"); !Is(err, ErrCodeInvalidShape) {
		t.Errorf("ValidateShape(star) = %v, want %s", err, ErrCodeInvalidShape)
	}
}

func TestValidateVertexCount(t *testing.T) {
	if err := ValidateVertexCount("cycle", 3, 3); err != nil {
		t.Errorf("ValidateVertexCount(cycle, 3) = %v", err)
	}
	if err := ValidateVertexCount("cycle", 2, 3); !Is(err, ErrCodeInsufficientVertices) {
		t.Errorf("ValidateVertexCount(cycle, 2) = %v", err)
	}
	if err := ValidateVertexCount("path", MaxSynthVertices, 2); err != nil {
		t.Errorf("ValidateVertexCount(path, %d) = %v", MaxSynthVertices, err)
	}
	if err := ValidateVertexCount("path", MaxSynthVertices+1, 2); !Is(err, ErrCodeTooManyVertices) {
		t.Errorf("ValidateVertexCount(path, %d) = %v, want %s", MaxSynthVertices+1, err, ErrCodeTooManyVertices)
	}
}
