package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDuplicateVertex, "vertex %q already exists", "a")

	if err.Code != ErrCodeDuplicateVertex {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDuplicateVertex)
	}

	if err.Message != `vertex "a" already exists` {
		t.Errorf("Message = %v, want %v", err.Message, `vertex "a" already exists`)
	}

	expected := `DUPLICATE_VERTEX: vertex "a" already exists`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to reach redis")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeSelfLoop, "test"),
			code:     ErrCodeSelfLoop,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSelfLoop, "test"),
			code:     ErrCodeDuplicateEdge,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeNotPath, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnrealizable, "test"), ErrCodeUnrealizable},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{ErrCodeDuplicateVertex, KindUserInput},
		{ErrCodeMissingEndpoint, KindUserInput},
		{ErrCodeSelfLoop, KindUserInput},
		{ErrCodeDuplicateEdge, KindUserInput},
		{ErrCodeTooManyVertices, KindUserInput},
		{ErrCodeNotPath, KindPrecondition},
		{ErrCodeNotCycle, KindPrecondition},
		{ErrCodeCrossingsOutOfRange, KindPrecondition},
		{ErrCodeUnrealizable, KindPrecondition},
		{ErrCodeUnknownEntity, KindInternal},
		{ErrCodeNetwork, KindInternal},
		{Code("SOMETHING_ELSE"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := KindOf(tt.code); got != tt.want {
				t.Errorf("KindOf(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(Wrap(ErrCodeNotCycle, nil, "x")); got != KindPrecondition {
		t.Errorf("GetKind() = %v, want %v", got, KindPrecondition)
	}
	if got := GetKind(errors.New("plain")); got != KindInternal {
		t.Errorf("GetKind(plain) = %v, want %v", got, KindInternal)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
