package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidAlgorithm, "unknown algorithm %q", "bogo")

	if err.Code != ErrCodeInvalidAlgorithm {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAlgorithm)
	}

	if err.Message != `unknown algorithm "bogo"` {
		t.Errorf("Message = %v, want %v", err.Message, `unknown algorithm "bogo"`)
	}

	expected := `INVALID_ALGORITHM: unknown algorithm "bogo"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrCodeCancelled, context.Canceled, "merge interrupted")

	if err.Code != ErrCodeCancelled {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCancelled)
	}

	if err.Cause != context.Canceled {
		t.Errorf("Cause = %v, want %v", err.Cause, context.Canceled)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != context.Canceled {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, context.Canceled)
	}

	if !errors.Is(err, context.Canceled) {
		t.Error("errors.Is(err, context.Canceled) = false, want true")
	}

	expected := "CANCELLED: merge interrupted: context canceled"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeBusy, "test"),
			code:     ErrCodeBusy,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeBusy, "test"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCancelled, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeCancelled,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("start sort: %w", New(ErrCodeBusy, "quick is still running")),
			code:     ErrCodeBusy,
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidConfig, "test"),
			expected: ErrCodeInvalidConfig,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeBusy, "heap is still running"),
			expected: "heap is still running",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
