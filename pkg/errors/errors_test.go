package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %s", "gif")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}
	if err.Message != "invalid format: gif" {
		t.Errorf("Message = %v, want %v", err.Message, "invalid format: gif")
	}

	expected := "INVALID_FORMAT: invalid format: gif"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("rsvg-convert: exit status 1")
	err := Wrap(ErrCodeRenderFailed, cause, "render pdf")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if want := "RENDER_FAILED: render pdf: rsvg-convert: exit status 1"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeNotFound, "x"), ErrCodeNotFound, true},
		{"non-matching code", New(ErrCodeNotFound, "x"), ErrCodeInternal, false},
		{"outer code wins", Wrap(ErrCodeRenderFailed, New(ErrCodeUnsupported, "inner"), "outer"), ErrCodeRenderFailed, true},
		{"fmt wrapped", fmt.Errorf("ctx: %w", New(ErrCodeInvalidBackend, "x")), ErrCodeInvalidBackend, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(ErrCodeInvalidDiagram, "unknown diagram %q", "pie"))

	if got := GetCode(err); got != ErrCodeInvalidDiagram {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidDiagram)
	}
	if got := UserMessage(err); got != `unknown diagram "pie"` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(ErrCodeInvalidConfig, "x")) {
		t.Error("IsValidation(INVALID_CONFIG) = false")
	}
	if IsValidation(New(ErrCodeRenderFailed, "x")) {
		t.Error("IsValidation(RENDER_FAILED) = true")
	}
}
