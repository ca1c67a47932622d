package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidStampRule, "stamp rule %d: startRow is not supported", 2)
	if got, want := err.Error(), "INVALID_STAMP_RULE: stamp rule 2: startRow is not supported"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeInvalidFormat, cause, "decode %s", "tiles.yaml")
	if got, want := wrapped.Error(), "INVALID_FORMAT: decode tiles.yaml: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) || errors.Unwrap(wrapped) != cause {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestCodeLookup(t *testing.T) {
	skip := New(ErrCodeOutOfBounds, "companion c3 has no target at (4, 0)")
	outer := fmt.Errorf("relocate: %w", skip)

	tests := []struct {
		name     string
		err      error
		code     Code
		wantCode Code
		wantMsg  string
	}{
		{"direct", skip, ErrCodeOutOfBounds, ErrCodeOutOfBounds, "companion c3 has no target at (4, 0)"},
		{"behind fmt wrap", outer, ErrCodeOutOfBounds, ErrCodeOutOfBounds, "companion c3 has no target at (4, 0)"},
		{"plain", errors.New("disk full"), ErrCodeInternal, "", "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := Is(tt.err, tt.code); got != (tt.wantCode != "") {
				t.Errorf("Is(%s) = %v", tt.code, got)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
	if Is(skip, ErrCodeProtocolViolation) {
		t.Error("Is should not match a different code")
	}
}

func TestIsConfiguration(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"stamp rule", New(ErrCodeInvalidStampRule, "bad"), true},
		{"tile set", New(ErrCodeInvalidInput, "duplicate tile id"), true},
		{"format", New(ErrCodeInvalidFormat, "bad yaml"), true},
		{"config", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"), true},
		{"protocol violation", New(ErrCodeProtocolViolation, "skip"), false},
		{"out of bounds", New(ErrCodeOutOfBounds, "skip"), false},
		{"missing file", New(ErrCodeFileNotFound, "tiles.yaml"), false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfiguration(tt.err); got != tt.want {
				t.Errorf("IsConfiguration() = %v, want %v", got, tt.want)
			}
		})
	}
}
