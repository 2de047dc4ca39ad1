package pak

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"bare", ErrInvalidConfig, "[PAK-CFG-4002] invalid configuration"},
		{"details", ErrUnknownDigest.WithDetails("md5"), "[PAK-CFG-4040] unknown digest: md5"},
		{"cause", ErrRandomnessUnavailable.WithCause(errors.New("eof")), "[PAK-RNG-5000] randomness unavailable: eof"},
		{"both", ErrInvalidConfig.WithDetails("x").WithCause(errors.New("y")), "[PAK-CFG-4002] invalid configuration: x: y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_WithDetailsDoesNotMutate(t *testing.T) {
	_ = ErrUnknownDigest.WithDetails("md5")
	if ErrUnknownDigest.Details != "" {
		t.Errorf("sentinel was mutated: %q", ErrUnknownDigest.Details)
	}
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("read failed")
	err := fmt.Errorf("generate: %w", ErrRandomnessUnavailable.WithCause(cause))

	if !errors.Is(err, ErrRandomnessUnavailable) {
		t.Error("wrapped error should match its sentinel")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("error matched an unrelated sentinel")
	}
}

func TestMalformedKeyError(t *testing.T) {
	err := error(&MalformedKeyError{Segments: 4})

	if err.Error() != "[PAK-KEY-4000] malformed key text: expected 3 parts, got 4" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrMalformedKey) {
		t.Error("should match ErrMalformedKey")
	}
	if errors.Is(err, ErrIncompleteConfig) {
		t.Error("should not match ErrIncompleteConfig")
	}
}

func TestMissingFieldError(t *testing.T) {
	err := error(&MissingFieldError{Field: FieldDigest})

	if err.Error() != "[PAK-CFG-4001] incomplete configuration: expected digest to be set, but wasn't" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrIncompleteConfig) {
		t.Error("should match ErrIncompleteConfig")
	}
}

func TestIsErrorAndErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"malformed", &MalformedKeyError{Segments: 2}, "PAK-KEY-4000"},
		{"missing field", &MissingFieldError{Field: FieldPrefix}, "PAK-CFG-4001"},
		{"invalid", ErrInvalidConfig.WithDetails("x"), "PAK-CFG-4002"},
		{"wrapped", fmt.Errorf("ctx: %w", ErrUnknownRandomSource), "PAK-CFG-4041"},
		{"foreign", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.code {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.code)
			}
			wantIs := tt.code != ""
			if got := IsError(tt.err, ""); got != wantIs {
				t.Errorf("IsError(err, \"\") = %v, want %v", got, wantIs)
			}
			if wantIs && !IsError(tt.err, tt.code) {
				t.Errorf("IsError(err, %q) = false", tt.code)
			}
			if IsError(tt.err, "PAK-XXX-0000") {
				t.Error("IsError matched an unrelated code")
			}
		})
	}
}
