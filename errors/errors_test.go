package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseParameter,
				Kind:     KindTypeMismatch,
				Name:     "Add",
				Index:    1,
				HasIndex: true,
				Expected: "I32",
				Actual:   "String",
				Detail:   "cannot coerce",
			},
			contains: []string{"[parameter]", "type_mismatch", `"Add"`, "#1", "expected I32", "got String", "cannot coerce"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseProperty,
				Kind:  KindNotFound,
			},
			contains: []string{"[property]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMemory,
				Kind:   KindAllocationFailed,
				Detail: "host refused",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[memory]", "allocation_failed", "host refused", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ExecutionFailed(2, cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause in chain")
	}
}

func TestError_Is(t *testing.T) {
	err := PropertyNotReadable(4)

	if !errors.Is(err, ErrNotReadable) {
		t.Error("expected match with sentinel of same phase and kind")
	}
	if errors.Is(err, ErrNotWritable) {
		t.Error("unexpected match with different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseMethod, Kind: KindNotReadable}) {
		t.Error("unexpected match with different phase")
	}
	if errors.Is(err, errors.New("other")) {
		t.Error("unexpected match with non-Error target")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseParameter, KindInvalidValue).
		Name("Divide").
		Index(1).
		Expected("non-zero").
		Value(0).
		Cause(cause).
		Detail("divisor %d", 0).
		Build()

	if err.Phase != PhaseParameter || err.Kind != KindInvalidValue {
		t.Errorf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if err.Name != "Divide" {
		t.Errorf("Name = %q", err.Name)
	}
	if !err.HasIndex || err.Index != 1 {
		t.Errorf("Index = %d (set=%v)", err.Index, err.HasIndex)
	}
	if err.Detail != "divisor 0" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Value != 0 {
		t.Errorf("Value = %v", err.Value)
	}
	if err.Cause != cause {
		t.Error("Cause not set")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"PropertyNotFound", PropertyNotFound("X"), PhaseProperty, KindNotFound},
		{"PropertyOutOfBounds", PropertyOutOfBounds(9, 3), PhaseProperty, KindIndexOutOfBounds},
		{"PropertyNotReadable", PropertyNotReadable(0), PhaseProperty, KindNotReadable},
		{"PropertyNotWritable", PropertyNotWritable(0), PhaseProperty, KindNotWritable},
		{"InvalidPropertyValue", InvalidPropertyValue(0, nil), PhaseProperty, KindInvalidValue},
		{"PropertyAliasNotFound", PropertyAliasNotFound(0, 5), PhaseProperty, KindAliasNotFound},
		{"MethodNotFound", MethodNotFound("Y"), PhaseMethod, KindNotFound},
		{"MethodOutOfBounds", MethodOutOfBounds(7, 2), PhaseMethod, KindIndexOutOfBounds},
		{"NoReturnValue", NoReturnValue(1), PhaseMethod, KindNoReturnValue},
		{"MethodParameter", MethodParameter(1, nil), PhaseMethod, KindParameterError},
		{"ExecutionFailed", ExecutionFailed(1, nil), PhaseMethod, KindExecutionFailed},
		{"MethodAliasNotFound", MethodAliasNotFound(1, 2), PhaseMethod, KindAliasNotFound},
		{"AllocationFailed", AllocationFailed(64), PhaseMemory, KindAllocationFailed},
		{"FreeFailed", FreeFailed(0x10, nil), PhaseMemory, KindFreeFailed},
		{"InvalidAddress", InvalidAddress(0), PhaseMemory, KindInvalidAddress},
		{"Corruption", Corruption("double free"), PhaseMemory, KindCorruption},
		{"ParamOutOfBounds", ParamOutOfBounds(3, 2), PhaseParameter, KindIndexOutOfBounds},
		{"TypeMismatch", TypeMismatch(0, "I32", "Blob"), PhaseParameter, KindTypeMismatch},
		{"InvalidParamValue", InvalidParamValue(0, "negative"), PhaseParameter, KindInvalidValue},
		{"MissingRequired", MissingRequired(1), PhaseParameter, KindMissingRequired},
		{"TooMany", TooMany(2, 3), PhaseParameter, KindTooMany},
		{"Conversion", Conversion(KindDateTime, "month %d", 13), PhaseConvert, KindDateTime},
		{"Unsupported", Unsupported("Blob", "F64"), PhaseConvert, KindUnsupported},
		{"AlreadyInitialized", AlreadyInitialized(), PhaseInit, KindAlreadyInitialized},
		{"NotInitialized", NotInitialized("object"), PhaseInit, KindNotInitialized},
		{"ConnectionFailed", ConnectionFailed("nil connection"), PhaseInit, KindConnectionFailed},
		{"InvalidConfig", InvalidConfig("code page %q", "x"), PhaseInit, KindInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	inner := MissingRequired(1)
	outer := MethodParameter(0, inner)

	if got := KindOf(outer); got != KindParameterError {
		t.Errorf("KindOf(outer) = %s", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %s", got)
	}
	if !errors.Is(outer, ErrMissingRequired) {
		t.Error("errors.Is should see MissingRequired through the cause chain")
	}
}

func TestIsAs(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", MissingRequired(1))
	if !Is(err, ErrMissingRequired) {
		t.Error("Is did not match through fmt wrapping")
	}
	var e *Error
	if !As(err, &e) || e.Index != 1 {
		t.Errorf("As = %+v", e)
	}
}
