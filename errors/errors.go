package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which layer produced the error
type Phase string

const (
	PhaseProperty  Phase = "property"  // property access
	PhaseMethod    Phase = "method"    // method resolution and invocation
	PhaseParameter Phase = "parameter" // argument validation
	PhaseMemory    Phase = "memory"    // host allocator gateway
	PhaseConvert   Phase = "convert"   // value conversion
	PhaseEncode    Phase = "encode"    // value to wire record
	PhaseDecode    Phase = "decode"    // wire record to value
	PhaseInit      Phase = "init"      // object lifecycle
	PhaseLibrary   Phase = "library"   // class registry
)

// Kind is the taxonomy leaf
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindIndexOutOfBounds Kind = "index_out_of_bounds"
	KindNotReadable      Kind = "not_readable"
	KindNotWritable      Kind = "not_writable"
	KindInvalidValue     Kind = "invalid_value"
	KindAliasNotFound    Kind = "alias_not_found"

	KindNoReturnValue   Kind = "no_return_value"
	KindParameterError  Kind = "parameter_error"
	KindExecutionFailed Kind = "execution_failed"

	KindAllocationFailed Kind = "allocation_failed"
	KindFreeFailed       Kind = "free_failed"
	KindInvalidAddress   Kind = "invalid_address"
	KindCorruption       Kind = "corruption"

	KindTypeMismatch    Kind = "type_mismatch"
	KindMissingRequired Kind = "missing_required"
	KindTooMany         Kind = "too_many"

	KindToString    Kind = "to_string"
	KindFromString  Kind = "from_string"
	KindToNumber    Kind = "to_number"
	KindFromNumber  Kind = "from_number"
	KindDateTime    Kind = "date_time"
	KindUnsupported Kind = "unsupported"

	KindAlreadyInitialized Kind = "already_initialized"
	KindNotInitialized     Kind = "not_initialized"
	KindConnectionFailed   Kind = "connection_failed"
	KindInvalidConfig      Kind = "invalid_config"

	KindInvalidHandle Kind = "invalid_handle"
	KindClosed        Kind = "closed"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Name     string
	Expected string
	Actual   string
	Detail   string
	Index    int
	HasIndex bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(e.Name))
	}
	if e.HasIndex {
		b.WriteString(" #")
		b.WriteString(strconv.Itoa(e.Index))
	}

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(": ")
		if e.Expected != "" && e.Actual != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Actual)
		} else if e.Expected != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		} else {
			b.WriteString("got ")
			b.WriteString(e.Actual)
		}
	}

	if e.Detail != "" {
		if e.Expected != "" || e.Actual != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Name sets the descriptor or parameter name
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Index sets the ordinal or position
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	b.err.HasIndex = true
	return b
}

// Expected sets the expected type name
func (b *Builder) Expected(t string) *Builder {
	b.err.Expected = t
	return b
}

// Actual sets the actual type name
func (b *Builder) Actual(t string) *Builder {
	b.err.Actual = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Sentinels for errors.Is; they match on Phase and Kind only.
var (
	ErrPropertyNotFound      = &Error{Phase: PhaseProperty, Kind: KindNotFound}
	ErrPropertyOutOfBounds   = &Error{Phase: PhaseProperty, Kind: KindIndexOutOfBounds}
	ErrNotReadable           = &Error{Phase: PhaseProperty, Kind: KindNotReadable}
	ErrNotWritable           = &Error{Phase: PhaseProperty, Kind: KindNotWritable}
	ErrInvalidPropertyValue  = &Error{Phase: PhaseProperty, Kind: KindInvalidValue}
	ErrPropertyAliasNotFound = &Error{Phase: PhaseProperty, Kind: KindAliasNotFound}

	ErrMethodNotFound      = &Error{Phase: PhaseMethod, Kind: KindNotFound}
	ErrMethodOutOfBounds   = &Error{Phase: PhaseMethod, Kind: KindIndexOutOfBounds}
	ErrNoReturnValue       = &Error{Phase: PhaseMethod, Kind: KindNoReturnValue}
	ErrMethodParameter     = &Error{Phase: PhaseMethod, Kind: KindParameterError}
	ErrExecutionFailed     = &Error{Phase: PhaseMethod, Kind: KindExecutionFailed}
	ErrMethodAliasNotFound = &Error{Phase: PhaseMethod, Kind: KindAliasNotFound}

	ErrAllocationFailed = &Error{Phase: PhaseMemory, Kind: KindAllocationFailed}
	ErrFreeFailed       = &Error{Phase: PhaseMemory, Kind: KindFreeFailed}
	ErrInvalidAddress   = &Error{Phase: PhaseMemory, Kind: KindInvalidAddress}
	ErrCorruption       = &Error{Phase: PhaseMemory, Kind: KindCorruption}

	ErrParamOutOfBounds  = &Error{Phase: PhaseParameter, Kind: KindIndexOutOfBounds}
	ErrTypeMismatch      = &Error{Phase: PhaseParameter, Kind: KindTypeMismatch}
	ErrInvalidParamValue = &Error{Phase: PhaseParameter, Kind: KindInvalidValue}
	ErrMissingRequired   = &Error{Phase: PhaseParameter, Kind: KindMissingRequired}
	ErrTooManyArguments  = &Error{Phase: PhaseParameter, Kind: KindTooMany}

	ErrAlreadyInitialized = &Error{Phase: PhaseInit, Kind: KindAlreadyInitialized}
	ErrNotInitialized     = &Error{Phase: PhaseInit, Kind: KindNotInitialized}
	ErrConnectionFailed   = &Error{Phase: PhaseInit, Kind: KindConnectionFailed}
	ErrInvalidConfig      = &Error{Phase: PhaseInit, Kind: KindInvalidConfig}

	ErrClassNotFound = &Error{Phase: PhaseLibrary, Kind: KindNotFound}
	ErrInvalidHandle = &Error{Phase: PhaseLibrary, Kind: KindInvalidHandle}
	ErrLibraryClosed = &Error{Phase: PhaseLibrary, Kind: KindClosed}
)

// Property errors

// PropertyNotFound reports a name that matches no property alias
func PropertyNotFound(name string) *Error {
	return &Error{Phase: PhaseProperty, Kind: KindNotFound, Name: name}
}

// PropertyOutOfBounds reports an ordinal past the end of the property table
func PropertyOutOfBounds(ordinal, count int) *Error {
	return &Error{
		Phase:    PhaseProperty,
		Kind:     KindIndexOutOfBounds,
		Index:    ordinal,
		HasIndex: true,
		Detail:   fmt.Sprintf("table has %d properties", count),
	}
}

// PropertyNotReadable reports a read of a write-only property
func PropertyNotReadable(ordinal int) *Error {
	return &Error{Phase: PhaseProperty, Kind: KindNotReadable, Index: ordinal, HasIndex: true}
}

// PropertyNotWritable reports a write of a read-only property
func PropertyNotWritable(ordinal int) *Error {
	return &Error{Phase: PhaseProperty, Kind: KindNotWritable, Index: ordinal, HasIndex: true}
}

// InvalidPropertyValue reports a value the property rejects
func InvalidPropertyValue(ordinal int, cause error) *Error {
	return &Error{Phase: PhaseProperty, Kind: KindInvalidValue, Index: ordinal, HasIndex: true, Cause: cause}
}

// PropertyAliasNotFound reports an alias index past the descriptor's aliases
func PropertyAliasNotFound(ordinal, alias int) *Error {
	return &Error{
		Phase:    PhaseProperty,
		Kind:     KindAliasNotFound,
		Index:    ordinal,
		HasIndex: true,
		Detail:   fmt.Sprintf("alias %d", alias),
		Value:    alias,
	}
}

// Method errors

// MethodNotFound reports a name that matches no method alias
func MethodNotFound(name string) *Error {
	return &Error{Phase: PhaseMethod, Kind: KindNotFound, Name: name}
}

// MethodOutOfBounds reports an ordinal past the end of the method table
func MethodOutOfBounds(ordinal, count int) *Error {
	return &Error{
		Phase:    PhaseMethod,
		Kind:     KindIndexOutOfBounds,
		Index:    ordinal,
		HasIndex: true,
		Detail:   fmt.Sprintf("table has %d methods", count),
	}
}

// NoReturnValue reports a function call on a method without a return type
func NoReturnValue(ordinal int) *Error {
	return &Error{Phase: PhaseMethod, Kind: KindNoReturnValue, Index: ordinal, HasIndex: true}
}

// MethodParameter wraps an argument validation failure
func MethodParameter(ordinal int, cause error) *Error {
	return &Error{Phase: PhaseMethod, Kind: KindParameterError, Index: ordinal, HasIndex: true, Cause: cause}
}

// ExecutionFailed wraps an error returned by the component itself
func ExecutionFailed(ordinal int, cause error) *Error {
	return &Error{Phase: PhaseMethod, Kind: KindExecutionFailed, Index: ordinal, HasIndex: true, Cause: cause}
}

// MethodAliasNotFound reports an alias index past the descriptor's aliases
func MethodAliasNotFound(ordinal, alias int) *Error {
	return &Error{
		Phase:    PhaseMethod,
		Kind:     KindAliasNotFound,
		Index:    ordinal,
		HasIndex: true,
		Detail:   fmt.Sprintf("alias %d", alias),
		Value:    alias,
	}
}

// Memory errors

// AllocationFailed reports a host allocator refusal
func AllocationFailed(size uint64) *Error {
	return &Error{
		Phase:  PhaseMemory,
		Kind:   KindAllocationFailed,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
	}
}

// FreeFailed reports a release the gateway could not perform
func FreeFailed(addr uint64, cause error) *Error {
	return &Error{
		Phase:  PhaseMemory,
		Kind:   KindFreeFailed,
		Detail: fmt.Sprintf("address 0x%x", addr),
		Value:  addr,
		Cause:  cause,
	}
}

// InvalidAddress reports a null or out-of-range host address
func InvalidAddress(addr uint64) *Error {
	return &Error{
		Phase:  PhaseMemory,
		Kind:   KindInvalidAddress,
		Detail: fmt.Sprintf("address 0x%x", addr),
		Value:  addr,
	}
}

// Corruption reports a broken ownership invariant, such as a double free
func Corruption(detail string) *Error {
	return &Error{Phase: PhaseMemory, Kind: KindCorruption, Detail: detail}
}

// Parameter errors

// ParamOutOfBounds reports a parameter position past the declared list
func ParamOutOfBounds(index, count int) *Error {
	return &Error{
		Phase:    PhaseParameter,
		Kind:     KindIndexOutOfBounds,
		Index:    index,
		HasIndex: true,
		Detail:   fmt.Sprintf("method declares %d parameters", count),
	}
}

// TypeMismatch reports an argument whose type cannot serve the declared one
func TypeMismatch(index int, expected, actual string) *Error {
	return &Error{
		Phase:    PhaseParameter,
		Kind:     KindTypeMismatch,
		Index:    index,
		HasIndex: true,
		Expected: expected,
		Actual:   actual,
	}
}

// InvalidParamValue reports an argument of the right type but unusable value
func InvalidParamValue(index int, detail string) *Error {
	return &Error{Phase: PhaseParameter, Kind: KindInvalidValue, Index: index, HasIndex: true, Detail: detail}
}

// MissingRequired reports an omitted argument that has no declared default
func MissingRequired(index int) *Error {
	return &Error{Phase: PhaseParameter, Kind: KindMissingRequired, Index: index, HasIndex: true}
}

// TooMany reports more arguments than the method declares
func TooMany(expected, actual int) *Error {
	return &Error{
		Phase:    PhaseParameter,
		Kind:     KindTooMany,
		Expected: strconv.Itoa(expected),
		Actual:   strconv.Itoa(actual),
	}
}

// Conversion errors

// Conversion creates a type conversion error of the given kind
func Conversion(kind Kind, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Phase: PhaseConvert, Kind: kind, Detail: detail}
}

// Unsupported reports a conversion between two types that has no mapping
func Unsupported(from, to string) *Error {
	return &Error{Phase: PhaseConvert, Kind: KindUnsupported, Actual: from, Expected: to}
}

// Lifecycle errors

// AlreadyInitialized reports a second Init on a live object
func AlreadyInitialized() *Error {
	return &Error{Phase: PhaseInit, Kind: KindAlreadyInitialized, Detail: "component already initialized"}
}

// NotInitialized reports use of an object before Init
func NotInitialized(what string) *Error {
	return &Error{Phase: PhaseInit, Kind: KindNotInitialized, Detail: fmt.Sprintf("%s not initialized", what)}
}

// ConnectionFailed reports a rejected host connection
func ConnectionFailed(reason string) *Error {
	return &Error{Phase: PhaseInit, Kind: KindConnectionFailed, Detail: reason}
}

// InvalidConfig reports a configuration the runtime cannot use
func InvalidConfig(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Phase: PhaseInit, Kind: KindInvalidConfig, Detail: detail}
}

// Library errors

// ClassNotFound reports a class name missing from the registry
func ClassNotFound(name string) *Error {
	return &Error{Phase: PhaseLibrary, Kind: KindNotFound, Name: name}
}

// InvalidHandle reports an object handle that is not live
func InvalidHandle(h uint32) *Error {
	return &Error{Phase: PhaseLibrary, Kind: KindInvalidHandle, Value: h, Detail: fmt.Sprintf("handle %d", h)}
}

// LibraryClosed reports use of a closed registry
func LibraryClosed() *Error {
	return &Error{Phase: PhaseLibrary, Kind: KindClosed, Detail: "library closed"}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
