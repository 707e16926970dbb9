// Package errors provides the structured error taxonomy of the add-in runtime.
//
// Errors are categorized by Phase (which layer produced them) and Kind (the
// taxonomy leaf). The Error type carries the descriptor name or ordinal, the
// expected and actual types and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParameter, errors.KindTypeMismatch).
//		Index(1).
//		Expected("I32").
//		Actual("String").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.PropertyNotReadable(3)
//	err := errors.AllocationFailed(128)
//
// Every layer returns these errors; only the host-facing adapter collapses
// them into the host's boolean convention. All errors support errors.Is/As,
// and the exported sentinels match any error with the same Phase and Kind:
//
//	if errors.Is(err, errors.ErrMissingRequired) { ... }
package errors
