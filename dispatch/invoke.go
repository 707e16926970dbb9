package dispatch

import (
	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
)

// Invoke calls method ordinal.
//
// Omitted trailing parameters, and parameters passed as Empty, take their
// declared defaults; a required parameter that is missing fails with
// MissingRequired. Arguments are coerced to the declared parameter types.
// For a procedure call the result is discarded and Empty is returned; a
// function call on a method without a return type fails with NoReturnValue
// before the description is reached.
//
// Elements of args that the method replaced are copied back into args, so
// the caller can write out parameters back to the host. Elements the method
// left alone are not touched, even if they were coerced for the call.
func (d *Dispatcher) Invoke(ordinal int, args []variant.Value, asProcedure bool) (variant.Value, error) {
	m, err := d.Method(ordinal)
	if err != nil {
		return variant.Value{}, err
	}
	if !asProcedure && !m.HasReturn {
		return variant.Value{}, errors.NoReturnValue(ordinal)
	}

	call, err := d.prepare(m, args)
	if err != nil {
		return variant.Value{}, errors.MethodParameter(ordinal, err)
	}
	passed := make([]variant.Value, len(call))
	for i, v := range call {
		passed[i] = v.Clone()
	}

	result, err := d.desc.Invoke(ordinal, call, asProcedure)
	if err != nil {
		return variant.Value{}, errors.ExecutionFailed(ordinal, err)
	}

	for i := range args {
		if !call[i].Equal(passed[i]) {
			args[i] = call[i]
		}
	}

	if asProcedure {
		return variant.Empty(), nil
	}
	if kind, typed := m.Return.Kind(); typed && !result.IsEmpty() {
		cv, err := variant.Convert(result, kind, d.codePage)
		if err != nil {
			return variant.Value{}, errors.ExecutionFailed(ordinal, err)
		}
		result = cv
	}
	return result, nil
}

func (d *Dispatcher) prepare(m component.Method, args []variant.Value) ([]variant.Value, error) {
	if len(args) > len(m.Params) {
		return nil, errors.TooMany(len(m.Params), len(args))
	}
	call := make([]variant.Value, len(m.Params))
	copy(call, args)
	for i, p := range m.Params {
		v := call[i]
		if i >= len(args) || v.IsEmpty() {
			if p.HasDefault {
				call[i] = p.Default
				continue
			}
			if i >= len(args) {
				return nil, errors.MissingRequired(i)
			}
		}
		kind, typed := p.Type.Kind()
		if !typed {
			continue
		}
		if v.IsEmpty() {
			return nil, errors.MissingRequired(i)
		}
		cv, err := variant.Convert(v, kind, d.codePage)
		if err != nil {
			return nil, errors.New(errors.PhaseParameter, errors.KindTypeMismatch).
				Index(i).Expected(p.Type.String()).Actual(v.Kind().String()).Cause(err).Build()
		}
		call[i] = cv
	}
	return call, nil
}
