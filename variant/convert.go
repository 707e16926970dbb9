package variant

import (
	"math"

	"github.com/wippyai/nativeapi-go/errors"
)

// Convert coerces v to kind when no information is lost: integers that fit
// the target width, integers exactly representable as floats, integral
// floats that fit an integer kind, F32 to F64, DateTime and DateNumeric to
// each other, and AnsiString to String and back through cp. Any other pair
// returns an Unsupported or FromNumber conversion error.
func Convert(v Value, kind Kind, cp CodePage) (Value, error) {
	if v.kind == kind {
		return v, nil
	}
	switch {
	case kind.IsInteger():
		return toInteger(v, kind)
	case kind.IsFloat():
		return toFloat(v, kind)
	case kind == KindString:
		if v.kind == KindAnsiString {
			return cp.ToString(v)
		}
	case kind == KindAnsiString:
		if v.kind == KindString {
			return cp.ToAnsi(v)
		}
	case kind == KindDateTime:
		if v.kind == KindDateNumeric {
			t, err := v.Time()
			if err != nil {
				return Value{}, err
			}
			return FromTime(t), nil
		}
	case kind == KindDateNumeric:
		if v.kind == KindDateTime {
			t, err := v.tm.Time()
			if err != nil {
				return Value{}, err
			}
			return DateNumericFromTime(t)
		}
	}
	return Value{}, errors.Unsupported(v.kind.String(), kind.String())
}

type intBounds struct {
	min int64
	max uint64
}

var intRanges = map[Kind]intBounds{
	KindI8:  {math.MinInt8, math.MaxInt8},
	KindI16: {math.MinInt16, math.MaxInt16},
	KindI32: {math.MinInt32, math.MaxInt32},
	KindI64: {math.MinInt64, math.MaxInt64},
	KindU8:  {0, math.MaxUint8},
	KindU16: {0, math.MaxUint16},
	KindU32: {0, math.MaxUint32},
	KindU64: {0, math.MaxUint64},
}

func toInteger(v Value, kind Kind) (Value, error) {
	r := intRanges[kind]
	switch {
	case v.kind == KindU64:
		if v.bits > r.max {
			return Value{}, errors.Conversion(errors.KindFromNumber, "%s does not fit %s", v, kind)
		}
		return fromUnsigned(v.bits, kind), nil
	case v.kind.IsInteger():
		i, _ := v.Int64()
		if i < r.min || i > 0 && uint64(i) > r.max {
			return Value{}, errors.Conversion(errors.KindFromNumber, "%s does not fit %s", v, kind)
		}
		return fromSigned(i, kind), nil
	case v.kind.IsFloat():
		f, _ := v.Float64()
		if f != math.Trunc(f) || f < float64(r.min) || f >= float64(r.max)+1 {
			return Value{}, errors.Conversion(errors.KindFromNumber, "%s is not an exact %s", v, kind)
		}
		if kind == KindU64 {
			return U64(uint64(f)), nil
		}
		return fromSigned(int64(f), kind), nil
	}
	return Value{}, errors.Unsupported(v.kind.String(), kind.String())
}

func toFloat(v Value, kind Kind) (Value, error) {
	const exact64 = 1 << 53
	const exact32 = 1 << 24
	limit := float64(exact64)
	if kind == KindF32 {
		limit = exact32
	}
	switch {
	case v.kind == KindF32:
		f, _ := v.AsF32()
		return F64(float64(f)), nil
	case v.kind == KindF64:
		f, _ := v.AsF64()
		if float64(float32(f)) != f && !math.IsNaN(f) {
			return Value{}, errors.Conversion(errors.KindFromNumber, "%s is not exact as F32", v)
		}
		return F32(float32(f)), nil
	case v.kind == KindU64:
		if float64(v.bits) > limit {
			return Value{}, errors.Conversion(errors.KindToNumber, "%s exceeds exact %s range", v, kind)
		}
	case v.kind.IsInteger():
		i, _ := v.Int64()
		if math.Abs(float64(i)) > limit {
			return Value{}, errors.Conversion(errors.KindToNumber, "%s exceeds exact %s range", v, kind)
		}
	default:
		return Value{}, errors.Unsupported(v.kind.String(), kind.String())
	}
	f, _ := v.Float64()
	if kind == KindF32 {
		return F32(float32(f)), nil
	}
	return F64(f), nil
}

func fromSigned(i int64, kind Kind) Value {
	switch kind {
	case KindI8:
		return I8(int8(i))
	case KindI16:
		return I16(int16(i))
	case KindI32:
		return I32(int32(i))
	case KindU8:
		return U8(uint8(i))
	case KindU16:
		return U16(uint16(i))
	case KindU32:
		return U32(uint32(i))
	case KindU64:
		return U64(uint64(i))
	}
	return I64(i)
}

func fromUnsigned(u uint64, kind Kind) Value {
	if kind == KindU64 {
		return U64(u)
	}
	return fromSigned(int64(u), kind)
}
