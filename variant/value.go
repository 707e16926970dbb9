package variant

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Value is a tagged union over every transportable kind. The zero Value is
// Empty.
type Value struct {
	units []uint16
	bytes []byte
	tm    Tm
	bits  uint64
	clsid [16]byte
	kind  Kind
}

func Empty() Value { return Value{} }
func Null() Value  { return Value{kind: KindNull} }

func Bool(v bool) Value {
	var b uint64
	if v {
		b = 1
	}
	return Value{kind: KindBool, bits: b}
}

func I8(v int8) Value   { return Value{kind: KindI8, bits: uint64(v)} }
func I16(v int16) Value { return Value{kind: KindI16, bits: uint64(v)} }
func I32(v int32) Value { return Value{kind: KindI32, bits: uint64(v)} }
func I64(v int64) Value { return Value{kind: KindI64, bits: uint64(v)} }
func U8(v uint8) Value  { return Value{kind: KindU8, bits: uint64(v)} }
func U16(v uint16) Value {
	return Value{kind: KindU16, bits: uint64(v)}
}
func U32(v uint32) Value { return Value{kind: KindU32, bits: uint64(v)} }
func U64(v uint64) Value { return Value{kind: KindU64, bits: v} }

func F32(v float32) Value { return Value{kind: KindF32, bits: uint64(math.Float32bits(v))} }
func F64(v float64) Value { return Value{kind: KindF64, bits: math.Float64bits(v)} }

// DateTime wraps calendar fields in struct tm form.
func DateTime(tm Tm) Value { return Value{kind: KindDateTime, tm: tm} }

// DateNumeric wraps an OLE automation serial date.
func DateNumeric(v float64) Value {
	return Value{kind: KindDateNumeric, bits: math.Float64bits(v)}
}

// String encodes s as UTF-16.
func String(s string) Value {
	return Value{kind: KindString, units: utf16.Encode([]rune(s))}
}

// UTF16 wraps code units without copying them.
func UTF16(units []uint16) Value {
	return Value{kind: KindString, units: units}
}

// Ansi wraps bytes in the host's ANSI code page without copying them.
func Ansi(b []byte) Value { return Value{kind: KindAnsiString, bytes: b} }

// Blob wraps binary data without copying it.
func Blob(b []byte) Value { return Value{kind: KindBlob, bytes: b} }

func ErrorCode(v int32) Value { return Value{kind: KindError, bits: uint64(v)} }
func HResult(v int32) Value   { return Value{kind: KindHResult, bits: uint64(v)} }

func ClassID(id [16]byte) Value { return Value{kind: KindClassID, clsid: id} }

// Kind returns the active kind.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsEmpty() bool { return v.kind == KindEmpty }
func (v Value) IsNull() bool  { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) { return v.bits != 0, v.kind == KindBool }
func (v Value) AsI8() (int8, bool)   { return int8(v.bits), v.kind == KindI8 }
func (v Value) AsI16() (int16, bool) { return int16(v.bits), v.kind == KindI16 }
func (v Value) AsI32() (int32, bool) { return int32(v.bits), v.kind == KindI32 }
func (v Value) AsI64() (int64, bool) { return int64(v.bits), v.kind == KindI64 }
func (v Value) AsU8() (uint8, bool)  { return uint8(v.bits), v.kind == KindU8 }
func (v Value) AsU16() (uint16, bool) {
	return uint16(v.bits), v.kind == KindU16
}
func (v Value) AsU32() (uint32, bool) { return uint32(v.bits), v.kind == KindU32 }
func (v Value) AsU64() (uint64, bool) { return v.bits, v.kind == KindU64 }

func (v Value) AsF32() (float32, bool) {
	return math.Float32frombits(uint32(v.bits)), v.kind == KindF32
}

func (v Value) AsF64() (float64, bool) {
	return math.Float64frombits(v.bits), v.kind == KindF64
}

func (v Value) AsTm() (Tm, bool) { return v.tm, v.kind == KindDateTime }

func (v Value) AsDateNumeric() (float64, bool) {
	return math.Float64frombits(v.bits), v.kind == KindDateNumeric
}

// AsUTF16 returns the code units of a String. The slice may alias host memory.
func (v Value) AsUTF16() ([]uint16, bool) { return v.units, v.kind == KindString }

// AsAnsi returns the bytes of an AnsiString. The slice may alias host memory.
func (v Value) AsAnsi() ([]byte, bool) { return v.bytes, v.kind == KindAnsiString }

// AsBlob returns the bytes of a Blob. The slice may alias host memory.
func (v Value) AsBlob() ([]byte, bool) { return v.bytes, v.kind == KindBlob }

func (v Value) AsErrorCode() (int32, bool) { return int32(v.bits), v.kind == KindError }
func (v Value) AsHResult() (int32, bool)   { return int32(v.bits), v.kind == KindHResult }

func (v Value) AsClassID() ([16]byte, bool) { return v.clsid, v.kind == KindClassID }

// Text decodes a String to Go text. Unpaired surrogates become U+FFFD.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return string(utf16.Decode(v.units)), true
}

// Int64 widens any integer kind to int64. ok is false for non-integers and
// for U64 values above math.MaxInt64.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindI8:
		return int64(int8(v.bits)), true
	case KindI16:
		return int64(int16(v.bits)), true
	case KindI32:
		return int64(int32(v.bits)), true
	case KindI64:
		return int64(v.bits), true
	case KindU8, KindU16, KindU32:
		return int64(v.bits), true
	case KindU64:
		if v.bits > math.MaxInt64 {
			return 0, false
		}
		return int64(v.bits), true
	}
	return 0, false
}

// Float64 widens F32, F64 and integer kinds to float64.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindF32:
		return float64(math.Float32frombits(uint32(v.bits))), true
	case KindF64:
		return math.Float64frombits(v.bits), true
	case KindU64:
		return float64(v.bits), true
	}
	if i, ok := v.Int64(); ok {
		return float64(i), true
	}
	return 0, false
}

// Len returns the payload length: code units for String, bytes for
// AnsiString and Blob, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.units)
	case KindAnsiString, KindBlob:
		return len(v.bytes)
	}
	return 0
}

// Equal compares kind and content. Floats compare by bit pattern.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty, KindNull:
		return true
	case KindDateTime:
		return v.tm == o.tm
	case KindString:
		return slices.Equal(v.units, o.units)
	case KindAnsiString, KindBlob:
		return bytes.Equal(v.bytes, o.bytes)
	case KindClassID:
		return v.clsid == o.clsid
	default:
		return v.bits == o.bits
	}
}

// Clone returns a Value that shares no memory with v.
func (v Value) Clone() Value {
	c := v
	if v.units != nil {
		c.units = slices.Clone(v.units)
	}
	if v.bytes != nil {
		c.bytes = bytes.Clone(v.bytes)
	}
	return c
}

// String formats the value for logs and diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty, KindNull:
		return v.kind.String()
	case KindBool:
		return "Bool(" + strconv.FormatBool(v.bits != 0) + ")"
	case KindI8, KindI16, KindI32, KindI64, KindU8, KindU16, KindU32:
		i, _ := v.Int64()
		return v.kind.String() + "(" + strconv.FormatInt(i, 10) + ")"
	case KindU64:
		return "U64(" + strconv.FormatUint(v.bits, 10) + ")"
	case KindF32:
		return "F32(" + strconv.FormatFloat(float64(math.Float32frombits(uint32(v.bits))), 'g', -1, 32) + ")"
	case KindF64, KindDateNumeric:
		return v.kind.String() + "(" + strconv.FormatFloat(math.Float64frombits(v.bits), 'g', -1, 64) + ")"
	case KindDateTime:
		return "DateTime(" + v.tm.String() + ")"
	case KindString:
		s, _ := v.Text()
		return "String(" + strconv.Quote(s) + ")"
	case KindAnsiString:
		return fmt.Sprintf("AnsiString(%d bytes)", len(v.bytes))
	case KindBlob:
		return fmt.Sprintf("Blob(%d bytes)", len(v.bytes))
	case KindError, KindHResult:
		return fmt.Sprintf("%s(0x%08x)", v.kind, uint32(v.bits))
	case KindClassID:
		return "ClassID(" + formatGUID(v.clsid) + ")"
	}
	return "unknown"
}

func formatGUID(id [16]byte) string {
	var b strings.Builder
	b.Grow(36)
	for i, c := range id {
		if i == 4 || i == 6 || i == 8 || i == 10 {
			b.WriteByte('-')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}
