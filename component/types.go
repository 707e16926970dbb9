package component

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/nativeapi-go/variant"
)

// Type is the declared type of a property, parameter or return value.
type Type uint8

const (
	TypeAny Type = iota
	TypeNull
	TypeBool
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeF32
	TypeF64
	TypeDateTime
	TypeDateNumeric
	TypeString
	TypeAnsiString
	TypeBlob
	TypeError
	TypeHResult
	TypeClassID
)

var typeKinds = [...]variant.Kind{
	TypeNull:        variant.KindNull,
	TypeBool:        variant.KindBool,
	TypeI8:          variant.KindI8,
	TypeI16:         variant.KindI16,
	TypeI32:         variant.KindI32,
	TypeI64:         variant.KindI64,
	TypeU8:          variant.KindU8,
	TypeU16:         variant.KindU16,
	TypeU32:         variant.KindU32,
	TypeU64:         variant.KindU64,
	TypeF32:         variant.KindF32,
	TypeF64:         variant.KindF64,
	TypeDateTime:    variant.KindDateTime,
	TypeDateNumeric: variant.KindDateNumeric,
	TypeString:      variant.KindString,
	TypeAnsiString:  variant.KindAnsiString,
	TypeBlob:        variant.KindBlob,
	TypeError:       variant.KindError,
	TypeHResult:     variant.KindHResult,
	TypeClassID:     variant.KindClassID,
}

// Kind returns the value kind t requires. TypeAny accepts every kind and
// reports false.
func (t Type) Kind() (variant.Kind, bool) {
	if t == TypeAny || int(t) >= len(typeKinds) {
		return variant.KindEmpty, false
	}
	return typeKinds[t], true
}

// TypeOf returns the declared type matching a value kind. Empty maps to
// TypeAny.
func TypeOf(k variant.Kind) Type {
	for t, kind := range typeKinds {
		if Type(t) != TypeAny && kind == k {
			return Type(t)
		}
	}
	return TypeAny
}

// Accepts reports whether v already has the declared type.
func (t Type) Accepts(v variant.Value) bool {
	k, ok := t.Kind()
	return !ok || v.Kind() == k
}

func (t Type) String() string {
	if t == TypeAny {
		return "Any"
	}
	k, ok := t.Kind()
	if !ok {
		return "unknown"
	}
	return k.String()
}

func named(name string, kind wit.TypeDefKind) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: kind}
}

var (
	witBlob  = named("blob", &wit.List{Type: wit.U8{}})
	witAnsi  = named("ansi-string", &wit.List{Type: wit.U8{}})
	witNull  = named("null", &wit.Enum{Cases: []wit.EnumCase{{Name: "null"}}})
	witOLE   = named("ole-date", wit.F64{})
	witError = named("error-code", wit.S32{})
	witHRes  = named("hresult", wit.S32{})
	witGUID  = named("clsid", &wit.Tuple{Types: []wit.Type{
		wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{},
		wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{}, wit.U8{},
	}})
	witTm = named("tm", &wit.Record{Fields: []wit.Field{
		{Name: "sec", Type: wit.S32{}},
		{Name: "min", Type: wit.S32{}},
		{Name: "hour", Type: wit.S32{}},
		{Name: "mday", Type: wit.S32{}},
		{Name: "mon", Type: wit.S32{}},
		{Name: "year", Type: wit.S32{}},
		{Name: "wday", Type: wit.S32{}},
		{Name: "yday", Type: wit.S32{}},
		{Name: "isdst", Type: wit.S32{}},
		{Name: "gmtoff", Type: wit.S64{}},
		{Name: "zone", Type: wit.S8{}},
	}})
	witAny = named("value", &wit.Variant{Cases: []wit.Case{
		{Name: "empty"},
		{Name: "null"},
		{Name: "bool", Type: wit.Bool{}},
		{Name: "i8", Type: wit.S8{}},
		{Name: "i16", Type: wit.S16{}},
		{Name: "i32", Type: wit.S32{}},
		{Name: "i64", Type: wit.S64{}},
		{Name: "u8", Type: wit.U8{}},
		{Name: "u16", Type: wit.U16{}},
		{Name: "u32", Type: wit.U32{}},
		{Name: "u64", Type: wit.U64{}},
		{Name: "f32", Type: wit.F32{}},
		{Name: "f64", Type: wit.F64{}},
		{Name: "date-time", Type: witTm},
		{Name: "date-numeric", Type: witOLE},
		{Name: "string", Type: wit.String{}},
		{Name: "ansi-string", Type: witAnsi},
		{Name: "blob", Type: witBlob},
		{Name: "error-code", Type: witError},
		{Name: "hresult", Type: witHRes},
		{Name: "clsid", Type: witGUID},
	}})
)

// WIT returns the WebAssembly Interface Type that describes t, for
// signatures shown in tooling and generated interface files.
func (t Type) WIT() wit.Type {
	switch t {
	case TypeNull:
		return witNull
	case TypeBool:
		return wit.Bool{}
	case TypeI8:
		return wit.S8{}
	case TypeI16:
		return wit.S16{}
	case TypeI32:
		return wit.S32{}
	case TypeI64:
		return wit.S64{}
	case TypeU8:
		return wit.U8{}
	case TypeU16:
		return wit.U16{}
	case TypeU32:
		return wit.U32{}
	case TypeU64:
		return wit.U64{}
	case TypeF32:
		return wit.F32{}
	case TypeF64:
		return wit.F64{}
	case TypeDateTime:
		return witTm
	case TypeDateNumeric:
		return witOLE
	case TypeString:
		return wit.String{}
	case TypeAnsiString:
		return witAnsi
	case TypeBlob:
		return witBlob
	case TypeError:
		return witError
	case TypeHResult:
		return witHRes
	case TypeClassID:
		return witGUID
	}
	return witAny
}
