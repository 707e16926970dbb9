package variant

// Kind identifies the active member of a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNull
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindDateTime
	KindDateNumeric
	KindString
	KindAnsiString
	KindBlob
	KindError
	KindHResult
	KindClassID
)

var kindNames = [...]string{
	KindEmpty:       "Empty",
	KindNull:        "Null",
	KindBool:        "Bool",
	KindI8:          "I8",
	KindI16:         "I16",
	KindI32:         "I32",
	KindI64:         "I64",
	KindU8:          "U8",
	KindU16:         "U16",
	KindU32:         "U32",
	KindU64:         "U64",
	KindF32:         "F32",
	KindF64:         "F64",
	KindDateTime:    "DateTime",
	KindDateNumeric: "DateNumeric",
	KindString:      "String",
	KindAnsiString:  "AnsiString",
	KindBlob:        "Blob",
	KindError:       "Error",
	KindHResult:     "HResult",
	KindClassID:     "ClassID",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsInteger reports whether k is one of the fixed-width integer kinds.
func (k Kind) IsInteger() bool {
	return k >= KindI8 && k <= KindU64
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	return k >= KindI8 && k <= KindI64
}

// IsFloat reports whether k is F32 or F64.
func (k Kind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}

// HasBuffer reports whether values of kind k carry a variable-length payload.
func (k Kind) HasBuffer() bool {
	return k == KindString || k == KindAnsiString || k == KindBlob
}
