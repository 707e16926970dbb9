package wire

// Tag is the record's type discriminant.
type Tag uint16

const (
	TagEmpty     Tag = 0
	TagNull      Tag = 1
	TagI2        Tag = 2
	TagI4        Tag = 3
	TagR4        Tag = 4
	TagR8        Tag = 5
	TagDate      Tag = 6
	TagTM        Tag = 7
	TagPStr      Tag = 8
	TagInterface Tag = 9
	TagError     Tag = 10
	TagBool      Tag = 11
	TagI1        Tag = 12
	TagUI1       Tag = 13
	TagUI2       Tag = 14
	TagUI4       Tag = 15
	TagI8        Tag = 16
	TagUI8       Tag = 17
	TagInt       Tag = 18
	TagUInt      Tag = 19
	TagHResult   Tag = 20
	TagPWStr     Tag = 21
	TagBlob      Tag = 22
	TagCLSID     Tag = 23
	TagUndefined Tag = 0xFFFF
)

var tagNames = [...]string{
	TagEmpty:     "VTYPE_EMPTY",
	TagNull:      "VTYPE_NULL",
	TagI2:        "VTYPE_I2",
	TagI4:        "VTYPE_I4",
	TagR4:        "VTYPE_R4",
	TagR8:        "VTYPE_R8",
	TagDate:      "VTYPE_DATE",
	TagTM:        "VTYPE_TM",
	TagPStr:      "VTYPE_PSTR",
	TagInterface: "VTYPE_INTERFACE",
	TagError:     "VTYPE_ERROR",
	TagBool:      "VTYPE_BOOL",
	TagI1:        "VTYPE_I1",
	TagUI1:       "VTYPE_UI1",
	TagUI2:       "VTYPE_UI2",
	TagUI4:       "VTYPE_UI4",
	TagI8:        "VTYPE_I8",
	TagUI8:       "VTYPE_UI8",
	TagInt:       "VTYPE_INT",
	TagUInt:      "VTYPE_UINT",
	TagHResult:   "VTYPE_HRESULT",
	TagPWStr:     "VTYPE_PWSTR",
	TagBlob:      "VTYPE_BLOB",
	TagCLSID:     "VTYPE_CLSID",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	if t == TagUndefined {
		return "VTYPE_UNDEFINED"
	}
	return "VTYPE_UNKNOWN"
}

// OwnsBuffer reports whether a record with this tag points at a host buffer
// that the record's owner must free.
func (t Tag) OwnsBuffer() bool {
	return t == TagPStr || t == TagPWStr || t == TagBlob
}
