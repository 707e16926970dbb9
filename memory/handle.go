package memory

// Kind is the payload type a buffer was allocated for.
type Kind uint8

const (
	KindString Kind = iota // UTF-16 code units
	KindAnsi               // code page bytes
	KindBlob               // raw bytes
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindAnsi:
		return "ansi"
	case KindBlob:
		return "blob"
	}
	return "unknown"
}

// Handle identifies one host buffer. Len counts code units for strings and
// bytes otherwise.
type Handle struct {
	Addr uint64
	Len  uint32
	Kind Kind
}

// Size returns the buffer size in bytes.
func (h Handle) Size() uint64 {
	if h.Kind == KindString {
		return uint64(h.Len) * 2
	}
	return uint64(h.Len)
}

// IsZero reports whether h refers to no buffer.
func (h Handle) IsZero() bool { return h.Addr == 0 }
