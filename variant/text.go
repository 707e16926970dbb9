package variant

import (
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/wippyai/nativeapi-go/errors"
)

// EncodeUTF16 returns the UTF-16 code units of s without a terminator.
func EncodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// DecodeUTF16 decodes code units. Unpaired surrogates become U+FFFD.
func DecodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}

// OSString encodes s for the host. A zero terminator is appended only when
// terminate is set: registration names carry one on some targets, and names
// copied into host buffers always do.
func OSString(s string, terminate bool) []uint16 {
	u := EncodeUTF16(s)
	if terminate {
		u = append(u, 0)
	}
	return u
}

// CodePage converts between AnsiString bytes and UTF-16 text.
type CodePage struct {
	enc  encoding.Encoding
	name string
}

// DefaultCodePage is the host's usual ANSI code page.
var DefaultCodePage = CodePage{enc: charmap.Windows1251, name: "windows-1251"}

// LookupCodePage resolves a WHATWG encoding label such as "windows-1252" or
// "cp1251".
func LookupCodePage(name string) (CodePage, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return CodePage{}, errors.InvalidConfig("unknown code page %q", name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	return CodePage{enc: enc, name: canonical}, nil
}

// Name returns the canonical encoding label.
func (c CodePage) Name() string {
	if c.enc == nil {
		return DefaultCodePage.name
	}
	return c.name
}

func (c CodePage) codec() encoding.Encoding {
	if c.enc == nil {
		return DefaultCodePage.enc
	}
	return c.enc
}

// Encode converts text to the code page. Characters the code page cannot
// represent produce a FromString error.
func (c CodePage) Encode(s string) ([]byte, error) {
	b, err := c.codec().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Conversion(errors.KindFromString, "%s: %v", c.Name(), err)
	}
	return b, nil
}

// Decode converts code page bytes to text.
func (c CodePage) Decode(b []byte) (string, error) {
	s, err := c.codec().NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Conversion(errors.KindToString, "%s: %v", c.Name(), err)
	}
	return string(s), nil
}

// ToAnsi converts a String value to AnsiString. AnsiString values pass
// through unchanged.
func (c CodePage) ToAnsi(v Value) (Value, error) {
	switch v.kind {
	case KindAnsiString:
		return v, nil
	case KindString:
		b, err := c.Encode(DecodeUTF16(v.units))
		if err != nil {
			return Value{}, err
		}
		return Ansi(b), nil
	}
	return Value{}, errors.Unsupported(v.kind.String(), KindAnsiString.String())
}

// ToString converts an AnsiString value to String. String values pass
// through unchanged.
func (c CodePage) ToString(v Value) (Value, error) {
	switch v.kind {
	case KindString:
		return v, nil
	case KindAnsiString:
		s, err := c.Decode(v.bytes)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	}
	return Value{}, errors.Unsupported(v.kind.String(), KindString.String())
}
