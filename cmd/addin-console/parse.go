package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/variant"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(text string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", text)
}

// parseValue reads console input as a value of type typ. Empty input is
// Empty, which takes the parameter default.
func parseValue(text string, typ component.Type, cp variant.CodePage) (variant.Value, error) {
	if text == "" {
		return variant.Empty(), nil
	}
	switch typ {
	case component.TypeAny:
		return guessValue(text), nil
	case component.TypeNull:
		return variant.Null(), nil
	case component.TypeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.Bool(b), nil
	case component.TypeI8, component.TypeI16, component.TypeI32, component.TypeI64:
		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return variant.Value{}, err
		}
		kind, _ := typ.Kind()
		return variant.Convert(variant.I64(i), kind, cp)
	case component.TypeU8, component.TypeU16, component.TypeU32, component.TypeU64:
		u, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return variant.Value{}, err
		}
		kind, _ := typ.Kind()
		return variant.Convert(variant.U64(u), kind, cp)
	case component.TypeF32, component.TypeF64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return variant.Value{}, err
		}
		if typ == component.TypeF32 {
			return variant.F32(float32(f)), nil
		}
		return variant.F64(f), nil
	case component.TypeDateTime:
		t, err := parseTime(text)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.FromTime(t), nil
	case component.TypeDateNumeric:
		t, err := parseTime(text)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.DateNumericFromTime(t)
	case component.TypeString:
		return variant.String(text), nil
	case component.TypeAnsiString:
		return cp.ToAnsi(variant.String(text))
	case component.TypeBlob:
		b, err := hex.DecodeString(text)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.Blob(b), nil
	case component.TypeError, component.TypeHResult:
		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return variant.Value{}, err
		}
		if typ == component.TypeError {
			return variant.ErrorCode(int32(i)), nil
		}
		return variant.HResult(int32(i)), nil
	case component.TypeClassID:
		b, err := hex.DecodeString(strings.NewReplacer("-", "", "{", "", "}", "").Replace(text))
		if err != nil {
			return variant.Value{}, err
		}
		if len(b) != 16 {
			return variant.Value{}, fmt.Errorf("class id needs 16 bytes, got %d", len(b))
		}
		return variant.ClassID([16]byte(b)), nil
	}
	return variant.Value{}, fmt.Errorf("unsupported type %s", typ)
}

func guessValue(text string) variant.Value {
	if i, err := strconv.ParseInt(text, 10, 32); err == nil {
		return variant.I32(int32(i))
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return variant.I64(i)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return variant.F64(f)
	}
	if b, err := strconv.ParseBool(text); err == nil {
		return variant.Bool(b)
	}
	return variant.String(text)
}

// formatValue renders v for display.
func formatValue(v variant.Value, cp variant.CodePage) string {
	switch v.Kind() {
	case variant.KindString:
		s, _ := v.Text()
		return strconv.Quote(s)
	case variant.KindAnsiString:
		if s, err := cp.ToString(v); err == nil {
			text, _ := s.Text()
			return strconv.Quote(text) + " (ansi)"
		}
	case variant.KindBlob:
		b, _ := v.AsBlob()
		return "0x" + hex.EncodeToString(b)
	case variant.KindDateTime, variant.KindDateNumeric:
		if t, err := v.Time(); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return v.String()
}

func witTypeStr(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}
