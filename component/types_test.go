package component

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/nativeapi-go/variant"
)

func TestType_Kind(t *testing.T) {
	for typ := TypeNull; typ <= TypeClassID; typ++ {
		k, ok := typ.Kind()
		if !ok {
			t.Errorf("%v has no kind", typ)
			continue
		}
		if TypeOf(k) != typ {
			t.Errorf("TypeOf(%v) = %v, want %v", k, TypeOf(k), typ)
		}
		if typ.String() != k.String() {
			t.Errorf("String() = %q, want %q", typ.String(), k.String())
		}
	}
	if _, ok := TypeAny.Kind(); ok {
		t.Error("TypeAny should have no kind")
	}
	if TypeOf(variant.KindEmpty) != TypeAny {
		t.Error("Empty should map to TypeAny")
	}
	if Type(200).String() != "unknown" {
		t.Errorf("got %q", Type(200).String())
	}
}

func TestType_Accepts(t *testing.T) {
	if !TypeAny.Accepts(variant.Blob(nil)) {
		t.Error("TypeAny should accept anything")
	}
	if !TypeI32.Accepts(variant.I32(1)) || TypeI32.Accepts(variant.I64(1)) {
		t.Error("TypeI32 accepts wrong kinds")
	}
}

func TestType_WIT(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeBool, "bool"},
		{TypeI8, "s8"},
		{TypeI32, "s32"},
		{TypeU64, "u64"},
		{TypeF64, "f64"},
		{TypeString, "string"},
		{TypeBlob, "blob"},
		{TypeAnsiString, "ansi-string"},
		{TypeDateTime, "tm"},
		{TypeDateNumeric, "ole-date"},
		{TypeHResult, "hresult"},
		{TypeClassID, "clsid"},
		{TypeNull, "null"},
		{TypeAny, "value"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := witName(tt.typ.WIT()); got != tt.want {
				t.Errorf("WIT() = %q, want %q", got, tt.want)
			}
		})
	}

	tm, ok := TypeDateTime.WIT().(*wit.TypeDef)
	if !ok {
		t.Fatal("tm should be a type definition")
	}
	rec, ok := tm.Kind.(*wit.Record)
	if !ok || len(rec.Fields) != 11 || rec.Fields[5].Name != "year" {
		t.Errorf("tm record = %+v", tm.Kind)
	}
	anyDef, _ := TypeAny.WIT().(*wit.TypeDef)
	if v, ok := anyDef.Kind.(*wit.Variant); !ok || len(v.Cases) != 21 {
		t.Errorf("value variant = %+v", anyDef.Kind)
	}
}

func witName(t wit.Type) string {
	if td, ok := t.(*wit.TypeDef); ok && td.Name != nil {
		return *td.Name
	}
	return t.TypeName()
}
