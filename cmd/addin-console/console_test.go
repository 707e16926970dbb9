package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

func TestParseValue(t *testing.T) {
	cp := variant.DefaultCodePage
	tests := []struct {
		text    string
		typ     component.Type
		want    variant.Value
		wantErr bool
	}{
		{"", component.TypeI32, variant.Empty(), false},
		{"0x10", component.TypeI32, variant.I32(16), false},
		{"-5", component.TypeI8, variant.I8(-5), false},
		{"300", component.TypeU8, variant.Value{}, true},
		{"abc", component.TypeI64, variant.Value{}, true},
		{"true", component.TypeBool, variant.Bool(true), false},
		{"2.5", component.TypeF64, variant.F64(2.5), false},
		{"héllo", component.TypeString, variant.String("héllo"), false},
		{"Мир", component.TypeAnsiString, variant.Ansi([]byte{0xcc, 0xe8, 0xf0}), false},
		{"00ff", component.TypeBlob, variant.Blob([]byte{0x00, 0xff}), false},
		{"0x80004005", component.TypeHResult, variant.HResult(-2147467259), false},
		{"00112233-4455-6677-8899-aabbccddeeff", component.TypeClassID,
			variant.ClassID([16]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}), false},
		{"0011", component.TypeClassID, variant.Value{}, true},
		{"42", component.TypeAny, variant.I32(42), false},
		{"5000000000", component.TypeAny, variant.I64(5000000000), false},
		{"word", component.TypeAny, variant.String("word"), false},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.text, func(t *testing.T) {
			got, err := parseValue(tt.text, tt.typ, cp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseValue_Dates(t *testing.T) {
	v, err := parseValue("2024-02-29 13:45:00", component.TypeDateTime, variant.DefaultCodePage)
	if err != nil {
		t.Fatal(err)
	}
	got, err := v.Time()
	if err != nil || !got.Equal(time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)) {
		t.Errorf("DateTime = %v, %v", got, err)
	}

	v, err = parseValue("1899-12-31", component.TypeDateNumeric, variant.DefaultCodePage)
	if d, ok := v.AsDateNumeric(); err != nil || !ok || d != 1 {
		t.Errorf("DateNumeric = %v, %v", v, err)
	}
}

func TestSession_ReleasesHostMemory(t *testing.T) {
	for _, layout := range []wire.Layout{wire.Unix64, wire.Unix32, wire.Windows64, wire.Windows32} {
		t.Run(layout.String(), func(t *testing.T) {
			s, err := newSession(layout)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()
			entries := catalog(s.obj.Dispatcher())
			cp := variant.DefaultCodePage
			before := s.heap.Stats()

			result, _, err := callByName(s, entries, "Повторить", []string{"ab", "3"}, cp)
			if err != nil {
				t.Fatal(err)
			}
			if text, _ := result.Text(); text != "ababab" {
				t.Errorf("Repeat = %v", result)
			}

			result, _, err = callByName(s, entries, "Repeat", []string{"xy"}, cp)
			if text, _ := result.Text(); err != nil || text != "xyxy" {
				t.Errorf("Repeat with default = %v, %v", result, err)
			}

			_, out, err := callByName(s, entries, "Swap", []string{"left", "7"}, cp)
			if err != nil {
				t.Fatal(err)
			}
			if !out[0].Equal(variant.I32(7)) || !out[1].Equal(variant.String("left")) {
				t.Errorf("Swap out = %v", out)
			}

			if err := setProperty(s, entries, "Приветствие", "Привет", cp); err != nil {
				t.Fatal(err)
			}
			v, err := getProperty(s, "Greeting")
			if text, _ := v.Text(); err != nil || text != "Привет" {
				t.Errorf("Greeting = %v, %v", v, err)
			}

			if err := setProperty(s, entries, "Label", "Метка", cp); err != nil {
				t.Fatal(err)
			}
			v, _ = getProperty(s, "Label")
			if got := formatValue(v, cp); got != `"Метка" (ansi)` {
				t.Errorf("Label = %s", got)
			}

			after := s.heap.Stats()
			if after.Live != before.Live || after.BadFrees != 0 {
				t.Errorf("heap %+v -> %+v", before, after)
			}
		})
	}
}

func TestSession_Errors(t *testing.T) {
	s, err := newSession(wire.Unix64)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	entries := catalog(s.obj.Dispatcher())
	cp := variant.DefaultCodePage

	if _, _, err := callByName(s, entries, "Nope", nil, cp); err == nil {
		t.Error("unknown method succeeded")
	}
	if _, _, err := callByName(s, entries, "Repeat", []string{"a", "-1"}, cp); err == nil {
		t.Error("failing method succeeded")
	}
	if err := setProperty(s, entries, "Started", "2024-01-01", cp); err == nil {
		t.Error("read-only property written")
	}
}

func TestPrintCatalog(t *testing.T) {
	s, err := newSession(wire.Unix64)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var buf bytes.Buffer
	printCatalog(&buf, "Sample", catalog(s.obj.Dispatcher()))
	out := buf.String()
	for _, want := range []string{
		"Extension: Sample",
		"TestProp: s32 [rw]  (ТестовоеСвойство)",
		"Started: tm [r]",
		"TestMethod(a: s32, b: s32) -> s32",
		"Repeat(text: string, count: s32 = I32(2)) -> string",
		"Describe(value: value) -> string",
		"Reset()  (Сбросить)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog missing %q:\n%s", want, out)
		}
	}
}

func TestParseLayout(t *testing.T) {
	if l, err := parseLayout("windows/32"); err != nil || l != wire.Windows32 {
		t.Errorf("parseLayout = %v, %v", l, err)
	}
	if _, err := parseLayout("plan9/16"); err == nil {
		t.Error("unknown layout accepted")
	}
}
