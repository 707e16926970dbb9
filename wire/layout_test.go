package wire

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/wippyai/nativeapi-go/errors"
)

func TestLayouts(t *testing.T) {
	tests := []struct {
		name     string
		layout   Layout
		union    uint32
		elements uint32
		tag      uint32
		size     uint32
		gmtoff   uint32
		zone     uint32
	}{
		{"unix/64", Unix64, 56, 56, 60, 64, 40, 48},
		{"windows/64", Windows64, 40, 40, 44, 48, 0, 0},
		{"unix/32", Unix32, 48, 48, 52, 56, 36, 40},
		{"windows/32", Windows32, 40, 40, 44, 48, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.layout
			if l.String() != tt.name {
				t.Errorf("String() = %q", l.String())
			}
			if l.UnionSize != tt.union || l.ElementsOffset != tt.elements || l.TagOffset != tt.tag || l.Size != tt.size {
				t.Errorf("got union=%d elements=%d tag=%d size=%d, want %d %d %d %d",
					l.UnionSize, l.ElementsOffset, l.TagOffset, l.Size,
					tt.union, tt.elements, tt.tag, tt.size)
			}
			if l.HasZone != (l.Family == FamilyUnix) {
				t.Errorf("HasZone = %v", l.HasZone)
			}
			if l.HasZone && (l.GMTOffOffset != tt.gmtoff || l.ZoneOffset != tt.zone) {
				t.Errorf("gmtoff=%d zone=%d, want %d %d", l.GMTOffOffset, l.ZoneOffset, tt.gmtoff, tt.zone)
			}
			if l.LenOffset != l.PtrSize {
				t.Errorf("LenOffset = %d", l.LenOffset)
			}
			if err := l.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestNewLayout_Invalid(t *testing.T) {
	if _, err := NewLayout(FamilyUnix, 2); errors.KindOf(err) != errors.KindInvalidConfig {
		t.Errorf("ptr size 2 err = %v", err)
	}
	if _, err := NewLayout(Family(9), 8); errors.KindOf(err) != errors.KindInvalidConfig {
		t.Errorf("family 9 err = %v", err)
	}
	bad := Unix64
	bad.TagOffset = 58
	if err := bad.Validate(); errors.KindOf(err) != errors.KindInvalidConfig {
		t.Errorf("tampered layout err = %v", err)
	}
}

func TestNative(t *testing.T) {
	l := Native()
	if l.PtrSize != uint32(unsafe.Sizeof(uintptr(0))) {
		t.Errorf("PtrSize = %d", l.PtrSize)
	}
	if (runtime.GOOS == "windows") != (l.Family == FamilyWindows) {
		t.Errorf("Family = %v on %s", l.Family, runtime.GOOS)
	}
	if l.Terminated() != (runtime.GOOS == "windows") {
		t.Error("Terminated mismatch")
	}
}

func TestTag_String(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagEmpty, "VTYPE_EMPTY"},
		{TagPWStr, "VTYPE_PWSTR"},
		{TagCLSID, "VTYPE_CLSID"},
		{TagUndefined, "VTYPE_UNDEFINED"},
		{Tag(100), "VTYPE_UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
	for _, tag := range []Tag{TagPStr, TagPWStr, TagBlob} {
		if !tag.OwnsBuffer() {
			t.Errorf("%v should own a buffer", tag)
		}
	}
	if TagI4.OwnsBuffer() || TagInterface.OwnsBuffer() {
		t.Error("scalar tags should not own buffers")
	}
}
