package wire

import (
	"runtime"
	"strconv"
	"unsafe"

	"github.com/wippyai/nativeapi-go/errors"
)

// Family is the target operating system family.
type Family uint8

const (
	FamilyUnix Family = iota
	FamilyWindows
)

func (f Family) String() string {
	if f == FamilyWindows {
		return "windows"
	}
	return "unix"
}

const (
	tmIntFields = 9
	tmIntsSize  = tmIntFields * 4
	unionAlign  = 8
	guidSize    = 16
)

// Layout holds the byte offsets of one target's record.
type Layout struct {
	Family  Family
	PtrSize uint32

	UnionSize      uint32
	ElementsOffset uint32
	TagOffset      uint32
	Size           uint32

	// LenOffset is where a string or blob length follows its pointer.
	LenOffset uint32
	// GMTOffOffset and ZoneOffset are valid only when HasZone is set.
	GMTOffOffset uint32
	ZoneOffset   uint32
	HasZone      bool
}

var (
	Unix64    = mustLayout(FamilyUnix, 8)
	Unix32    = mustLayout(FamilyUnix, 4)
	Windows64 = mustLayout(FamilyWindows, 8)
	Windows32 = mustLayout(FamilyWindows, 4)
)

// NewLayout computes the record layout for a family and pointer width.
// The C long in struct tm is pointer-sized on unix.
func NewLayout(family Family, ptrSize uint32) (Layout, error) {
	if ptrSize != 4 && ptrSize != 8 {
		return Layout{}, errors.InvalidConfig("pointer size %d not supported", ptrSize)
	}
	if family != FamilyUnix && family != FamilyWindows {
		return Layout{}, errors.InvalidConfig("unknown target family %d", family)
	}

	l := Layout{Family: family, PtrSize: ptrSize, LenOffset: ptrSize}

	tmSize := uint32(tmIntsSize)
	if family == FamilyUnix {
		l.HasZone = true
		l.GMTOffOffset = align(tmIntsSize, ptrSize)
		l.ZoneOffset = l.GMTOffOffset + ptrSize
		tmSize = align(l.ZoneOffset+1, ptrSize)
	}

	union := max(tmSize, ptrSize+4, guidSize, 8)
	l.UnionSize = align(union, unionAlign)
	l.ElementsOffset = l.UnionSize
	l.TagOffset = l.ElementsOffset + 4
	l.Size = align(l.TagOffset+2, unionAlign)
	return l, nil
}

func mustLayout(family Family, ptrSize uint32) Layout {
	l, err := NewLayout(family, ptrSize)
	if err != nil {
		panic(err)
	}
	return l
}

// Native returns the layout of the running process.
func Native() Layout {
	family := FamilyUnix
	if runtime.GOOS == "windows" {
		family = FamilyWindows
	}
	return mustLayout(family, uint32(unsafe.Sizeof(uintptr(0))))
}

func (l Layout) String() string {
	return l.Family.String() + "/" + strconv.Itoa(int(l.PtrSize)*8)
}

// Validate reports whether l is one of the supported target layouts.
func (l Layout) Validate() error {
	want, err := NewLayout(l.Family, l.PtrSize)
	if err != nil {
		return err
	}
	if want != l {
		return errors.InvalidConfig("layout %s does not match the %s target", l, want)
	}
	return nil
}

// Terminated reports whether registration-path strings on this target
// carry a trailing zero code unit.
func (l Layout) Terminated() bool {
	return l.Family == FamilyWindows
}

func align(n, a uint32) uint32 {
	return (n + a - 1) &^ (a - 1)
}
