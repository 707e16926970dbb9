package transcoder

import (
	"encoding/binary"
	"unsafe"

	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

var hostLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

type Decoder struct {
	layout wire.Layout
}

func NewDecoder(layout wire.Layout) *Decoder {
	return &Decoder{layout: layout}
}

func (d *Decoder) Layout() wire.Layout { return d.layout }

// Load reads the record at addr and decodes it.
func (d *Decoder) Load(addr uint64, mem Memory) (variant.Value, error) {
	rec, err := d.layout.Load(mem, addr)
	if err != nil {
		return variant.Value{}, err
	}
	return d.Decode(rec, mem)
}

// LoadOwned is Load followed by Clone; the result does not reference host
// memory.
func (d *Decoder) LoadOwned(addr uint64, mem Memory) (variant.Value, error) {
	v, err := d.Load(addr, mem)
	if err != nil {
		return variant.Value{}, err
	}
	return v.Clone(), nil
}

// Decode converts a record image. Only the payload member selected by the
// tag is read.
func (d *Decoder) Decode(rec wire.Record, mem Memory) (variant.Value, error) {
	switch rec.Tag() {
	case wire.TagEmpty:
		return variant.Empty(), nil
	case wire.TagNull:
		return variant.Null(), nil
	case wire.TagBool:
		return variant.Bool(rec.Bool()), nil
	case wire.TagI1:
		return variant.I8(int8(rec.U8())), nil
	case wire.TagI2:
		return variant.I16(int16(rec.U16())), nil
	case wire.TagI4:
		return variant.I32(int32(rec.U32())), nil
	case wire.TagI8:
		return variant.I64(int64(rec.U64())), nil
	case wire.TagUI1:
		return variant.U8(rec.U8()), nil
	case wire.TagUI2:
		return variant.U16(rec.U16()), nil
	case wire.TagUI4:
		return variant.U32(rec.U32()), nil
	case wire.TagUI8:
		return variant.U64(rec.U64()), nil
	case wire.TagR4:
		return variant.F32(rec.F32()), nil
	case wire.TagR8:
		return variant.F64(rec.F64()), nil
	case wire.TagDate:
		return variant.DateNumeric(rec.F64()), nil
	case wire.TagTM:
		return variant.DateTime(rec.Tm()), nil
	case wire.TagError:
		return variant.ErrorCode(int32(rec.U32())), nil
	case wire.TagHResult:
		return variant.HResult(int32(rec.U32())), nil
	case wire.TagCLSID:
		return variant.ClassID(rec.ClassID()), nil
	case wire.TagPWStr:
		units, err := d.borrowUnits(rec, mem)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.UTF16(units), nil
	case wire.TagPStr:
		b, err := d.borrowBytes(rec, mem, 1)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.Ansi(b), nil
	case wire.TagBlob:
		b, err := d.borrowBytes(rec, mem, 1)
		if err != nil {
			return variant.Value{}, err
		}
		return variant.Blob(b), nil
	default:
		return variant.Empty(), nil
	}
}

func (d *Decoder) borrowBytes(rec wire.Record, mem Memory, unit uint64) ([]byte, error) {
	n := uint64(rec.Length()) * unit
	if n == 0 {
		return nil, nil
	}
	ptr := rec.Pointer()
	if ptr == 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidAddress).
			Value(ptr).Detail("%s record with length %d has null pointer", rec.Tag(), rec.Length()).Build()
	}
	if n > 1<<32-1 {
		return nil, errors.New(errors.PhaseDecode, errors.KindCorruption).
			Detail("%s record length %d too large", rec.Tag(), rec.Length()).Build()
	}
	b, err := mem.Read(ptr, uint32(n))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidAddress, err, "read "+rec.Tag().String()+" payload")
	}
	return b, nil
}

// borrowUnits views the buffer as UTF-16 in place when the host byte order
// and alignment allow it, and copies otherwise.
func (d *Decoder) borrowUnits(rec wire.Record, mem Memory) ([]uint16, error) {
	b, err := d.borrowBytes(rec, mem, 2)
	if err != nil || len(b) == 0 {
		return nil, err
	}
	n := len(b) / 2
	if hostLittleEndian && uintptr(unsafe.Pointer(&b[0]))%2 == 0 {
		return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), n), nil
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return units, nil
}
