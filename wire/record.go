package wire

import (
	"encoding/binary"
	"math"

	nativeapi "github.com/wippyai/nativeapi-go"
	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
)

var le = binary.LittleEndian

// Record is a byte image of one variant record in a given layout. Setters
// change only the image; nothing reaches host memory until Store.
type Record struct {
	buf    []byte
	layout Layout
}

// NewRecord returns a zeroed record, which reads as Empty.
func (l Layout) NewRecord() Record {
	return Record{buf: make([]byte, l.Size), layout: l}
}

// FromBytes wraps an existing record image. b must hold at least l.Size bytes.
func (l Layout) FromBytes(b []byte) (Record, error) {
	if uint32(len(b)) < l.Size {
		return Record{}, errors.New(errors.PhaseDecode, errors.KindCorruption).
			Detail("record image is %d bytes, layout %s needs %d", len(b), l, l.Size).Build()
	}
	return Record{buf: b[:l.Size], layout: l}, nil
}

// Load copies the record at addr out of host memory.
func (l Layout) Load(mem nativeapi.Memory, addr uint64) (Record, error) {
	if addr == 0 {
		return Record{}, errors.InvalidAddress(addr)
	}
	b, err := mem.Read(addr, l.Size)
	if err != nil {
		return Record{}, errors.Wrap(errors.PhaseDecode, errors.KindInvalidAddress, err, "load variant record")
	}
	return l.FromBytes(append([]byte(nil), b...))
}

// Store writes the whole image to addr in a single write.
func (r Record) Store(mem nativeapi.Memory, addr uint64) error {
	if addr == 0 {
		return errors.InvalidAddress(addr)
	}
	if err := mem.Write(addr, r.buf); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidAddress, err, "store variant record")
	}
	return nil
}

func (r Record) Layout() Layout { return r.layout }
func (r Record) Bytes() []byte  { return r.buf }

func (r Record) Tag() Tag         { return Tag(le.Uint16(r.buf[r.layout.TagOffset:])) }
func (r Record) Elements() uint32 { return le.Uint32(r.buf[r.layout.ElementsOffset:]) }
func (r Record) SetTag(t Tag)     { le.PutUint16(r.buf[r.layout.TagOffset:], uint16(t)) }
func (r Record) SetElements(n uint32) {
	le.PutUint32(r.buf[r.layout.ElementsOffset:], n)
}

// Clear zeroes the union and element count and sets the tag.
func (r Record) Clear(t Tag) {
	clear(r.buf)
	r.SetTag(t)
}

func (r Record) Bool() bool        { return r.buf[0] != 0 }
func (r Record) U8() uint8         { return r.buf[0] }
func (r Record) U16() uint16       { return le.Uint16(r.buf) }
func (r Record) U32() uint32       { return le.Uint32(r.buf) }
func (r Record) U64() uint64       { return le.Uint64(r.buf) }
func (r Record) F32() float32      { return math.Float32frombits(r.U32()) }
func (r Record) F64() float64      { return math.Float64frombits(r.U64()) }
func (r Record) ClassID() [16]byte { return [16]byte(r.buf[:16]) }

func (r Record) SetBool(v bool) {
	r.buf[0] = 0
	if v {
		r.buf[0] = 1
	}
}

func (r Record) SetU8(v uint8)         { r.buf[0] = v }
func (r Record) SetU16(v uint16)       { le.PutUint16(r.buf, v) }
func (r Record) SetU32(v uint32)       { le.PutUint32(r.buf, v) }
func (r Record) SetU64(v uint64)       { le.PutUint64(r.buf, v) }
func (r Record) SetF32(v float32)      { r.SetU32(math.Float32bits(v)) }
func (r Record) SetF64(v float64)      { r.SetU64(math.Float64bits(v)) }
func (r Record) SetClassID(v [16]byte) { copy(r.buf, v[:]) }

// Pointer returns the buffer address of a string or blob record.
func (r Record) Pointer() uint64 {
	if r.layout.PtrSize == 4 {
		return uint64(le.Uint32(r.buf))
	}
	return le.Uint64(r.buf)
}

// Length returns the buffer length of a string or blob record, in code
// units for PWStr and bytes otherwise.
func (r Record) Length() uint32 {
	return le.Uint32(r.buf[r.layout.LenOffset:])
}

// SetBuffer stores a pointer and length.
func (r Record) SetBuffer(ptr uint64, length uint32) {
	if r.layout.PtrSize == 4 {
		le.PutUint32(r.buf, uint32(ptr))
	} else {
		le.PutUint64(r.buf, ptr)
	}
	le.PutUint32(r.buf[r.layout.LenOffset:], length)
}

// Tm reads struct tm. Zone fields stay zero on targets without them.
func (r Record) Tm() variant.Tm {
	tm := variant.Tm{
		Sec:   int32(le.Uint32(r.buf[0:])),
		Min:   int32(le.Uint32(r.buf[4:])),
		Hour:  int32(le.Uint32(r.buf[8:])),
		Mday:  int32(le.Uint32(r.buf[12:])),
		Mon:   int32(le.Uint32(r.buf[16:])),
		Year:  int32(le.Uint32(r.buf[20:])),
		Wday:  int32(le.Uint32(r.buf[24:])),
		Yday:  int32(le.Uint32(r.buf[28:])),
		Isdst: int32(le.Uint32(r.buf[32:])),
	}
	if r.layout.HasZone {
		off := r.buf[r.layout.GMTOffOffset:]
		if r.layout.PtrSize == 4 {
			tm.GMTOff = int64(int32(le.Uint32(off)))
		} else {
			tm.GMTOff = int64(le.Uint64(off))
		}
		tm.Zone = int8(r.buf[r.layout.ZoneOffset])
	}
	return tm
}

// SetTm writes struct tm. A GMTOff that does not fit a 32-bit C long is
// truncated on unix/32.
func (r Record) SetTm(tm variant.Tm) {
	fields := [tmIntFields]int32{tm.Sec, tm.Min, tm.Hour, tm.Mday, tm.Mon, tm.Year, tm.Wday, tm.Yday, tm.Isdst}
	for i, f := range fields {
		le.PutUint32(r.buf[i*4:], uint32(f))
	}
	if r.layout.HasZone {
		off := r.buf[r.layout.GMTOffOffset:]
		if r.layout.PtrSize == 4 {
			le.PutUint32(off, uint32(int32(tm.GMTOff)))
		} else {
			le.PutUint64(off, uint64(tm.GMTOff))
		}
		r.buf[r.layout.ZoneOffset] = byte(tm.Zone)
	}
}
