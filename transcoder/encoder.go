package transcoder

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/memory"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

type Encoder struct {
	layout wire.Layout
}

func NewEncoder(layout wire.Layout) *Encoder {
	return &Encoder{layout: layout}
}

func (e *Encoder) Layout() wire.Layout { return e.layout }

// staged is a record image whose buffer, if any, is allocated and filled
// but not yet visible to the host.
type staged struct {
	rec    wire.Record
	old    wire.Record
	slot   uint64
	oldPtr uint64
	buf    memory.Handle
}

// Encode writes v into the record at slot. The new buffer is filled before
// the record is written, and the slot's previous buffer is freed only once
// the record points at the new one. On error the slot keeps its previous
// contents.
func (e *Encoder) Encode(v variant.Value, slot uint64, mem Memory, gw *Gateway) error {
	s, err := e.stage(v, slot, mem, gw)
	if err != nil {
		return err
	}
	return e.publish([]staged{s}, mem, gw)
}

// EncodeAll encodes values[i] into slots[i] as one unit: either every slot
// holds its new value or every slot keeps its previous contents. Buffers
// are allocated and filled first, then every record is written, and only
// then are the previous buffers freed. A failed record write restores the
// slots already written.
func (e *Encoder) EncodeAll(values []variant.Value, slots []uint64, mem Memory, gw *Gateway) error {
	if len(values) != len(slots) {
		return errors.New(errors.PhaseEncode, errors.KindInvalidValue).
			Detail("value count mismatch: %d values for %d slots", len(values), len(slots)).
			Build()
	}

	list := memory.NewList()
	defer list.Release()

	batch := make([]staged, 0, len(values))
	for i, v := range values {
		s, err := e.stage(v, slots[i], mem, gw)
		if err != nil {
			_ = list.Free(gw)
			return err
		}
		if !s.buf.IsZero() {
			list.Add(s.buf)
		}
		batch = append(batch, s)
	}

	err := e.publish(batch, mem, gw)
	list.Reset()
	return err
}

// publish writes every staged record, then frees the buffers the records
// used to point at. Nothing is freed until every write has succeeded.
func (e *Encoder) publish(batch []staged, mem Memory, gw *Gateway) error {
	for _, s := range batch {
		if s.oldPtr != 0 {
			if err := gw.Ready(); err != nil {
				discard(batch, gw)
				return errors.FreeFailed(s.oldPtr, err)
			}
			break
		}
	}

	for i, s := range batch {
		if err := s.rec.Store(mem, s.slot); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = batch[j].old.Store(mem, batch[j].slot)
			}
			discard(batch, gw)
			return err
		}
	}

	fresh := make(map[uint64]struct{}, len(batch))
	for _, s := range batch {
		if !s.buf.IsZero() {
			fresh[s.buf.Addr] = struct{}{}
			gw.Disown(s.buf)
		}
	}
	freed := make(map[uint64]struct{}, len(batch))
	for _, s := range batch {
		if s.oldPtr == 0 {
			continue
		}
		if _, ok := fresh[s.oldPtr]; ok {
			continue
		}
		if _, ok := freed[s.oldPtr]; ok {
			continue
		}
		freed[s.oldPtr] = struct{}{}
		// The records are already published; the gateway logs a failed free.
		_ = gw.FreeAddr(s.oldPtr)
	}
	return nil
}

// discard frees the new buffers of a batch that was never published.
func discard(batch []staged, gw *Gateway) {
	for _, s := range batch {
		if !s.buf.IsZero() {
			_ = gw.Free(s.buf)
		}
	}
}

func (e *Encoder) stage(v variant.Value, slot uint64, mem Memory, gw *Gateway) (staged, error) {
	old, err := e.layout.Load(mem, slot)
	if err != nil {
		return staged{}, err
	}

	s := staged{rec: e.layout.NewRecord(), old: old, slot: slot}
	if old.Tag().OwnsBuffer() {
		s.oldPtr = old.Pointer()
	}

	rec := s.rec
	switch v.Kind() {
	case variant.KindEmpty:
		rec.SetTag(wire.TagEmpty)
	case variant.KindNull:
		rec.SetTag(wire.TagNull)
	case variant.KindBool:
		b, _ := v.AsBool()
		rec.SetBool(b)
		rec.SetTag(wire.TagBool)
	case variant.KindI8:
		i, _ := v.AsI8()
		rec.SetU8(uint8(i))
		rec.SetTag(wire.TagI1)
	case variant.KindI16:
		i, _ := v.AsI16()
		rec.SetU16(uint16(i))
		rec.SetTag(wire.TagI2)
	case variant.KindI32:
		i, _ := v.AsI32()
		rec.SetU32(uint32(i))
		rec.SetTag(wire.TagI4)
	case variant.KindI64:
		i, _ := v.AsI64()
		rec.SetU64(uint64(i))
		rec.SetTag(wire.TagI8)
	case variant.KindU8:
		u, _ := v.AsU8()
		rec.SetU8(u)
		rec.SetTag(wire.TagUI1)
	case variant.KindU16:
		u, _ := v.AsU16()
		rec.SetU16(u)
		rec.SetTag(wire.TagUI2)
	case variant.KindU32:
		u, _ := v.AsU32()
		rec.SetU32(u)
		rec.SetTag(wire.TagUI4)
	case variant.KindU64:
		u, _ := v.AsU64()
		rec.SetU64(u)
		rec.SetTag(wire.TagUI8)
	case variant.KindF32:
		f, _ := v.AsF32()
		rec.SetF32(f)
		rec.SetTag(wire.TagR4)
	case variant.KindF64:
		f, _ := v.AsF64()
		rec.SetF64(f)
		rec.SetTag(wire.TagR8)
	case variant.KindDateNumeric:
		f, _ := v.AsDateNumeric()
		rec.SetF64(f)
		rec.SetTag(wire.TagDate)
	case variant.KindDateTime:
		tm, _ := v.AsTm()
		rec.SetTm(tm)
		rec.SetTag(wire.TagTM)
	case variant.KindError:
		c, _ := v.AsErrorCode()
		rec.SetU32(uint32(c))
		rec.SetTag(wire.TagError)
	case variant.KindHResult:
		c, _ := v.AsHResult()
		rec.SetU32(uint32(c))
		rec.SetTag(wire.TagHResult)
	case variant.KindClassID:
		id, _ := v.AsClassID()
		rec.SetClassID(id)
		rec.SetTag(wire.TagCLSID)
	case variant.KindString:
		units, _ := v.AsUTF16()
		if err := e.stageBuffer(&s, utf16Bytes(units), uint32(len(units)), gw.AllocString, mem, gw); err != nil {
			return staged{}, err
		}
		rec.SetTag(wire.TagPWStr)
	case variant.KindAnsiString:
		b, _ := v.AsAnsi()
		if err := e.stageBuffer(&s, b, uint32(len(b)), gw.AllocAnsi, mem, gw); err != nil {
			return staged{}, err
		}
		rec.SetTag(wire.TagPStr)
	case variant.KindBlob:
		b, _ := v.AsBlob()
		if err := e.stageBuffer(&s, b, uint32(len(b)), gw.AllocBlob, mem, gw); err != nil {
			return staged{}, err
		}
		rec.SetTag(wire.TagBlob)
	default:
		return staged{}, errors.Unsupported(v.Kind().String(), "wire record")
	}
	return s, nil
}

func (e *Encoder) stageBuffer(s *staged, data []byte, length uint32, alloc func(uint32) (memory.Handle, error), mem Memory, gw *Gateway) error {
	if uint64(len(data)) > math.MaxUint32 {
		return errors.AllocationFailed(uint64(len(data)))
	}
	h, err := alloc(length)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if err := mem.Write(h.Addr, data); err != nil {
			_ = gw.Free(h)
			return errors.Wrap(errors.PhaseEncode, errors.KindInvalidAddress, err, "copy payload to host buffer")
		}
	}
	s.buf = h
	s.rec.SetBuffer(h.Addr, length)
	return nil
}

func utf16Bytes(units []uint16) []byte {
	b := make([]byte, 0, len(units)*2)
	for _, u := range units {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return b
}
