package hostmem

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/nativeapi-go/errors"
)

// WazeroMemory adapts a wazero linear memory. Addresses above 4 GiB are
// rejected.
type WazeroMemory struct {
	Mem api.Memory
}

// NewWazeroMemory wraps mem. It returns nil for a nil memory.
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	if mem == nil {
		return nil
	}
	return &WazeroMemory{Mem: mem}
}

func offset(addr uint64, n uint32) (uint32, error) {
	if addr+uint64(n) > math.MaxUint32 {
		return 0, errors.New(errors.PhaseMemory, errors.KindInvalidAddress).
			Value(addr).Detail("address 0x%x outside 32-bit linear memory", addr).Build()
	}
	return uint32(addr), nil
}

func outOfBounds(addr uint64, n uint32) error {
	return errors.New(errors.PhaseMemory, errors.KindInvalidAddress).
		Value(addr).Detail("memory access out of bounds: offset=%d, length=%d", addr, n).Build()
}

func (m *WazeroMemory) Read(addr uint64, length uint32) ([]byte, error) {
	off, err := offset(addr, length)
	if err != nil {
		return nil, err
	}
	data, ok := m.Mem.Read(off, length)
	if !ok {
		return nil, outOfBounds(addr, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(addr uint64, data []byte) error {
	off, err := offset(addr, uint32(len(data)))
	if err != nil {
		return err
	}
	if !m.Mem.Write(off, data) {
		return outOfBounds(addr, uint32(len(data)))
	}
	return nil
}

func (m *WazeroMemory) ReadU8(addr uint64) (uint8, error) {
	off, err := offset(addr, 1)
	if err != nil {
		return 0, err
	}
	v, ok := m.Mem.ReadByte(off)
	if !ok {
		return 0, outOfBounds(addr, 1)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU16(addr uint64) (uint16, error) {
	off, err := offset(addr, 2)
	if err != nil {
		return 0, err
	}
	v, ok := m.Mem.ReadUint16Le(off)
	if !ok {
		return 0, outOfBounds(addr, 2)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU32(addr uint64) (uint32, error) {
	off, err := offset(addr, 4)
	if err != nil {
		return 0, err
	}
	v, ok := m.Mem.ReadUint32Le(off)
	if !ok {
		return 0, outOfBounds(addr, 4)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU64(addr uint64) (uint64, error) {
	off, err := offset(addr, 8)
	if err != nil {
		return 0, err
	}
	v, ok := m.Mem.ReadUint64Le(off)
	if !ok {
		return 0, outOfBounds(addr, 8)
	}
	return v, nil
}

func (m *WazeroMemory) WriteU8(addr uint64, value uint8) error {
	off, err := offset(addr, 1)
	if err != nil {
		return err
	}
	if !m.Mem.WriteByte(off, value) {
		return outOfBounds(addr, 1)
	}
	return nil
}

func (m *WazeroMemory) WriteU16(addr uint64, value uint16) error {
	off, err := offset(addr, 2)
	if err != nil {
		return err
	}
	if !m.Mem.WriteUint16Le(off, value) {
		return outOfBounds(addr, 2)
	}
	return nil
}

func (m *WazeroMemory) WriteU32(addr uint64, value uint32) error {
	off, err := offset(addr, 4)
	if err != nil {
		return err
	}
	if !m.Mem.WriteUint32Le(off, value) {
		return outOfBounds(addr, 4)
	}
	return nil
}

func (m *WazeroMemory) WriteU64(addr uint64, value uint64) error {
	off, err := offset(addr, 8)
	if err != nil {
		return err
	}
	if !m.Mem.WriteUint64Le(off, value) {
		return outOfBounds(addr, 8)
	}
	return nil
}

// WazeroAllocator forwards to exported alloc(size i32) -> i32 and
// free(ptr i32) functions. A zero result from alloc means failure.
type WazeroAllocator struct {
	ctx     context.Context
	allocFn api.Function
	freeFn  api.Function
}

// NewWazeroAllocator binds the two functions to ctx for every call.
func NewWazeroAllocator(ctx context.Context, allocFn, freeFn api.Function) *WazeroAllocator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &WazeroAllocator{ctx: ctx, allocFn: allocFn, freeFn: freeFn}
}

func (a *WazeroAllocator) AllocMemory(size uint32) (uint64, bool) {
	if a.allocFn == nil {
		return 0, false
	}
	results, err := a.allocFn.Call(a.ctx, uint64(size))
	if err != nil {
		Logger().Warn("AllocMemory: alloc call failed", zap.Uint32("size", size), zap.Error(err))
		return 0, false
	}
	if len(results) == 0 || uint32(results[0]) == 0 {
		return 0, false
	}
	return uint64(uint32(results[0])), true
}

func (a *WazeroAllocator) FreeMemory(addr uint64) {
	if a.freeFn == nil || addr == 0 {
		return
	}
	if _, err := a.freeFn.Call(a.ctx, addr); err != nil {
		Logger().Warn("FreeMemory: free call failed", zap.Uint64("ptr", addr), zap.Error(err))
	}
}

// WazeroHost is a complete host backed by a wazero module instance.
type WazeroHost struct {
	*WazeroMemory
	*WazeroAllocator
}

// NewWazeroHost uses mem as host memory and the functions named allocName
// and freeName, exported by fns, as the host allocator. mem and fns may be
// the same module.
func NewWazeroHost(ctx context.Context, mem api.Memory, fns api.Module, allocName, freeName string) (*WazeroHost, error) {
	if mem == nil {
		return nil, errors.ConnectionFailed("module exports no memory")
	}
	allocFn := fns.ExportedFunction(allocName)
	if allocFn == nil {
		return nil, errors.ConnectionFailed("missing allocator export " + allocName)
	}
	freeFn := fns.ExportedFunction(freeName)
	if freeFn == nil {
		return nil, errors.ConnectionFailed("missing free export " + freeName)
	}
	return &WazeroHost{
		WazeroMemory:    NewWazeroMemory(mem),
		WazeroAllocator: NewWazeroAllocator(ctx, allocFn, freeFn),
	}, nil
}
