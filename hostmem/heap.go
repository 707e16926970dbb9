package hostmem

import (
	"encoding/binary"
	"sync"

	"github.com/wippyai/nativeapi-go/errors"
)

// DefaultBase is the first address a Heap hands out. Address zero is never
// valid.
const DefaultBase = 0x10000

const heapAlign = 8

// Op is a journaled heap operation.
type Op uint8

const (
	OpAlloc Op = iota
	OpFree
	OpWrite
)

func (o Op) String() string {
	switch o {
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	case OpWrite:
		return "write"
	}
	return "unknown"
}

// Event is one journal entry.
type Event struct {
	Addr uint64
	Size uint32
	Op   Op
}

// HeapStats is a snapshot of allocator counters.
type HeapStats struct {
	Allocs    int
	Frees     int
	BadFrees  int
	Failed    int
	Live      int
	LiveBytes uint64
}

// Heap is a fake host address space and allocator. It is safe for
// concurrent use.
type Heap struct {
	live      map[uint64]uint32
	mem       []byte
	journal   []Event
	stats     HeapStats
	base      uint64
	next      uint64
	free      []block
	failAfter int
	protected map[uint64]struct{}
	reuse     bool
	mu        sync.Mutex
}

// block is a released span kept for reuse.
type block struct {
	addr    uint64
	reserve uint64
}

// NewHeap returns a heap with capacity bytes of addressable memory.
func NewHeap(capacity uint32) *Heap {
	return &Heap{
		live:      make(map[uint64]uint32),
		mem:       make([]byte, capacity),
		base:      DefaultBase,
		failAfter: -1,
	}
}

// FailAllocAfter makes every allocation after the next n fail. A negative
// n disables failure injection.
func (h *Heap) FailAllocAfter(n int) {
	h.mu.Lock()
	h.failAfter = n
	h.mu.Unlock()
}

// ReuseFreed makes the heap hand released blocks out again, most recently
// freed first, as real host allocators do. Off by default.
func (h *Heap) ReuseFreed(on bool) {
	h.mu.Lock()
	h.reuse = on
	if !on {
		h.free = nil
	}
	h.mu.Unlock()
}

// Protect makes every write starting at addr fail.
func (h *Heap) Protect(addr uint64) {
	h.mu.Lock()
	if h.protected == nil {
		h.protected = make(map[uint64]struct{})
	}
	h.protected[addr] = struct{}{}
	h.mu.Unlock()
}

func reserveOf(size uint32) uint64 {
	reserve := (uint64(size) + heapAlign - 1) &^ (heapAlign - 1)
	if reserve == 0 {
		reserve = heapAlign
	}
	return reserve
}

// AllocMemory reserves size bytes aligned to 8. Zero-sized requests still
// get a distinct address.
func (h *Heap) AllocMemory(size uint32) (uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.failAfter == 0 {
		h.stats.Failed++
		return 0, false
	}
	reserve := reserveOf(size)
	addr, ok := h.takeFree(reserve)
	if !ok {
		if h.next+reserve > uint64(len(h.mem)) {
			h.stats.Failed++
			return 0, false
		}
		addr = h.base + h.next
		h.next += reserve
	}
	if h.failAfter > 0 {
		h.failAfter--
	}

	h.live[addr] = size
	h.stats.Allocs++
	h.stats.Live++
	h.stats.LiveBytes += uint64(size)
	h.journal = append(h.journal, Event{Op: OpAlloc, Addr: addr, Size: size})
	return addr, true
}

func (h *Heap) takeFree(reserve uint64) (uint64, bool) {
	for i := len(h.free) - 1; i >= 0; i-- {
		b := h.free[i]
		if b.reserve < reserve {
			continue
		}
		h.free = append(h.free[:i], h.free[i+1:]...)
		if b.reserve > reserve {
			h.free = append(h.free, block{addr: b.addr + reserve, reserve: b.reserve - reserve})
		}
		return b.addr, true
	}
	return 0, false
}

// FreeMemory releases a live block. Freeing an unknown or already freed
// address is counted in BadFrees and otherwise ignored, as a real host
// allocator would corrupt its heap instead.
func (h *Heap) FreeMemory(addr uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	size, ok := h.live[addr]
	if !ok {
		h.stats.BadFrees++
		return
	}
	delete(h.live, addr)
	if h.reuse {
		h.free = append(h.free, block{addr: addr, reserve: reserveOf(size)})
	}
	h.stats.Frees++
	h.stats.Live--
	h.stats.LiveBytes -= uint64(size)
	h.journal = append(h.journal, Event{Op: OpFree, Addr: addr, Size: size})
}

// Stats returns a snapshot of the counters.
func (h *Heap) Stats() HeapStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// SizeOf returns the requested size of a live block.
func (h *Heap) SizeOf(addr uint64) (uint32, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	size, ok := h.live[addr]
	return size, ok
}

// Journal returns a copy of the event journal.
func (h *Heap) Journal() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.journal...)
}

// ResetJournal clears the journal. Counters are kept.
func (h *Heap) ResetJournal() {
	h.mu.Lock()
	h.journal = h.journal[:0]
	h.mu.Unlock()
}

// Place allocates a block holding data, as the host does for its own
// buffers.
func (h *Heap) Place(data []byte) (uint64, error) {
	addr, ok := h.AllocMemory(uint32(len(data)))
	if !ok {
		return 0, errors.AllocationFailed(uint64(len(data)))
	}
	return addr, h.Write(addr, data)
}

func (h *Heap) span(addr uint64, n uint32) ([]byte, error) {
	if addr < h.base {
		return nil, errors.InvalidAddress(addr)
	}
	off := addr - h.base
	end := off + uint64(n)
	if end > uint64(len(h.mem)) {
		return nil, errors.New(errors.PhaseMemory, errors.KindInvalidAddress).
			Value(addr).Detail("access of %d bytes at 0x%x past end of heap", n, addr).Build()
	}
	return h.mem[off:end:end], nil
}

// Read returns a view of heap memory. The view aliases the heap.
func (h *Heap) Read(addr uint64, length uint32) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.span(addr, length)
}

func (h *Heap) Write(addr uint64, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.protected[addr]; ok {
		return errors.New(errors.PhaseMemory, errors.KindInvalidAddress).
			Value(addr).Detail("write to protected address 0x%x", addr).Build()
	}
	b, err := h.span(addr, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(b, data)
	h.journal = append(h.journal, Event{Op: OpWrite, Addr: addr, Size: uint32(len(data))})
	return nil
}

func (h *Heap) ReadU8(addr uint64) (uint8, error) {
	b, err := h.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (h *Heap) ReadU16(addr uint64) (uint16, error) {
	b, err := h.Read(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (h *Heap) ReadU32(addr uint64) (uint32, error) {
	b, err := h.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (h *Heap) ReadU64(addr uint64) (uint64, error) {
	b, err := h.Read(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (h *Heap) WriteU8(addr uint64, value uint8) error {
	return h.Write(addr, []byte{value})
}

func (h *Heap) WriteU16(addr uint64, value uint16) error {
	return h.Write(addr, binary.LittleEndian.AppendUint16(nil, value))
}

func (h *Heap) WriteU32(addr uint64, value uint32) error {
	return h.Write(addr, binary.LittleEndian.AppendUint32(nil, value))
}

func (h *Heap) WriteU64(addr uint64, value uint64) error {
	return h.Write(addr, binary.LittleEndian.AppendUint64(nil, value))
}
