package memory

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	nativeapi "github.com/wippyai/nativeapi-go"
	"github.com/wippyai/nativeapi-go/errors"
)

// Stats counts gateway traffic.
type Stats struct {
	Allocs int
	Frees  int
	Failed int
	Live   int
}

// Gateway allocates and frees host buffers through the host allocator.
// It is safe for concurrent use.
type Gateway struct {
	host  nativeapi.HostAllocator
	owned map[uint64]Handle
	stats Stats
	mu    sync.Mutex
}

// NewGateway wraps the host allocator.
func NewGateway(host nativeapi.HostAllocator) *Gateway {
	return &Gateway{
		host:  host,
		owned: make(map[uint64]Handle),
	}
}

// AllocString allocates room for units UTF-16 code units.
func (g *Gateway) AllocString(units uint32) (Handle, error) {
	return g.alloc(Handle{Len: units, Kind: KindString})
}

// AllocAnsi allocates room for n code page bytes.
func (g *Gateway) AllocAnsi(n uint32) (Handle, error) {
	return g.alloc(Handle{Len: n, Kind: KindAnsi})
}

// AllocBlob allocates n bytes.
func (g *Gateway) AllocBlob(n uint32) (Handle, error) {
	return g.alloc(Handle{Len: n, Kind: KindBlob})
}

func (g *Gateway) alloc(h Handle) (Handle, error) {
	size := h.Size()
	if g.host == nil {
		return Handle{}, errors.New(errors.PhaseMemory, errors.KindAllocationFailed).
			Value(size).Detail("no host allocator").Build()
	}
	if size > math.MaxUint32 {
		g.mu.Lock()
		g.stats.Failed++
		g.mu.Unlock()
		return Handle{}, errors.AllocationFailed(size)
	}

	addr, ok := g.host.AllocMemory(uint32(size))

	g.mu.Lock()
	defer g.mu.Unlock()
	if !ok || addr == 0 {
		g.stats.Failed++
		return Handle{}, errors.AllocationFailed(size)
	}
	h.Addr = addr
	g.owned[addr] = h
	g.stats.Allocs++
	g.stats.Live++
	return h, nil
}

// Free returns h to the host allocator. h must be a live buffer this
// gateway allocated and still owns; anything else is reported as a double
// free and never reaches the host.
func (g *Gateway) Free(h Handle) error {
	if h.Addr == 0 {
		Logger().Warn("Free: null address")
		return errors.InvalidAddress(h.Addr)
	}

	g.mu.Lock()
	if _, ok := g.owned[h.Addr]; !ok {
		g.mu.Unlock()
		Logger().Warn("Free: double free blocked", zap.Uint64("ptr", h.Addr))
		return errors.Corruption(fmt.Sprintf("double free of 0x%x", h.Addr))
	}
	g.mu.Unlock()
	return g.FreeAddr(h.Addr)
}

// FreeAddr releases a buffer by address. Buffers the host allocated itself,
// such as the previous contents of a record it passed in, are accepted: the
// host may hand out an address again once it has been freed, so released
// addresses are not remembered.
func (g *Gateway) FreeAddr(addr uint64) error {
	if addr == 0 {
		Logger().Warn("Free: null address")
		return errors.InvalidAddress(addr)
	}
	if g.host == nil {
		Logger().Warn("Free: no host allocator", zap.Uint64("ptr", addr))
		return errors.FreeFailed(addr, errors.NotInitialized("host allocator"))
	}

	g.mu.Lock()
	if _, ok := g.owned[addr]; ok {
		delete(g.owned, addr)
		g.stats.Live--
	}
	g.stats.Frees++
	g.mu.Unlock()

	g.host.FreeMemory(addr)
	return nil
}

// Ready reports whether the gateway can reach a host allocator.
func (g *Gateway) Ready() error {
	if g.host == nil {
		return errors.NotInitialized("host allocator")
	}
	return nil
}

// Owns reports whether addr is a live buffer allocated by this gateway.
func (g *Gateway) Owns(addr uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.owned[addr]
	return ok
}

// Disown forgets a live buffer without freeing it. It is called once a
// buffer has been handed to the host, which now owns it.
func (g *Gateway) Disown(h Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.owned[h.Addr]; ok {
		delete(g.owned, h.Addr)
		g.stats.Live--
	}
}

// Stats returns a snapshot of the counters.
func (g *Gateway) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}
