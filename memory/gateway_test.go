package memory

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/hostmem"
)

func TestGateway_Alloc(t *testing.T) {
	heap := hostmem.NewHeap(1024)
	g := NewGateway(heap)

	tests := []struct {
		name  string
		alloc func(uint32) (Handle, error)
		n     uint32
		kind  Kind
		bytes uint32
	}{
		{"string", g.AllocString, 5, KindString, 10},
		{"ansi", g.AllocAnsi, 5, KindAnsi, 5},
		{"blob", g.AllocBlob, 64, KindBlob, 64},
		{"empty blob", g.AllocBlob, 0, KindBlob, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.alloc(tt.n)
			if err != nil {
				t.Fatalf("alloc: %v", err)
			}
			if h.IsZero() || h.Len != tt.n || h.Kind != tt.kind {
				t.Errorf("handle = %+v", h)
			}
			if size, ok := heap.SizeOf(h.Addr); !ok || size != tt.bytes {
				t.Errorf("host block size = %d, %v; want %d", size, ok, tt.bytes)
			}
			if !g.Owns(h.Addr) {
				t.Error("gateway should own the new buffer")
			}
		})
	}
	if st := g.Stats(); st.Allocs != 4 || st.Live != 4 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestGateway_AllocFailure(t *testing.T) {
	heap := hostmem.NewHeap(1024)
	heap.FailAllocAfter(0)
	g := NewGateway(heap)

	_, err := g.AllocString(3)
	if errors.KindOf(err) != errors.KindAllocationFailed {
		t.Errorf("err = %v, want AllocationFailed", err)
	}
	if _, err := g.AllocString(math.MaxUint32); errors.KindOf(err) != errors.KindAllocationFailed {
		t.Errorf("oversized err = %v", err)
	}
	if st := g.Stats(); st.Failed != 2 || st.Allocs != 0 {
		t.Errorf("Stats = %+v", st)
	}
	if _, err := NewGateway(nil).AllocBlob(1); errors.KindOf(err) != errors.KindAllocationFailed {
		t.Errorf("nil host err = %v", err)
	}
}

func TestGateway_Free(t *testing.T) {
	heap := hostmem.NewHeap(1024)
	g := NewGateway(heap)

	h, _ := g.AllocBlob(8)
	if err := g.Free(h); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if g.Owns(h.Addr) {
		t.Error("freed buffer still owned")
	}
	if heap.Stats().Frees != 1 {
		t.Errorf("host frees = %d", heap.Stats().Frees)
	}

	if err := g.Free(h); errors.KindOf(err) != errors.KindCorruption {
		t.Errorf("double free err = %v, want Corruption", err)
	}
	if heap.Stats().Frees != 1 || heap.Stats().BadFrees != 0 {
		t.Errorf("double free reached host: %+v", heap.Stats())
	}

	if err := g.Free(Handle{}); errors.KindOf(err) != errors.KindInvalidAddress {
		t.Errorf("zero handle err = %v", err)
	}
}

func TestGateway_FreeHostBuffer(t *testing.T) {
	heap := hostmem.NewHeap(1024)
	g := NewGateway(heap)

	addr, err := heap.Place([]byte("host owned"))
	if err != nil {
		t.Fatal(err)
	}
	if g.Owns(addr) {
		t.Fatal("gateway should not own host buffers")
	}
	if err := g.FreeAddr(addr); err != nil {
		t.Fatalf("FreeAddr: %v", err)
	}
	if _, live := heap.SizeOf(addr); live {
		t.Error("host buffer not freed")
	}
}

func TestGateway_AddressReuse(t *testing.T) {
	alloc := &reusingAllocator{addr: 0x100}
	g := NewGateway(alloc)

	h, _ := g.AllocBlob(4)
	if err := g.Free(h); err != nil {
		t.Fatal(err)
	}
	h2, err := g.AllocBlob(4)
	if err != nil || h2.Addr != h.Addr {
		t.Fatalf("realloc = %+v, %v", h2, err)
	}
	if err := g.Free(h2); err != nil {
		t.Errorf("free of reused address: %v", err)
	}
}

func TestGateway_HostReusesReleasedAddress(t *testing.T) {
	heap := hostmem.NewHeap(1024)
	heap.ReuseFreed(true)
	g := NewGateway(heap)

	h, _ := g.AllocString(3)
	if err := g.Free(h); err != nil {
		t.Fatal(err)
	}
	addr, err := heap.Place([]byte("host"))
	if err != nil || addr != h.Addr {
		t.Fatalf("Place = 0x%x, %v, want reused 0x%x", addr, err, h.Addr)
	}
	if err := g.FreeAddr(addr); err != nil {
		t.Errorf("FreeAddr of host buffer at reused address: %v", err)
	}
	if st := heap.Stats(); st.Frees != 2 || st.BadFrees != 0 {
		t.Errorf("heap stats = %+v", st)
	}

	if err := g.Free(Handle{Addr: addr, Len: 4, Kind: KindBlob}); errors.KindOf(err) != errors.KindCorruption {
		t.Errorf("Free of a handle the gateway never owned: %v", err)
	}
}

func TestGateway_Ready(t *testing.T) {
	if err := NewGateway(hostmem.NewHeap(8)).Ready(); err != nil {
		t.Errorf("Ready = %v", err)
	}
	if err := NewGateway(nil).Ready(); errors.KindOf(err) != errors.KindNotInitialized {
		t.Errorf("Ready without host = %v", err)
	}
	if err := NewGateway(nil).FreeAddr(0x10); errors.KindOf(err) != errors.KindFreeFailed {
		t.Errorf("FreeAddr without host = %v", err)
	}
}

func TestGateway_Disown(t *testing.T) {
	g := NewGateway(hostmem.NewHeap(64))
	h, _ := g.AllocString(2)
	g.Disown(h)
	if g.Owns(h.Addr) || g.Stats().Live != 0 {
		t.Error("Disown should drop ownership")
	}
}

func TestGateway_LogsBlockedFree(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	g := NewGateway(hostmem.NewHeap(64))
	h, _ := g.AllocBlob(1)
	_ = g.Free(h)
	_ = g.Free(h)

	if logs.FilterMessage("Free: double free blocked").Len() != 1 {
		t.Errorf("logs = %v", logs.All())
	}
}

type reusingAllocator struct {
	addr  uint64
	frees int
}

func (a *reusingAllocator) AllocMemory(uint32) (uint64, bool) { return a.addr, true }
func (a *reusingAllocator) FreeMemory(uint64)                 { a.frees++ }
