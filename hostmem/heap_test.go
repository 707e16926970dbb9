package hostmem

import (
	"bytes"
	"testing"

	"github.com/wippyai/nativeapi-go/errors"
)

func TestHeap_AllocFree(t *testing.T) {
	h := NewHeap(1024)

	a, ok := h.AllocMemory(10)
	if !ok || a != DefaultBase {
		t.Fatalf("AllocMemory = 0x%x, %v", a, ok)
	}
	b, ok := h.AllocMemory(0)
	if !ok || b != a+16 {
		t.Fatalf("second AllocMemory = 0x%x, want 0x%x", b, a+16)
	}
	if size, ok := h.SizeOf(a); !ok || size != 10 {
		t.Errorf("SizeOf = %d, %v", size, ok)
	}

	h.FreeMemory(a)
	h.FreeMemory(a)
	h.FreeMemory(0xdead)

	st := h.Stats()
	want := HeapStats{Allocs: 2, Frees: 1, BadFrees: 2, Live: 1, LiveBytes: 0}
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}
}

func TestHeap_Exhaustion(t *testing.T) {
	h := NewHeap(32)
	if _, ok := h.AllocMemory(32); !ok {
		t.Fatal("allocation of full capacity should succeed")
	}
	if _, ok := h.AllocMemory(1); ok {
		t.Error("allocation past capacity should fail")
	}
	if h.Stats().Failed != 1 {
		t.Errorf("Failed = %d", h.Stats().Failed)
	}
}

func TestHeap_FailAllocAfter(t *testing.T) {
	h := NewHeap(1024)
	h.FailAllocAfter(1)
	if _, ok := h.AllocMemory(4); !ok {
		t.Fatal("first allocation should succeed")
	}
	if _, ok := h.AllocMemory(4); ok {
		t.Fatal("second allocation should fail")
	}
	h.FailAllocAfter(-1)
	if _, ok := h.AllocMemory(4); !ok {
		t.Fatal("allocation should succeed after reset")
	}
}

func TestHeap_ReadWrite(t *testing.T) {
	h := NewHeap(64)
	addr, err := h.Place([]byte("hello"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	got, err := h.Read(addr, 5)
	if err != nil || !bytes.Equal(got, []byte("hello")) {
		t.Errorf("Read = %q, %v", got, err)
	}

	if err := h.WriteU32(addr+8, 0xdeadbeef); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if v, _ := h.ReadU32(addr + 8); v != 0xdeadbeef {
		t.Errorf("ReadU32 = 0x%x", v)
	}
	if v, _ := h.ReadU16(addr + 8); v != 0xbeef {
		t.Errorf("ReadU16 = 0x%x", v)
	}
	if err := h.WriteU64(addr+16, 1<<40); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}
	if v, _ := h.ReadU64(addr + 16); v != 1<<40 {
		t.Errorf("ReadU64 = %d", v)
	}

	if _, err := h.Read(0, 1); errors.KindOf(err) != errors.KindInvalidAddress {
		t.Errorf("Read(0) err = %v", err)
	}
	if err := h.Write(DefaultBase+60, make([]byte, 8)); errors.KindOf(err) != errors.KindInvalidAddress {
		t.Errorf("Write past end err = %v", err)
	}
}

func TestHeap_Journal(t *testing.T) {
	h := NewHeap(64)
	addr, _ := h.Place([]byte{1, 2})
	h.FreeMemory(addr)

	want := []Event{
		{Op: OpAlloc, Addr: addr, Size: 2},
		{Op: OpWrite, Addr: addr, Size: 2},
		{Op: OpFree, Addr: addr, Size: 2},
	}
	got := h.Journal()
	if len(got) != len(want) {
		t.Fatalf("journal = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	h.ResetJournal()
	if len(h.Journal()) != 0 {
		t.Error("ResetJournal left events")
	}
	if h.Stats().Frees != 1 {
		t.Error("ResetJournal should keep counters")
	}
}

func TestHeap_ReuseFreed(t *testing.T) {
	h := NewHeap(1024)
	h.ReuseFreed(true)

	a, _ := h.AllocMemory(16)
	b, _ := h.AllocMemory(8)
	h.FreeMemory(a)
	h.FreeMemory(b)

	if got, _ := h.AllocMemory(4); got != b {
		t.Errorf("first reuse = 0x%x, want most recently freed 0x%x", got, b)
	}
	if got, _ := h.AllocMemory(8); got != a {
		t.Errorf("second reuse = 0x%x, want 0x%x", got, a)
	}
	if got, _ := h.AllocMemory(8); got != a+8 {
		t.Errorf("split remainder = 0x%x, want 0x%x", got, a+8)
	}
	if got, _ := h.AllocMemory(8); got != b+8 {
		t.Errorf("fresh block = 0x%x, want 0x%x", got, b+8)
	}
	if st := h.Stats(); st.Live != 4 || st.BadFrees != 0 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestHeap_Protect(t *testing.T) {
	h := NewHeap(64)
	addr, _ := h.AllocMemory(8)
	h.Protect(addr)

	if err := h.WriteU32(addr, 1); errors.KindOf(err) != errors.KindInvalidAddress {
		t.Errorf("protected write err = %v", err)
	}
	if err := h.WriteU32(addr+4, 1); err != nil {
		t.Errorf("write next to protected address: %v", err)
	}
}
