package memory

import (
	"testing"

	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/hostmem"
)

func TestList_FreeAndRelease(t *testing.T) {
	heap := hostmem.NewHeap(1024)
	g := NewGateway(heap)

	l := NewList()
	for i := 0; i < 3; i++ {
		h, err := g.AllocBlob(16)
		if err != nil {
			t.Fatal(err)
		}
		l.Add(h)
	}
	l.Add(Handle{})
	if l.Count() != 4 {
		t.Errorf("Count = %d", l.Count())
	}

	if err := l.FreeAndRelease(g); err != nil {
		t.Fatalf("FreeAndRelease: %v", err)
	}
	if st := heap.Stats(); st.Frees != 3 || st.Live != 0 {
		t.Errorf("heap stats = %+v", st)
	}
}

func TestList_FirstError(t *testing.T) {
	g := NewGateway(hostmem.NewHeap(1024))
	h, _ := g.AllocBlob(1)
	_ = g.Free(h)

	l := NewList()
	defer l.Release()
	l.Add(h)
	if err := l.Free(g); errors.KindOf(err) != errors.KindCorruption {
		t.Errorf("err = %v", err)
	}
	if l.Count() != 0 {
		t.Error("Free should empty the list")
	}
}
