package memory

import "sync"

// List collects buffers allocated during one multi-step operation so they
// can be released together if a later step fails.
type List struct {
	handles []Handle
}

var listPool = sync.Pool{
	New: func() any {
		return &List{handles: make([]Handle, 0, 8)}
	},
}

// NewList returns an empty list from the pool.
func NewList() *List {
	return listPool.Get().(*List)
}

const maxPooledListCapacity = 128

// Release returns the list to the pool. The list must not be used after.
func (l *List) Release() {
	if cap(l.handles) > maxPooledListCapacity {
		return
	}
	l.Reset()
	listPool.Put(l)
}

// Add records h.
func (l *List) Add(h Handle) {
	l.handles = append(l.handles, h)
}

// Free releases every recorded buffer through g and returns the first
// error. The list is emptied.
func (l *List) Free(g *Gateway) error {
	var first error
	for _, h := range l.handles {
		if h.Addr == 0 {
			continue
		}
		if err := g.Free(h); err != nil && first == nil {
			first = err
		}
	}
	l.Reset()
	return first
}

// FreeAndRelease frees every buffer and returns the list to the pool.
func (l *List) FreeAndRelease(g *Gateway) error {
	err := l.Free(g)
	l.Release()
	return err
}

func (l *List) Reset() {
	l.handles = l.handles[:0]
}

func (l *List) Count() int {
	return len(l.handles)
}

// Handles returns the recorded buffers. The slice is only valid until the
// next call on l.
func (l *List) Handles() []Handle {
	return l.handles
}
