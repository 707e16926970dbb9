package library

import (
	"github.com/wippyai/nativeapi-go/addin"
)

// table maps handles to objects. Freed handles are reused last-in first-out.
type table struct {
	entries  []entry
	freeList []Handle
}

type entry struct {
	obj   *addin.Object
	class string
	valid bool
}

func newTable() table {
	return table{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

func (t *table) insert(class string, obj *addin.Object) Handle {
	e := entry{obj: obj, class: class, valid: true}
	if n := len(t.freeList); n > 0 {
		h := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = e
		return h
	}
	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

func (t *table) get(h Handle) (entry, bool) {
	if h == 0 || int(h) > len(t.entries) {
		return entry{}, false
	}
	e := t.entries[h-1]
	return e, e.valid
}

func (t *table) remove(h Handle) (entry, bool) {
	e, ok := t.get(h)
	if !ok {
		return entry{}, false
	}
	t.entries[h-1] = entry{}
	t.freeList = append(t.freeList, h)
	return e, true
}

func (t *table) len() int {
	return len(t.entries) - len(t.freeList)
}

func (t *table) each(fn func(Handle, entry) bool) {
	for i, e := range t.entries {
		if e.valid && !fn(Handle(i+1), e) {
			return
		}
	}
}
