package main

import (
	"fmt"

	"github.com/wippyai/nativeapi-go/addin"
	"github.com/wippyai/nativeapi-go/hostmem"
	"github.com/wippyai/nativeapi-go/library"
	"github.com/wippyai/nativeapi-go/memory"
	"github.com/wippyai/nativeapi-go/transcoder"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

const heapSize = 1 << 20

// session plays the host: it owns the heap, lays out records and frees
// whatever the object hands back.
type session struct {
	lib    *library.Library
	heap   *hostmem.Heap
	obj    *addin.Object
	gw     *memory.Gateway
	enc    *transcoder.Encoder
	dec    *transcoder.Decoder
	layout wire.Layout
	handle library.Handle
}

func newSession(layout wire.Layout, opts ...addin.Option) (*session, error) {
	lib := library.New(append([]addin.Option{addin.WithLayout(layout)}, opts...)...)
	if err := lib.Register(sampleClass, newSample); err != nil {
		return nil, err
	}
	h, obj, err := lib.CreateObject(sampleClass)
	if err != nil {
		return nil, err
	}
	heap := hostmem.NewHeap(heapSize)
	if !obj.Init(heap) {
		return nil, obj.LastError()
	}
	return &session{
		lib:    lib,
		heap:   heap,
		obj:    obj,
		gw:     memory.NewGateway(heap),
		enc:    transcoder.NewEncoder(layout),
		dec:    transcoder.NewDecoder(layout),
		layout: layout,
		handle: h,
	}, nil
}

func (s *session) Close() error {
	return s.lib.Close()
}

// records allocates n contiguous records.
func (s *session) records(n int) (uint64, error) {
	if n == 0 {
		n = 1
	}
	addr, ok := s.heap.AllocMemory(s.layout.Size * uint32(n))
	if !ok {
		return 0, fmt.Errorf("host heap exhausted")
	}
	return addr, nil
}

// release frees n records at base and the buffers they own.
func (s *session) release(base uint64, n int) {
	for i := 0; i < n; i++ {
		rec, err := s.layout.Load(s.heap, base+uint64(i)*uint64(s.layout.Size))
		if err == nil && rec.Tag().OwnsBuffer() && rec.Pointer() != 0 {
			s.heap.FreeMemory(rec.Pointer())
		}
	}
	s.heap.FreeMemory(base)
}

func (s *session) find(name string, method bool) int32 {
	if method {
		return s.obj.FindMethod(variant.OSString(name, true))
	}
	return s.obj.FindProp(variant.OSString(name, true))
}

func (s *session) get(ord int32) (variant.Value, error) {
	slot, err := s.records(1)
	if err != nil {
		return variant.Value{}, err
	}
	defer s.release(slot, 1)
	if !s.obj.GetPropVal(ord, slot) {
		return variant.Value{}, s.obj.LastError()
	}
	return s.dec.LoadOwned(slot, s.heap)
}

func (s *session) set(ord int32, v variant.Value) error {
	slot, err := s.records(1)
	if err != nil {
		return err
	}
	defer s.release(slot, 1)
	if err := s.enc.Encode(v, slot, s.heap, s.gw); err != nil {
		return err
	}
	if !s.obj.SetPropVal(ord, slot) {
		return s.obj.LastError()
	}
	return nil
}

// call invokes method ord and returns its result and the arguments as the
// object left them.
func (s *session) call(ord int32, args []variant.Value) (variant.Value, []variant.Value, error) {
	params, err := s.records(len(args))
	if err != nil {
		return variant.Value{}, nil, err
	}
	defer s.release(params, len(args))
	for i, v := range args {
		if err := s.enc.Encode(v, params+uint64(i)*uint64(s.layout.Size), s.heap, s.gw); err != nil {
			return variant.Value{}, nil, err
		}
	}

	result := variant.Empty()
	if s.obj.HasRetVal(ord) {
		ret, err := s.records(1)
		if err != nil {
			return variant.Value{}, nil, err
		}
		defer s.release(ret, 1)
		if !s.obj.CallAsFunc(ord, ret, params, int32(len(args))) {
			return variant.Value{}, nil, s.obj.LastError()
		}
		if result, err = s.dec.LoadOwned(ret, s.heap); err != nil {
			return variant.Value{}, nil, err
		}
	} else if !s.obj.CallAsProc(ord, params, int32(len(args))) {
		return variant.Value{}, nil, s.obj.LastError()
	}

	out := make([]variant.Value, len(args))
	for i := range out {
		v, err := s.dec.LoadOwned(params+uint64(i)*uint64(s.layout.Size), s.heap)
		if err != nil {
			return variant.Value{}, nil, err
		}
		out[i] = v
	}
	return result, out, nil
}
