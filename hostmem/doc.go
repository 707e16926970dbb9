// Package hostmem provides host address spaces and allocators an add-in can
// run against outside a real host process.
//
// Heap is an in-process fake host: a fixed arena with a bump allocator that
// counts allocations and frees and records an ordered journal of allocator
// and write events. It can be told to fail allocations, to reject writes to
// an address, or to hand freed blocks out again. Tests use it to assert
// ownership rules.
//
// WazeroHost adapts a wazero module instance: the add-in's host memory is
// the instance's linear memory and the host allocator is a pair of exported
// alloc/free functions.
package hostmem
