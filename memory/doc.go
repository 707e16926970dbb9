// Package memory is the gateway between the add-in and the host allocator.
//
// Every buffer that ends up referenced from a host-visible variant record
// must come from the host's own allocator, because the host frees it with
// that allocator. Gateway forwards allocation and release to the
// nativeapi.HostAllocator it was built with and never falls back to Go
// memory. It tracks the buffers it handed out and still owns; freeing a
// handle it no longer owns is reported as corruption instead of reaching the
// host. Addresses are not remembered past their release, because the host
// allocator is free to hand them out again.
//
// A Gateway is injected into every operation that allocates; there is no
// package-level instance.
package memory
