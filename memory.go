package nativeapi

// Memory is the host address space as seen by the add-in.
// Addresses are host pointers; multi-byte values are little-endian.
type Memory interface {
	Read(addr uint64, length uint32) ([]byte, error)
	Write(addr uint64, data []byte) error
	ReadU8(addr uint64) (uint8, error)
	ReadU16(addr uint64) (uint16, error)
	ReadU32(addr uint64) (uint32, error)
	ReadU64(addr uint64) (uint64, error)
	WriteU8(addr uint64, value uint8) error
	WriteU16(addr uint64, value uint16) error
	WriteU32(addr uint64, value uint32) error
	WriteU64(addr uint64, value uint64) error
}

// HostAllocator is the host's memory manager. The host frees every buffer
// it receives from the add-in with this same allocator, so buffers handed to
// the host must come from here.
type HostAllocator interface {
	// AllocMemory returns the address of a new block of size bytes, or false.
	AllocMemory(size uint32) (uint64, bool)
	// FreeMemory releases a block returned by AllocMemory.
	FreeMemory(addr uint64)
}

// Host bundles the two capabilities a host hands to an add-in instance.
type Host interface {
	Memory
	HostAllocator
}
