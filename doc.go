// Package nativeapi hosts Go components inside a platform that speaks a
// fixed, COM-like native extension ABI.
//
// A component is described as a table of typed properties and methods. The
// host enumerates those tables by ordinal, resolves names (including
// localized aliases) and exchanges values as a fixed-layout tagged variant
// record. Variable-length payloads live in buffers owned by the host's
// memory manager.
//
// # Architecture Overview
//
//	nativeapi/         Root package with the Memory and HostAllocator interfaces
//	├── variant/       Safe tagged value model (Value, Tm, UTF-16 and code pages)
//	├── wire/          Pinned byte layout of the host variant record
//	├── memory/        Gateway over the host allocator with ownership tracking
//	├── transcoder/    Decode/encode between wire records and variant values
//	├── component/     Descriptor tables, Description contract and Builder
//	├── dispatch/      Name resolution and routing with structured errors
//	├── addin/         Host-facing object: wire records in, booleans out
//	├── library/       Class registry and object handles for the host loader
//	├── hostmem/       Host implementations: in-process Heap and wazero-backed
//	├── errors/        Structured error taxonomy
//	└── cmd/addin-console/  Interactive explorer for a hosted component
//
// # Quick Start
//
//	b := component.NewBuilder("Counter")
//	b.Property("Value", component.TypeI32).Alias("Значение").ReadWrite()
//	b.Function("Add", component.TypeI32, func(args []variant.Value) (variant.Value, error) {
//	    a, _ := args[0].AsI32()
//	    c, _ := args[1].AsI32()
//	    return variant.I32(a + c), nil
//	}).Param("a", component.TypeI32).Param("b", component.TypeI32)
//	desc, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	obj, err := addin.New(desc, addin.WithLayout(wire.Native()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !obj.Init(host) { // host implements nativeapi.Host
//	    log.Fatal(obj.LastError())
//	}
//	defer obj.Done()
//
// # Memory Model
//
// Decoding borrows host buffers and never allocates. Encoding a string or
// blob allocates through the host allocator, copies the content, releases
// the slot's previous buffer and only then publishes the new record. A
// failed allocation leaves the slot untouched.
//
// # Thread Safety
//
// The host calls an object one method at a time; an Object serializes calls
// that arrive concurrently. Descriptor tables are immutable after New and
// may be shared.
package nativeapi
