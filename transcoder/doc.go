// Package transcoder converts between wire variant records in host memory
// and variant.Value.
//
// # Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│ variant.Value ←→ [Transcoder] ←→ wire.Record in host memory   │
//	└───────────────────────────────────────────────────────────────┘
//
// # Tag Mapping
//
//	Value kind      Tag            Payload
//	──────────────────────────────────────────────
//	Empty/Null      EMPTY/NULL     none
//	Bool            BOOL           1 byte
//	I8 I16 I32 I64  I1 I2 I4 I8    little-endian
//	U8 U16 U32 U64  UI1 UI2 UI4 UI8
//	F32 F64         R4 R8
//	DateNumeric     DATE           f64
//	DateTime        TM             struct tm
//	String          PWSTR          ptr + len (code units)
//	AnsiString      PSTR           ptr + len (bytes)
//	Blob            BLOB           ptr + len (bytes)
//	ErrorCode       ERROR          i32
//	HResult         HRESULT        i32
//	ClassID         CLSID          16 bytes
//
// Tags without a Value kind (INTERFACE, INT, UINT, UNDEFINED and unknown
// values) decode to Empty.
//
// # Decoding
//
// Decode does not allocate for buffers: String, AnsiString and Blob values
// borrow the host buffer and are only valid until the host releases it or
// the record is re-encoded. LoadOwned returns a detached copy.
//
// # Encoding
//
// Encode builds the complete record image first. For buffer kinds it then
//
//  1. allocates a host buffer sized to the content through the gateway,
//  2. copies the content into it,
//  3. writes the record image to the slot in a single write,
//  4. frees the buffer the slot held before, if any.
//
// The slot never points at a released buffer. If any step before the free
// fails, the slot is left untouched and the new buffer is released.
// EncodeAll applies the same steps to several slots as one unit: every
// buffer is filled before any record is written, every record is written
// before any old buffer is freed, and a failed write restores the records
// already written. Two slots holding the same old buffer free it once.
//
// # Thread Safety
//
// Encoder and Decoder hold no mutable state and are safe for concurrent
// use. The host memory they operate on is not.
package transcoder
