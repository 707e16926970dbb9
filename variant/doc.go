// Package variant defines Value, the safe tagged value exchanged between a
// component and the host.
//
// A Value holds exactly one of the transportable kinds: Empty, Null, Bool,
// signed and unsigned integers of 8 to 64 bits, F32, F64, DateTime (calendar
// fields in C struct tm form), DateNumeric (OLE automation serial date),
// String (UTF-16 code units), AnsiString and Blob (bytes), ErrorCode,
// HResult and ClassID (16 bytes).
//
// Values decoded from the host may borrow host buffers. Use Clone to detach a
// value from host memory before keeping it beyond the current call.
package variant
