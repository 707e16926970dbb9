// Package wire describes the host's fixed-layout variant record.
//
// A record is a payload union followed by a u32 element count and a u16
// type tag:
//
//	+-------------------------+----------+-----+
//	| union (largest member)  | elements | tag |
//	+-------------------------+----------+-----+
//
// The union is sized to its largest member, the C struct tm. On unix
// targets struct tm carries tm_gmtoff (a C long) and tm_zone, which makes
// the union wider there than on Windows. Strings and blobs store a pointer
// followed by a u32 length. All integers are little-endian.
//
// Layout pins the offsets for one target; Record is an in-memory image of a
// record read from, or about to be written to, host memory.
package wire
