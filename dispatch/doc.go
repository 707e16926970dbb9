// Package dispatch resolves names and routes property and method calls to a
// component.Description.
//
// The dispatcher copies the description's descriptor tables once, at
// construction, and answers every lookup from that copy. Name lookup is an
// exact, case-sensitive comparison against every alias of every entry in
// table order; the first match wins.
//
// Every operation returns a structured error from the errors package. The
// dispatcher never panics on an out-of-range ordinal or alias index; the
// host-facing layer above it decides how errors are reported to the host.
package dispatch
