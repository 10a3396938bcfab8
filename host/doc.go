// Package host drives the cabi library lifecycle: acquire, resolve, operate,
// release.
//
// A Library owns one loaded instance of the networking library, whatever the
// backend (native shared object via dl, or a wasm32 build via wasmlib). Nodes
// created from it are tracked so that teardown always happens in reverse
// acquisition order: outstanding nodes are freed before the library itself is
// released, on success and failure paths alike.
//
// The boundary is not documented as thread-safe, so Library and Node
// serialize their own calls; concurrent use from multiple goroutines is safe
// at this layer but calls execute one at a time.
package host
