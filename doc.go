// Package cabihost provides Go host bindings for the cabi_rust_libp2p shared
// library: a peer-to-peer networking library exposed through a small,
// stable C ABI.
//
// The library ships five exported entry points (node creation, listen, dial,
// free, plus process-wide tracing setup) and communicates outcomes through a
// closed set of integer status codes. Everything behind those entry points —
// peer discovery, transport negotiation, stream multiplexing, security
// handshakes — is owned by the library and opaque to this module.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	cabihost/        Root package: status vocabulary, handle types, symbol names
//	├── dl/          Platform dynamic-library loading (dlopen / LoadLibrary)
//	├── abi/         Symbol resolution into a fully validated typed table
//	├── host/        Library and node lifecycle with teardown ordering
//	├── wasmlib/     wazero-backed backend for wasm32 builds of the library
//	└── errors/      Structured error types for boundary failures
//
// # Quick Start
//
//	lib, err := host.Open("", host.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	if err := lib.InitTracing(); err != nil {
//	    log.Fatal(err)
//	}
//
//	node, err := lib.NewNode(false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
//	if err := node.Listen("/ip4/127.0.0.1/tcp/0"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Boundary Contract
//
// The host and the library are compiled independently and agree only on
// symbol names, argument layout, and the status-code table. The binding layer
// therefore enforces three invariants the raw ABI cannot:
//
//   - The resolved function table is all-or-nothing: a single missing symbol
//     invalidates the whole table and nothing from it is ever invoked.
//   - Handles are released exactly once, on every exit path, in reverse
//     acquisition order; no resolved function runs after the library is
//     unloaded.
//   - Every status code is handled exhaustively; a code outside the known
//     table surfaces as a distinct error rather than being ignored.
package cabihost
