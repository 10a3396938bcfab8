// Package errors provides structured error types for the cabi-host binding
// layer.
//
// Errors are categorized by Phase (where in the lifecycle the error occurred)
// and Kind (error category). Because the boundary returns bare integer status
// codes, the Error type carries the context the codes cannot: the library
// name, the offending symbols, a human-readable detail, and a cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.NotFound("cabi_rust_libp2p.so", cause)
//	err := errors.MissingSymbols([]string{"cabi_node_dial"})
//	err := errors.InvalidArgument(errors.PhaseCall, "empty address")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on the Phase and Kind pair.
package errors
