package abi

import (
	cabihost "github.com/wippyai/cabi-host"
)

// Table holds the resolved cabi entry points as typed Go functions.
//
// A Table produced by Resolve is always complete. Hand-built tables (tests,
// in-process fakes, the wasmlib backend) must satisfy Complete before they
// are accepted by the host package.
type Table struct {
	// InitTracing initializes the library's process-wide diagnostics.
	InitTracing func() cabihost.Status
	// NewNode creates networking state, selecting QUIC or the default
	// transport. A null handle means creation failed.
	NewNode func(useQuic bool) cabihost.NodeHandle
	// ListenNode binds the node to accept inbound connections at addr.
	ListenNode func(handle cabihost.NodeHandle, addr string) cabihost.Status
	// DialNode initiates an outbound connection attempt. Success means the
	// attempt was validly initiated, not that the connection completed.
	DialNode func(handle cabihost.NodeHandle, addr string) cabihost.Status
	// FreeNode releases all networking state behind the handle.
	FreeNode func(handle cabihost.NodeHandle)
}

// Complete reports whether every entry point is bound.
func (t *Table) Complete() bool {
	return t != nil &&
		t.InitTracing != nil &&
		t.NewNode != nil &&
		t.ListenNode != nil &&
		t.DialNode != nil &&
		t.FreeNode != nil
}
