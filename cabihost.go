package cabihost

import (
	"fmt"
	"runtime"

	"github.com/wippyai/cabi-host/errors"
)

// Status is the closed set of outcomes returned by fallible boundary calls.
// The numeric values are part of the ABI and must never change.
type Status int32

const (
	// StatusSuccess means the operation completed.
	StatusSuccess Status = iota
	// StatusNullPointer means a required pointer argument was null.
	StatusNullPointer
	// StatusInvalidArgument means an argument was malformed (e.g. an address
	// that does not parse as a multiaddr).
	StatusInvalidArgument
	// StatusInternalError means an unrecoverable fault inside the library;
	// detail is only available out-of-band through its tracing output.
	StatusInternalError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNullPointer:
		return "null_pointer"
	case StatusInvalidArgument:
		return "invalid_argument"
	case StatusInternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Err maps a status to a typed error, nil for StatusSuccess. A value outside
// the ABI table maps to an unknown-status error so a library that grows a new
// code is surfaced instead of silently treated as one of the known outcomes.
func (s Status) Err(phase errors.Phase) error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusNullPointer:
		return errors.NullPointer(phase)
	case StatusInvalidArgument:
		return errors.InvalidArgument(phase, "rejected by library")
	case StatusInternalError:
		return errors.Internal(phase, nil, "library reported an internal error")
	default:
		return errors.UnknownStatus(phase, int32(s))
	}
}

// NodeHandle is the opaque pointer-sized token identifying live networking
// state owned by the library. The host passes it back unchanged to every node
// operation and relinquishes it exactly once via cabi_node_free.
type NodeHandle uintptr

// IsNull reports whether the handle is the null/failure value.
func (h NodeHandle) IsNull() bool { return h == 0 }

// Exported symbol names of the cabi ABI.
const (
	SymInitTracing = "cabi_init_tracing"
	SymNodeNew     = "cabi_node_new"
	SymNodeListen  = "cabi_node_listen"
	SymNodeDial    = "cabi_node_dial"
	SymNodeFree    = "cabi_node_free"
)

// Symbols lists every required export in resolution order.
var Symbols = []string{
	SymInitTracing,
	SymNodeNew,
	SymNodeListen,
	SymNodeDial,
	SymNodeFree,
}

// SymbolSource resolves an exported symbol name to its address. dl.Library
// implements it for native shared libraries; tests implement it with fakes.
type SymbolSource interface {
	Lookup(name string) (uintptr, error)
}

// LibraryName returns the fixed platform-specific file name of the library,
// resolved through the operating system's standard search path when no
// explicit path is supplied.
func LibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "cabi_rust_libp2p.dll"
	case "darwin":
		return "cabi_rust_libp2p.dylib"
	default:
		return "cabi_rust_libp2p.so"
	}
}
