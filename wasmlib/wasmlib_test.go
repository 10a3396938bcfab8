package wasmlib

import (
	"context"
	"errors"
	"strings"
	"testing"

	cabihost "github.com/wippyai/cabi-host"
	cabierrors "github.com/wippyai/cabi-host/errors"
)

// emptyModule is the smallest valid core wasm binary: magic and version,
// no sections, no exports.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestOpen_RejectsInvalidBinary(t *testing.T) {
	_, err := Open(context.Background(), []byte("not a wasm module"))
	if err == nil {
		t.Fatal("expected an error for a non-wasm binary")
	}
	if !errors.Is(err, &cabierrors.Error{Phase: cabierrors.PhaseLoad, Kind: cabierrors.KindInstantiation}) {
		t.Errorf("expected a load/instantiation error, got %v", err)
	}
}

func TestOpen_ReportsAllMissingExports(t *testing.T) {
	_, err := Open(context.Background(), emptyModule)
	if err == nil {
		t.Fatal("expected an error for a module without the ABI exports")
	}
	if !errors.Is(err, &cabierrors.Error{Phase: cabierrors.PhaseResolve, Kind: cabierrors.KindMissingSymbol}) {
		t.Fatalf("expected a resolve/missing_symbol error, got %v", err)
	}

	// The whole required set is reported at once: five entry points, the
	// allocator, and the linear memory.
	msg := err.Error()
	for _, name := range cabihost.Symbols {
		if !strings.Contains(msg, name) {
			t.Errorf("error does not name missing export %s", name)
		}
	}
	for _, name := range []string{SymRealloc, "memory"} {
		if !strings.Contains(msg, name) {
			t.Errorf("error does not name missing export %s", name)
		}
	}
}

func TestStatusOf(t *testing.T) {
	if got := statusOf([]uint64{0}, nil); got != cabihost.StatusSuccess {
		t.Errorf("statusOf(0) = %v", got)
	}
	if got := statusOf([]uint64{2}, nil); got != cabihost.StatusInvalidArgument {
		t.Errorf("statusOf(2) = %v", got)
	}
	if got := statusOf(nil, errors.New("trap")); got != cabihost.StatusInternalError {
		t.Errorf("trapped call must degrade to internal error, got %v", got)
	}
	if got := statusOf(nil, nil); got != cabihost.StatusInternalError {
		t.Errorf("missing result must degrade to internal error, got %v", got)
	}
}
