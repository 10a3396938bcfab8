package cabihost

import (
	stderrors "errors"
	"runtime"
	"strings"
	"testing"

	"github.com/wippyai/cabi-host/errors"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "success"},
		{StatusNullPointer, "null_pointer"},
		{StatusInvalidArgument, "invalid_argument"},
		{StatusInternalError, "internal_error"},
		{Status(7), "status(7)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int32(tt.status), got, tt.want)
		}
	}
}

func TestStatus_Err(t *testing.T) {
	if err := StatusSuccess.Err(errors.PhaseCall); err != nil {
		t.Fatalf("success must map to nil, got %v", err)
	}

	tests := []struct {
		status Status
		kind   errors.Kind
	}{
		{StatusNullPointer, errors.KindNullPointer},
		{StatusInvalidArgument, errors.KindInvalidArgument},
		{StatusInternalError, errors.KindInternal},
		{Status(200), errors.KindUnknownStatus},
	}
	for _, tt := range tests {
		err := tt.status.Err(errors.PhaseCall)
		if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCall, Kind: tt.kind}) {
			t.Errorf("Status %v: expected kind %s, got %v", tt.status, tt.kind, err)
		}
	}
}

func TestNodeHandle_IsNull(t *testing.T) {
	if !NodeHandle(0).IsNull() {
		t.Error("zero handle must be null")
	}
	if NodeHandle(0xdeadbeef).IsNull() {
		t.Error("non-zero handle must not be null")
	}
}

func TestLibraryName(t *testing.T) {
	name := LibraryName()
	if !strings.HasPrefix(name, "cabi_rust_libp2p") {
		t.Fatalf("unexpected library name %q", name)
	}

	var wantSuffix string
	switch runtime.GOOS {
	case "windows":
		wantSuffix = ".dll"
	case "darwin":
		wantSuffix = ".dylib"
	default:
		wantSuffix = ".so"
	}
	if !strings.HasSuffix(name, wantSuffix) {
		t.Errorf("library name %q does not end in %q", name, wantSuffix)
	}
}

func TestSymbols_Complete(t *testing.T) {
	want := []string{
		"cabi_init_tracing",
		"cabi_node_new",
		"cabi_node_listen",
		"cabi_node_dial",
		"cabi_node_free",
	}
	if len(Symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %d", len(want), len(Symbols))
	}
	for i, name := range want {
		if Symbols[i] != name {
			t.Errorf("Symbols[%d] = %q, want %q", i, Symbols[i], name)
		}
	}
}
