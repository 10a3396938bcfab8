package abi

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	cabihost "github.com/wippyai/cabi-host"
	cabierrors "github.com/wippyai/cabi-host/errors"
)

// fakeSource hands out placeholder addresses. The bound functions are never
// invoked in these tests; only resolution and validation are exercised.
type fakeSource struct {
	addrs map[string]uintptr
}

func (f *fakeSource) Lookup(name string) (uintptr, error) {
	addr, ok := f.addrs[name]
	if !ok {
		return 0, fmt.Errorf("undefined symbol: %s", name)
	}
	return addr, nil
}

func fullSource() *fakeSource {
	src := &fakeSource{addrs: make(map[string]uintptr)}
	for i, name := range cabihost.Symbols {
		src.addrs[name] = uintptr(0x1000 + i)
	}
	return src
}

func TestResolve_AllSymbols(t *testing.T) {
	table, err := Resolve(fullSource())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !table.Complete() {
		t.Fatal("expected a complete table")
	}
}

func TestResolve_AnyMissingInvalidatesTable(t *testing.T) {
	// Each symbol individually absent must invalidate the whole table,
	// never yield "valid with one missing".
	for _, name := range cabihost.Symbols {
		t.Run(name, func(t *testing.T) {
			src := fullSource()
			delete(src.addrs, name)

			table, err := Resolve(src)
			if err == nil {
				t.Fatal("expected resolution to fail")
			}
			if table != nil {
				t.Fatal("expected no table on failure")
			}
			if !errors.Is(err, &cabierrors.Error{Phase: cabierrors.PhaseResolve, Kind: cabierrors.KindMissingSymbol}) {
				t.Fatalf("expected a resolve/missing_symbol error, got %v", err)
			}
			if !strings.Contains(err.Error(), name) {
				t.Errorf("error %q does not name the missing symbol %s", err.Error(), name)
			}
		})
	}
}

func TestResolve_NullAddressCountsAsMissing(t *testing.T) {
	src := fullSource()
	src.addrs[cabihost.SymNodeFree] = 0

	_, err := Resolve(src)
	if err == nil {
		t.Fatal("expected resolution to fail for a null symbol address")
	}
}

func TestResolve_AllMissing(t *testing.T) {
	_, err := Resolve(&fakeSource{addrs: map[string]uintptr{}})
	if err == nil {
		t.Fatal("expected resolution to fail")
	}

	var e *cabierrors.Error
	if !errors.As(err, &e) {
		t.Fatal("expected a structured error")
	}
	if len(e.Symbols) != len(cabihost.Symbols) {
		t.Fatalf("expected all %d symbols reported, got %d", len(cabihost.Symbols), len(e.Symbols))
	}
}

func TestTable_Complete(t *testing.T) {
	var nilTable *Table
	if nilTable.Complete() {
		t.Error("nil table must not be complete")
	}

	table := &Table{
		InitTracing: func() cabihost.Status { return cabihost.StatusSuccess },
		NewNode:     func(bool) cabihost.NodeHandle { return 1 },
		ListenNode:  func(cabihost.NodeHandle, string) cabihost.Status { return cabihost.StatusSuccess },
		DialNode:    func(cabihost.NodeHandle, string) cabihost.Status { return cabihost.StatusSuccess },
	}
	if table.Complete() {
		t.Error("table without FreeNode must not be complete")
	}

	table.FreeNode = func(cabihost.NodeHandle) {}
	if !table.Complete() {
		t.Error("fully populated table must be complete")
	}
}
