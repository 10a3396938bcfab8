package wasmlib

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	wasi "github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	cabihost "github.com/wippyai/cabi-host"
	"github.com/wippyai/cabi-host/abi"
	"github.com/wippyai/cabi-host/errors"
)

// SymRealloc is the canonical-ABI allocator export used for guest string
// allocation: cabi_realloc(ptr, old_size, align, new_size). A zero new size
// frees the block.
const SymRealloc = "cabi_realloc"

// Module is an instantiated wasm build of the networking library.
type Module struct {
	ctx     context.Context
	runtime wazero.Runtime
	mod     api.Module
	table   *abi.Table

	initTracing api.Function
	nodeNew     api.Function
	nodeListen  api.Function
	nodeDial    api.Function
	nodeFree    api.Function
	realloc     api.Function
}

// Open instantiates wasm and validates its exports. ctx governs
// instantiation and every later call into the module.
func Open(ctx context.Context, wasm []byte) (*Module, error) {
	rt := wazero.NewRuntime(ctx)

	// wasm32-wasi builds of the library import WASI for clocks and
	// randomness; instantiating it unconditionally is harmless for
	// freestanding builds.
	if _, err := wasi.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(err, "instantiate wasi")
	}

	mod, err := rt.Instantiate(ctx, wasm)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(err, "instantiate module")
	}

	m := &Module{ctx: ctx, runtime: rt, mod: mod}
	if err := m.resolve(); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	m.table = m.buildTable()
	return m, nil
}

// resolve validates the full required export set before anything is called.
func (m *Module) resolve() error {
	fns := make(map[string]api.Function, len(cabihost.Symbols)+1)

	var missing []string
	for _, name := range cabihost.Symbols {
		fn := m.mod.ExportedFunction(name)
		if fn == nil {
			missing = append(missing, name)
			continue
		}
		fns[name] = fn
	}
	if fn := m.mod.ExportedFunction(SymRealloc); fn == nil {
		missing = append(missing, SymRealloc)
	} else {
		fns[SymRealloc] = fn
	}
	if m.mod.Memory() == nil {
		missing = append(missing, "memory")
	}

	if len(missing) > 0 {
		return errors.MissingSymbols(missing)
	}

	m.initTracing = fns[cabihost.SymInitTracing]
	m.nodeNew = fns[cabihost.SymNodeNew]
	m.nodeListen = fns[cabihost.SymNodeListen]
	m.nodeDial = fns[cabihost.SymNodeDial]
	m.nodeFree = fns[cabihost.SymNodeFree]
	m.realloc = fns[SymRealloc]
	return nil
}

// Table returns the resolved ABI table. The table is only valid while the
// module is open.
func (m *Module) Table() *abi.Table { return m.table }

// Close releases the instance and its runtime.
func (m *Module) Close() error {
	return m.runtime.Close(m.ctx)
}

func (m *Module) buildTable() *abi.Table {
	return &abi.Table{
		InitTracing: func() cabihost.Status {
			results, err := m.initTracing.Call(m.ctx)
			return statusOf(results, err)
		},
		NewNode: func(useQuic bool) cabihost.NodeHandle {
			arg := uint64(0)
			if useQuic {
				arg = 1
			}
			results, err := m.nodeNew.Call(m.ctx, arg)
			if err != nil || len(results) == 0 {
				return 0
			}
			return cabihost.NodeHandle(uint32(results[0]))
		},
		ListenNode: func(handle cabihost.NodeHandle, addr string) cabihost.Status {
			return m.callWithAddr(m.nodeListen, handle, addr)
		},
		DialNode: func(handle cabihost.NodeHandle, addr string) cabihost.Status {
			return m.callWithAddr(m.nodeDial, handle, addr)
		},
		FreeNode: func(handle cabihost.NodeHandle) {
			_, _ = m.nodeFree.Call(m.ctx, uint64(handle))
		},
	}
}

// callWithAddr copies addr into guest memory as a NUL-terminated C string,
// invokes fn(handle, ptr), and frees the string afterwards.
func (m *Module) callWithAddr(fn api.Function, handle cabihost.NodeHandle, addr string) cabihost.Status {
	ptr, size, ok := m.pushString(addr)
	if !ok {
		return cabihost.StatusInternalError
	}
	defer m.freeString(ptr, size)

	results, err := fn.Call(m.ctx, uint64(handle), uint64(ptr))
	return statusOf(results, err)
}

func (m *Module) pushString(s string) (ptr, size uint32, ok bool) {
	size = uint32(len(s) + 1)
	results, err := m.realloc.Call(m.ctx, 0, 0, 1, uint64(size))
	if err != nil || len(results) == 0 || uint32(results[0]) == 0 {
		return 0, 0, false
	}
	ptr = uint32(results[0])

	buf := make([]byte, 0, size)
	buf = append(buf, s...)
	buf = append(buf, 0)
	if !m.mod.Memory().Write(ptr, buf) {
		m.freeString(ptr, size)
		return 0, 0, false
	}
	return ptr, size, true
}

func (m *Module) freeString(ptr, size uint32) {
	_, _ = m.realloc.Call(m.ctx, uint64(ptr), uint64(size), 1, 0)
}

// statusOf maps a raw i32 result to a Status. A trapped call has no status to
// report, so it degrades to an internal error.
func statusOf(results []uint64, err error) cabihost.Status {
	if err != nil || len(results) == 0 {
		return cabihost.StatusInternalError
	}
	return cabihost.Status(int32(uint32(results[0])))
}
