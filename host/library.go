package host

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	cabihost "github.com/wippyai/cabi-host"
	"github.com/wippyai/cabi-host/abi"
	"github.com/wippyai/cabi-host/dl"
	"github.com/wippyai/cabi-host/errors"
	"github.com/wippyai/cabi-host/wasmlib"
)

// Library is one loaded instance of the networking library together with its
// fully resolved ABI table.
type Library struct {
	table  *abi.Table
	closer io.Closer
	log    *zap.Logger

	mu     sync.Mutex
	nodes  []*Node
	traced bool
	closed bool
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Library) {
		if log != nil {
			l.log = log
		}
	}
}

// New wraps an already resolved ABI table. closer releases the backend the
// table was resolved from and may be nil for in-process tables. Incomplete
// tables are rejected so every backend faces the same all-or-nothing gate.
func New(table *abi.Table, closer io.Closer, opts ...Option) (*Library, error) {
	if !table.Complete() {
		return nil, errors.Wrap(errors.PhaseResolve, errors.KindMissingSymbol, nil, "incomplete ABI table")
	}
	l := &Library{
		table:  table,
		closer: closer,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Open loads the native shared library and resolves its ABI table. An empty
// name selects the fixed platform-specific library name, resolved through the
// system search path.
func Open(name string, opts ...Option) (*Library, error) {
	if name == "" {
		name = cabihost.LibraryName()
	}

	lib, err := dl.Open(name)
	if err != nil {
		return nil, err
	}

	table, err := abi.Resolve(lib)
	if err != nil {
		// The handle was acquired before resolution failed; release it
		// before surfacing the error.
		_ = lib.Close()
		return nil, err
	}

	l, err := New(table, lib, opts...)
	if err != nil {
		_ = lib.Close()
		return nil, err
	}
	l.log.Info("library loaded", zap.String("library", name))
	return l, nil
}

// OpenWASM instantiates a wasm32 build of the library in-process and resolves
// the same ABI table from its exports. ctx governs instantiation and every
// later call into the module.
func OpenWASM(ctx context.Context, wasm []byte, opts ...Option) (*Library, error) {
	mod, err := wasmlib.Open(ctx, wasm)
	if err != nil {
		return nil, err
	}

	l, err := New(mod.Table(), mod, opts...)
	if err != nil {
		_ = mod.Close()
		return nil, err
	}
	l.log.Info("wasm library instantiated", zap.Int("size", len(wasm)))
	return l, nil
}

// InitTracing initializes the library's process-wide diagnostics. The
// library's idempotency is unspecified, so a successful call is recorded and
// later calls return nil without crossing the boundary again. A non-success
// status is an error; callers should treat it as fatal to the remaining
// sequence, since uninitialized diagnostics can hide later failures.
func (l *Library) InitTracing() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return errors.Closed(errors.PhaseTrace, "library")
	}
	if l.traced {
		return nil
	}

	status := l.table.InitTracing()
	if err := status.Err(errors.PhaseTrace); err != nil {
		l.log.Error("tracing initialization failed", zap.Stringer("status", status))
		return err
	}
	l.traced = true
	l.log.Debug("tracing initialized")
	return nil
}

// NewNode creates a node, selecting QUIC or the default transport. The
// returned node is tracked and will be freed by Close if the caller has not
// already done so.
func (l *Library) NewNode(useQuic bool) (*Node, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, errors.Closed(errors.PhaseNode, "library")
	}

	handle := l.table.NewNode(useQuic)
	if handle.IsNull() {
		l.log.Error("node creation failed", zap.Bool("quic", useQuic))
		return nil, errors.Internal(errors.PhaseNode, nil, "node creation returned a null handle")
	}

	n := &Node{lib: l, handle: handle}
	l.nodes = append(l.nodes, n)
	l.log.Info("node created", zap.Bool("quic", useQuic))
	return n, nil
}

// Close releases the library. Nodes still open are freed first, in reverse
// acquisition order, so no handle outlives the library that owns it. Close is
// idempotent at this layer; the underlying release happens once.
func (l *Library) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	nodes := l.nodes
	l.nodes = nil
	l.mu.Unlock()

	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Closed() {
			continue
		}
		l.log.Warn("node left open at library close")
		_ = nodes[i].Close()
	}

	if l.closer == nil {
		return nil
	}
	if err := l.closer.Close(); err != nil {
		return errors.Wrap(errors.PhaseShutdown, errors.KindInternal, err, "release library")
	}
	l.log.Info("library released")
	return nil
}

// forget drops a node from the tracking list once it has been freed.
func (l *Library) forget(n *Node) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, tracked := range l.nodes {
		if tracked == n {
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			return
		}
	}
}
