package host

import (
	"sync"

	"go.uber.org/zap"

	cabihost "github.com/wippyai/cabi-host"
	"github.com/wippyai/cabi-host/errors"
)

// Node is a non-owning reference to networking state held by the library. It
// stays valid from successful creation until Close; the host's bookkeeping,
// not the library, prevents use after free.
type Node struct {
	lib *Library

	mu     sync.Mutex
	handle cabihost.NodeHandle
	closed bool
}

// Listen binds the node to accept inbound connections at addr. It may be
// called any number of times to bind multiple addresses.
func (n *Node) Listen(addr string) error {
	return n.call("listen", addr, func(h cabihost.NodeHandle) cabihost.Status {
		return n.lib.table.ListenNode(h, addr)
	})
}

// Dial initiates an outbound connection attempt to addr. A nil return means
// the attempt was validly initiated; completion is asynchronous inside the
// library and carries no ordering guarantee at this boundary.
func (n *Node) Dial(addr string) error {
	return n.call("dial", addr, func(h cabihost.NodeHandle) cabihost.Status {
		return n.lib.table.DialNode(h, addr)
	})
}

func (n *Node) call(op, addr string, fn func(cabihost.NodeHandle) cabihost.Status) error {
	if addr == "" {
		return errors.InvalidArgument(errors.PhaseCall, "empty address")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return errors.Closed(errors.PhaseCall, "node")
	}

	status := fn(n.handle)
	if err := status.Err(errors.PhaseCall); err != nil {
		n.lib.log.Warn(op+" failed",
			zap.String("addr", addr),
			zap.Stringer("status", status))
		return err
	}
	n.lib.log.Info(op, zap.String("addr", addr))
	return nil
}

// Close frees the node's networking state. The first call crosses the
// boundary; later calls return nil without touching the stale handle.
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}

	n.lib.table.FreeNode(n.handle)
	n.closed = true
	// Null the local reference so a future bug cannot hand the stale
	// handle back across the boundary.
	n.handle = 0
	n.lib.forget(n)
	n.lib.log.Info("node freed")
	return nil
}

// Closed reports whether the node has been freed.
func (n *Node) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}
