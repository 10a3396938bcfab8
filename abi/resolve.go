package abi

import (
	"github.com/ebitengine/purego"

	cabihost "github.com/wippyai/cabi-host"
	"github.com/wippyai/cabi-host/errors"
)

// Resolve looks up every required symbol in src and binds the results into a
// typed Table. If any lookup fails the whole resolution fails with an error
// naming all missing symbols, and nothing is bound.
func Resolve(src cabihost.SymbolSource) (*Table, error) {
	addrs := make(map[string]uintptr, len(cabihost.Symbols))

	var missing []string
	for _, name := range cabihost.Symbols {
		addr, err := src.Lookup(name)
		if err != nil || addr == 0 {
			missing = append(missing, name)
			continue
		}
		addrs[name] = addr
	}

	// One absent symbol invalidates the whole table.
	if len(missing) > 0 {
		return nil, errors.MissingSymbols(missing)
	}

	t := &Table{}
	purego.RegisterFunc(&t.InitTracing, addrs[cabihost.SymInitTracing])
	purego.RegisterFunc(&t.NewNode, addrs[cabihost.SymNodeNew])
	purego.RegisterFunc(&t.ListenNode, addrs[cabihost.SymNodeListen])
	purego.RegisterFunc(&t.DialNode, addrs[cabihost.SymNodeDial])
	purego.RegisterFunc(&t.FreeNode, addrs[cabihost.SymNodeFree])
	return t, nil
}
