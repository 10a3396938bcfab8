package dl

import (
	"github.com/wippyai/cabi-host/errors"
)

// Library is an open handle to a native shared library.
type Library struct {
	handle uintptr
	name   string
}

// Open loads the named shared library. A bare file name is resolved through
// the operating system's search path; a path is used as given. The library's
// static initializers run as part of acquisition.
func Open(name string) (*Library, error) {
	handle, err := openLibrary(name)
	if err != nil {
		return nil, errors.NotFound(name, err)
	}
	return &Library{handle: handle, name: name}, nil
}

// Name returns the name the library was opened with.
func (l *Library) Name() string { return l.name }

// Lookup resolves an exported symbol to its address.
func (l *Library) Lookup(name string) (uintptr, error) {
	return lookupSymbol(l.handle, name)
}

// Close unloads the library. Must be called at most once, after all resolved
// symbols are out of use.
func (l *Library) Close() error {
	return closeLibrary(l.handle)
}
