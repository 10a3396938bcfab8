// Package dl loads native shared libraries through the platform's standard
// dynamic-library mechanism: dlopen/dlsym/dlclose on unix-like systems,
// LoadLibrary/GetProcAddress/FreeLibrary on Windows.
//
// A Library is an ownership token. It must be closed exactly once, and only
// after every symbol resolved from it (and every handle derived from those
// symbols) has gone out of use; the host package enforces that ordering.
package dl
