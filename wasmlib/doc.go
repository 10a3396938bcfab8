// Package wasmlib runs a wasm32 build of the cabi networking library
// in-process through wazero, exposing the identical five-function ABI table.
//
// Beyond the five cabi entry points the module must export a linear memory
// and cabi_realloc, the canonical-ABI allocator, which the host uses to place
// NUL-terminated address strings in guest memory for the duration of a call.
// Export validation follows the same all-or-nothing rule as native symbol
// resolution: any missing export invalidates the module as a whole.
package wasmlib
