// Package abi resolves the five exported cabi entry points into a typed
// function table.
//
// Resolution is all-or-nothing: a Table only exists in a fully populated
// state. If any required symbol is absent the resolver returns a single error
// naming every missing symbol and no resolved function is ever bound or
// invoked. This removes the "partially populated table" failure class
// entirely, including the classic inverted-validity-check bug where a host
// proceeds with an incomplete table.
package abi
