// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import "github.com/cpmech/gosl/io"

// FailureKind classifies load failures
type FailureKind int

// load failures
const (
	LibraryNotFound FailureKind = iota
	SymbolNotFound
	ArityMismatch
)

func (o FailureKind) String() string {
	switch o {
	case LibraryNotFound:
		return "library not found"
	case SymbolNotFound:
		return "symbol not found"
	}
	return "arity mismatch"
}

// LoadFailure reports a failure to load a library or to resolve one of its symbols
type LoadFailure struct {
	Kind       FailureKind
	Library    string
	Symbol     string
	Diagnostic string
}

func (o *LoadFailure) Error() string {
	if o.Symbol == "" {
		return io.Sf("cannot load library %q (%v): %s", o.Library, o.Kind, o.Diagnostic)
	}
	return io.Sf("cannot resolve %q in library %q (%v): %s", o.Symbol, o.Library, o.Kind, o.Diagnostic)
}
