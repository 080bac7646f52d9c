// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cstubs implements a reference behaviour library compiled into the executable.
// It provides isotropic elastic laws for each calling convention and is served through
// an abi.Loader under the virtual path Path
package cstubs

/*
#cgo LDFLAGS: -lm
#include <stdlib.h>
#include "stubs.h"
*/
import "C"

import (
	"unsafe"

	"github.com/cpmech/gomtest/abi"
)

// Path is the library path answered by the loader returned by Loader
const Path = "libgomtest-stubs.so"

// library implements abi.Library
type library struct{}

// Symbol returns the address of a symbol of the reference library
func (o library) Symbol(name string) (unsafe.Pointer, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	p := C.gomtest_stub_symbol(cname)
	if p == nil {
		return nil, &abi.Error{Op: "symbol", Name: name, Diagnostic: "undefined symbol in " + Path}
	}
	return p, nil
}

// Close does nothing
func (o library) Close() error { return nil }

// loader serves Path and forwards every other path to the fallback loader
type loader struct {
	fallback abi.Loader
}

// Open opens a library
func (o loader) Open(path string) (abi.Library, error) {
	if path == Path {
		return library{}, nil
	}
	if o.fallback == nil {
		return nil, &abi.Error{Op: "open", Name: path, Diagnostic: "no such library"}
	}
	return o.fallback.Open(path)
}

// Loader returns a loader serving the reference library and, for any other path, dlopen
func Loader() abi.Loader {
	return loader{abi.DlLoader{}}
}

// IsolatedLoader returns a loader that only knows the reference library
func IsolatedLoader() abi.Loader {
	return loader{}
}
