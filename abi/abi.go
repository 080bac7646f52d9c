// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package abi loads compiled behaviour libraries and calls their entry points
// according to the legacy calling conventions (umat, aster, cyrano, castem)
package abi

/*
#cgo linux LDFLAGS: -ldl
#include <stdlib.h>
#include <dlfcn.h>

static void* gomtest_dlopen(const char* path) {
	return dlopen(path, RTLD_NOW | RTLD_LOCAL);
}

static void* gomtest_dlsym(void* h, const char* name) {
	dlerror();
	return dlsym(h, name);
}

static const char* gomtest_dlerror(void) {
	return dlerror();
}
*/
import "C"

import (
	"unsafe"

	"github.com/cpmech/gosl/io"
)

// Library is an opened shared library (or an in-process symbol table)
type Library interface {
	Symbol(name string) (unsafe.Pointer, error) // address of a function or data symbol
	Close() error                               // releases the library
}

// Loader opens libraries
type Loader interface {
	Open(path string) (Library, error)
}

// Error reports a failure of the dynamic loader
type Error struct {
	Op         string // "open", "symbol" or "close"
	Name       string // library path or symbol name
	Diagnostic string // message from the platform loader
}

func (o *Error) Error() string {
	return io.Sf("abi: %s %q failed: %s", o.Op, o.Name, o.Diagnostic)
}

// DlLoader opens libraries with dlopen
type DlLoader struct{}

// dlLibrary wraps a dlopen handle
type dlLibrary struct {
	path   string
	handle unsafe.Pointer
}

// Open opens a shared library
func (o DlLoader) Open(path string) (Library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	h := C.gomtest_dlopen(cpath)
	if h == nil {
		return nil, &Error{"open", path, dlerror()}
	}
	return &dlLibrary{path, h}, nil
}

// Symbol returns the address of a symbol
func (o *dlLibrary) Symbol(name string) (unsafe.Pointer, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	p := C.gomtest_dlsym(o.handle, cname)
	if p == nil {
		return nil, &Error{"symbol", name, dlerror()}
	}
	return p, nil
}

// Close closes the library
func (o *dlLibrary) Close() error {
	if o.handle == nil {
		return nil
	}
	if C.dlclose(o.handle) != 0 {
		return &Error{"close", o.path, dlerror()}
	}
	o.handle = nil
	return nil
}

func dlerror() string {
	msg := C.gomtest_dlerror()
	if msg == nil {
		return "unknown error"
	}
	return C.GoString(msg)
}

// data symbols ////////////////////////////////////////////////////////////////////////////////////

// UShort reads an unsigned short data symbol
func UShort(p unsafe.Pointer) int {
	return int(*(*C.ushort)(p))
}

// Int reads an int data symbol
func Int(p unsafe.Pointer) int {
	return int(*(*C.int)(p))
}

// Ints reads an array of n ints
func Ints(p unsafe.Pointer, n int) (res []int) {
	if n == 0 {
		return
	}
	v := unsafe.Slice((*C.int)(p), n)
	res = make([]int, n)
	for i := 0; i < n; i++ {
		res[i] = int(v[i])
	}
	return
}

// String reads a data symbol of type "const char*"
func String(p unsafe.Pointer) string {
	s := *(**C.char)(p)
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// Strings reads an array of n "const char*"
func Strings(p unsafe.Pointer, n int) (res []string) {
	if n == 0 {
		return
	}
	v := unsafe.Slice((**C.char)(p), n)
	res = make([]string, n)
	for i := 0; i < n; i++ {
		if v[i] != nil {
			res[i] = C.GoString(v[i])
		}
	}
	return
}
