// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/cpmech/gomtest/abi"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/sync/singleflight"
)

// BehaviourRegistry opens libraries, resolves entry points and reads the metadata of compiled
// behaviours. Each library is opened once; results are cached for the lifetime of the registry.
type BehaviourRegistry struct {
	mu     sync.Mutex         // guards insertions and the loader
	loader abi.Loader         // opens libraries
	group  singleflight.Group // collapses concurrent first opens
	libs   sync.Map           // path => abi.Library
	syms   sync.Map           // path+"\x00"+symbol => unsafe.Pointer
	metas  sync.Map           // metadata key => *Metadata
}

var (
	registry     *BehaviourRegistry
	registryOnce sync.Once
)

// Registry returns the process-wide registry
func Registry() *BehaviourRegistry {
	registryOnce.Do(func() {
		registry = NewRegistry(abi.DlLoader{})
	})
	return registry
}

// NewRegistry returns a new registry using loader to open libraries
func NewRegistry(loader abi.Loader) *BehaviourRegistry {
	return &BehaviourRegistry{loader: loader}
}

// SetLoader replaces the loader used to open libraries that are not opened yet
func (o *BehaviourRegistry) SetLoader(loader abi.Loader) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loader = loader
}

// LoadLibrary opens a library (once)
func (o *BehaviourRegistry) LoadLibrary(path string) (abi.Library, error) {
	if v, ok := o.libs.Load(path); ok {
		return v.(abi.Library), nil
	}
	v, err, _ := o.group.Do(path, func() (interface{}, error) {
		if v, ok := o.libs.Load(path); ok {
			return v, nil
		}
		o.mu.Lock()
		loader := o.loader
		o.mu.Unlock()
		lib, err := loader.Open(path)
		if err != nil {
			return nil, &LoadFailure{LibraryNotFound, path, "", diagnostic(err)}
		}
		o.mu.Lock()
		o.libs.Store(path, lib)
		o.mu.Unlock()
		return lib, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(abi.Library), nil
}

// ResolveFunction returns the address of function name in library path
func (o *BehaviourRegistry) ResolveFunction(path, name string) (unsafe.Pointer, error) {
	p, diag, err := o.symbol(path, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &LoadFailure{SymbolNotFound, path, name, diag}
	}
	return p, nil
}

// lookup returns the address of a symbol; found is false if the library does not define it
func (o *BehaviourRegistry) lookup(path, name string) (p unsafe.Pointer, found bool, err error) {
	p, _, err = o.symbol(path, name)
	return p, p != nil, err
}

// symbol returns the address of a symbol or, if the library does not define it, a nil address
// and the diagnostic of the loader
func (o *BehaviourRegistry) symbol(path, name string) (p unsafe.Pointer, diag string, err error) {
	key := path + "\x00" + name
	if v, ok := o.syms.Load(key); ok {
		return v.(unsafe.Pointer), "", nil
	}
	lib, err := o.LoadLibrary(path)
	if err != nil {
		return
	}
	p, e := lib.Symbol(name)
	if e != nil {
		return nil, diagnostic(e), nil
	}
	if p == nil {
		return nil, "symbol is null", nil
	}
	o.mu.Lock()
	o.syms.Store(key, p)
	o.mu.Unlock()
	return p, "", nil
}

// query looks for <function>_<hypothesis>_<name> then for <function>_<name>
func (o *BehaviourRegistry) query(path, function string, h Hypothesis, name string) (p unsafe.Pointer, found bool, err error) {
	p, found, err = o.lookup(path, function+"_"+h.String()+"_"+name)
	if err != nil || found {
		return
	}
	return o.lookup(path, function+"_"+name)
}

// queryUShort reads an unsigned short query symbol, returning def if it does not exist
func (o *BehaviourRegistry) queryUShort(path, function string, h Hypothesis, name string, def int) (int, error) {
	p, found, err := o.query(path, function, h, name)
	if err != nil || !found {
		return def, err
	}
	return abi.UShort(p), nil
}

// queryString reads a "const char*" query symbol
func (o *BehaviourRegistry) queryString(path, function string, h Hypothesis, name string) (string, error) {
	p, found, err := o.query(path, function, h, name)
	if err != nil || !found {
		return "", err
	}
	return abi.String(p), nil
}

// queryNames reads the pair of symbols n<name> and <name>. The hypothesis specific count selects
// the hypothesis specific names.
func (o *BehaviourRegistry) queryNames(path, function string, h Hypothesis, name string, required bool) (res []string, prefix string, err error) {
	prefix = function + "_" + h.String() + "_"
	pn, found, err := o.lookup(path, prefix+"n"+name)
	if err != nil {
		return
	}
	if !found {
		prefix = function + "_"
		pn, found, err = o.lookup(path, prefix+"n"+name)
		if err != nil {
			return
		}
	}
	if !found {
		if required {
			err = &LoadFailure{SymbolNotFound, path, function + "_n" + name, "required query symbol is missing"}
		}
		return
	}
	n := abi.UShort(pn)
	if n == 0 {
		return
	}
	pnames, found, err := o.lookup(path, prefix+name)
	if err != nil {
		return
	}
	if !found {
		err = &LoadFailure{ArityMismatch, path, prefix + name, io.Sf("%d names are declared but the names table is missing", n)}
		return
	}
	res = abi.Strings(pnames, n)
	return
}

// GetMetadata returns (a copy of) the metadata of function in library path for hypothesis h
func (o *BehaviourRegistry) GetMetadata(path, function string, h Hypothesis, defaults MetadataDefaults) (*Metadata, error) {
	key := io.Sf("%s\x00%s\x00%d\x00%v", path, function, h, defaults)
	if v, ok := o.metas.Load(key); ok {
		return v.(*Metadata).GetCopy(), nil
	}
	m, err := o.readMetadata(path, function, h, defaults)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	v, _ := o.metas.LoadOrStore(key, m)
	o.mu.Unlock()
	return v.(*Metadata).GetCopy(), nil
}

// readMetadata reads all query symbols
func (o *BehaviourRegistry) readMetadata(path, function string, h Hypothesis, defaults MetadataDefaults) (m *Metadata, err error) {

	// the function itself must exist
	if _, err = o.ResolveFunction(path, function); err != nil {
		return
	}

	// basic data
	m = &Metadata{Library: path, Function: function, Hypothesis: h}
	var k int
	if k, err = o.queryUShort(path, function, h, "BehaviourType", int(defaults.Kind)); err != nil {
		return
	}
	m.Kind = BehaviourKind(k)
	if m.Kind == 0 {
		m.Kind = SmallStrain
	}
	if k, err = o.queryUShort(path, function, h, "SymmetryType", int(defaults.Symmetry)); err != nil {
		return
	}
	m.Symmetry = SymmetryType(k)
	if k, err = o.queryUShort(path, function, h, "ElasticSymmetryType", int(defaults.ElasticSymmetry)); err != nil {
		return
	}
	m.ElasticSymmetry = SymmetryType(k)
	flags := []*bool{&m.RequiresStiffnessTensor, &m.RequiresThermalExpansionTensor, &m.SavesTangentOperator}
	for i, name := range []string{"requiresStiffnessTensor", "requiresThermalExpansionCoefficientTensor", "savesTangentOperator"} {
		if k, err = o.queryUShort(path, function, h, name, 0); err != nil {
			return
		}
		*flags[i] = k != 0
	}
	if m.Source, err = o.queryString(path, function, h, "src"); err != nil {
		return
	}
	if m.Interface, err = o.queryString(path, function, h, "Interface"); err != nil {
		return
	}

	// material properties
	if m.MaterialProperties, _, err = o.queryNames(path, function, h, "MaterialProperties", true); err != nil {
		return
	}

	// internal state variables
	var prefix string
	if m.InternalStateVariables, prefix, err = o.queryNames(path, function, h, "InternalStateVariables", false); err != nil {
		return
	}
	m.InternalStateVariablesTypes = make([]VariableType, len(m.InternalStateVariables))
	if len(m.InternalStateVariables) > 0 {
		p, found, e := o.lookup(path, prefix+"InternalStateVariablesTypes")
		if e != nil {
			return nil, e
		}
		if found {
			for i, t := range abi.Ints(p, len(m.InternalStateVariables)) {
				if t < 0 || t > int(Tensor) {
					return nil, &LoadFailure{ArityMismatch, path, prefix + "InternalStateVariablesTypes", io.Sf("invalid type %d", t)}
				}
				m.InternalStateVariablesTypes[i] = VariableType(t)
			}
		}
	}

	// external state variables
	if m.ExternalStateVariables, _, err = o.queryNames(path, function, h, "ExternalStateVariables", false); err != nil {
		return
	}

	// supported hypotheses
	var hnames []string
	if hnames, _, err = o.queryNames(path, function, h, "ModellingHypotheses", false); err != nil {
		return
	}
	for _, name := range hnames {
		x, e := ParseHypothesis(name)
		if e != nil {
			return nil, chk.Err("library %q, function %q: %v", path, function, e)
		}
		m.Hypotheses = append(m.Hypotheses, x)
	}
	return
}

// CloseAll closes all libraries and clears the caches
func (o *BehaviourRegistry) CloseAll() (err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.libs.Range(func(k, v interface{}) bool {
		if e := v.(abi.Library).Close(); e != nil && err == nil {
			err = e
		}
		o.libs.Delete(k)
		return true
	})
	o.syms.Range(func(k, v interface{}) bool {
		o.syms.Delete(k)
		return true
	})
	o.metas.Range(func(k, v interface{}) bool {
		o.metas.Delete(k)
		return true
	})
	return
}

// diagnostic extracts the platform message from a loader error
func diagnostic(err error) string {
	var e *abi.Error
	if errors.As(err, &e) {
		return e.Diagnostic
	}
	return err.Error()
}
