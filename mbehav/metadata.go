// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

// Metadata describes a compiled behaviour for a given modelling hypothesis.
// The registry caches one instance per (library, function, hypothesis) and only hands out copies.
type Metadata struct {
	Library    string
	Function   string
	Hypothesis Hypothesis

	Kind            BehaviourKind
	Symmetry        SymmetryType
	ElasticSymmetry SymmetryType

	MaterialProperties          []string       // declared by the behaviour (convention properties excluded)
	InternalStateVariables      []string       // names of internal state variables
	InternalStateVariablesTypes []VariableType // types of internal state variables
	ExternalStateVariables      []string       // external state variables besides the temperature
	Hypotheses                  []Hypothesis   // supported hypotheses; empty if not declared

	RequiresStiffnessTensor        bool
	RequiresThermalExpansionTensor bool
	SavesTangentOperator           bool

	Source    string // name of the source file, if exported
	Interface string // name of the interface, if exported
}

// MetadataDefaults holds the values used when a library does not export a query symbol
type MetadataDefaults struct {
	Kind            BehaviourKind
	Symmetry        SymmetryType
	ElasticSymmetry SymmetryType
}

// GetCopy returns a deep copy
func (o *Metadata) GetCopy() *Metadata {
	c := *o
	c.MaterialProperties = append([]string(nil), o.MaterialProperties...)
	c.InternalStateVariables = append([]string(nil), o.InternalStateVariables...)
	c.InternalStateVariablesTypes = append([]VariableType(nil), o.InternalStateVariablesTypes...)
	c.ExternalStateVariables = append([]string(nil), o.ExternalStateVariables...)
	c.Hypotheses = append([]Hypothesis(nil), o.Hypotheses...)
	return &c
}

// Supports tells whether the behaviour declares hypothesis h (or declares none)
func (o *Metadata) Supports(h Hypothesis) bool {
	if len(o.Hypotheses) == 0 {
		return true
	}
	for _, x := range o.Hypotheses {
		if x == h {
			return true
		}
	}
	return false
}

// InternalStateVariablesSize returns the number of scalar components of internal state variables
func (o *Metadata) InternalStateVariablesSize() (n int) {
	for _, t := range o.InternalStateVariablesTypes {
		n += t.Size(o.Hypothesis)
	}
	return
}

// InternalStateVariablesComponents returns the names of all components of internal state variables
func (o *Metadata) InternalStateVariablesComponents() (res []string) {
	for i, name := range o.InternalStateVariables {
		res = append(res, o.InternalStateVariablesTypes[i].Components(o.Hypothesis, name)...)
	}
	return
}
