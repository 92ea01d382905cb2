// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package netlist provides the in-memory representation of a flattened,
// elaborated hardware design: a set of named modules, each owning wires,
// cells and point-to-point connections.  It is the read-only input model
// consumed by pkg/firrtl; nothing in this package performs translation.
package netlist

// Design is an ordered collection of modules, plus an optional designated
// top module.
type Design struct {
	modules []*Module
	byName  map[string]int
	topName string
	hasTop  bool
}

// NewDesign constructs an empty design.
func NewDesign() *Design {
	return &Design{byName: make(map[string]int)}
}

// AddModule appends a module to this design.  Panics if a module of the same
// name has already been added.
func (d *Design) AddModule(m *Module) {
	if _, ok := d.byName[m.Name]; ok {
		panic("duplicate module name: " + m.Name)
	}

	d.byName[m.Name] = len(d.modules)
	d.modules = append(d.modules, m)
}

// Modules returns this design's modules in the order they were added.
func (d *Design) Modules() []*Module {
	return d.modules
}

// Module looks up a module by name.
func (d *Design) Module(name string) (*Module, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}

	return d.modules[i], true
}

// SetTop records an explicit, caller-designated top module name.
func (d *Design) SetTop(name string) {
	d.topName = name
	d.hasTop = true
}

// Top returns the design's explicitly designated top module, if any.
func (d *Design) Top() (*Module, bool) {
	if !d.hasTop {
		return nil, false
	}

	return d.Module(d.topName)
}
