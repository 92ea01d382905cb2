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
package netlist

// Connection is a module-level point-to-point assignment: Lhs is driven by
// Rhs.  Both sides must have equal width.
type Connection struct {
	Lhs SigSpec
	Rhs SigSpec
}

// Module is a named collection of wires, cells and connections.  Wires and
// cells are kept in insertion order so that emission is deterministic.
type Module struct {
	// Name is the source (pre-sanitization) spelling of this module's name.
	Name string
	// Attributes holds source attributes attached to this module.  Only the
	// "top" key is inspected by the translator.
	Attributes map[string]string

	wires     []*Wire
	wireIndex map[WireId]int
	cells     []*Cell
	cellIndex map[CellId]int

	connections []Connection
}

// NewModule constructs an empty module with the given name.
func NewModule(name string) *Module {
	return &Module{
		Name:      name,
		wireIndex: make(map[WireId]int),
		cellIndex: make(map[CellId]int),
	}
}

// HasAttribute reports whether this module carries the named attribute.
func (m *Module) HasAttribute(key string) bool {
	_, ok := m.Attributes[key]
	return ok
}

// AddWire appends a wire to this module.  Panics if the wire's id already
// exists in this module.
func (m *Module) AddWire(w *Wire) {
	if _, ok := m.wireIndex[w.Id]; ok {
		panic("duplicate wire id")
	}

	m.wireIndex[w.Id] = len(m.wires)
	m.wires = append(m.wires, w)
}

// AddCell appends a cell to this module.  Panics if the cell's id already
// exists in this module.
func (m *Module) AddCell(c *Cell) {
	if _, ok := m.cellIndex[c.Id]; ok {
		panic("duplicate cell id")
	}

	m.cellIndex[c.Id] = len(m.cells)
	m.cells = append(m.cells, c)
}

// AddConnection appends a module-level connection.
func (m *Module) AddConnection(lhs, rhs SigSpec) {
	m.connections = append(m.connections, Connection{Lhs: lhs, Rhs: rhs})
}

// Wires returns this module's wires in insertion order.
func (m *Module) Wires() []*Wire {
	return m.wires
}

// Wire looks up a wire by id.
func (m *Module) Wire(id WireId) (*Wire, bool) {
	i, ok := m.wireIndex[id]
	if !ok {
		return nil, false
	}

	return m.wires[i], true
}

// Cells returns this module's cells in insertion order.
func (m *Module) Cells() []*Cell {
	return m.cells
}

// Cell looks up a cell by id.
func (m *Module) Cell(id CellId) (*Cell, bool) {
	i, ok := m.cellIndex[id]
	if !ok {
		return nil, false
	}

	return m.cells[i], true
}

// Connections returns this module's ordered connections.
func (m *Module) Connections() []Connection {
	return m.connections
}

// PortWires returns this module's wires which carry an input or output role,
// in declaration order.
func (m *Module) PortWires() []*Wire {
	var ports []*Wire

	for _, w := range m.wires {
		if w.Role.IsPort() {
			ports = append(ports, w)
		}
	}

	return ports
}
