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
package firrtl

import "github.com/consensys/go-firrtl/pkg/netlist"

// driverRef identifies the single bit of an emitted FIRRTL expression which
// drives some bit of some module wire.
type driverRef struct {
	// id is the emitted FIRRTL identifier (a result wire, register, or
	// instance-derived wire) supplying the value.
	id string
	// bit is the bit-index within id.
	bit uint
}

// wireKey addresses a single bit of a single wire.
type wireKey struct {
	wire netlist.WireId
	bit  uint
}

// reverseWireMap inverts the netlist's "a cell output drives bits of a
// wire" relation into "this bit of this wire is driven by this bit of this
// emitted expression".  FIRRTL requires every wire to be explicitly assigned
// from an expression, so the module walker (4.E) must reconstruct, for each
// wire, the expression driving each of its bits; this table is what it
// consults to do that.  A missing entry means the bit has no driver.
type reverseWireMap struct {
	drivers map[wireKey]driverRef
}

func newReverseWireMap() *reverseWireMap {
	return &reverseWireMap{drivers: make(map[wireKey]driverRef)}
}

// recordRun declares that bits [wireOffset, wireOffset+width) of wire are
// driven by the contiguous bits [idOffset, idOffset+width) of the emitted
// identifier id.
func (m *reverseWireMap) recordRun(wire netlist.WireId, wireOffset uint, id string, idOffset uint, width uint) {
	for i := uint(0); i < width; i++ {
		m.drivers[wireKey{wire, wireOffset + i}] = driverRef{id: id, bit: idOffset + i}
	}
}

// driverOf looks up the driver of a single wire bit.
func (m *reverseWireMap) driverOf(wire netlist.WireId, bit uint) (driverRef, bool) {
	d, ok := m.drivers[wireKey{wire, bit}]
	return d, ok
}
