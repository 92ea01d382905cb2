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

import "strings"

// Cell is a single instance within a module: either a `$`-prefixed built-in
// primitive, or an instance of another module in the same design.
type Cell struct {
	// Id identifies this cell within its enclosing module.
	Id CellId
	// Name is the source (pre-sanitization) spelling of this cell's
	// instance name, used when this cell is a subcircuit instance.
	Name string
	// Type is the cell's type tag.  Types beginning with "$" are built-in
	// primitives, except "$paramod..." types; all others (including
	// "$paramod...") name another module in the design.
	Type string
	// Ports maps port name to the signal connected to it.
	Ports map[string]SigSpec
	// Params maps parameter name to its constant value.
	Params map[string]Constant
}

// IsPrimitive holds for built-in cell types, identified by a leading "$".
// "$paramod..." types name a parameterized module and are not primitives.
func (c *Cell) IsPrimitive() bool {
	return strings.HasPrefix(c.Type, "$") && !strings.HasPrefix(c.Type, "$paramod")
}

// Port returns the signal connected to the named port, or the empty signal
// if the port has no connection recorded.
func (c *Cell) Port(name string) SigSpec {
	return c.Ports[name]
}

// HasPort reports whether this cell has a (possibly empty) connection
// recorded for the named port.
func (c *Cell) HasPort(name string) bool {
	_, ok := c.Ports[name]
	return ok
}

// Param returns the named parameter, or a nil Constant if absent.
func (c *Cell) Param(name string) Constant {
	return c.Params[name]
}

// ParamUint returns the named parameter interpreted as an unsigned integer,
// or fallback if the parameter is absent.
func (c *Cell) ParamUint(name string, fallback uint64) uint64 {
	v, ok := c.Params[name]
	if !ok {
		return fallback
	}

	return v.AsUint64()
}

// ParamBool returns the named single-bit parameter interpreted as a boolean,
// or fallback if the parameter is absent.
func (c *Cell) ParamBool(name string, fallback bool) bool {
	v, ok := c.Params[name]
	if !ok {
		return fallback
	}

	return v.Bool()
}
