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

// WireId uniquely identifies a wire within its enclosing module.
type WireId uint

// CellId uniquely identifies a cell within its enclosing module.
type CellId uint

// Chunk is a single element of a SigSpec: either a literal bit-vector, or a
// slice of an existing wire.
type Chunk struct {
	// Wire is the wire this chunk slices.  Ignored (zero value) when Literal
	// is non-nil.
	Wire WireId
	// Offset is the LSB-relative bit offset into Wire.  Ignored when Literal
	// is non-nil.
	Offset uint
	// Width is the number of bits this chunk contributes.
	Width uint
	// Literal holds the constant value when this chunk is a literal, and is
	// nil when this chunk slices a wire.
	Literal Constant
}

// IsLiteral holds when this chunk is a literal bit-vector rather than a wire
// slice.
func (c Chunk) IsLiteral() bool {
	return c.Literal != nil
}

// SigSpec is an ordered, LSB-first concatenation of chunks drawn from wires
// and literal constants.
type SigSpec []Chunk

// NewWireSignal constructs a single-chunk signal referencing an entire wire.
func NewWireSignal(id WireId, width uint) SigSpec {
	return SigSpec{{Wire: id, Offset: 0, Width: width}}
}

// NewSliceSignal constructs a single-chunk signal referencing part of a wire.
func NewSliceSignal(id WireId, offset, width uint) SigSpec {
	return SigSpec{{Wire: id, Offset: offset, Width: width}}
}

// NewConstSignal constructs a single-chunk literal signal.
func NewConstSignal(value Constant) SigSpec {
	return SigSpec{{Literal: value, Width: value.Width()}}
}

// Width returns the total bit-width of this signal, i.e. the sum of its
// chunks' widths.
func (s SigSpec) Width() uint {
	var w uint
	for _, c := range s {
		w += c.Width
	}

	return w
}

// IsEmpty holds when this signal carries no chunks (e.g. an unconnected
// cell port).
func (s SigSpec) IsEmpty() bool {
	return len(s) == 0
}

// IsFullyConstant holds when every chunk of this signal is a literal.
func (s SigSpec) IsFullyConstant() bool {
	for _, c := range s {
		if !c.IsLiteral() {
			return false
		}
	}

	return true
}

// AsConstant collapses a fully-constant signal into a single Constant,
// LSB-first.  Panics if the signal carries any wire chunk.
func (s SigSpec) AsConstant() Constant {
	out := make(Constant, 0, s.Width())

	for _, c := range s {
		if !c.IsLiteral() {
			panic("signal is not fully constant")
		}

		out = append(out, c.Literal...)
	}

	return out
}
