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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-firrtl/pkg/netlist"
)

func TestSignalPrinterWholeWire(t *testing.T) {
	mod := netlist.NewModule("m")
	mod.AddWire(&netlist.Wire{Id: 1, Name: "a", Width: 4})

	p := &signalPrinter{names: newNameAllocator(), mod: mod}
	got := p.render(netlist.NewWireSignal(1, 4))
	assert.Equal(t, "a", got)
}

func TestSignalPrinterSlice(t *testing.T) {
	mod := netlist.NewModule("m")
	mod.AddWire(&netlist.Wire{Id: 1, Name: "a", Width: 8})

	p := &signalPrinter{names: newNameAllocator(), mod: mod}
	got := p.render(netlist.NewSliceSignal(1, 2, 3))
	assert.Equal(t, "bits(a, 4, 2)", got)
}

func TestSignalPrinterCatFold(t *testing.T) {
	mod := netlist.NewModule("m")
	mod.AddWire(&netlist.Wire{Id: 1, Name: "a", Width: 2})
	mod.AddWire(&netlist.Wire{Id: 2, Name: "b", Width: 2})

	p := &signalPrinter{names: newNameAllocator(), mod: mod}

	sig := netlist.SigSpec{
		{Wire: 1, Offset: 0, Width: 2},
		{Wire: 2, Offset: 0, Width: 2},
	}

	// b is higher-order (listed second, LSB-first), so it goes on the left.
	assert.Equal(t, "cat(b, a)", p.render(sig))
}

func TestLiteralExpr(t *testing.T) {
	got := literalExpr(netlist.NewConstant(0xab, 8))
	assert.Equal(t, `UInt<8>("hab")`, got)
}
