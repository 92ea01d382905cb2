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
	"fmt"

	"github.com/consensys/go-firrtl/pkg/netlist"
)

// signalPrinter renders a netlist.SigSpec as a FIRRTL expression of the
// signal's total width, always unsigned.  Signedness, if any is required by
// the caller, is applied at the use site via asSInt/asUInt -- the printer
// itself never produces a signed expression.
type signalPrinter struct {
	names *nameAllocator
	mod   *netlist.Module
}

// render turns sig into a single FIRRTL expression string.
func (p *signalPrinter) render(sig netlist.SigSpec) string {
	var acc string

	for _, chunk := range sig {
		expr := p.renderChunk(chunk)

		if acc == "" {
			acc = expr
		} else {
			// The chunk just rendered is higher-order than everything
			// accumulated so far (chunks are listed LSB-first), so it goes
			// on the left of cat, matching FIRRTL's cat(hi, lo).
			acc = fmt.Sprintf("cat(%s, %s)", expr, acc)
		}
	}

	if acc == "" {
		// An empty signal has no FIRRTL representation; callers should
		// never render one, but an empty literal keeps this total.
		return "UInt<1>(\"h0\")"
	}

	return acc
}

func (p *signalPrinter) renderChunk(c netlist.Chunk) string {
	if c.IsLiteral() {
		return literalExpr(c.Literal)
	}

	w, ok := p.mod.Wire(c.Wire)
	if !ok {
		panic(fmt.Sprintf("signal references unknown wire id %d", c.Wire))
	}

	name := p.names.sanitize(w.Name)

	if c.Offset == 0 && c.Width == w.Width {
		return name
	}

	hi := c.Offset + c.Width - 1

	return fmt.Sprintf("bits(%s, %d, %d)", name, hi, c.Offset)
}

// literalExpr renders a literal bit-vector as UInt<W>("h...").  Non-0/1 bits
// are treated as zero, matching Constant.HexDigits.
func literalExpr(value netlist.Constant) string {
	return fmt.Sprintf("UInt<%d>(\"h%s\")", value.Width(), value.HexDigits())
}
