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

// firrtlMaxDshWidth is FIRRTL's cap on the bit-width of a dynamic left-shift
// amount: widths at or above this value are rejected by downstream tooling,
// so a shift amount this wide or wider must be saturated first.
const firrtlMaxDshWidth = 20

// firrtlMaxDshAmount is the largest shift amount representable once the
// guarded width (firrtlMaxDshWidth-1 bits) is in force.
const firrtlMaxDshAmount = (1 << (firrtlMaxDshWidth - 1)) - 1

// unaryOpDef describes one of the §4.D unary primitive cell kinds.
type unaryOpDef struct {
	primop string
	// noPad holds for the two unary kinds whose result is an inherent
	// single-bit boolean: their operand is not padded to Y_WIDTH.
	noPad bool
	// alwaysUnsigned holds for kinds whose FIRRTL primop already produces
	// an unsigned (boolean/comparison) result, so no outer asUInt wrap is
	// needed even when the operand was signed.
	alwaysUnsigned bool
}

var unaryOps = map[string]unaryOpDef{
	"$not":         {primop: "not"},
	"$neg":         {primop: "neg"},
	"$logic_not":   {primop: "eq", noPad: true, alwaysUnsigned: true},
	"$reduce_and":  {primop: "andr", alwaysUnsigned: true},
	"$reduce_or":   {primop: "orr", alwaysUnsigned: true},
	"$reduce_xor":  {primop: "xorr", alwaysUnsigned: true},
	"$reduce_xnor": {primop: "not", alwaysUnsigned: true},
	"$reduce_bool": {primop: "neq", noPad: true, alwaysUnsigned: true},
}

// binaryOpDef describes one of the §4.D binary primitive cell kinds.
type binaryOpDef struct {
	primop         string
	alwaysUnsigned bool
	isShift        bool
	isLogical      bool
}

var binaryOps = map[string]binaryOpDef{
	"$add":       {primop: "add"},
	"$sub":       {primop: "sub"},
	"$mul":       {primop: "mul"},
	"$div":       {primop: "div"},
	"$mod":       {primop: "rem"},
	"$and":       {primop: "and", alwaysUnsigned: true},
	"$or":        {primop: "or", alwaysUnsigned: true},
	"$xor":       {primop: "xor", alwaysUnsigned: true},
	"$eq":        {primop: "eq", alwaysUnsigned: true},
	"$eqx":       {primop: "eq", alwaysUnsigned: true},
	"$ne":        {primop: "neq", alwaysUnsigned: true},
	"$nex":       {primop: "neq", alwaysUnsigned: true},
	"$gt":        {primop: "gt", alwaysUnsigned: true},
	"$ge":        {primop: "geq", alwaysUnsigned: true},
	"$lt":        {primop: "lt", alwaysUnsigned: true},
	"$le":        {primop: "leq", alwaysUnsigned: true},
	"$shl":       {primop: "shl", isShift: true},
	"$sshl":      {primop: "shl", isShift: true},
	"$shr":       {primop: "shr", isShift: true},
	"$sshr":      {primop: "shr", isShift: true},
	"$logic_and": {primop: "and", alwaysUnsigned: true, isLogical: true},
	"$logic_or":  {primop: "or", alwaysUnsigned: true, isLogical: true},
}

// translateCell dispatches on c's type tag: subcircuit instance, primitive,
// or unknown primitive.
func (e *moduleEmitter) translateCell(c *netlist.Cell) error {
	if !c.IsPrimitive() {
		return e.translateInstance(c)
	}

	if def, ok := unaryOps[c.Type]; ok {
		e.translateUnary(c, def)
		return nil
	}

	if def, ok := binaryOps[c.Type]; ok {
		return e.translateBinary(c, def)
	}

	switch c.Type {
	case "$mux":
		e.translateMux(c)
		return nil
	case "$dff":
		return e.translateDff(c)
	case "$mem":
		return e.translateMem(c)
	case "$shift":
		e.translateShift(c)
		return nil
	case "$shiftx":
		e.translateShiftx(c)
		return nil
	case "$memwr", "$memrd":
		// Deprecated legacy forms, superseded by $mem; consumed silently.
		return nil
	default:
		e.warnf("unknown cell type %q on cell %q; skipped", c.Type, c.Name)
		return nil
	}
}

// ---------------------------------------------------------------------
// Unary operators
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateUnary(c *netlist.Cell, def unaryOpDef) {
	yWidth := uint(c.ParamUint("Y_WIDTH", 1))
	aSigned := c.ParamBool("A_SIGNED", false)
	aWidth := uint(c.ParamUint("A_WIDTH", 0))

	result := e.tr.names.fresh()
	e.declareWire(result, yWidth)

	aExpr := e.printer.render(c.Port("A"))
	if aSigned {
		aExpr = asSInt(aExpr)
	}

	if !def.noPad && aWidth < yWidth {
		aExpr = fmt.Sprintf("pad(%s, %d)", aExpr, yWidth)
	}

	var expr string

	switch c.Type {
	case "$logic_not":
		expr = fmt.Sprintf("eq(%s, UInt(0))", aExpr)
	case "$reduce_bool":
		zero := "UInt(0)"
		if aSigned {
			zero = fmt.Sprintf("SInt<%d>(0)", aWidth)
		} else {
			zero = fmt.Sprintf("UInt<%d>(0)", aWidth)
		}

		expr = fmt.Sprintf("neq(%s, %s)", aExpr, zero)
	case "$reduce_xnor":
		expr = fmt.Sprintf("not(xorr(%s))", aExpr)
	default:
		expr = fmt.Sprintf("%s(%s)", def.primop, aExpr)
	}

	if aSigned && !def.alwaysUnsigned {
		expr = asUInt(expr)
	}

	e.assign(result, expr)
	e.recordDriver(c.Port("Y"), result)
}

// ---------------------------------------------------------------------
// Binary operators
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateBinary(c *netlist.Cell, def binaryOpDef) error {
	yWidth := uint(c.ParamUint("Y_WIDTH", 1))
	aSigned := c.ParamBool("A_SIGNED", false)
	bSigned := c.ParamBool("B_SIGNED", false)
	aWidth := uint(c.ParamUint("A_WIDTH", 0))
	bWidth := uint(c.ParamUint("B_WIDTH", 0))

	result := e.tr.names.fresh()
	e.declareWire(result, yWidth)

	if def.isLogical {
		e.emitLogical(c, def, result)
		return nil
	}

	aExpr := e.printer.render(c.Port("A"))
	if aSigned {
		aExpr = asSInt(aExpr)
	}

	if aWidth < yWidth {
		aExpr = fmt.Sprintf("pad(%s, %d)", aExpr, yWidth)
	}

	// $shr is always a logical (zero-filling) right shift, never arithmetic,
	// regardless of A_SIGNED; reinterpret as UInt before the shift primop so
	// FIRRTL's shr/dshr can't sign-extend it.
	if c.Type == "$shr" && aSigned {
		aExpr = asUInt(aExpr)
	}

	if def.isShift {
		e.emitShiftBinary(c, def, result, aExpr, bWidth)
		return nil
	}

	bExpr := e.printer.render(c.Port("B"))
	bPaddedWidth := bWidth
	if yWidth > bPaddedWidth {
		bPaddedWidth = yWidth
	}

	if bSigned {
		bExpr = asSInt(bExpr)
	}

	if bWidth < bPaddedWidth {
		bExpr = fmt.Sprintf("pad(%s, %d)", bExpr, bPaddedWidth)
	}

	if !bSigned {
		bExpr = asUInt(bExpr)
	}

	expr := fmt.Sprintf("%s(%s, %s)", def.primop, aExpr, bExpr)

	if c.Type == "$sub" || (aSigned && !def.alwaysUnsigned) {
		expr = asUInt(expr)
	}

	e.assign(result, expr)
	e.recordDriver(c.Port("Y"), result)

	return nil
}

// emitLogical implements $logic_and / $logic_or: each operand is coerced to
// a single boolean bit before the primop is applied; the result is always
// unsigned.
func (e *moduleEmitter) emitLogical(c *netlist.Cell, def binaryOpDef, result string) {
	aExpr := fmt.Sprintf("neq(%s, UInt(0))", e.printer.render(c.Port("A")))
	bExpr := fmt.Sprintf("neq(%s, UInt(0))", e.printer.render(c.Port("B")))
	expr := fmt.Sprintf("%s(%s, %s)", def.primop, aExpr, bExpr)
	e.assign(result, expr)
	e.recordDriver(c.Port("Y"), result)
}

// emitShiftBinary implements $shl/$sshl/$shr/$sshr: the core semantic
// mismatch between FIRRTL (which widens on left shift) and the source
// (fixed output width).
func (e *moduleEmitter) emitShiftBinary(c *netlist.Cell, def binaryOpDef, result, aExpr string, bWidth uint) {
	yWidth := uint(c.ParamUint("Y_WIDTH", 1))

	isLeft := c.Type == "$shl" || c.Type == "$sshl"

	bSig := c.Port("B")

	var primop, bExpr string

	if bSig.IsFullyConstant() {
		amount := bSig.AsConstant().AsUint64()

		primop = def.primop
		bExpr = fmt.Sprintf("%d", amount)
	} else {
		bExpr = e.printer.render(bSig)

		if isLeft {
			primop = "d" + def.primop
			bExpr = guardDynamicShiftAmount(bExpr, bWidth)
		} else {
			primop = "d" + def.primop
		}
	}

	expr := fmt.Sprintf("%s(%s, %s)", primop, aExpr, bExpr)

	if isLeft {
		expr = fmt.Sprintf("bits(%s, %d, 0)", expr, yWidth-1)
	}

	// As for the other binary ops, a signed cell's result is wrapped back to
	// UInt at the wire boundary.
	if c.ParamBool("A_SIGNED", false) {
		expr = asUInt(expr)
	}

	e.assign(result, expr)
	e.recordDriver(c.Port("Y"), result)
}

// guardDynamicShiftAmount saturates a dynamic left-shift amount at FIRRTL's
// maximum representable dshl width, per §4.D's central shift-width
// subtlety.
func guardDynamicShiftAmount(bExpr string, bWidth uint) string {
	if bWidth < firrtlMaxDshWidth {
		return bExpr
	}

	limit := firrtlMaxDshAmount
	guardWidth := firrtlMaxDshWidth - 1

	return fmt.Sprintf(
		"mux(gt(%s, UInt<%d>(%d)), UInt<%d>(%d), bits(%s, %d, 0))",
		bExpr, guardWidth, limit, guardWidth, limit, bExpr, guardWidth-1,
	)
}

// ---------------------------------------------------------------------
// Multiplexer
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateMux(c *netlist.Cell) {
	width := uint(c.ParamUint("WIDTH", uint64(c.Port("A").Width())))

	result := e.tr.names.fresh()
	e.declareWire(result, width)

	aExpr := e.printer.render(c.Port("A"))
	bExpr := e.printer.render(c.Port("B"))
	sExpr := e.printer.render(c.Port("S"))

	// FIRRTL's mux is (cond, then, else); the source's A/B are else/then.
	e.assign(result, fmt.Sprintf("mux(%s, %s, %s)", sExpr, bExpr, aExpr))
	e.recordDriver(c.Port("Y"), result)
}

// ---------------------------------------------------------------------
// Flip-flop
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateDff(c *netlist.Cell) error {
	if !c.ParamBool("CLK_POLARITY", true) {
		return fatalf(e.mod.Name, c.Name, "negative-edge clocked flip-flops are not supported")
	}

	width := uint(c.ParamUint("WIDTH", uint64(c.Port("D").Width())))

	result := e.tr.names.fresh()
	clkExpr := fmt.Sprintf("asClock(%s)", e.printer.render(c.Port("CLK")))
	e.declareReg(result, width, clkExpr)
	e.assign(result, e.printer.render(c.Port("D")))
	e.recordDriver(c.Port("Q"), result)

	return nil
}

// ---------------------------------------------------------------------
// Memory
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateMem(c *netlist.Cell) error {
	if c.ParamUint("OFFSET", 0) != 0 {
		return fatalf(e.mod.Name, c.Name, "non-zero memory OFFSET is not supported")
	}

	if init := c.Param("INIT"); init != nil && init.HasDefinedBit() {
		return fatalf(e.mod.Name, c.Name, "memory initialization is not supported")
	}

	width := uint(c.ParamUint("WIDTH", 0))
	size := uint(c.ParamUint("SIZE", 0))
	abits := uint(c.ParamUint("ABITS", 0))
	rdPorts := uint(c.ParamUint("RD_PORTS", 0))
	wrPorts := uint(c.ParamUint("WR_PORTS", 0))

	rdClkEnable := c.Param("RD_CLK_ENABLE")
	wrClkEnable := c.Param("WR_CLK_ENABLE")
	wrClkPolarity := c.Param("WR_CLK_POLARITY")

	name := e.tr.names.fresh()

	var decl []string

	decl = append(decl, fmt.Sprintf("mem %s:", name))
	decl = append(decl, fmt.Sprintf("  data-type => UInt<%d>", width))
	decl = append(decl, fmt.Sprintf("  depth => %d", size))

	for i := uint(0); i < rdPorts; i++ {
		decl = append(decl, fmt.Sprintf("  reader => r%d", i))
	}

	for i := uint(0); i < wrPorts; i++ {
		decl = append(decl, fmt.Sprintf("  writer => w%d", i))
	}

	decl = append(decl,
		"  read-latency => 0",
		"  write-latency => 1",
		"  read-under-write => undefined",
	)
	e.wireDecls = append(e.wireDecls, decl...)

	rdAddr := c.Port("RD_ADDR")
	rdData := c.Port("RD_DATA")

	for i := uint(0); i < rdPorts; i++ {
		if rdClkEnable != nil && i < rdClkEnable.Width() && rdClkEnable[i] == netlist.One {
			return fatalf(e.mod.Name, c.Name, "clocked read port %d is not supported", i)
		}

		port := fmt.Sprintf("%s.r%d", name, i)
		addr := sliceSignal(rdAddr, i*abits, abits)
		e.assign(fmt.Sprintf("%s.addr", port), e.printer.render(addr))
		e.assign(fmt.Sprintf("%s.en", port), "UInt<1>(\"h1\")")
		e.assign(fmt.Sprintf("%s.clk", port), "asClock(UInt<1>(\"h0\"))")
		e.recordDriver(sliceSignal(rdData, i*width, width), fmt.Sprintf("%s.data", port))
	}

	wrAddr := c.Port("WR_ADDR")
	wrData := c.Port("WR_DATA")
	wrEn := c.Port("WR_EN")
	wrClk := c.Port("WR_CLK")

	for i := uint(0); i < wrPorts; i++ {
		if wrClkEnable != nil && i < wrClkEnable.Width() && wrClkEnable[i] != netlist.One {
			return fatalf(e.mod.Name, c.Name, "unclocked write port %d is not supported", i)
		}

		if wrClkPolarity != nil && i < wrClkPolarity.Width() && wrClkPolarity[i] != netlist.One {
			return fatalf(e.mod.Name, c.Name, "negative-edge write port %d is not supported", i)
		}

		enSlice := sliceSignal(wrEn, i*width, width)

		enBit, uniform := uniformSingleBit(enSlice)
		if !uniform {
			return fatalf(e.mod.Name, c.Name, "write port %d has non-uniform per-bit write enables", i)
		}

		port := fmt.Sprintf("%s.w%d", name, i)
		addr := sliceSignal(wrAddr, i*abits, abits)
		data := sliceSignal(wrData, i*width, width)
		clk := sliceSignal(wrClk, i, 1)

		e.assign(fmt.Sprintf("%s.addr", port), e.printer.render(addr))
		e.assign(fmt.Sprintf("%s.data", port), e.printer.render(data))
		e.assign(fmt.Sprintf("%s.en", port), e.printer.render(enBit))
		e.assign(fmt.Sprintf("%s.mask", port), "UInt<1>(\"h1\")")
		e.assign(fmt.Sprintf("%s.clk", port), fmt.Sprintf("asClock(%s)", e.printer.render(clk)))
	}

	return nil
}

// sliceSignal extracts [offset, offset+width) from sig, LSB-first, clamping
// to sig's actual width (a zero-width or absent signal yields an empty
// slice, which the printer never needs to render because such ports are
// only accessed when their owning parameter says they exist).
func sliceSignal(sig netlist.SigSpec, offset, width uint) netlist.SigSpec {
	flat := flattenSignal(sig)

	if offset >= uint(len(flat)) {
		return nil
	}

	end := offset + width
	if end > uint(len(flat)) {
		end = uint(len(flat))
	}

	return netlist.SigSpec(flat[offset:end])
}

// flattenSignal expands every chunk of sig into single-bit chunks, LSB
// first, so that arbitrary sub-ranges can be sliced out regardless of how
// the original chunks were grouped.
func flattenSignal(sig netlist.SigSpec) []netlist.Chunk {
	var out []netlist.Chunk

	for _, c := range sig {
		if c.IsLiteral() {
			for i := uint(0); i < c.Width; i++ {
				out = append(out, netlist.Chunk{Literal: netlist.Constant{c.Literal[i]}, Width: 1})
			}
		} else {
			for i := uint(0); i < c.Width; i++ {
				out = append(out, netlist.Chunk{Wire: c.Wire, Offset: c.Offset + i, Width: 1})
			}
		}
	}

	return out
}

// uniformSingleBit reports whether every bit of sig refers to the same
// single underlying bit (the same wire bit, or the same literal value),
// which is what a write-enable must do once per-bit enables are ruled out.
// On success it returns a one-bit signal suitable for rendering.
func uniformSingleBit(sig netlist.SigSpec) (netlist.SigSpec, bool) {
	flat := flattenSignal(sig)
	if len(flat) == 0 {
		return nil, false
	}

	first := flat[0]

	for _, c := range flat[1:] {
		if c.IsLiteral() != first.IsLiteral() {
			return nil, false
		}

		if c.IsLiteral() {
			if c.Literal[0] != first.Literal[0] {
				return nil, false
			}
		} else if c.Wire != first.Wire || c.Offset != first.Offset {
			return nil, false
		}
	}

	return netlist.SigSpec{first}, true
}

// ---------------------------------------------------------------------
// $shift / $shiftx
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateShift(c *netlist.Cell) {
	yWidth := uint(c.ParamUint("Y_WIDTH", 1))
	bSigned := c.ParamBool("B_SIGNED", false)
	bWidth := uint(c.ParamUint("B_WIDTH", 0))

	result := e.tr.names.fresh()
	e.declareWire(result, yWidth)

	aExpr := e.printer.render(c.Port("A"))
	bExpr := e.printer.render(c.Port("B"))

	var expr string

	if bSigned {
		guarded := guardDynamicShiftAmount(asUInt(bExpr), bWidth)
		left := fmt.Sprintf("bits(dshl(%s, %s), %d, 0)", aExpr, guarded, yWidth-1)
		right := fmt.Sprintf("dshr(%s, %s)", aExpr, asUInt(bExpr))
		cond := fmt.Sprintf("lt(%s, SInt<1>(0))", asSInt(bExpr))
		expr = fmt.Sprintf("mux(%s, %s, %s)", cond, left, right)
	} else {
		expr = fmt.Sprintf("dshr(%s, %s)", aExpr, bExpr)
	}

	e.assign(result, expr)
	e.recordDriver(c.Port("Y"), result)
}

func (e *moduleEmitter) translateShiftx(c *netlist.Cell) {
	yWidth := uint(c.ParamUint("Y_WIDTH", 1))
	bSigned := c.ParamBool("B_SIGNED", false)
	bWidth := uint(c.ParamUint("B_WIDTH", 0))

	result := e.tr.names.fresh()
	e.declareWire(result, yWidth)

	aExpr := e.printer.render(c.Port("A"))
	bExpr := e.printer.render(c.Port("B"))

	if bSigned && bWidth > 0 {
		signBit := fmt.Sprintf("bits(%s, %d, %d)", bExpr, bWidth-1, bWidth-1)
		bExpr = fmt.Sprintf("validif(not(%s), %s)", signBit, bExpr)
	}

	e.assign(result, fmt.Sprintf("dshr(%s, %s)", aExpr, bExpr))
	e.recordDriver(c.Port("Y"), result)
}

// ---------------------------------------------------------------------
// Subcircuit instances
// ---------------------------------------------------------------------

func (e *moduleEmitter) translateInstance(c *netlist.Cell) error {
	callee, ok := e.tr.design.Module(c.Type)
	if !ok {
		e.warnf("instance %q: module %q not found in design; instance skipped", c.Name, c.Type)
		return nil
	}

	typeName := e.tr.names.sanitize(c.Type)
	cellName := e.tr.names.sanitize(c.Name)

	e.wireExprs = append(e.wireExprs, fmt.Sprintf("inst %s of %s", cellName, typeName))

	for portName, sig := range c.Ports {
		if sig.IsEmpty() {
			continue
		}

		w, ok := calleePortWire(callee, portName)
		if !ok {
			e.warnf("instance %q: callee %q has no port %q", c.Name, c.Type, portName)
			continue
		}

		qualified := fmt.Sprintf("%s.%s", cellName, portName)

		switch {
		case w.Role.IsInout():
			e.warnf("instance %q: port %q is inout on callee %q; treated as input", c.Name, portName, c.Type)
			e.assignInst(qualified, e.printer.render(sig))
		case w.Role.IsOutput():
			e.recordDriver(sig, qualified)
			e.assignInst(e.printer.render(sig), qualified)
		case w.Role.IsInput():
			e.assignInst(qualified, e.printer.render(sig))
		default:
			e.warnf("instance %q: port %q is undirected on callee %q; treated as output", c.Name, portName, c.Type)
			e.recordDriver(sig, qualified)
			e.assignInst(e.printer.render(sig), qualified)
		}
	}

	return nil
}

func calleePortWire(callee *netlist.Module, portName string) (*netlist.Wire, bool) {
	for _, w := range callee.PortWires() {
		if w.Name == portName {
			return w, true
		}
	}

	return nil, false
}

// ---------------------------------------------------------------------
// Signedness helpers
// ---------------------------------------------------------------------

func asSInt(expr string) string {
	return fmt.Sprintf("asSInt(%s)", expr)
}

func asUInt(expr string) string {
	return fmt.Sprintf("asUInt(%s)", expr)
}
