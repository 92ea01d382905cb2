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
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-firrtl/pkg/netlist"
)

// moduleEmitter holds the per-module state needed to walk one module and
// produce its FIRRTL body: the reverse wire map (4.C), the four ordered
// output buffers, and a signal printer (4.B) bound to this module.
//
// Buffers are flushed, in order, as: ports, wires, cell-exprs, wire-exprs.
// cellExprs carries both per-cell continuous assignments and the final
// per-wire reassembly statements (§4.E steps 3-5); wireExprs carries only
// subcircuit instance bodies (inst declarations and their port hookups).
type moduleEmitter struct {
	tr      *Translator
	mod     *netlist.Module
	wiremap *reverseWireMap
	printer *signalPrinter

	portDecls []string
	wireDecls []string
	cellExprs []string
	wireExprs []string

	invalidName string
}

func newModuleEmitter(tr *Translator, mod *netlist.Module) *moduleEmitter {
	wm := newReverseWireMap()

	return &moduleEmitter{
		tr:      tr,
		mod:     mod,
		wiremap: wm,
		printer: &signalPrinter{names: tr.names, mod: mod},
	}
}

func (e *moduleEmitter) declareWire(name string, width uint) {
	e.wireDecls = append(e.wireDecls, fmt.Sprintf("wire %s: UInt<%d>", name, width))
}

func (e *moduleEmitter) declareReg(name string, width uint, clockExpr string) {
	e.wireDecls = append(e.wireDecls, fmt.Sprintf("reg %s: UInt<%d>, %s", name, width, clockExpr))
}

func (e *moduleEmitter) assign(lhs, rhs string) {
	e.cellExprs = append(e.cellExprs, fmt.Sprintf("%s <= %s", lhs, rhs))
}

func (e *moduleEmitter) assignInst(lhs, rhs string) {
	e.wireExprs = append(e.wireExprs, fmt.Sprintf("%s <= %s", lhs, rhs))
}

// invalidWire lazily allocates the single 1-bit sentinel wire standing in
// for any undriven bit of any wire in this module.
func (e *moduleEmitter) invalidWire() string {
	if e.invalidName == "" {
		e.invalidName = e.tr.names.fresh()
		e.declareWire(e.invalidName, 1)
		e.cellExprs = append(e.cellExprs, fmt.Sprintf("%s is invalid", e.invalidName))
	}

	return e.invalidName
}

// recordDriver walks sink's chunks LSB-first and records that the
// corresponding contiguous bits of id (starting at 0) drive them.  Literal
// chunks in sink are impossible for well-formed netlists (a literal cannot
// be assigned to) and are skipped defensively.
func (e *moduleEmitter) recordDriver(sink netlist.SigSpec, id string) {
	var idOffset uint

	for _, c := range sink {
		if !c.IsLiteral() {
			e.wiremap.recordRun(c.Wire, c.Offset, id, idOffset, c.Width)
		}

		idOffset += c.Width
	}
}

// warnf logs a non-fatal diagnostic per §7's "unsupported construct"
// category: the offending emission is skipped and translation continues.
func (e *moduleEmitter) warnf(format string, args ...any) {
	log.Warnf("module %q: %s", e.mod.Name, fmt.Sprintf(format, args...))
}

// emitModule runs the full module walk (§4.E) and writes the result to out.
func (t *Translator) emitModule(out io.Writer, mod *netlist.Module) error {
	e := newModuleEmitter(t, mod)

	name := t.names.sanitize(mod.Name)

	for _, w := range mod.Wires() {
		if w.Role.IsInout() {
			return fatalf(mod.Name, "", "wire %q is both an input and an output port", w.Name)
		}

		wname := t.names.sanitize(w.Name)

		switch {
		case w.Role.IsInput():
			e.portDecls = append(e.portDecls, fmt.Sprintf("input %s: UInt<%d>", wname, w.Width))
		case w.Role.IsOutput():
			e.portDecls = append(e.portDecls, fmt.Sprintf("output %s: UInt<%d>", wname, w.Width))
		default:
			e.declareWire(wname, w.Width)
		}

		if w.HasAttribute("init") {
			e.warnf("wire %q carries an init attribute; its value is ignored", w.Name)
		}
	}

	for _, c := range mod.Cells() {
		if t.config.Verbose {
			log.Debugf("module %q: translating cell %q (%s)", mod.Name, c.Name, c.Type)
		}

		if err := e.translateCell(c); err != nil {
			return err
		}
	}

	for _, conn := range mod.Connections() {
		id := t.names.fresh()
		e.declareWire(id, conn.Lhs.Width())
		e.assign(id, e.printer.render(conn.Rhs))
		e.recordDriver(conn.Lhs, id)
	}

	for _, w := range mod.Wires() {
		if w.Role.IsInput() {
			continue
		}

		e.emitWireReassembly(w)
	}

	writeBlock(out, fmt.Sprintf("module %s:", name), e.portDecls, e.wireDecls, e.cellExprs, e.wireExprs)

	return nil
}

// emitWireReassembly reconstitutes wire's driving expression from the
// reverse wire map, §4.E step 5.
func (e *moduleEmitter) emitWireReassembly(w *netlist.Wire) {
	wname := e.tr.names.sanitize(w.Name)

	type group struct {
		invalid bool
		id      string
		lo, hi  uint
	}

	var groups []group

	for bit := uint(0); bit < w.Width; {
		d, ok := e.wiremap.driverOf(w.Id, bit)
		if !ok {
			groups = append(groups, group{invalid: true})
			bit++

			continue
		}

		idLo := d.bit
		idHi := d.bit

		bit++

		for bit < w.Width {
			next, ok := e.wiremap.driverOf(w.Id, bit)
			if !ok || next.id != d.id || next.bit != idHi+1 {
				break
			}

			idHi = next.bit
			bit++
		}

		groups = append(groups, group{id: d.id, lo: idLo, hi: idHi})
	}

	var acc string

	hasValid := false

	for _, g := range groups {
		var expr string

		if g.invalid {
			expr = e.invalidWire()
		} else {
			hasValid = true
			expr = fmt.Sprintf("bits(%s, %d, %d)", g.id, g.hi, g.lo)
		}

		if acc == "" {
			acc = expr
		} else {
			acc = fmt.Sprintf("cat(%s, %s)", expr, acc)
		}
	}

	switch {
	case len(groups) == 0:
		// Zero-width wire: nothing to reassemble.
		return
	case hasValid:
		e.assign(wname, acc)
	default:
		e.cellExprs = append(e.cellExprs, fmt.Sprintf("%s is invalid", wname))
	}
}

// writeBlock flushes one module's buffers to out with the required
// indentation and blank-line separation between sections.
func writeBlock(out io.Writer, header string, ports, wires, cellExprs, wireExprs []string) {
	fmt.Fprintf(out, "  %s\n", header)
	writeLines(out, "    ", ports)
	fmt.Fprintln(out)
	writeLines(out, "    ", wires)
	fmt.Fprintln(out)
	writeLines(out, "    ", cellExprs)
	fmt.Fprintln(out)
	writeLines(out, "    ", wireExprs)
}

func writeLines(out io.Writer, indent string, lines []string) {
	for _, l := range lines {
		fmt.Fprintf(out, "%s%s\n", indent, l)
	}
}
