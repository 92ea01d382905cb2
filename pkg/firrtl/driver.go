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

// Package firrtl lowers an elaborated netlist.Design into FIRRTL text.  It
// performs no parsing and no optimization: every module, wire and cell in
// the input design is translated independently, following the same
// type-switch dispatch shape used throughout this module's lowering passes.
package firrtl

import (
	"bufio"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-firrtl/pkg/netlist"
)

// Translator holds the state shared across an entire translation run: the
// design being lowered and the identifier allocator threaded through every
// module emitted from it.
type Translator struct {
	design *netlist.Design
	names  *nameAllocator
	config TranslationConfig
}

// NewTranslator constructs a translator over design with the default
// configuration.  Each call to Translate starts from fresh identifier state,
// so repeated calls produce identical output.
func NewTranslator(design *netlist.Design) *Translator {
	return NewTranslatorWithConfig(design, TranslationConfig{})
}

// NewTranslatorWithConfig constructs a translator over design using an
// explicit configuration.
func NewTranslatorWithConfig(design *netlist.Design, config TranslationConfig) *Translator {
	return &Translator{
		design: design,
		names:  newNameAllocator(),
		config: config,
	}
}

// selectTop picks the design's top module: an explicitly designated one
// takes priority, then the first module carrying a "top" attribute, then
// (as a last resort, with a warning) the last module added to the design.
func (t *Translator) selectTop() (*netlist.Module, error) {
	if top, ok := t.design.Top(); ok {
		return top, nil
	}

	modules := t.design.Modules()

	for _, m := range modules {
		if m.HasAttribute("top") {
			return m, nil
		}
	}

	if len(modules) == 0 {
		return nil, fmt.Errorf("design has no modules")
	}

	last := modules[len(modules)-1]
	log.Warnf("no top module designated; defaulting to %q", last.Name)

	return last, nil
}

// reserveNames pre-seeds the shared identifier cache with every module name
// and every port name of every module, so that a fresh anonymous allocation
// inside one module can never collide with a name another module depends on
// syntactically (module and instance names are global in FIRRTL text).
func (t *Translator) reserveNames() {
	for _, m := range t.design.Modules() {
		t.names.sanitize(m.Name)

		for _, w := range m.PortWires() {
			t.names.sanitize(w.Name)
		}
	}
}

// Translate lowers the whole design to FIRRTL text, writing it to out.  The
// circuit's name is taken from the selected top module.
func (t *Translator) Translate(out io.Writer) error {
	// The identifier state is reset at both entry and exit of a run.
	t.names = newNameAllocator()
	defer func() { t.names = newNameAllocator() }()

	top, err := t.selectTop()
	if err != nil {
		return err
	}

	t.reserveNames()

	bw := bufio.NewWriter(out)

	fmt.Fprintf(bw, "circuit %s:\n", t.names.sanitize(top.Name))

	for i, mod := range t.design.Modules() {
		if i > 0 {
			fmt.Fprintln(bw)
		}

		if err := t.emitModule(bw, mod); err != nil {
			return err
		}
	}

	return bw.Flush()
}
