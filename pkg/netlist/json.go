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

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// The netlist interchange format is the portable, JSON-encoded handoff
// between an external elaborator (Verilog parsing, optimization, pmuxtree
// balancing -- all out of scope for this module) and the translator core.
// It plays the same role for this tool that a gob-encoded binary package
// plays for a schema compiler: an externally produced artifact deserialized
// once into the in-memory model the core operates on.

// jsonDesign is the wire format for a whole design.
type jsonDesign struct {
	Top     string                 `json:"top,omitempty"`
	Modules map[string]*jsonModule `json:"modules"`
}

type jsonModule struct {
	Attributes  map[string]string    `json:"attributes,omitempty"`
	Wires       map[string]*jsonWire `json:"wires"`
	Cells       map[string]*jsonCell `json:"cells"`
	Connections [][2]jsonSigSpec     `json:"connections,omitempty"`
}

type jsonWire struct {
	Id         uint              `json:"id"`
	Width      uint              `json:"width"`
	Direction  string            `json:"direction,omitempty"` // "", "input", "output"
	Attributes map[string]string `json:"attributes,omitempty"`
}

type jsonCell struct {
	Id     uint                   `json:"id"`
	Type   string                 `json:"type"`
	Ports  map[string]jsonSigSpec `json:"connections"`
	Params map[string]string      `json:"parameters,omitempty"`
}

// jsonSigSpec is a compact textual signal encoding: a sequence of
// whitespace-separated tokens, each either:
//   - "<wire>"            a whole-wire reference
//   - "<wire>[hi:lo]"      a bit-slice reference (inclusive, lo <= hi)
//   - "<width>'<bits>"     a literal, bits being a string of '0'/'1'/'x'/'z',
//     LSB-first, length == width.
//
// Tokens are listed LSB-first, matching the in-memory SigSpec convention.
type jsonSigSpec = []string

// LoadDesignJSON decodes a design from the netlist interchange format.
func LoadDesignJSON(r io.Reader) (*Design, error) {
	var doc jsonDesign

	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding netlist json: %w", err)
	}

	design := NewDesign()

	// Deterministic module order: JSON object key order isn't preserved by
	// encoding/json, so modules are sorted by name.  Real frontends emitting
	// this format are expected to rely on this, not on key order.
	names := make([]string, 0, len(doc.Modules))
	for name := range doc.Modules {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		jm := doc.Modules[name]

		m, err := decodeModule(name, jm)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", name, err)
		}

		design.AddModule(m)
	}

	if doc.Top != "" {
		design.SetTop(doc.Top)
	}

	return design, nil
}

func decodeModule(name string, jm *jsonModule) (*Module, error) {
	m := NewModule(name)
	m.Attributes = jm.Attributes

	wireNames := make([]string, 0, len(jm.Wires))
	for wn := range jm.Wires {
		wireNames = append(wireNames, wn)
	}

	sort.Slice(wireNames, func(i, j int) bool {
		return jm.Wires[wireNames[i]].Id < jm.Wires[wireNames[j]].Id
	})

	byName := make(map[string]*Wire, len(jm.Wires))

	for _, wn := range wireNames {
		jw := jm.Wires[wn]

		var role PortRole

		switch jw.Direction {
		case "", "none":
			role = RoleNone
		case "input":
			role = RoleInput
		case "output":
			role = RoleOutput
		case "inout":
			role = RoleInput | RoleOutput
		default:
			return nil, fmt.Errorf("wire %q: unknown direction %q", wn, jw.Direction)
		}

		w := &Wire{
			Id:         WireId(jw.Id),
			Name:       wn,
			Width:      jw.Width,
			Role:       role,
			Attributes: jw.Attributes,
		}
		m.AddWire(w)
		byName[wn] = w
	}

	cellNames := make([]string, 0, len(jm.Cells))
	for cn := range jm.Cells {
		cellNames = append(cellNames, cn)
	}

	sort.Slice(cellNames, func(i, j int) bool {
		return jm.Cells[cellNames[i]].Id < jm.Cells[cellNames[j]].Id
	})

	for _, cn := range cellNames {
		jc := jm.Cells[cn]

		ports := make(map[string]SigSpec, len(jc.Ports))

		for pn, spec := range jc.Ports {
			sig, err := decodeSigSpec(spec, byName)
			if err != nil {
				return nil, fmt.Errorf("cell %q port %q: %w", cn, pn, err)
			}

			ports[pn] = sig
		}

		params := make(map[string]Constant, len(jc.Params))

		for pn, text := range jc.Params {
			c, err := decodeConstantLiteral(text)
			if err != nil {
				return nil, fmt.Errorf("cell %q parameter %q: %w", cn, pn, err)
			}

			params[pn] = c
		}

		m.AddCell(&Cell{
			Id:     CellId(jc.Id),
			Name:   cn,
			Type:   jc.Type,
			Ports:  ports,
			Params: params,
		})
	}

	for i, pair := range jm.Connections {
		lhs, err := decodeSigSpec(pair[0], byName)
		if err != nil {
			return nil, fmt.Errorf("connection %d lhs: %w", i, err)
		}

		rhs, err := decodeSigSpec(pair[1], byName)
		if err != nil {
			return nil, fmt.Errorf("connection %d rhs: %w", i, err)
		}

		m.AddConnection(lhs, rhs)
	}

	return m, nil
}

func decodeSigSpec(tokens []string, byName map[string]*Wire) (SigSpec, error) {
	sig := make(SigSpec, 0, len(tokens))

	for _, tok := range tokens {
		chunk, err := decodeChunk(tok, byName)
		if err != nil {
			return nil, err
		}

		sig = append(sig, chunk)
	}

	return sig, nil
}

func decodeChunk(tok string, byName map[string]*Wire) (Chunk, error) {
	// Literal: "<width>'<bits>"
	if idx := strings.IndexByte(tok, '\''); idx >= 0 {
		c, err := decodeConstantLiteral(tok)
		if err != nil {
			return Chunk{}, err
		}

		return Chunk{Literal: c, Width: c.Width()}, nil
	}
	// Slice: "<wire>[hi:lo]"
	if idx := strings.IndexByte(tok, '['); idx >= 0 {
		if tok[len(tok)-1] != ']' {
			return Chunk{}, fmt.Errorf("malformed slice token %q", tok)
		}

		wireName := tok[:idx]
		rangeStr := tok[idx+1 : len(tok)-1]

		w, ok := byName[wireName]
		if !ok {
			return Chunk{}, fmt.Errorf("unknown wire %q", wireName)
		}

		hi, lo, err := parseRange(rangeStr)
		if err != nil {
			return Chunk{}, fmt.Errorf("wire %q: %w", wireName, err)
		}

		return Chunk{Wire: w.Id, Offset: lo, Width: hi - lo + 1}, nil
	}
	// Whole wire.
	w, ok := byName[tok]
	if !ok {
		return Chunk{}, fmt.Errorf("unknown wire %q", tok)
	}

	return Chunk{Wire: w.Id, Offset: 0, Width: w.Width}, nil
}

func parseRange(s string) (hi, lo uint, err error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		var v uint
		if _, err = fmt.Sscanf(s, "%d", &v); err != nil {
			return 0, 0, fmt.Errorf("malformed bit index %q", s)
		}

		return v, v, nil
	}

	if _, err = fmt.Sscanf(s[:idx], "%d", &hi); err != nil {
		return 0, 0, fmt.Errorf("malformed range %q", s)
	}

	if _, err = fmt.Sscanf(s[idx+1:], "%d", &lo); err != nil {
		return 0, 0, fmt.Errorf("malformed range %q", s)
	}

	if lo > hi {
		return 0, 0, fmt.Errorf("range %q has lo > hi", s)
	}

	return hi, lo, nil
}

// decodeConstantLiteral parses a "<width>'<bits>" token into a Constant,
// bits given LSB-first using the alphabet '0','1','x','z'.
func decodeConstantLiteral(text string) (Constant, error) {
	idx := strings.IndexByte(text, '\'')
	if idx < 0 {
		return nil, fmt.Errorf("malformed literal %q", text)
	}

	var width uint
	if _, err := fmt.Sscanf(text[:idx], "%d", &width); err != nil {
		return nil, fmt.Errorf("malformed literal width %q", text)
	}

	bits := text[idx+1:]
	if uint(len(bits)) != width {
		return nil, fmt.Errorf("literal %q: bit count does not match declared width %d", text, width)
	}

	out := make(Constant, width)

	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			out[i] = Zero
		case '1':
			out[i] = One
		case 'x', 'X':
			out[i] = X
		case 'z', 'Z':
			out[i] = Z
		default:
			return nil, fmt.Errorf("literal %q: invalid bit character %q", text, bits[i])
		}
	}

	return out, nil
}

