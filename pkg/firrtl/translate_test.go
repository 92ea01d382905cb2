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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-firrtl/pkg/netlist"
)

func translate(t *testing.T, doc string) string {
	t.Helper()

	design, err := netlist.LoadDesignJSON(strings.NewReader(doc))
	assert.NoError(t, err)

	var buf bytes.Buffer

	tr := NewTranslator(design)
	err = tr.Translate(&buf)
	assert.NoError(t, err)

	return buf.String()
}

func translateErr(t *testing.T, doc string) error {
	t.Helper()

	design, err := netlist.LoadDesignJSON(strings.NewReader(doc))
	assert.NoError(t, err)

	var buf bytes.Buffer

	tr := NewTranslator(design)

	return tr.Translate(&buf)
}

// S1: a plain identity wire is reassembled through the reverse wire map.
func TestTranslateIdentityWire(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {
					"a": {"id": 1, "width": 4, "direction": "input"},
					"y": {"id": 2, "width": 4, "direction": "output"}
				},
				"cells": {},
				"connections": [[["y"], ["a"]]]
			}
		}
	}`

	out := translate(t, doc)
	assert.Contains(t, out, "circuit top:")
	assert.Contains(t, out, "input a: UInt<4>")
	assert.Contains(t, out, "output y: UInt<4>")
	// The connection is staged through a fresh wire before being folded back
	// onto "y" via the reverse wire map.
	assert.Contains(t, out, "<= a")
	assert.Regexp(t, `y <= bits\(_\d+, 3, 0\)`, out)
}

// S2: a fully signed $add with matching widths needs no pad() calls and
// wraps the result back in asUInt.
func TestTranslateSignedAdd(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {
					"a": {"id": 1, "width": 8, "direction": "input"},
					"b": {"id": 2, "width": 8, "direction": "input"},
					"y": {"id": 3, "width": 8, "direction": "output"}
				},
				"cells": {
					"add0": {
						"id": 1,
						"type": "$add",
						"connections": {"A": ["a"], "B": ["b"], "Y": ["y"]},
						"parameters": {
							"A_SIGNED": "1'1",
							"B_SIGNED": "1'1",
							"A_WIDTH": "8'00010000",
							"B_WIDTH": "8'00010000",
							"Y_WIDTH": "8'00010000"
						}
					}
				},
				"connections": []
			}
		}
	}`

	out := translate(t, doc)
	assert.Contains(t, out, "asUInt(add(asSInt(a), asSInt(b)))")
	assert.NotContains(t, out, "pad(")
}

// S3: a non-constant dynamic left shift with a wide shift-amount operand
// must pad A to Y_WIDTH, guard the shift amount at the 19-bit cap, and
// truncate the (widened) dshl result back down to Y_WIDTH.
func TestTranslateDynamicShiftGuard(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {
					"a": {"id": 1, "width": 4, "direction": "input"},
					"b": {"id": 2, "width": 32, "direction": "input"},
					"y": {"id": 3, "width": 8, "direction": "output"}
				},
				"cells": {
					"shl0": {
						"id": 1,
						"type": "$shl",
						"connections": {"A": ["a"], "B": ["b"], "Y": ["y"]},
						"parameters": {
							"A_SIGNED": "1'0",
							"B_SIGNED": "1'0",
							"A_WIDTH": "8'00100000",
							"B_WIDTH": "8'00000100",
							"Y_WIDTH": "8'00010000"
						}
					}
				},
				"connections": []
			}
		}
	}`

	out := translate(t, doc)
	assert.Contains(t, out, "pad(a, 8)")
	assert.Contains(t, out, "dshl(")
	assert.Contains(t, out, "UInt<19>(524287)")
	assert.Contains(t, out, "bits(")
	assert.Contains(t, out,
		"bits(dshl(pad(a, 8), mux(gt(b, UInt<19>(524287)), UInt<19>(524287), bits(b, 18, 0))), 7, 0)")
}

// S3b: $shr is always a logical right shift, even when A_SIGNED is set --
// unlike $sshr, its operand must be reinterpreted as UInt before the shift
// primop so FIRRTL cannot sign-extend it.
func TestTranslateSignedShrIsLogical(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {
					"a": {"id": 1, "width": 8, "direction": "input"},
					"b": {"id": 2, "width": 3, "direction": "input"},
					"y": {"id": 3, "width": 8, "direction": "output"}
				},
				"cells": {
					"shr0": {
						"id": 1,
						"type": "$shr",
						"connections": {"A": ["a"], "B": ["b"], "Y": ["y"]},
						"parameters": {
							"A_SIGNED": "1'1",
							"B_SIGNED": "1'0",
							"A_WIDTH": "8'00010000",
							"B_WIDTH": "8'11000000",
							"Y_WIDTH": "8'00010000"
						}
					}
				},
				"connections": []
			}
		}
	}`

	out := translate(t, doc)
	assert.Contains(t, out, "dshr(asUInt(asSInt(a)), b)")
	assert.NotContains(t, out, "shr(asSInt(a)")
}

// S4: $mux's A/B operands are the source's else/then branches, which FIRRTL
// expects in the opposite order: mux(cond, then, else).
func TestTranslateMuxArgumentOrder(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {
					"a": {"id": 1, "width": 4, "direction": "input"},
					"b": {"id": 2, "width": 4, "direction": "input"},
					"s": {"id": 3, "width": 1, "direction": "input"},
					"y": {"id": 4, "width": 4, "direction": "output"}
				},
				"cells": {
					"mux0": {
						"id": 1,
						"type": "$mux",
						"connections": {"A": ["a"], "B": ["b"], "S": ["s"], "Y": ["y"]},
						"parameters": {"WIDTH": "8'00100000"}
					}
				},
				"connections": []
			}
		}
	}`

	out := translate(t, doc)
	assert.Contains(t, out, "mux(s, b, a)")
}

// S5: a clocked read port is a hard error.
func TestTranslateMemClockedReadRejected(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {
					"raddr": {"id": 1, "width": 2, "direction": "input"},
					"rdata": {"id": 2, "width": 8, "direction": "output"},
					"waddr": {"id": 3, "width": 2, "direction": "input"},
					"wdata": {"id": 4, "width": 8, "direction": "input"},
					"wen":   {"id": 5, "width": 8, "direction": "input"},
					"wclk":  {"id": 6, "width": 1, "direction": "input"}
				},
				"cells": {
					"mem0": {
						"id": 1,
						"type": "$mem",
						"connections": {
							"RD_ADDR": ["raddr"], "RD_DATA": ["rdata"],
							"WR_ADDR": ["waddr"], "WR_DATA": ["wdata"],
							"WR_EN": ["wen"], "WR_CLK": ["wclk"]
						},
						"parameters": {
							"WIDTH": "8'00010000",
							"SIZE": "8'00000100",
							"ABITS": "8'01000000",
							"RD_PORTS": "8'10000000",
							"WR_PORTS": "8'10000000",
							"OFFSET": "8'00000000",
							"RD_CLK_ENABLE": "1'1",
							"WR_CLK_ENABLE": "1'1",
							"WR_CLK_POLARITY": "1'1"
						}
					}
				},
				"connections": []
			}
		}
	}`

	err := translateErr(t, doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "clocked read")
}

// S6: instantiating a module the design does not contain is a warning, not
// a fatal error, and the instance is simply skipped.
func TestTranslateInstanceMissingCallee(t *testing.T) {
	doc := `{
		"top": "top",
		"modules": {
			"top": {
				"wires": {},
				"cells": {
					"u_child": {
						"id": 1,
						"type": "child",
						"connections": {}
					}
				},
				"connections": []
			}
		}
	}`

	out := translate(t, doc)
	assert.Contains(t, out, "circuit top:")
	assert.NotContains(t, out, "inst ")
}
