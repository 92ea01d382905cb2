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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantHexDigits(t *testing.T) {
	tests := []struct {
		value Constant
		hex   string
	}{
		{NewConstant(0, 4), "0"},
		{NewConstant(0xf, 4), "f"},
		{NewConstant(0xab, 8), "ab"},
		{NewConstant(0x1, 1), "1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.hex, tt.value.HexDigits())
	}
}

func TestConstantRoundTrip(t *testing.T) {
	c := NewConstant(0xdeadbeef, 32)
	assert.Equal(t, uint64(0xdeadbeef), c.AsUint64())
	assert.True(t, c.IsFullyDefined())
	assert.False(t, c.IsZero())
}

func TestPortRoleInout(t *testing.T) {
	r := RoleInput | RoleOutput
	assert.True(t, r.IsInout())
	assert.False(t, RoleInput.IsInout())
}

func TestSigSpecWidth(t *testing.T) {
	sig := SigSpec{
		{Wire: 1, Offset: 0, Width: 4},
		{Literal: NewConstant(3, 2), Width: 2},
	}
	assert.Equal(t, uint(6), sig.Width())
}

func TestLoadDesignJSON(t *testing.T) {
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

	design, err := LoadDesignJSON(strings.NewReader(doc))
	assert.NoError(t, err)

	top, ok := design.Top()
	assert.True(t, ok)
	assert.Equal(t, "top", top.Name)
	assert.Len(t, top.Connections(), 1)

	a, ok := top.Wire(1)
	assert.True(t, ok)
	assert.Equal(t, uint(4), a.Width)
	assert.True(t, a.Role.IsInput())
}

func TestLoadDesignJSONSlicesAndLiterals(t *testing.T) {
	doc := `{
		"modules": {
			"m": {
				"wires": {
					"a": {"id": 1, "width": 8}
				},
				"cells": {},
				"connections": [[["a[3:0]"], ["4'1010"]]]
			}
		}
	}`

	design, err := LoadDesignJSON(strings.NewReader(doc))
	assert.NoError(t, err)

	m, ok := design.Module("m")
	assert.True(t, ok)

	conn := m.Connections()[0]
	assert.Equal(t, uint(4), conn.Lhs.Width())
	assert.True(t, conn.Rhs.IsFullyConstant())
	assert.Equal(t, uint64(0b0101), conn.Rhs.AsConstant().AsUint64())
}
