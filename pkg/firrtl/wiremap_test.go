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
)

func TestReverseWireMapRecordAndLookup(t *testing.T) {
	wm := newReverseWireMap()
	wm.recordRun(1, 0, "_0", 0, 4)

	d, ok := wm.driverOf(1, 2)
	assert.True(t, ok)
	assert.Equal(t, "_0", d.id)
	assert.Equal(t, uint(2), d.bit)

	_, ok = wm.driverOf(1, 4)
	assert.False(t, ok)
}

func TestReverseWireMapAdjacentRuns(t *testing.T) {
	wm := newReverseWireMap()
	wm.recordRun(2, 0, "_a", 0, 4)
	wm.recordRun(2, 4, "_b", 0, 2)

	d, ok := wm.driverOf(2, 5)
	assert.True(t, ok)
	assert.Equal(t, "_b", d.id)
	assert.Equal(t, uint(1), d.bit)
}
