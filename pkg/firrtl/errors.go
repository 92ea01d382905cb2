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

import "fmt"

// fatalError wraps a "semantically impossible" condition (§7): one which
// aborts the translation run entirely, as opposed to a warning which merely
// skips the offending emission.
type fatalError struct {
	module string
	cell   string
	reason string
}

func (e *fatalError) Error() string {
	if e.cell != "" {
		return fmt.Sprintf("module %q, cell %q: %s", e.module, e.cell, e.reason)
	}

	return fmt.Sprintf("module %q: %s", e.module, e.reason)
}

func fatalf(module, cell, format string, args ...any) error {
	return &fatalError{module: module, cell: cell, reason: fmt.Sprintf(format, args...)}
}
