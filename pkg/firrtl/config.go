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

// TranslationConfig holds the run-wide knobs accepted by a translation run.
// The spec exposes no required configuration, but the CLI layer needs a
// stable place to grow new flags into without changing Translator's
// constructor signature.
type TranslationConfig struct {
	// Verbose enables per-cell debug logging during emission.
	Verbose bool
}
