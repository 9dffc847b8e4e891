// Copyright 2026 The Dhall Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package load

import "dhall-lang.org/go/dhall/ast"

// A CycleError reports an import that, directly or through
// intermediaries, imports the file it appears in.
type CycleError struct {
	// Path is the canonical path of the file reached for the second
	// time on one import chain.
	Path string
}

func (e *CycleError) Error() string {
	return "import cycle through " + e.Path
}

// An UnsupportedError reports an import whose kind this loader cannot
// resolve, such as a remote URL or an environment variable.
type UnsupportedError struct {
	Import *ast.Import
}

func (e *UnsupportedError) Error() string {
	return "unsupported import " + e.Import.String()
}
