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

// dhall is a command line tool for working with Dhall configuration
// files: parsing them and resolving their imports.
package main

import (
	"os"

	"dhall-lang.org/go/cmd/dhall/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
