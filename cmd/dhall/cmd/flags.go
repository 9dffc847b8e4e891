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

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Common flags
const (
	flagExpression flagName = "expression"
	flagRoot       flagName = "root"
)

func addExpressionFlag(f *pflag.FlagSet) {
	f.StringP(string(flagExpression), "e", "",
		"use the given expression instead of reading a file")
}

type flagName string

func (f flagName) String(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString(string(f))
	return v
}
