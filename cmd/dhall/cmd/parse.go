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
	"fmt"

	"github.com/spf13/cobra"

	"dhall-lang.org/go/dhall/ast"
	"dhall-lang.org/go/dhall/errors"
	"dhall-lang.org/go/dhall/load"
	"dhall-lang.org/go/dhall/parser"
)

func newParseCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "parse a Dhall file and print its syntax tree",
		Long: `parse reads a single Dhall file and prints its syntax tree in a
compact, fully parenthesized form. Imports are shown as they appear in
the source; use 'dhall resolve' to splice them in.`,
		RunE: mkRunE(c, runParse),
	}
	addExpressionFlag(cmd.Flags())
	return cmd
}

func runParse(cmd *Command, args []string) error {
	e, err := sourceExpr(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ast.DebugStr(e))
	return nil
}

// sourceExpr parses the input named by the -e flag or the file
// argument, without resolving imports.
func sourceExpr(cmd *Command, args []string) (ast.Expr, error) {
	if src := flagExpression.String(cmd.Command); src != "" {
		return parser.ParseFile("<expression flag>", []byte(src))
	}
	if len(args) != 1 {
		return nil, errors.New("must specify a single file or -e")
	}
	return load.LoadFile(args[0], &load.Config{SkipResolve: true})
}
