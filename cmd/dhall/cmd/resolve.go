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

func newResolveCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "resolve the imports of a Dhall file",
		Long: `resolve reads a single Dhall file, replaces every import with the
resolved content of its target, and prints the resulting syntax tree.
Relative imports are interpreted against the directory of the file they
appear in.`,
		RunE: mkRunE(c, runResolve),
	}
	addExpressionFlag(cmd.Flags())
	cmd.Flags().String(string(flagRoot), ".",
		"directory to resolve the imports of a -e expression against")
	return cmd
}

func runResolve(cmd *Command, args []string) error {
	var e ast.Expr
	var err error
	if src := flagExpression.String(cmd.Command); src != "" {
		e, err = parser.ParseFile("<expression flag>", []byte(src))
		if err != nil {
			return err
		}
		root := load.Root{Dir: flagRoot.String(cmd.Command)}
		e, err = load.Resolve(e, root, nil)
	} else {
		if len(args) != 1 {
			return errors.New("must specify a single file or -e")
		}
		e, err = load.LoadFile(args[0], nil)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ast.DebugStr(e))
	return nil
}
