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
	"context"
	"os"

	"github.com/spf13/cobra"

	"dhall-lang.org/go/dhall/errors"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// newRootCmd creates the base command when called without any subcommands.
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "dhall",
		Short: "dhall works with Dhall configuration files.",
		Long: `dhall parses Dhall configuration files and resolves their imports.

Run 'dhall parse' to inspect the syntax tree of a file and
'dhall resolve' to splice in its imports.`,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newParseCmd(c),
		newResolveCmd(c),
	}
	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// A Command dispatches one invocation of the tool. It wraps the
// currently active cobra command.
type Command struct {
	*cobra.Command

	root *cobra.Command
}

// New creates the top-level command with the given arguments.
func New(args []string) *Command {
	c := newRootCmd()
	c.root.SetArgs(args)
	return c
}

// Run executes the command.
func (c *Command) Run(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// Main runs the dhall tool and returns the code for passing to os.Exit.
func Main() int {
	if err := mainErr(context.Background(), os.Args[1:]); err != nil {
		errors.Print(os.Stderr, err)
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	return New(args).Run(ctx)
}
