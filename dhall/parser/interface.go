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

// Package parser implements a parser for Dhall source files. Input is
// provided as source text; the output is an abstract syntax tree.
//
// The parser is split in two layers. The grammar package matches the
// source against the Dhall grammar and returns a rule-tagged concrete
// parse tree; this package walks that tree, without recursion, and
// builds [ast] nodes from it.
package parser // import "dhall-lang.org/go/dhall/parser"

import (
	"dhall-lang.org/go/dhall/ast"
	"dhall-lang.org/go/dhall/grammar"
)

// An Option configures a parse.
type Option func(*options)

type options struct {
	source grammar.Source
}

// FromGrammar selects the grammar implementation used to produce the
// concrete parse tree. The default is [grammar.Dhall].
func FromGrammar(src grammar.Source) Option {
	return func(o *options) { o.source = src }
}

// ParseFile parses the source text of a single Dhall file and returns
// the expression it contains. The filename is used for positions in
// error messages and in the spans of the resulting nodes.
//
// Imports are returned as [*ast.Embed] nodes; resolving them is the
// load package's concern.
func ParseFile(filename string, src []byte, opts ...Option) (ast.Expr, error) {
	o := options{source: grammar.Dhall}
	for _, opt := range opts {
		opt(&o)
	}
	root, err := o.source.Parse(filename, src, grammar.TopRule)
	if err != nil {
		return nil, err
	}
	p := &parser{}
	v, err := p.eval(root)
	if err != nil {
		return nil, err
	}
	e, ok := v.x.(ast.Expr)
	if !ok {
		return nil, p.internalf(root, "top rule produced %T, not an expression", v.x)
	}
	return e, nil
}
