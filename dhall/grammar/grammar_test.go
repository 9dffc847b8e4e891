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

package grammar_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"dhall-lang.org/go/dhall/grammar"
)

// findRule returns the nodes for the named rule, in depth-first order.
func findRule(n *grammar.Node, rule string) []*grammar.Node {
	var out []*grammar.Node
	if n.Rule == rule {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, findRule(c, rule)...)
	}
	return out
}

func TestParseTree(t *testing.T) {
	src := []byte("  1 + 23")
	root, err := grammar.Dhall.Parse("t.dhall", src, grammar.TopRule)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(root.Rule, "final_expression"))

	nats := findRule(root, "natural_literal")
	qt.Assert(t, qt.HasLen(nats, 2))
	qt.Assert(t, qt.Equals(nats[0].Text(), "1"))
	qt.Assert(t, qt.Equals(nats[1].Text(), "23"))

	// Positions point past the leading whitespace.
	pos := nats[0].Position()
	qt.Assert(t, qt.Equals(pos.Filename, "t.dhall"))
	qt.Assert(t, qt.Equals(pos.Line, 1))
	qt.Assert(t, qt.Equals(pos.Column, 3))

	plus := findRule(root, "plus_expression")
	qt.Assert(t, qt.HasLen(plus, 1))
	qt.Assert(t, qt.Equals(plus[0].Text(), "1 + 23"))
	qt.Assert(t, qt.HasLen(plus[0].Children, 2))
}

func TestComments(t *testing.T) {
	src := []byte("-- leading\n{- block {- nested -} -} 1 -- trailing")
	root, err := grammar.Dhall.Parse("t.dhall", src, grammar.TopRule)
	qt.Assert(t, qt.IsNil(err))
	nats := findRule(root, "natural_literal")
	qt.Assert(t, qt.HasLen(nats, 1))
	qt.Assert(t, qt.Equals(nats[0].Text(), "1"))
}

func TestAtomicRulesCaptureText(t *testing.T) {
	testCases := []struct {
		src  string
		rule string
		text string
	}{
		{src: "../a/b.dhall", rule: "parent_path", text: "../a/b.dhall"},
		{src: "./x.dhall", rule: "here_path", text: "./x.dhall"},
		{src: "env:HOME_DIR", rule: "env_variable", text: "env:HOME_DIR"},
		{src: "-1.5e3", rule: "double_literal", text: "-1.5e3"},
		{src: "+42", rule: "integer_literal", text: "+42"},
		{src: "Natural/fold", rule: "label", text: "Natural/fold"},
	}
	for _, tc := range testCases {
		root, err := grammar.Dhall.Parse("t.dhall", []byte(tc.src), grammar.TopRule)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("source %q", tc.src))
		nodes := findRule(root, tc.rule)
		qt.Assert(t, qt.HasLen(nodes, 1), qt.Commentf("source %q", tc.src))
		qt.Assert(t, qt.Equals(nodes[0].Text(), tc.text))
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := grammar.Dhall.Parse("t.dhall", []byte("1 +"), grammar.TopRule)
	qt.Assert(t, qt.IsNotNil(err))

	gerr, ok := err.(*grammar.Error)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %T", err))
	qt.Assert(t, qt.Equals(gerr.Pos.Filename, "t.dhall"))
	qt.Assert(t, qt.Equals(gerr.Pos.Line, 1))
	// The furthest failure is after the operator, where an operand was
	// expected; the rule stack leads back to the top rule.
	qt.Assert(t, qt.IsTrue(len(gerr.RuleStack) > 0))
	qt.Assert(t, qt.Equals(gerr.RuleStack[0], "final_expression"))
	qt.Assert(t, qt.ErrorMatches(err, `t.dhall:1:[0-9]+: syntax error \(while parsing .*\)`))
}

func TestErrorReportsFurthestFailure(t *testing.T) {
	// The record is fine until the missing value after b.
	_, err := grammar.Dhall.Parse("t.dhall", []byte("{ a = 1, b = }"), grammar.TopRule)
	qt.Assert(t, qt.IsNotNil(err))
	gerr := err.(*grammar.Error)
	qt.Assert(t, qt.IsTrue(gerr.Pos.Column >= 14), qt.Commentf("pos %v", gerr.Pos))
}

func TestUnknownTopRule(t *testing.T) {
	_, err := grammar.Dhall.Parse("t.dhall", []byte("1"), "no_such_rule")
	qt.Assert(t, qt.ErrorMatches(err, `grammar: unknown top rule "no_such_rule"`))
}

func TestTextLiteralChunks(t *testing.T) {
	src := []byte(`"a ${x} b ${y} c"`)
	root, err := grammar.Dhall.Parse("t.dhall", src, grammar.TopRule)
	qt.Assert(t, qt.IsNil(err))

	lits := findRule(root, "double_quote_literal")
	qt.Assert(t, qt.HasLen(lits, 1))
	var rules []string
	for _, c := range lits[0].Children {
		rules = append(rules, c.Rule)
	}
	want := []string{
		"double_quote_char",
		"interpolation",
		"double_quote_char",
		"interpolation",
		"double_quote_char",
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Errorf("chunk rules mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolationRestoresWhitespaceSkipping(t *testing.T) {
	// Whitespace is significant inside the literal but not inside the
	// interpolated expression.
	src := []byte(`"x${ 1 + 2 }y"`)
	root, err := grammar.Dhall.Parse("t.dhall", src, grammar.TopRule)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(findRule(root, "plus_expression"), 1))
}
