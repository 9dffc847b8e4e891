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

// Package grammar produces concrete parse trees from Dhall source text.
//
// The package plays the role of a generated parser artifact: consumers
// walk the rule-tagged trees it returns and never depend on how
// matching is performed. The tree builder in the parser package
// consumes it exclusively through the [Source] contract.
package grammar // import "dhall-lang.org/go/dhall/grammar"

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dhall-lang.org/go/dhall/token"
)

// A Source turns source text into a concrete parse tree rooted at a
// designated top rule, or reports a structured syntax error.
type Source interface {
	Parse(filename string, src []byte, top string) (*Node, error)
}

// A Node is one node of a concrete parse tree: the name of the rule
// that matched, the span and text it matched, and the named subrules it
// contains, in source order.
type Node struct {
	Rule     string
	Span     token.Span
	File     *token.File
	Children []*Node

	text string
}

// Text returns the source text matched by the node.
func (n *Node) Text() string { return n.text }

// Position resolves the start of the node's span.
func (n *Node) Position() token.Position {
	return n.File.Position(n.Span.Start)
}

// Error is a syntax error: the furthest position the grammar could not
// advance past, together with the rules that were being matched there,
// outermost first.
type Error struct {
	Pos       token.Position
	RuleStack []string
}

func (e *Error) Position() token.Position { return e.Pos }

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: syntax error", e.Pos)
	if len(e.RuleStack) > 0 {
		s += fmt.Sprintf(" (while parsing %s)", strings.Join(e.RuleStack, " > "))
	}
	return s
}

// A Grammar is a set of named rules. It is immutable after
// construction and safe for concurrent use.
type Grammar struct {
	rules map[string]*rule
}

var _ Source = (*Grammar)(nil)

type ruleKind int

const (
	// normalRule emits a node holding its named subrules.
	normalRule ruleKind = iota
	// silentRule emits no node; its subrules pass through to the
	// enclosing rule.
	silentRule
	// atomicRule emits a childless node capturing the matched text;
	// no whitespace is skipped inside it.
	atomicRule
	// compoundRule captures text like an atomic rule but keeps its
	// subrules, for string literals containing interpolations.
	compoundRule
)

type rule struct {
	name    string
	kind    ruleKind
	resetWS bool // interpolation: ordinary skipping resumes inside
	e       expr
}

// An expr is a parsing expression: it matches src at pos and returns
// the new position and any nodes emitted by named subrules.
type expr func(p *state, pos int) (end int, nodes []*Node, ok bool)

type state struct {
	g    *Grammar
	src  string
	file *token.File

	atomic int // >0 disables implicit whitespace skipping
	quiet  int // >0 disables failure recording (inside lookahead)
	stack  []string

	failPos   int
	failStack []string
}

func (p *state) fail(pos int) {
	if p.quiet > 0 || pos <= p.failPos {
		return
	}
	p.failPos = pos
	p.failStack = append(p.failStack[:0:0], p.stack...)
}

// skip advances pos over whitespace, -- line comments and nested
// {- -} block comments.
func (p *state) skip(pos int) int {
	for pos < len(p.src) {
		switch c := p.src[pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			pos++
		case strings.HasPrefix(p.src[pos:], "--"):
			for pos < len(p.src) && p.src[pos] != '\n' {
				pos++
			}
		case strings.HasPrefix(p.src[pos:], "{-"):
			depth := 1
			pos += 2
			for pos < len(p.src) && depth > 0 {
				switch {
				case strings.HasPrefix(p.src[pos:], "-}"):
					depth--
					pos += 2
				case strings.HasPrefix(p.src[pos:], "{-"):
					depth++
					pos += 2
				default:
					pos++
				}
			}
		default:
			return pos
		}
	}
	return pos
}

// Parse matches src against the top rule and returns the resulting
// parse tree. On failure it returns an [*Error] locating the furthest
// point the grammar could not advance past.
func (g *Grammar) Parse(filename string, src []byte, top string) (*Node, error) {
	if _, ok := g.rules[top]; !ok {
		return nil, fmt.Errorf("grammar: unknown top rule %q", top)
	}
	p := &state{
		g:       g,
		src:     string(src),
		file:    token.NewFile(filename, src),
		failPos: -1,
	}
	start := p.skip(0)
	_, nodes, ok := ref(top)(p, start)
	if !ok {
		fp := p.failPos
		if fp < 0 {
			fp = start
		}
		return nil, &Error{
			Pos:       p.file.Position(token.MakePos(fp)),
			RuleStack: p.failStack,
		}
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("grammar: internal error: top rule %q emitted %d nodes", top, len(nodes))
	}
	return nodes[0], nil
}

// ----------------------------------------------------------------------------
// Combinators

// ref matches the named rule and emits its node per the rule's kind.
func ref(name string) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		ru, ok := p.g.rules[name]
		if !ok {
			panic("grammar: reference to undefined rule " + name)
		}
		p.stack = append(p.stack, name)
		saved := p.atomic
		switch {
		case ru.resetWS:
			p.atomic = 0
		case ru.kind == atomicRule || ru.kind == compoundRule:
			p.atomic++
		}
		end, kids, matched := ru.e(p, pos)
		p.atomic = saved
		p.stack = p.stack[:len(p.stack)-1]
		if !matched {
			return 0, nil, false
		}
		switch ru.kind {
		case silentRule:
			return end, kids, true
		case atomicRule:
			return end, []*Node{{
				Rule: name,
				Span: token.MakeSpan(pos, end),
				File: p.file,
				text: p.src[pos:end],
			}}, true
		default: // normalRule, compoundRule
			return end, []*Node{{
				Rule:     name,
				Span:     token.MakeSpan(pos, end),
				File:     p.file,
				Children: kids,
				text:     p.src[pos:end],
			}}, true
		}
	}
}

// seq matches its elements in order, skipping whitespace between them
// outside atomic rules.
func seq(es ...expr) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		var out []*Node
		cur := pos
		for i, e := range es {
			if i > 0 && p.atomic == 0 {
				cur = p.skip(cur)
			}
			end, kids, ok := e(p, cur)
			if !ok {
				return 0, nil, false
			}
			out = append(out, kids...)
			cur = end
		}
		return cur, out, true
	}
}

// alt matches the first of its alternatives that succeeds.
func alt(es ...expr) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		for _, e := range es {
			if end, kids, ok := e(p, pos); ok {
				return end, kids, true
			}
		}
		return 0, nil, false
	}
}

// star matches e zero or more times.
func star(e expr) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		var out []*Node
		cur := pos
		first := true
		for {
			attempt := cur
			if !first && p.atomic == 0 {
				attempt = p.skip(cur)
			}
			end, kids, ok := e(p, attempt)
			if !ok {
				return cur, out, true
			}
			out = append(out, kids...)
			if end == attempt {
				// Zero-width match; stop rather than loop.
				return end, out, true
			}
			cur = end
			first = false
		}
	}
}

// plus matches e one or more times.
func plus(e expr) expr { return seq(e, star(e)) }

// opt matches e zero or one time.
func opt(e expr) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		if end, kids, ok := e(p, pos); ok {
			return end, kids, true
		}
		return pos, nil, true
	}
}

// lit matches the exact string s.
func lit(s string) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		if strings.HasPrefix(p.src[pos:], s) {
			return pos + len(s), nil, true
		}
		p.fail(pos)
		return 0, nil, false
	}
}

// cls matches a single rune satisfying pred.
func cls(pred func(rune) bool) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		r, size := utf8.DecodeRuneInString(p.src[pos:])
		if size == 0 || !pred(r) {
			p.fail(pos)
			return 0, nil, false
		}
		return pos + size, nil, true
	}
}

// not is a negative lookahead: it succeeds, consuming nothing, when e
// fails at pos.
func not(e expr) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		p.quiet++
		_, _, ok := e(p, pos)
		p.quiet--
		if ok {
			p.fail(pos)
			return 0, nil, false
		}
		return pos, nil, true
	}
}

// ahead is a positive lookahead: it succeeds, consuming nothing, when
// e matches at pos.
func ahead(e expr) expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		p.quiet++
		_, _, ok := e(p, pos)
		p.quiet--
		if !ok {
			p.fail(pos)
			return 0, nil, false
		}
		return pos, nil, true
	}
}

// eoi matches only at the end of the input.
func eoi() expr {
	return func(p *state, pos int) (int, []*Node, bool) {
		if pos == len(p.src) {
			return pos, nil, true
		}
		p.fail(pos)
		return 0, nil, false
	}
}
