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

package parser

import (
	"fmt"
	"math"
	"strings"

	"dhall-lang.org/go/dhall/ast"
	"dhall-lang.org/go/dhall/errors"
	"dhall-lang.org/go/dhall/grammar"
	"dhall-lang.org/go/dhall/literal"
	"dhall-lang.org/go/dhall/token"
)

type parser struct{}

// A value is the result of building one parse tree node: the rule that
// produced it and the built result. The result is an [ast.Expr] for
// expression rules and an intermediate type for the others (labels are
// strings, record bodies are field lists, and so on).
type value struct {
	rule string
	x    any
}

func (v value) expr() ast.Expr      { return v.x.(ast.Expr) }
func (v value) str() string         { return v.x.(string) }
func (v value) binding() binding    { return v.x.(binding) }
func (v value) chunks() []ast.Chunk { return v.x.([]ast.Chunk) }

// binding is one let binding, before the enclosing let expression
// assembles the bindings into nested Let nodes.
type binding struct {
	span  token.Span
	label string
	annot ast.Expr // or nil
	value ast.Expr
}

// recordBody is the tail of a non-empty record, after the first label:
// the first value and the remaining entries. literal distinguishes
// { k = v } from { k : T }.
type recordBody struct {
	literal bool
	first   ast.Expr
	rest    ast.FieldList
}

type builderFunc func(p *parser, n *grammar.Node, args []value) (value, error)

// canShortcut lists the rules whose value, when the rule matched
// exactly one subrule, is that subrule's value unchanged. The evaluator
// skips their builders in that case; operator chains with a single
// operand are by far the most common shape in any input, so this saves
// one builder call per precedence level per operand.
var canShortcut = map[string]bool{
	"annotated_expression":     true,
	"import_alt_expression":    true,
	"or_expression":            true,
	"plus_expression":          true,
	"text_append_expression":   true,
	"list_append_expression":   true,
	"and_expression":           true,
	"combine_expression":       true,
	"prefer_expression":        true,
	"combine_types_expression": true,
	"times_expression":         true,
	"equal_expression":         true,
	"not_equal_expression":     true,
	"equivalent_expression":    true,
	"application_expression":   true,
	"selector_expression":      true,
}

// eval builds the value of a parse tree bottom-up without recursing,
// so that input depth is bounded by available memory rather than by
// goroutine stack size. Each node is visited twice: once to schedule
// its children and once, after their values are on the value stack, to
// run its builder.
func (p *parser) eval(root *grammar.Node) (value, error) {
	type frame struct {
		n     *grammar.Node
		build bool // children evaluated; run the builder
	}
	stack := []frame{{n: root}}
	var vals []value

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.build {
			n := f.n
			for canShortcut[n.Rule] && len(n.Children) == 1 {
				n = n.Children[0]
			}
			stack = append(stack, frame{n: n, build: true})
			// Push children so the leftmost is evaluated first and
			// its value lands deepest on the value stack.
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{n: n.Children[i]})
			}
			continue
		}

		k := len(f.n.Children)
		args := vals[len(vals)-k:]
		v, err := p.build(f.n, args)
		if err != nil {
			return value{}, err
		}
		vals = append(vals[:len(vals)-k], v)
	}

	if len(vals) != 1 {
		return value{}, p.internalf(root, "evaluation left %d values", len(vals))
	}
	return vals[0], nil
}

// build runs the builder for n. A missing builder or a builder tripping
// over unexpected child shapes is an internal error; it is reported
// with a dump of the offending subtree rather than a bare message,
// since the tree shape is exactly what is in question.
func (p *parser) build(n *grammar.Node, args []value) (v value, err error) {
	b, ok := builders[n.Rule]
	if !ok {
		return value{}, p.internalf(n, "no builder for rule %s", n.Rule)
	}
	defer func() {
		if r := recover(); r != nil {
			err = p.internalf(n, "builder for %s: %v", n.Rule, r)
		}
	}()
	return b(p, n, args)
}

func (p *parser) internalf(n *grammar.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Newf(n.Position(), "internal parser error: %s\n%s", msg, dumpTree(n))
}

// ----------------------------------------------------------------------------
// Builders

var builders map[string]builderFunc

// The operator chain rules share one builder parameterized by the
// operator; argument lists fold left, so a # b # c is (a # b) # c.
var opRules = map[string]ast.Op{
	"import_alt_expression":    ast.ImportAlt,
	"or_expression":            ast.BoolOr,
	"plus_expression":          ast.NaturalPlus,
	"text_append_expression":   ast.TextAppend,
	"list_append_expression":   ast.ListAppend,
	"and_expression":           ast.BoolAnd,
	"combine_expression":       ast.RecordMerge,
	"prefer_expression":        ast.RightBiasedRecordMerge,
	"combine_types_expression": ast.RecordTypeMerge,
	"times_expression":         ast.NaturalTimes,
	"equal_expression":         ast.BoolEQ,
	"not_equal_expression":     ast.BoolNE,
	"equivalent_expression":    ast.Equivalence,
}

func opBuilder(op ast.Op) builderFunc {
	return func(p *parser, n *grammar.Node, args []value) (value, error) {
		e := args[0].expr()
		for _, a := range args[1:] {
			e = spanned(&ast.BinaryExpr{Op: op, X: e, Y: a.expr()}, n)
		}
		return value{rule: n.Rule, x: e}, nil
	}
}

// spanned records n's source span on e and returns e.
func spanned(e ast.Expr, n *grammar.Node) ast.Expr {
	if s, ok := e.(interface{ SetSpan(token.Span) }); ok {
		s.SetSpan(n.Span)
	}
	return e
}

func exprValue(n *grammar.Node, e ast.Expr) (value, error) {
	return value{rule: n.Rule, x: spanned(e, n)}, nil
}

func init() {
	builders = map[string]builderFunc{
		"final_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return args[0], nil
		},
		"EOI": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule}, nil
		},

		"label": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: n.Text()}, nil
		},
		"identifier": buildIdentifier,

		"lambda_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.Lam{
				Label: args[0].str(),
				Type:  args[1].expr(),
				Body:  args[2].expr(),
			})
		},
		"forall_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.Pi{
				Label: args[0].str(),
				Type:  args[1].expr(),
				Body:  args[2].expr(),
			})
		},
		"ifthenelse_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.IfExpr{
				Cond: args[0].expr(),
				Then: args[1].expr(),
				Else: args[2].expr(),
			})
		},
		"let_binding":    buildLetBinding,
		"let_expression": buildLetExpression,
		"merge_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			m := &ast.Merge{Handler: args[0].expr(), Union: args[1].expr()}
			if len(args) == 3 {
				m.Type = args[2].expr()
			}
			return exprValue(n, m)
		},
		"assert_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.Assert{Type: args[0].expr()})
		},
		"empty_list_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.EmptyListLit{Type: args[0].expr()})
		},

		"annotated_expression": buildAnnotated,
		"arrow_tail": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: args[0].x}, nil
		},
		"annot_tail": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: args[0].x}, nil
		},

		"application_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			e := args[0].expr()
			for _, a := range args[1:] {
				e = spanned(&ast.App{Fn: e, Arg: a.expr()}, n)
			}
			return value{rule: n.Rule, x: e}, nil
		},
		"some_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.SomeLit{Val: args[0].expr()})
		},
		"selector_expression": buildSelector,
		"labels": func(p *parser, n *grammar.Node, args []value) (value, error) {
			names := make([]string, len(args))
			for i, a := range args {
				names[i] = a.str()
			}
			return value{rule: n.Rule, x: names}, nil
		},

		"natural_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			v, err := literal.ParseNatural(n.Text())
			if err != nil {
				return value{}, errors.Promote(err, n.Position())
			}
			return exprValue(n, &ast.NaturalLit{Value: v})
		},
		"integer_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			v, err := literal.ParseInteger(n.Text())
			if err != nil {
				return value{}, errors.Promote(err, n.Position())
			}
			return exprValue(n, &ast.IntegerLit{Value: v})
		},
		"double_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			v, err := literal.ParseDouble(n.Text())
			if err != nil {
				return value{}, errors.Promote(err, n.Position())
			}
			return exprValue(n, &ast.DoubleLit{Value: v})
		},

		"double_quote_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.TextLit{Chunks: coalesce(chunksOf(args))})
		},
		"interpolation": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: args[0].x}, nil
		},
		"double_quote_escaped": func(p *parser, n *grammar.Node, args []value) (value, error) {
			s, err := unescape(n.Text())
			if err != nil {
				return value{}, errors.Promote(err, n.Position())
			}
			return value{rule: n.Rule, x: s}, nil
		},
		"double_quote_char": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: n.Text()}, nil
		},

		"single_quote_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			// args[0] is the mandatory newline after the opening '';
			// it is not part of the literal's content.
			return exprValue(n, &ast.TextLit{Chunks: coalesce(args[1].chunks())})
		},
		"end_of_line": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: "\n"}, nil
		},
		"single_quote_continue": buildSingleQuoteContinue,
		"escaped_quote_pair": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: "''"}, nil
		},
		"escaped_interpolation": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: "${"}, nil
		},
		"single_quote_char": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: n.Text()}, nil
		},

		"empty_record_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.RecordLit{})
		},
		"empty_record_type": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.RecordType{})
		},
		"non_empty_record_type_or_literal": buildRecord,
		"non_empty_record_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: recordBody{
				literal: true,
				first:   args[0].expr(),
				rest:    fieldsOf(args[1:]),
			}}, nil
		},
		"non_empty_record_type": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: recordBody{
				first: args[0].expr(),
				rest:  fieldsOf(args[1:]),
			}}, nil
		},
		"record_literal_entry": buildFieldEntry,
		"record_type_entry":    buildFieldEntry,

		"union_type": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return exprValue(n, &ast.UnionType{Alternatives: fieldsOf(args)})
		},
		"union_type_entry": func(p *parser, n *grammar.Node, args []value) (value, error) {
			f := ast.FieldEntry{Name: args[0].str()}
			if len(args) == 2 {
				f.Value = args[1].expr()
			}
			return value{rule: n.Rule, x: f}, nil
		},

		"non_empty_list_literal": func(p *parser, n *grammar.Node, args []value) (value, error) {
			elems := make([]ast.Expr, len(args))
			for i, a := range args {
				elems[i] = a.expr()
			}
			return exprValue(n, &ast.ListLit{Elems: elems})
		},

		"import_expression": func(p *parser, n *grammar.Node, args []value) (value, error) {
			imp := args[0].x.(*ast.Import)
			if len(args) == 2 {
				imp.Mode = ast.RawText
			}
			return exprValue(n, &ast.Embed{Import: imp})
		},
		"as_text": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule}, nil
		},
		"import_hashed": func(p *parser, n *grammar.Node, args []value) (value, error) {
			imp := &ast.Import{Location: args[0].x.(ast.ImportLocation)}
			if len(args) == 2 {
				imp.Hash = args[1].str()
			}
			return value{rule: n.Rule, x: imp}, nil
		},
		"hash": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: n.Text()}, nil
		},
		"missing": func(p *parser, n *grammar.Node, args []value) (value, error) {
			return value{rule: n.Rule, x: ast.ImportLocation{Kind: ast.Missing}}, nil
		},
		"env_variable":  pathBuilder("env:", func(s string) ast.ImportLocation { return ast.ImportLocation{Kind: ast.Env, Var: s} }),
		"http":          pathBuilder("", func(s string) ast.ImportLocation { return ast.ImportLocation{Kind: ast.Remote, URL: s} }),
		"parent_path":   localPath("../", ast.Parent),
		"here_path":     localPath("./", ast.Here),
		"home_path":     localPath("~/", ast.Home),
		"absolute_path": localPath("/", ast.Absolute),
	}

	for rule, op := range opRules {
		builders[rule] = opBuilder(op)
	}
}

func pathBuilder(prefix string, mk func(string) ast.ImportLocation) builderFunc {
	return func(p *parser, n *grammar.Node, args []value) (value, error) {
		return value{rule: n.Rule, x: mk(strings.TrimPrefix(n.Text(), prefix))}, nil
	}
}

func localPath(prefix string, fp ast.FilePrefix) builderFunc {
	return pathBuilder(prefix, func(s string) ast.ImportLocation {
		return ast.ImportLocation{Kind: ast.Local, Prefix: fp, Path: s}
	})
}

// buildIdentifier resolves a name: built-ins first, then the reserved
// word-like literals, then a variable. A de Bruijn index (x@n) forces
// the variable reading.
func buildIdentifier(p *parser, n *grammar.Node, args []value) (value, error) {
	name := args[0].str()
	if len(args) == 2 {
		idx := args[1].x.(*ast.NaturalLit).Value
		if idx > math.MaxInt {
			return value{}, errors.Newf(n.Position(), "variable index %d out of range", idx)
		}
		return exprValue(n, &ast.Var{V: ast.V{Name: name, Index: int(idx)}})
	}
	if b, ok := ast.LookupBuiltin(name); ok {
		return exprValue(n, &ast.BuiltinLit{Builtin: b})
	}
	switch name {
	case "True":
		return exprValue(n, &ast.BoolLit{Value: true})
	case "False":
		return exprValue(n, &ast.BoolLit{Value: false})
	case "Type":
		return exprValue(n, &ast.ConstLit{Const: ast.Type})
	case "Kind":
		return exprValue(n, &ast.ConstLit{Const: ast.Kind})
	case "Sort":
		return exprValue(n, &ast.ConstLit{Const: ast.Sort})
	}
	return exprValue(n, &ast.Var{V: ast.V{Name: name}})
}

func buildLetBinding(p *parser, n *grammar.Node, args []value) (value, error) {
	b := binding{span: n.Span, label: args[0].str()}
	if len(args) == 3 {
		b.annot = args[1].expr()
		b.value = args[2].expr()
	} else {
		b.value = args[1].expr()
	}
	return value{rule: n.Rule, x: b}, nil
}

// buildLetExpression nests the bindings around the body innermost-last:
// let a = x let b = y in e is let a = x in (let b = y in e).
func buildLetExpression(p *parser, n *grammar.Node, args []value) (value, error) {
	body := args[len(args)-1].expr()
	for i := len(args) - 2; i >= 0; i-- {
		b := args[i].binding()
		let := &ast.Let{Label: b.label, Annot: b.annot, Value: b.value, Body: body}
		let.SetSpan(b.span)
		body = let
	}
	return value{rule: n.Rule, x: spanned(body, n)}, nil
}

func buildAnnotated(p *parser, n *grammar.Node, args []value) (value, error) {
	e := args[0].expr()
	if len(args) == 1 {
		return value{rule: n.Rule, x: e}, nil
	}
	switch tail := args[1]; tail.rule {
	case "arrow_tail":
		// A -> B is sugar for forall(_ : A) -> B.
		return exprValue(n, &ast.Pi{Label: "_", Type: e, Body: tail.expr()})
	case "annot_tail":
		return exprValue(n, &ast.Annot{Expr: e, Type: tail.expr()})
	default:
		return value{}, p.internalf(n, "unexpected tail rule %s", tail.rule)
	}
}

func buildSelector(p *parser, n *grammar.Node, args []value) (value, error) {
	e := args[0].expr()
	for _, a := range args[1:] {
		switch sel := a.x.(type) {
		case string:
			e = spanned(&ast.Field{Expr: e, Name: sel}, n)
		case []string:
			e = spanned(&ast.Project{Expr: e, Names: sel}, n)
		default:
			return value{}, p.internalf(n, "unexpected selector %T", a.x)
		}
	}
	return value{rule: n.Rule, x: e}, nil
}

// buildSingleQuoteContinue assembles a '' literal right to left: the
// grammar rule is right-recursive, so each step prepends its chunk to
// the chunks of the rest of the literal.
func buildSingleQuoteContinue(p *parser, n *grammar.Node, args []value) (value, error) {
	if len(args) == 0 {
		return value{rule: n.Rule, x: []ast.Chunk(nil)}, nil
	}
	var head ast.Chunk
	switch h := args[0]; h.rule {
	case "interpolation":
		head = ast.Chunk{Expr: h.expr()}
	default:
		head = ast.Chunk{Text: h.str()}
	}
	return value{rule: n.Rule, x: append([]ast.Chunk{head}, args[1].chunks()...)}, nil
}

func buildRecord(p *parser, n *grammar.Node, args []value) (value, error) {
	name := args[0].str()
	body := args[1].x.(recordBody)
	fields := append(ast.FieldList{{Name: name, Value: body.first}}, body.rest...)
	if body.literal {
		return exprValue(n, &ast.RecordLit{Fields: fields})
	}
	return exprValue(n, &ast.RecordType{Fields: fields})
}

func buildFieldEntry(p *parser, n *grammar.Node, args []value) (value, error) {
	return value{rule: n.Rule, x: ast.FieldEntry{Name: args[0].str(), Value: args[1].expr()}}, nil
}

func fieldsOf(args []value) ast.FieldList {
	if len(args) == 0 {
		return nil
	}
	fields := make(ast.FieldList, len(args))
	for i, a := range args {
		fields[i] = a.x.(ast.FieldEntry)
	}
	return fields
}

func chunksOf(args []value) []ast.Chunk {
	chunks := make([]ast.Chunk, 0, len(args))
	for _, a := range args {
		if a.rule == "interpolation" {
			chunks = append(chunks, ast.Chunk{Expr: a.expr()})
		} else {
			chunks = append(chunks, ast.Chunk{Text: a.str()})
		}
	}
	return chunks
}

// coalesce merges adjacent text chunks so that a literal's chunk
// sequence alternates between text and interpolations.
func coalesce(chunks []ast.Chunk) []ast.Chunk {
	var out []ast.Chunk
	for _, c := range chunks {
		if c.Expr == nil && len(out) > 0 && out[len(out)-1].Expr == nil {
			out[len(out)-1].Text += c.Text
			continue
		}
		out = append(out, c)
	}
	return out
}

// unescape decodes one double-quote escape sequence, backslash
// included.
func unescape(s string) (string, error) {
	if len(s) != 2 || s[0] != '\\' {
		return "", fmt.Errorf("invalid escape sequence %q", s)
	}
	switch s[1] {
	case '"', '$', '\\', '/':
		return s[1:], nil
	case 'b':
		return "\b", nil
	case 'f':
		return "\f", nil
	case 'n':
		return "\n", nil
	case 'r':
		return "\r", nil
	case 't':
		return "\t", nil
	}
	return "", fmt.Errorf("invalid escape sequence %q", s)
}
