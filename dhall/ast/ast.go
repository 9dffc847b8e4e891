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

// Package ast declares the types used to represent Dhall syntax trees.
//
// Trees are immutable once built: a node is fully constructed before it
// becomes a child of another node and is never modified afterwards.
// Subtrees may therefore be shared freely between parents. Source spans
// are diagnostic information only; [Equal] ignores them.
package ast // import "dhall-lang.org/go/dhall/ast"

import (
	"fmt"

	"dhall-lang.org/go/dhall/token"
)

// An Expr is implemented by all expression nodes.
type Expr interface {
	Span() token.Span
	exprNode()
}

func (*ConstLit) exprNode()     {}
func (*Var) exprNode()          {}
func (*Lam) exprNode()          {}
func (*Pi) exprNode()           {}
func (*App) exprNode()          {}
func (*Let) exprNode()          {}
func (*Annot) exprNode()        {}
func (*Assert) exprNode()       {}
func (*BuiltinLit) exprNode()   {}
func (*BinaryExpr) exprNode()   {}
func (*BoolLit) exprNode()      {}
func (*IfExpr) exprNode()       {}
func (*NaturalLit) exprNode()   {}
func (*IntegerLit) exprNode()   {}
func (*DoubleLit) exprNode()    {}
func (*TextLit) exprNode()      {}
func (*EmptyListLit) exprNode() {}
func (*ListLit) exprNode()      {}
func (*SomeLit) exprNode()      {}
func (*RecordType) exprNode()   {}
func (*RecordLit) exprNode()    {}
func (*UnionType) exprNode()    {}
func (*Merge) exprNode()        {}
func (*Field) exprNode()        {}
func (*Project) exprNode()      {}
func (*Embed) exprNode()        {}

// Source carries the span of a node's source text. It is embedded in
// every node type. The zero value means "no source information".
type Source struct {
	span token.Span
}

// Span returns the node's source span.
func (s *Source) Span() token.Span { return s.span }

// SetSpan records the node's source span. It is called once, while the
// node is being constructed; nodes are not modified after construction.
func (s *Source) SetSpan(sp token.Span) { s.span = sp }

// Const identifies a universe: the type of types and the types above it.
type Const int

const (
	Type Const = iota
	Kind
	Sort
)

func (c Const) String() string {
	switch c {
	case Type:
		return "Type"
	case Kind:
		return "Kind"
	case Sort:
		return "Sort"
	}
	return fmt.Sprintf("Const(%d)", int(c))
}

// V is a variable reference: a name plus a de Bruijn index counting how
// many enclosing binders of that same name to skip. Index 0 refers to
// the nearest enclosing binder named Name.
type V struct {
	Name  string
	Index int
}

func (v V) String() string {
	if v.Index == 0 {
		return v.Name
	}
	return fmt.Sprintf("%s@%d", v.Name, v.Index)
}

// Shift adjusts v when it crosses the binder identified by binder: if v
// names the same variable and its index is at or above the binder's,
// the index moves by delta. Shift fails rather than wrapping on index
// overflow or on a shift below zero.
func (v V) Shift(delta int, binder V) (V, error) {
	if v.Name != binder.Name || v.Index < binder.Index {
		return v, nil
	}
	n := v.Index + delta
	if delta > 0 && n < v.Index {
		return V{}, fmt.Errorf("shift: index overflow for %s", v)
	}
	if n < 0 {
		return V{}, fmt.Errorf("shift: negative index for %s", v)
	}
	return V{Name: v.Name, Index: n}, nil
}

// Op is a binary operator. The declaration order of the constants is
// the precedence order, lowest first; the parser relies on this when
// folding operator chains.
type Op int

const (
	ImportAlt              Op = iota // a ? b
	BoolOr                           // a || b
	NaturalPlus                      // a + b
	TextAppend                       // a ++ b
	ListAppend                       // a # b
	BoolAnd                          // a && b
	RecordMerge                      // a /\ b
	RightBiasedRecordMerge           // a // b
	RecordTypeMerge                  // a //\\ b
	NaturalTimes                     // a * b
	BoolEQ                           // a == b
	BoolNE                           // a != b
	Equivalence                      // a === b
)

var opNames = [...]string{
	ImportAlt:              "?",
	BoolOr:                 "||",
	NaturalPlus:            "+",
	TextAppend:             "++",
	ListAppend:             "#",
	BoolAnd:                "&&",
	RecordMerge:            "/\\",
	RightBiasedRecordMerge: "//",
	RecordTypeMerge:        "//\\\\",
	NaturalTimes:           "*",
	BoolEQ:                 "==",
	BoolNE:                 "!=",
	Equivalence:            "===",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// A FieldEntry is one entry of a record or union body. For union
// alternatives the value may be nil (an alternative without a type).
type FieldEntry struct {
	Name  string
	Value Expr
}

// A FieldList is the ordered body of a record or union literal or
// type. Insertion order is preserved and duplicate names are permitted
// at this layer; rejecting duplicates is a later validation, and
// collapsing them here would lose the information those diagnostics
// need.
type FieldList []FieldEntry

// Lookup returns the value of the first entry with the given name.
func (l FieldList) Lookup(name string) (Expr, bool) {
	for _, f := range l {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// ----------------------------------------------------------------------------
// Expression nodes

// A ConstLit node is a universe literal: Type, Kind or Sort.
type ConstLit struct {
	Source
	Const Const
}

// A Var node references a bound variable.
type Var struct {
	Source
	V V
}

// A Lam node is a function literal λ(Label : Type) → Body.
// Body is in the scope of a new binding of Label.
type Lam struct {
	Source
	Label string
	Type  Expr
	Body  Expr
}

// A Pi node is a function type ∀(Label : Type) → Body. The anonymous
// arrow form A → B uses the label "_".
type Pi struct {
	Source
	Label string
	Type  Expr
	Body  Expr
}

// An App node is a function application.
type App struct {
	Source
	Fn  Expr
	Arg Expr
}

// A Let node binds Label to Value within Body. Annot is the optional
// type annotation of the binding; it may be nil.
type Let struct {
	Source
	Label string
	Annot Expr
	Value Expr
	Body  Expr
}

// An Annot node is a type annotation e : T.
type Annot struct {
	Source
	Expr Expr
	Type Expr
}

// An Assert node is an assertion assert : T.
type Assert struct {
	Source
	Type Expr
}

// A BuiltinLit node references a built-in name such as Natural/fold.
type BuiltinLit struct {
	Source
	Builtin Builtin
}

// A BinaryExpr node applies a binary operator to two operands.
type BinaryExpr struct {
	Source
	Op Op
	X  Expr
	Y  Expr
}

// A BoolLit node is True or False.
type BoolLit struct {
	Source
	Value bool
}

// An IfExpr node is if Cond then Then else Else.
type IfExpr struct {
	Source
	Cond Expr
	Then Expr
	Else Expr
}

// A NaturalLit node is a non-negative integer literal.
type NaturalLit struct {
	Source
	Value uint64
}

// An IntegerLit node is an explicitly signed integer literal.
type IntegerLit struct {
	Source
	Value int64
}

// A DoubleLit node is a floating point literal. Equality of doubles is
// bitwise, so NaN literals compare equal to themselves.
type DoubleLit struct {
	Source
	Value float64
}

// A Chunk is one piece of a text literal: a literal text run, an
// interpolated expression, or both are possible positions; exactly one
// of Text and Expr is meaningful per chunk (Expr nil means text).
type Chunk struct {
	Text string
	Expr Expr
}

// A TextLit node is a text literal built from an ordered sequence of
// chunks.
type TextLit struct {
	Source
	Chunks []Chunk
}

// An EmptyListLit node is an empty list with its mandatory element
// type annotation, [] : T.
type EmptyListLit struct {
	Source
	Type Expr
}

// A ListLit node is a non-empty list literal.
type ListLit struct {
	Source
	Elems []Expr
}

// A SomeLit node wraps a value in Optional, Some e.
type SomeLit struct {
	Source
	Val Expr
}

// A RecordType node is a record type { k : T, ... }. {} is the empty
// record type.
type RecordType struct {
	Source
	Fields FieldList
}

// A RecordLit node is a record literal { k = v, ... }. {=} is the
// empty record literal; it is a distinct node shape from the empty
// record type.
type RecordLit struct {
	Source
	Fields FieldList
}

// A UnionType node is a union type < k : T | k2 >. Alternatives
// without a type have a nil value.
type UnionType struct {
	Source
	Alternatives FieldList
}

// A Merge node is merge Handler Union, optionally annotated with a
// result type.
type Merge struct {
	Source
	Handler Expr
	Union   Expr
	Type    Expr // or nil
}

// A Field node selects a field of a record, e.x.
type Field struct {
	Source
	Expr Expr
	Name string
}

// A Project node projects a subset of record fields, e.{ x, y }.
type Project struct {
	Source
	Expr  Expr
	Names []string
}

// An Embed node holds a reference external to the language itself; in
// this front end, an import that has not yet been resolved. A fully
// resolved tree contains no Embed nodes; see [HasEmbeds].
type Embed struct {
	Source
	Import *Import
}
