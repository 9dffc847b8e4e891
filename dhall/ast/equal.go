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

package ast

import "math"

// Equal reports whether two expressions are syntactically identical.
// Source spans are ignored: two equal subtrees with different
// provenance compare equal. Doubles compare bitwise, so NaN literals
// are equal to themselves.
func Equal(a, b Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch x := a.(type) {
	case *ConstLit:
		y, ok := b.(*ConstLit)
		return ok && x.Const == y.Const
	case *Var:
		y, ok := b.(*Var)
		return ok && x.V == y.V
	case *Lam:
		y, ok := b.(*Lam)
		return ok && x.Label == y.Label &&
			Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *Pi:
		y, ok := b.(*Pi)
		return ok && x.Label == y.Label &&
			Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *App:
		y, ok := b.(*App)
		return ok && Equal(x.Fn, y.Fn) && Equal(x.Arg, y.Arg)
	case *Let:
		y, ok := b.(*Let)
		return ok && x.Label == y.Label &&
			equalOrNil(x.Annot, y.Annot) &&
			Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *Annot:
		y, ok := b.(*Annot)
		return ok && Equal(x.Expr, y.Expr) && Equal(x.Type, y.Type)
	case *Assert:
		y, ok := b.(*Assert)
		return ok && Equal(x.Type, y.Type)
	case *BuiltinLit:
		y, ok := b.(*BuiltinLit)
		return ok && x.Builtin == y.Builtin
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && Equal(x.X, y.X) && Equal(x.Y, y.Y)
	case *BoolLit:
		y, ok := b.(*BoolLit)
		return ok && x.Value == y.Value
	case *IfExpr:
		y, ok := b.(*IfExpr)
		return ok && Equal(x.Cond, y.Cond) &&
			Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *NaturalLit:
		y, ok := b.(*NaturalLit)
		return ok && x.Value == y.Value
	case *IntegerLit:
		y, ok := b.(*IntegerLit)
		return ok && x.Value == y.Value
	case *DoubleLit:
		y, ok := b.(*DoubleLit)
		return ok && math.Float64bits(x.Value) == math.Float64bits(y.Value)
	case *TextLit:
		y, ok := b.(*TextLit)
		if !ok || len(x.Chunks) != len(y.Chunks) {
			return false
		}
		for i := range x.Chunks {
			cx, cy := x.Chunks[i], y.Chunks[i]
			if cx.Text != cy.Text || !equalOrNil(cx.Expr, cy.Expr) {
				return false
			}
		}
		return true
	case *EmptyListLit:
		y, ok := b.(*EmptyListLit)
		return ok && Equal(x.Type, y.Type)
	case *ListLit:
		y, ok := b.(*ListLit)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *SomeLit:
		y, ok := b.(*SomeLit)
		return ok && Equal(x.Val, y.Val)
	case *RecordType:
		y, ok := b.(*RecordType)
		return ok && equalFields(x.Fields, y.Fields)
	case *RecordLit:
		y, ok := b.(*RecordLit)
		return ok && equalFields(x.Fields, y.Fields)
	case *UnionType:
		y, ok := b.(*UnionType)
		return ok && equalFields(x.Alternatives, y.Alternatives)
	case *Merge:
		y, ok := b.(*Merge)
		return ok && Equal(x.Handler, y.Handler) &&
			Equal(x.Union, y.Union) && equalOrNil(x.Type, y.Type)
	case *Field:
		y, ok := b.(*Field)
		return ok && x.Name == y.Name && Equal(x.Expr, y.Expr)
	case *Project:
		return equalProject(x, b)
	case *Embed:
		y, ok := b.(*Embed)
		return ok && equalImport(x.Import, y.Import)
	}
	return false
}

func equalProject(x *Project, b Expr) bool {
	y, ok := b.(*Project)
	if !ok || len(x.Names) != len(y.Names) {
		return false
	}
	for i := range x.Names {
		if x.Names[i] != y.Names[i] {
			return false
		}
	}
	return Equal(x.Expr, y.Expr)
}

func equalOrNil(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

func equalFields(a, b FieldList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !equalOrNil(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func equalImport(a, b *Import) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Mode == b.Mode && a.Hash == b.Hash && a.Location == b.Location
}
