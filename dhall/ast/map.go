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

import (
	"errors"
	"fmt"
)

// A Mapper rewrites one structural level of an expression. Each child
// position is passed to exactly one callback:
//
//   - Expr for ordinary child positions,
//   - Binder for child positions inside a new variable binding, with
//     the bound name, and
//   - Embed for the embedded leaf position.
//
// A nil Embed leaves Embed nodes unchanged; a nil Binder falls back to
// Expr; a nil Expr is the identity. Substitution, shifting and import
// rewriting are all derived from this single primitive, so node-shape
// knowledge lives in one place.
type Mapper struct {
	Expr   func(Expr) (Expr, error)
	Binder func(label string, e Expr) (Expr, error)
	Embed  func(*Embed) (Expr, error)
}

func (m Mapper) child(e Expr) (Expr, error) {
	if m.Expr == nil {
		return e, nil
	}
	return m.Expr(e)
}

func (m Mapper) binder(label string, e Expr) (Expr, error) {
	if m.Binder != nil {
		return m.Binder(label, e)
	}
	return m.child(e)
}

// MapOneLevel applies m to the children of e and returns the rebuilt
// node. The input is never modified; the result is a fresh node
// carrying e's source span (or e itself for childless nodes). Any
// callback error aborts the rebuild.
func MapOneLevel(e Expr, m Mapper) (Expr, error) {
	switch n := e.(type) {
	case *ConstLit, *Var, *BuiltinLit, *BoolLit,
		*NaturalLit, *IntegerLit, *DoubleLit:
		return e, nil

	case *Lam:
		typ, err := m.child(n.Type)
		if err != nil {
			return nil, err
		}
		body, err := m.binder(n.Label, n.Body)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Type, out.Body = typ, body
		return &out, nil

	case *Pi:
		typ, err := m.child(n.Type)
		if err != nil {
			return nil, err
		}
		body, err := m.binder(n.Label, n.Body)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Type, out.Body = typ, body
		return &out, nil

	case *App:
		fn, err := m.child(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := m.child(n.Arg)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Fn, out.Arg = fn, arg
		return &out, nil

	case *Let:
		out := *n
		if n.Annot != nil {
			annot, err := m.child(n.Annot)
			if err != nil {
				return nil, err
			}
			out.Annot = annot
		}
		val, err := m.child(n.Value)
		if err != nil {
			return nil, err
		}
		body, err := m.binder(n.Label, n.Body)
		if err != nil {
			return nil, err
		}
		out.Value, out.Body = val, body
		return &out, nil

	case *Annot:
		x, err := m.child(n.Expr)
		if err != nil {
			return nil, err
		}
		typ, err := m.child(n.Type)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Expr, out.Type = x, typ
		return &out, nil

	case *Assert:
		typ, err := m.child(n.Type)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Type = typ
		return &out, nil

	case *BinaryExpr:
		x, err := m.child(n.X)
		if err != nil {
			return nil, err
		}
		y, err := m.child(n.Y)
		if err != nil {
			return nil, err
		}
		out := *n
		out.X, out.Y = x, y
		return &out, nil

	case *IfExpr:
		cond, err := m.child(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := m.child(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := m.child(n.Else)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Cond, out.Then, out.Else = cond, then, els
		return &out, nil

	case *TextLit:
		chunks := make([]Chunk, len(n.Chunks))
		for i, c := range n.Chunks {
			if c.Expr != nil {
				x, err := m.child(c.Expr)
				if err != nil {
					return nil, err
				}
				c.Expr = x
			}
			chunks[i] = c
		}
		out := *n
		out.Chunks = chunks
		return &out, nil

	case *EmptyListLit:
		typ, err := m.child(n.Type)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Type = typ
		return &out, nil

	case *ListLit:
		elems := make([]Expr, len(n.Elems))
		for i, el := range n.Elems {
			x, err := m.child(el)
			if err != nil {
				return nil, err
			}
			elems[i] = x
		}
		out := *n
		out.Elems = elems
		return &out, nil

	case *SomeLit:
		val, err := m.child(n.Val)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Val = val
		return &out, nil

	case *RecordType:
		fields, err := m.mapFields(n.Fields)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Fields = fields
		return &out, nil

	case *RecordLit:
		fields, err := m.mapFields(n.Fields)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Fields = fields
		return &out, nil

	case *UnionType:
		alts, err := m.mapFields(n.Alternatives)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Alternatives = alts
		return &out, nil

	case *Merge:
		handler, err := m.child(n.Handler)
		if err != nil {
			return nil, err
		}
		union, err := m.child(n.Union)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Handler, out.Union = handler, union
		if n.Type != nil {
			typ, err := m.child(n.Type)
			if err != nil {
				return nil, err
			}
			out.Type = typ
		}
		return &out, nil

	case *Field:
		x, err := m.child(n.Expr)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Expr = x
		return &out, nil

	case *Project:
		x, err := m.child(n.Expr)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Expr = x
		return &out, nil

	case *Embed:
		if m.Embed == nil {
			return n, nil
		}
		return m.Embed(n)

	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", e))
	}
}

func (m Mapper) mapFields(fields FieldList) (FieldList, error) {
	out := make(FieldList, len(fields))
	for i, f := range fields {
		if f.Value != nil {
			v, err := m.child(f.Value)
			if err != nil {
				return nil, err
			}
			f.Value = v
		}
		out[i] = f
	}
	return out, nil
}

// Shift adjusts every free reference to binder's name with an index at
// or above binder's index by delta, for moving e across a binding
// scope. It fails on index overflow or on an index driven below zero.
func Shift(delta int, binder V, e Expr) (Expr, error) {
	if n, ok := e.(*Var); ok {
		v, err := n.V.Shift(delta, binder)
		if err != nil {
			return nil, err
		}
		if v == n.V {
			return n, nil
		}
		out := *n
		out.V = v
		return &out, nil
	}
	return MapOneLevel(e, Mapper{
		Expr: func(c Expr) (Expr, error) {
			return Shift(delta, binder, c)
		},
		Binder: func(label string, c Expr) (Expr, error) {
			// A same-named binder raises the threshold: references
			// with smaller indices now point at the inner binding.
			b := binder
			if label == b.Name {
				b.Index++
			}
			return Shift(delta, b, c)
		},
	})
}

// Subst replaces every free reference to v in e with val. The
// replacement is shifted as it crosses binders so that its own free
// variables keep referring to their original bindings.
func Subst(v V, val Expr, e Expr) (Expr, error) {
	if n, ok := e.(*Var); ok {
		if n.V == v {
			return val, nil
		}
		return n, nil
	}
	return MapOneLevel(e, Mapper{
		Expr: func(c Expr) (Expr, error) {
			return Subst(v, val, c)
		},
		Binder: func(label string, c Expr) (Expr, error) {
			b := v
			if label == b.Name {
				b.Index++
			}
			shifted, err := Shift(1, V{Name: label}, val)
			if err != nil {
				return nil, err
			}
			return Subst(b, shifted, c)
		},
	})
}

// TraverseEmbed replaces every Embed leaf of e via f, leaving all other
// node shapes structurally unchanged. The first error aborts the
// traversal.
func TraverseEmbed(e Expr, f func(*Embed) (Expr, error)) (Expr, error) {
	return MapOneLevel(e, Mapper{
		Expr: func(c Expr) (Expr, error) {
			return TraverseEmbed(c, f)
		},
		Embed: f,
	})
}

// MapEmbed is TraverseEmbed for an infallible replacement function.
func MapEmbed(e Expr, f func(*Embed) Expr) Expr {
	out, err := TraverseEmbed(e, func(em *Embed) (Expr, error) {
		return f(em), nil
	})
	if err != nil {
		panic("ast: MapEmbed: unexpected error: " + err.Error())
	}
	return out
}

// ResolveEmbeds replaces every Embed leaf of e via f, treating the ?
// operator as a fallback point: the left operand is resolved in full
// and only if that fails is the right operand attempted, whose result
// or error then stands for the whole node.
func ResolveEmbeds(e Expr, f func(*Embed) (Expr, error)) (Expr, error) {
	if b, ok := e.(*BinaryExpr); ok && b.Op == ImportAlt {
		if out, err := ResolveEmbeds(b.X, f); err == nil {
			return out, nil
		}
		// The left attempt is discarded wholesale. When the right
		// branch fails too, its error is the one reported: it is the
		// last alternative tried.
		return ResolveEmbeds(b.Y, f)
	}
	return MapOneLevel(e, Mapper{
		Expr: func(c Expr) (Expr, error) {
			return ResolveEmbeds(c, f)
		},
		Embed: f,
	})
}

var errEmbedFound = errors.New("embed found")

// HasEmbeds reports whether any Embed leaf remains in e.
func HasEmbeds(e Expr) bool {
	_, err := TraverseEmbed(e, func(*Embed) (Expr, error) {
		return nil, errEmbedFound
	})
	return err != nil
}

// FirstEmbed returns the first unresolved Embed of e in depth-first
// order, or nil if the tree is fully resolved.
func FirstEmbed(e Expr) *Embed {
	var found *Embed
	TraverseEmbed(e, func(em *Embed) (Expr, error) {
		found = em
		return nil, errEmbedFound
	})
	return found
}
