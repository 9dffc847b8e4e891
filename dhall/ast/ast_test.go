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

package ast_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"dhall-lang.org/go/dhall/ast"
	"dhall-lang.org/go/dhall/token"
)

func TestVShift(t *testing.T) {
	testCases := []struct {
		v      ast.V
		delta  int
		binder ast.V
		want   ast.V
		err    string
	}{
		// A different name is never touched.
		{v: ast.V{Name: "x"}, delta: 1, binder: ast.V{Name: "y"}, want: ast.V{Name: "x"}},
		// An index below the binder's refers to an inner binding.
		{v: ast.V{Name: "x", Index: 0}, delta: 1, binder: ast.V{Name: "x", Index: 1}, want: ast.V{Name: "x", Index: 0}},
		{v: ast.V{Name: "x", Index: 1}, delta: 1, binder: ast.V{Name: "x", Index: 1}, want: ast.V{Name: "x", Index: 2}},
		{v: ast.V{Name: "x", Index: 3}, delta: -2, binder: ast.V{Name: "x"}, want: ast.V{Name: "x", Index: 1}},
		{v: ast.V{Name: "x"}, delta: -1, binder: ast.V{Name: "x"}, err: "shift: negative index for x"},
		{v: ast.V{Name: "x", Index: math.MaxInt}, delta: 1, binder: ast.V{Name: "x"}, err: `shift: index overflow for x@.*`},
	}
	for _, tc := range testCases {
		got, err := tc.v.Shift(tc.delta, tc.binder)
		if tc.err != "" {
			qt.Assert(t, qt.ErrorMatches(err, tc.err), qt.Commentf("shift %v by %d", tc.v, tc.delta))
			continue
		}
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, tc.want), qt.Commentf("shift %v by %d", tc.v, tc.delta))
	}
}

func TestVString(t *testing.T) {
	qt.Assert(t, qt.Equals(ast.V{Name: "x"}.String(), "x"))
	qt.Assert(t, qt.Equals(ast.V{Name: "x", Index: 2}.String(), "x@2"))
}

// lam builds \(label : Bool) -> body for tests.
func lam(label string, body ast.Expr) *ast.Lam {
	return &ast.Lam{
		Label: label,
		Type:  &ast.BuiltinLit{Builtin: ast.Bool},
		Body:  body,
	}
}

func v(name string, index int) *ast.Var {
	return &ast.Var{V: ast.V{Name: name, Index: index}}
}

func TestShift(t *testing.T) {
	// \(x : Bool) -> x x@1 y: the inner x is bound and must not move;
	// x@1 and y are free.
	e := lam("x", &ast.App{
		Fn:  &ast.App{Fn: v("x", 0), Arg: v("x", 1)},
		Arg: v("y", 0),
	})

	got, err := ast.Shift(1, ast.V{Name: "x"}, e)
	qt.Assert(t, qt.IsNil(err))

	want := lam("x", &ast.App{
		Fn:  &ast.App{Fn: v("x", 0), Arg: v("x", 2)},
		Arg: v("y", 0),
	})
	qt.Assert(t, qt.IsTrue(ast.Equal(got, want)),
		qt.Commentf("got %s", ast.DebugStr(got)))
}

func TestShiftRoundTrip(t *testing.T) {
	e := lam("x", &ast.App{
		Fn:  v("x", 1),
		Arg: lam("x", v("x", 2)),
	})
	up, err := ast.Shift(1, ast.V{Name: "x"}, e)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ast.Equal(up, e)))

	down, err := ast.Shift(-1, ast.V{Name: "x"}, up)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ast.Equal(down, e)),
		qt.Commentf("got %s, want %s", ast.DebugStr(down), ast.DebugStr(e)))
}

func TestShiftDoesNotModifyInput(t *testing.T) {
	e := lam("x", v("x", 1))
	_, err := ast.Shift(1, ast.V{Name: "x"}, e)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(e.Body.(*ast.Var).V.Index, 1))
}

func TestEqualIgnoresSpans(t *testing.T) {
	a := &ast.NaturalLit{Value: 5}
	a.SetSpan(token.MakeSpan(0, 1))
	b := &ast.NaturalLit{Value: 5}
	b.SetSpan(token.MakeSpan(10, 11))
	qt.Assert(t, qt.IsTrue(ast.Equal(a, b)))

	c := &ast.NaturalLit{Value: 6}
	qt.Assert(t, qt.IsFalse(ast.Equal(a, c)))
}

func TestEqualNaN(t *testing.T) {
	a := &ast.DoubleLit{Value: math.NaN()}
	b := &ast.DoubleLit{Value: math.NaN()}
	qt.Assert(t, qt.IsTrue(ast.Equal(a, b)))
}

func TestFieldListLookup(t *testing.T) {
	l := ast.FieldList{
		{Name: "a", Value: &ast.NaturalLit{Value: 1}},
		{Name: "b", Value: &ast.NaturalLit{Value: 2}},
		{Name: "a", Value: &ast.NaturalLit{Value: 3}},
	}
	e, ok := l.Lookup("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e.(*ast.NaturalLit).Value, uint64(1)))

	_, ok = l.Lookup("c")
	qt.Assert(t, qt.IsFalse(ok))
}
