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
	"fmt"
	"strconv"
	"strings"
)

// DebugStr renders e in a compact, fully parenthesized form. It is a
// debugging aid for tests and the command line, not a formatter: the
// output is unambiguous but makes no attempt at minimal parentheses.
func DebugStr(e Expr) string {
	var b strings.Builder
	debugStr(&b, e)
	return b.String()
}

func debugStr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *ConstLit:
		b.WriteString(n.Const.String())
	case *Var:
		b.WriteString(n.V.String())
	case *Lam:
		fmt.Fprintf(b, "(\\(%s : ", n.Label)
		debugStr(b, n.Type)
		b.WriteString(") -> ")
		debugStr(b, n.Body)
		b.WriteString(")")
	case *Pi:
		fmt.Fprintf(b, "(forall(%s : ", n.Label)
		debugStr(b, n.Type)
		b.WriteString(") -> ")
		debugStr(b, n.Body)
		b.WriteString(")")
	case *App:
		b.WriteString("(")
		debugStr(b, n.Fn)
		b.WriteString(" ")
		debugStr(b, n.Arg)
		b.WriteString(")")
	case *Let:
		fmt.Fprintf(b, "(let %s ", n.Label)
		if n.Annot != nil {
			b.WriteString(": ")
			debugStr(b, n.Annot)
			b.WriteString(" ")
		}
		b.WriteString("= ")
		debugStr(b, n.Value)
		b.WriteString(" in ")
		debugStr(b, n.Body)
		b.WriteString(")")
	case *Annot:
		b.WriteString("(")
		debugStr(b, n.Expr)
		b.WriteString(" : ")
		debugStr(b, n.Type)
		b.WriteString(")")
	case *Assert:
		b.WriteString("(assert : ")
		debugStr(b, n.Type)
		b.WriteString(")")
	case *BuiltinLit:
		b.WriteString(n.Builtin.String())
	case *BinaryExpr:
		b.WriteString("(")
		debugStr(b, n.X)
		fmt.Fprintf(b, " %s ", n.Op)
		debugStr(b, n.Y)
		b.WriteString(")")
	case *BoolLit:
		if n.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *IfExpr:
		b.WriteString("(if ")
		debugStr(b, n.Cond)
		b.WriteString(" then ")
		debugStr(b, n.Then)
		b.WriteString(" else ")
		debugStr(b, n.Else)
		b.WriteString(")")
	case *NaturalLit:
		fmt.Fprintf(b, "%d", n.Value)
	case *IntegerLit:
		fmt.Fprintf(b, "%+d", n.Value)
	case *DoubleLit:
		fmt.Fprintf(b, "%g", n.Value)
	case *TextLit:
		b.WriteString(`"`)
		for _, c := range n.Chunks {
			if c.Expr != nil {
				b.WriteString("${")
				debugStr(b, c.Expr)
				b.WriteString("}")
			} else {
				b.WriteString(escapeText(c.Text))
			}
		}
		b.WriteString(`"`)
	case *EmptyListLit:
		b.WriteString("([] : ")
		debugStr(b, n.Type)
		b.WriteString(")")
	case *ListLit:
		b.WriteString("[")
		for i, el := range n.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			debugStr(b, el)
		}
		b.WriteString("]")
	case *SomeLit:
		b.WriteString("(Some ")
		debugStr(b, n.Val)
		b.WriteString(")")
	case *RecordType:
		if len(n.Fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s : ", f.Name)
			debugStr(b, f.Value)
		}
		b.WriteString(" }")
	case *RecordLit:
		if len(n.Fields) == 0 {
			b.WriteString("{=}")
			return
		}
		b.WriteString("{ ")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s = ", f.Name)
			debugStr(b, f.Value)
		}
		b.WriteString(" }")
	case *UnionType:
		if len(n.Alternatives) == 0 {
			b.WriteString("<>")
			return
		}
		b.WriteString("< ")
		for i, f := range n.Alternatives {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(f.Name)
			if f.Value != nil {
				b.WriteString(" : ")
				debugStr(b, f.Value)
			}
		}
		b.WriteString(" >")
	case *Merge:
		b.WriteString("(merge ")
		debugStr(b, n.Handler)
		b.WriteString(" ")
		debugStr(b, n.Union)
		if n.Type != nil {
			b.WriteString(" : ")
			debugStr(b, n.Type)
		}
		b.WriteString(")")
	case *Field:
		debugStr(b, n.Expr)
		b.WriteString(".")
		b.WriteString(n.Name)
	case *Project:
		debugStr(b, n.Expr)
		b.WriteString(".{ ")
		b.WriteString(strings.Join(n.Names, ", "))
		b.WriteString(" }")
	case *Embed:
		fmt.Fprintf(b, "(import %s)", n.Import)
	default:
		fmt.Fprintf(b, "?%T", e)
	}
}

func escapeText(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
