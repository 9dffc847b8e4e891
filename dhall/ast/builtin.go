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

// Builtin identifies one of the fixed set of built-in names.
type Builtin int

const (
	Bool Builtin = iota
	Natural
	Integer
	Double
	Text
	List
	Optional
	None
	NaturalBuild
	NaturalFold
	NaturalIsZero
	NaturalEven
	NaturalOdd
	NaturalToInteger
	NaturalShow
	NaturalSubtract
	IntegerToDouble
	IntegerShow
	DoubleShow
	ListBuild
	ListFold
	ListLength
	ListHead
	ListLast
	ListIndexed
	ListReverse
	OptionalFold
	OptionalBuild
	TextShow
)

var builtinNames = map[string]Builtin{
	"Bool":              Bool,
	"Natural":           Natural,
	"Integer":           Integer,
	"Double":            Double,
	"Text":              Text,
	"List":              List,
	"Optional":          Optional,
	"None":              None,
	"Natural/build":     NaturalBuild,
	"Natural/fold":      NaturalFold,
	"Natural/isZero":    NaturalIsZero,
	"Natural/even":      NaturalEven,
	"Natural/odd":       NaturalOdd,
	"Natural/toInteger": NaturalToInteger,
	"Natural/show":      NaturalShow,
	"Natural/subtract":  NaturalSubtract,
	"Integer/toDouble":  IntegerToDouble,
	"Integer/show":      IntegerShow,
	"Double/show":       DoubleShow,
	"List/build":        ListBuild,
	"List/fold":         ListFold,
	"List/length":       ListLength,
	"List/head":         ListHead,
	"List/last":         ListLast,
	"List/indexed":      ListIndexed,
	"List/reverse":      ListReverse,
	"Optional/fold":     OptionalFold,
	"Optional/build":    OptionalBuild,
	"Text/show":         TextShow,
}

var builtinStrings = func() map[Builtin]string {
	m := make(map[Builtin]string, len(builtinNames))
	for name, b := range builtinNames {
		m[b] = name
	}
	return m
}()

// LookupBuiltin maps a source-level name to its Builtin, if any.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinNames[name]
	return b, ok
}

func (b Builtin) String() string {
	if s, ok := builtinStrings[b]; ok {
		return s
	}
	return "Builtin(?)"
}
