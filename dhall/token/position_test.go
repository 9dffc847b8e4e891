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

package token_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"dhall-lang.org/go/dhall/token"
)

func TestFilePosition(t *testing.T) {
	src := []byte("let x = 1\nin x\n")
	f := token.NewFile("test.dhall", src)

	testCases := []struct {
		offset int
		line   int
		column int
	}{
		{offset: 0, line: 1, column: 1},
		{offset: 4, line: 1, column: 5},
		{offset: 9, line: 1, column: 10}, // the newline itself
		{offset: 10, line: 2, column: 1},
		{offset: 13, line: 2, column: 4},
		{offset: 15, line: 3, column: 1}, // just past the end
	}
	for _, tc := range testCases {
		got := f.Position(token.MakePos(tc.offset))
		want := token.Position{
			Filename: "test.dhall",
			Offset:   tc.offset,
			Line:     tc.line,
			Column:   tc.column,
		}
		qt.Assert(t, qt.Equals(got, want), qt.Commentf("offset %d", tc.offset))
	}
}

func TestNoPos(t *testing.T) {
	qt.Assert(t, qt.IsFalse(token.NoPos.IsValid()))
	qt.Assert(t, qt.IsFalse(token.NoSpan.IsValid()))
	qt.Assert(t, qt.IsTrue(token.MakePos(0).IsValid()))

	f := token.NewFile("x", nil)
	qt.Assert(t, qt.Equals(f.Position(token.NoPos), token.Position{}))
}

func TestSpan(t *testing.T) {
	sp := token.MakeSpan(3, 7)
	qt.Assert(t, qt.IsTrue(sp.IsValid()))
	qt.Assert(t, qt.Equals(sp.Start.Offset(), 3))
	qt.Assert(t, qt.Equals(sp.End.Offset(), 7))
}

func TestPositionString(t *testing.T) {
	testCases := []struct {
		pos  token.Position
		want string
	}{
		{token.Position{}, "-"},
		{token.Position{Filename: "a.dhall"}, "a.dhall"},
		{token.Position{Filename: "a.dhall", Line: 3, Column: 14}, "a.dhall:3:14"},
		{token.Position{Line: 1, Column: 2}, "1:2"},
	}
	for _, tc := range testCases {
		qt.Assert(t, qt.Equals(tc.pos.String(), tc.want))
	}
}
