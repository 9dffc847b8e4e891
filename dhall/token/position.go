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

// Package token defines source positions and spans for Dhall source text.
package token // import "dhall-lang.org/go/dhall/token"

import "fmt"

// Pos is a compact encoding of a byte offset into the source text of a
// single file: offset+1, so that the zero Pos is "no position". Use
// [File.Position] to obtain line and column information.
type Pos int

// NoPos is the zero Pos value; it indicates the absence of a position.
const NoPos Pos = 0

// MakePos encodes a byte offset as a Pos.
func MakePos(offset int) Pos { return Pos(offset + 1) }

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool { return p > NoPos }

// Offset returns the byte offset encoded in p. It must not be called
// on NoPos.
func (p Pos) Offset() int { return int(p) - 1 }

// A Span identifies a contiguous range of source text [Start, End).
//
// Spans are carried on AST nodes for diagnostics only: two nodes that
// differ solely in their spans are considered equal.
type Span struct {
	Start Pos
	End   Pos
}

// NoSpan indicates the absence of span information, for nodes created
// programmatically rather than by the parser. It is the zero Span.
var NoSpan = Span{}

// MakeSpan encodes a byte offset range as a Span.
func MakeSpan(start, end int) Span {
	return Span{Start: MakePos(start), End: MakePos(end)}
}

// IsValid reports whether the span carries position information.
func (s Span) IsValid() bool { return s.Start.IsValid() }

// Position describes a resolved source position, including line and
// column information. Lines and columns are 1-based; a zero line means
// the position is unknown.
type Position struct {
	Filename string
	Offset   int // byte offset, 0-based
	Line     int // line number, 1-based
	Column   int // column number (byte count), 1-based
}

// IsValid reports whether the position is valid.
func (pos Position) IsValid() bool { return pos.Line > 0 }

// String returns the position in file:line:column notation.
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// A File tracks the mapping from byte offsets to line and column
// information for a single source file. Files are immutable after
// creation and may be shared by any number of nodes and errors.
type File struct {
	name  string
	size  int
	lines []int // offset of the first byte of each line
}

// NewFile computes the line index for the given source text.
func NewFile(name string, src []byte) *File {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &File{name: name, size: len(src), lines: lines}
}

// Name returns the file name with which the file was created.
func (f *File) Name() string { return f.name }

// Size returns the length of the source text in bytes.
func (f *File) Size() int { return f.size }

// Position resolves a Pos within f to a full Position.
func (f *File) Position(p Pos) Position {
	if f == nil || !p.IsValid() {
		return Position{}
	}
	offset := p.Offset()
	if offset > f.size {
		offset = f.size
	}
	// Binary search for the line containing offset.
	lo, hi := 0, len(f.lines)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.lines[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 1-based: lines[lo-1] <= offset < lines[lo]
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     line,
		Column:   offset - f.lines[line-1] + 1,
	}
}
