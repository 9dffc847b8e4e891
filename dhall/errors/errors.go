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

// Package errors defines shared types for handling Dhall errors.
package errors // import "dhall-lang.org/go/dhall/errors"

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"dhall-lang.org/go/dhall/token"
)

// New is a convenience wrapper for errors.New in the core library.
func New(msg string) error { return errors.New(msg) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error { return errors.Unwrap(err) }

// Error is the common interface for Dhall errors. The position points
// to the beginning of the offending source text, if known.
type Error interface {
	error
	Position() token.Position
}

// A posError is an error with an attached source position.
type posError struct {
	pos token.Position
	msg string

	// The underlying error that triggered this one, if any.
	err error
}

// Newf creates an Error with the given position and formatted message.
func Newf(pos token.Position, format string, args ...interface{}) Error {
	return &posError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

// Wrapf wraps err with a position and a formatted message. The
// underlying error remains available through Unwrap.
func Wrapf(err error, pos token.Position, format string, args ...interface{}) Error {
	return &posError{pos: pos, msg: fmt.Sprintf(format, args...), err: err}
}

// Promote converts err to an Error, attaching pos if err carries no
// position of its own.
func Promote(err error, pos token.Position) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	return &posError{pos: pos, msg: err.Error(), err: err}
}

func (e *posError) Position() token.Position { return e.pos }
func (e *posError) Unwrap() error            { return e.err }

func (e *posError) Error() string {
	if e.msg == "" && e.err != nil {
		return e.err.Error()
	}
	if e.err != nil && e.err.Error() != e.msg {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// A List is a list of errors. The zero value is an empty list ready
// to use.
type List []Error

// Add adds err to the list, converting it to an Error if needed.
func (p *List) Add(err error) {
	if err == nil {
		return
	}
	*p = append(*p, Promote(err, token.Position{}))
}

// AddNewf adds a newly created Error to the list.
func (p *List) AddNewf(pos token.Position, format string, args ...interface{}) {
	*p = append(*p, Newf(pos, format, args...))
}

// Reset resets the list to no errors.
func (p *List) Reset() { *p = (*p)[:0] }

// Sort sorts the list by position, then by message.
func (p List) Sort() {
	sort.Slice(p, func(i, j int) bool {
		a, b := p[i].Position(), p[j].Position()
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return p[i].Error() < p[j].Error()
	})
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

func (p List) Position() token.Position {
	if len(p) == 0 {
		return token.Position{}
	}
	return p[0].Position()
}

// Print prints err to w, one error per line if err is a List, each
// with its position when known.
func Print(w io.Writer, err error) {
	if list, ok := err.(List); ok {
		for _, e := range list {
			printError(w, e)
		}
	} else if err != nil {
		printError(w, err)
	}
}

func printError(w io.Writer, err error) {
	if e, ok := err.(Error); ok {
		if pos := e.Position(); pos.IsValid() {
			fmt.Fprintf(w, "%v: %v\n", pos, e.Error())
			return
		}
	}
	fmt.Fprintf(w, "%v\n", err)
}
