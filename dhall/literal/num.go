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

// Package literal converts the captured text of Dhall numeric literals
// to their values. The grammar should only ever hand this package a
// well-formed numeral, but each function re-validates defensively and
// reports a descriptive error for the offending fragment.
package literal // import "dhall-lang.org/go/dhall/literal"

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ParseNatural parses the text of a natural (non-negative integer)
// literal. Leading and trailing space is ignored.
func ParseNatural(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid natural literal %q: %v", s, unwrapNumError(err))
	}
	return n, nil
}

// ParseInteger parses the text of an integer literal. Integers carry an
// explicit sign in Dhall source; both signed and bare forms are
// accepted here.
func ParseInteger(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %v", s, unwrapNumError(err))
	}
	return n, nil
}

// ParseDouble parses the text of a double literal, including the NaN
// and Infinity keyword forms. Finite numerals are validated as exact
// decimals before the conversion to IEEE float64, so malformed input is
// distinguished from mere rounding.
func ParseDouble(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid double literal %q: %v", s, unwrapNumError(err))
	}
	f, err := d.Float64()
	if err != nil {
		// Out of float64 range; the standard maps overflow to the
		// infinities rather than rejecting the literal.
		if d.Negative {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	return f, nil
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
