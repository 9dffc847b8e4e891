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

package literal

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParseNatural(t *testing.T) {
	testCases := []struct {
		in  string
		out uint64
		err string
	}{
		{in: "0", out: 0},
		{in: "42", out: 42},
		{in: " 42 ", out: 42},
		{in: "18446744073709551615", out: math.MaxUint64},
		{in: "18446744073709551616", err: `invalid natural literal "18446744073709551616": value out of range`},
		{in: "-1", err: `invalid natural literal "-1": invalid syntax`},
		{in: "", err: `invalid natural literal "": invalid syntax`},
	}
	for _, tc := range testCases {
		got, err := ParseNatural(tc.in)
		if tc.err != "" {
			qt.Assert(t, qt.ErrorMatches(err, tc.err), qt.Commentf("input %q", tc.in))
			continue
		}
		qt.Assert(t, qt.IsNil(err), qt.Commentf("input %q", tc.in))
		qt.Assert(t, qt.Equals(got, tc.out))
	}
}

func TestParseInteger(t *testing.T) {
	testCases := []struct {
		in  string
		out int64
		err string
	}{
		{in: "+1", out: 1},
		{in: "-1", out: -1},
		{in: "0", out: 0},
		{in: "-9223372036854775808", out: math.MinInt64},
		{in: "+9223372036854775807", out: math.MaxInt64},
		{in: "9223372036854775808", err: `invalid integer literal .* out of range`},
		{in: "1.5", err: `invalid integer literal .* invalid syntax`},
	}
	for _, tc := range testCases {
		got, err := ParseInteger(tc.in)
		if tc.err != "" {
			qt.Assert(t, qt.ErrorMatches(err, tc.err), qt.Commentf("input %q", tc.in))
			continue
		}
		qt.Assert(t, qt.IsNil(err), qt.Commentf("input %q", tc.in))
		qt.Assert(t, qt.Equals(got, tc.out))
	}
}

func TestParseDouble(t *testing.T) {
	testCases := []struct {
		in  string
		out float64
		err string
	}{
		{in: "0.0", out: 0},
		{in: "3.14", out: 3.14},
		{in: "-2.5e3", out: -2500},
		{in: "1E2", out: 100},
		{in: "Infinity", out: math.Inf(1)},
		{in: "+Infinity", out: math.Inf(1)},
		{in: "-Infinity", out: math.Inf(-1)},
		// Out of range maps to the infinities rather than failing.
		{in: "1e999", out: math.Inf(1)},
		{in: "-1e999", out: math.Inf(-1)},
		{in: "zero", err: `invalid double literal "zero": .*`},
		{in: "", err: `invalid double literal "": .*`},
	}
	for _, tc := range testCases {
		got, err := ParseDouble(tc.in)
		if tc.err != "" {
			qt.Assert(t, qt.ErrorMatches(err, tc.err), qt.Commentf("input %q", tc.in))
			continue
		}
		qt.Assert(t, qt.IsNil(err), qt.Commentf("input %q", tc.in))
		qt.Assert(t, qt.Equals(got, tc.out))
	}
}

func TestParseDoubleNaN(t *testing.T) {
	got, err := ParseDouble("NaN")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(math.IsNaN(got)))
}
