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

package parser

import (
	"fmt"
	"strings"

	"dhall-lang.org/go/dhall/grammar"
)

// dumpTree renders a parse subtree with one rule per line, children
// indented under their parent. It accompanies internal error messages,
// where the shape of the tree is the information that matters.
func dumpTree(n *grammar.Node) string {
	var b strings.Builder
	dumpNode(&b, n, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, n *grammar.Node, indent int) {
	fmt.Fprintf(b, "%s%s: %s\n", strings.Repeat("  ", indent), n.Rule, snippet(n.Text()))
	for _, c := range n.Children {
		dumpNode(b, c, indent+1)
	}
}

func snippet(s string) string {
	const max = 40
	if len(s) > max {
		s = s[:max] + "..."
	}
	return fmt.Sprintf("%q", s)
}
