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

package grammar

import "strings"

// TopRule is the designated top rule for a complete Dhall expression:
// an expression followed by end of input.
const TopRule = "final_expression"

// Dhall is the Dhall expression grammar. Rule names and shapes follow
// the language's ABNF; the tree builder dispatches on them.
var Dhall *Grammar = dhall()

type ruleSet map[string]*rule

func (rs ruleSet) def(name string, e expr)      { rs[name] = &rule{name: name, kind: normalRule, e: e} }
func (rs ruleSet) silent(name string, e expr)   { rs[name] = &rule{name: name, kind: silentRule, e: e} }
func (rs ruleSet) atom(name string, e expr)     { rs[name] = &rule{name: name, kind: atomicRule, e: e} }
func (rs ruleSet) compound(name string, e expr) { rs[name] = &rule{name: name, kind: compoundRule, e: e} }

// Keywords introduce dedicated constructs and are not valid labels.
var keywords = []string{
	"if", "then", "else", "let", "in", "as",
	"merge", "missing", "forall", "Some", "assert",
}

func isAlpha(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }
func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isLabelFirst(r rune) bool { return isAlpha(r) || r == '_' }
func isLabelNext(r rune) bool  { return isAlpha(r) || isDigit(r) || r == '_' || r == '-' }

func isEnvChar(r rune) bool { return isAlpha(r) || isDigit(r) || r == '_' }
func isHexChar(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isPathChar(r rune) bool {
	return isAlpha(r) || isDigit(r) || strings.ContainsRune("._-~/", r)
}

func isURLChar(r rune) bool {
	return r > ' ' && !strings.ContainsRune(`()"',`, r)
}

func dhall() *Grammar {
	rs := ruleSet{}

	// kw matches s as a whole word: not a prefix of a longer label.
	boundary := not(alt(cls(isLabelNext), lit("/")))
	kw := func(s string) expr { return seq(lit(s), boundary) }

	keywordAhead := func() expr {
		es := make([]expr, len(keywords))
		for i, s := range keywords {
			es[i] = kw(s)
		}
		return alt(es...)
	}()

	arrow := alt(lit("->"), lit("→"))
	sign := alt(lit("+"), lit("-"))
	digits := plus(cls(isDigit))

	rs.def("final_expression", seq(ref("expression"), ref("EOI")))
	rs.def("EOI", eoi())

	rs.silent("expression", alt(
		ref("lambda_expression"),
		ref("ifthenelse_expression"),
		ref("let_expression"),
		ref("forall_expression"),
		ref("merge_expression"),
		ref("assert_expression"),
		ref("empty_list_literal"),
		ref("annotated_expression"),
	))

	rs.def("lambda_expression", seq(
		alt(lit(`\`), lit("λ")), lit("("),
		ref("label"), lit(":"), ref("expression"),
		lit(")"), arrow, ref("expression"),
	))

	rs.def("ifthenelse_expression", seq(
		kw("if"), ref("expression"),
		kw("then"), ref("expression"),
		kw("else"), ref("expression"),
	))

	rs.def("let_expression", seq(plus(ref("let_binding")), kw("in"), ref("expression")))
	rs.def("let_binding", seq(
		kw("let"), ref("label"),
		opt(seq(lit(":"), ref("expression"))),
		lit("="), ref("expression"),
	))

	rs.def("forall_expression", seq(
		alt(kw("forall"), lit("∀")), lit("("),
		ref("label"), lit(":"), ref("expression"),
		lit(")"), arrow, ref("expression"),
	))

	rs.def("merge_expression", seq(
		kw("merge"), ref("selector_expression"), ref("selector_expression"),
		opt(seq(lit(":"), ref("application_expression"))),
	))

	rs.def("assert_expression", seq(kw("assert"), lit(":"), ref("expression")))

	rs.def("empty_list_literal", seq(lit("["), lit("]"), lit(":"), ref("application_expression")))

	// The operator suffixes share one rule so that a failed suffix does
	// not force the whole operator chain to be re-parsed.
	rs.def("annotated_expression", seq(
		ref("import_alt_expression"),
		opt(alt(ref("arrow_tail"), ref("annot_tail"))),
	))
	rs.def("arrow_tail", seq(arrow, ref("expression")))
	rs.def("annot_tail", seq(lit(":"), ref("expression")))

	// Binary operator precedence chain, loosest binding first. Each
	// level is left-associative; the builder folds the operand list.
	chain := func(name string, op expr, next string) {
		rs.def(name, seq(ref(next), star(seq(op, ref(next)))))
	}
	chain("import_alt_expression", lit("?"), "or_expression")
	chain("or_expression", lit("||"), "plus_expression")
	chain("plus_expression", seq(lit("+"), not(lit("+"))), "text_append_expression")
	chain("text_append_expression", lit("++"), "list_append_expression")
	chain("list_append_expression", lit("#"), "and_expression")
	chain("and_expression", lit("&&"), "combine_expression")
	chain("combine_expression", alt(lit(`/\`), lit("∧")), "prefer_expression")
	chain("prefer_expression", alt(seq(lit("//"), not(lit(`\`))), lit("⫽")), "combine_types_expression")
	chain("combine_types_expression", alt(lit(`//\\`), lit("⩓")), "times_expression")
	chain("times_expression", lit("*"), "equal_expression")
	chain("equal_expression", seq(lit("=="), not(lit("="))), "not_equal_expression")
	chain("not_equal_expression", lit("!="), "equivalent_expression")
	chain("equivalent_expression", alt(lit("==="), lit("≡")), "application_expression")

	rs.def("application_expression", seq(
		ref("first_application"),
		star(ref("selector_expression")),
	))
	rs.silent("first_application", alt(ref("some_expression"), ref("selector_expression")))
	rs.def("some_expression", seq(kw("Some"), ref("selector_expression")))

	rs.def("selector_expression", seq(
		ref("primitive_expression"),
		star(seq(lit("."), ref("selector"))),
	))
	rs.silent("selector", alt(ref("labels"), ref("label")))
	rs.def("labels", seq(
		lit("{"),
		opt(seq(ref("label"), star(seq(lit(","), ref("label"))))),
		lit("}"),
	))

	rs.silent("primitive_expression", alt(
		ref("double_literal"),
		ref("natural_literal"),
		ref("integer_literal"),
		ref("double_quote_literal"),
		ref("single_quote_literal"),
		ref("record_expression"),
		ref("union_type"),
		ref("non_empty_list_literal"),
		ref("import_expression"),
		ref("identifier"),
		ref("parenthesized_expression"),
	))

	// Numeric literals. A double requires a fraction or an exponent,
	// or one of the keyword forms; the captured text is handed to the
	// literal package untouched.
	exponent := seq(alt(lit("e"), lit("E")), opt(sign), digits)
	rs.atom("double_literal", alt(
		seq(opt(sign), lit("Infinity"), boundary),
		seq(lit("NaN"), boundary),
		seq(opt(sign), digits, alt(seq(lit("."), digits, opt(exponent)), exponent)),
	))
	rs.atom("natural_literal", digits)
	rs.atom("integer_literal", seq(sign, digits))

	// Text literals.
	rs.compound("double_quote_literal", seq(lit(`"`), star(ref("double_quote_chunk")), lit(`"`)))
	rs.silent("double_quote_chunk", alt(
		ref("interpolation"),
		ref("double_quote_escaped"),
		ref("double_quote_char"),
	))
	rs[interpolationRule] = &rule{
		name:    interpolationRule,
		kind:    normalRule,
		resetWS: true,
		e:       seq(lit("${"), ref("expression"), lit("}")),
	}
	rs.atom("double_quote_escaped", seq(lit(`\`), cls(func(r rune) bool {
		return strings.ContainsRune(`"$\/bfnrt`, r)
	})))
	rs.atom("double_quote_char", plus(alt(
		seq(lit("$"), not(lit("{"))),
		cls(func(r rune) bool { return r != '"' && r != '\\' && r != '$' }),
	)))

	rs.compound("single_quote_literal", seq(lit("''"), ref("end_of_line"), ref("single_quote_continue")))
	rs.atom("end_of_line", alt(lit("\n"), lit("\r\n")))
	rs.def("single_quote_continue", alt(
		seq(ref(interpolationRule), ref("single_quote_continue")),
		seq(ref("escaped_quote_pair"), ref("single_quote_continue")),
		seq(ref("escaped_interpolation"), ref("single_quote_continue")),
		seq(ref("single_quote_char"), ref("single_quote_continue")),
		lit("''"),
	))
	rs.atom("escaped_quote_pair", lit("'''"))
	rs.atom("escaped_interpolation", lit("''${"))
	rs.atom("single_quote_char", plus(alt(
		seq(lit("'"), not(lit("'"))),
		seq(lit("$"), not(lit("{"))),
		cls(func(r rune) bool { return r != '\'' && r != '$' }),
	)))

	// Records. The leading { is shared; what follows decides between
	// the empty type, the empty literal and the non-empty forms.
	rs.silent("record_expression", seq(lit("{"), alt(
		ref("empty_record_literal"),
		ref("empty_record_type"),
		ref("non_empty_record_type_or_literal"),
	)))
	rs.def("empty_record_literal", seq(lit("="), lit("}")))
	rs.def("empty_record_type", lit("}"))
	rs.def("non_empty_record_type_or_literal", seq(
		ref("label"),
		alt(ref("non_empty_record_literal"), ref("non_empty_record_type")),
	))
	rs.def("non_empty_record_literal", seq(
		lit("="), ref("expression"),
		star(ref("record_literal_entry")), lit("}"),
	))
	rs.def("record_literal_entry", seq(lit(","), ref("label"), lit("="), ref("expression")))
	rs.def("non_empty_record_type", seq(
		lit(":"), ref("expression"),
		star(ref("record_type_entry")), lit("}"),
	))
	rs.def("record_type_entry", seq(lit(","), ref("label"), lit(":"), ref("expression")))

	rs.def("union_type", seq(
		lit("<"),
		opt(seq(ref("union_type_entry"), star(seq(lit("|"), ref("union_type_entry"))))),
		lit(">"),
	))
	rs.def("union_type_entry", seq(ref("label"), opt(seq(lit(":"), ref("expression")))))

	rs.def("non_empty_list_literal", seq(
		lit("["), ref("expression"),
		star(seq(lit(","), ref("expression"))), lit("]"),
	))

	// Imports.
	rs.def("import_expression", seq(ref("import_hashed"), opt(ref("as_text"))))
	rs.def("as_text", seq(kw("as"), kw("Text")))
	rs.def("import_hashed", seq(ref("import_type"), opt(ref("hash"))))
	rs.silent("import_type", alt(
		ref("missing"),
		ref("env_variable"),
		ref("http"),
		ref("parent_path"),
		ref("here_path"),
		ref("home_path"),
		ref("absolute_path"),
	))
	rs.def("missing", kw("missing"))
	rs.atom("env_variable", seq(lit("env:"), plus(cls(isEnvChar))))
	rs.atom("http", seq(alt(lit("https://"), lit("http://")), plus(cls(isURLChar))))
	rs.atom("parent_path", seq(lit("../"), plus(cls(isPathChar))))
	rs.atom("here_path", seq(lit("./"), plus(cls(isPathChar))))
	rs.atom("home_path", seq(lit("~/"), plus(cls(isPathChar))))
	rs.atom("absolute_path", seq(lit("/"), plus(cls(isPathChar))))
	rs.atom("hash", seq(lit("sha256:"), plus(cls(isHexChar))))

	rs.def("identifier", seq(ref("label"), opt(seq(lit("@"), ref("natural_literal")))))
	rs.atom("label", seq(
		not(keywordAhead),
		cls(isLabelFirst),
		star(alt(cls(isLabelNext), seq(lit("/"), ahead(cls(isAlpha))))),
	))

	rs.silent("parenthesized_expression", seq(lit("("), ref("expression"), lit(")")))

	return &Grammar{rules: rs}
}

const interpolationRule = "interpolation"
