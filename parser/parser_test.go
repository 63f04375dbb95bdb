package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Perelandric/css/ast"
	"github.com/Perelandric/css/parser"
	"github.com/Perelandric/css/scanner"
	"github.com/Perelandric/css/token"
)

// ParserTest represents a generic framework for table tests against the
// parser. A test may expect both an output and an error: recoverable parse
// errors still produce a tree.
type ParserTest struct {
	in  string // input CSS
	out string // matches against generated CSS
	err string // stringified error, empty string if no error
}

// Assert validates the node against the output CSS and checks for errors.
func (tt *ParserTest) Assert(t *testing.T, n ast.Node, err error) {
	t.Helper()

	assert.Equal(t, tt.err, errstring(err), "<%q> error mismatch", tt.in)
	if tt.out == "" {
		return
	}
	if assert.NotNil(t, n, "<%q> expected node", tt.in) {
		assert.Equal(t, tt.out, n.String(), "<%q> serialization mismatch", tt.in)
	}
}

// errstring returns the string representation of the error.
func errstring(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

func scan(s string) *scanner.Scanner {
	return scanner.New(strings.NewReader(s))
}

// Ensure that a stylesheet can be parsed into an AST.
func TestParseStylesheet(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo { padding: 10px; }`, out: "foo { padding: 10px; }\n"},
		{in: `@charset "utf-8"; a {}`, out: "a {}\n"},
		{in: `@CHARSET "utf-8"; a {}`, out: "a {}\n"},
		{in: `@charset "utf-8";`, out: ""},
		{in: `<!-- --> a {} -->`, out: "a {}\n"},
	}

	for _, tt := range tests {
		ss, err := parser.ParseStylesheet(scan(tt.in))
		require.NotNil(t, ss, "<%q>", tt.in)
		assert.Equal(t, tt.err, errstring(err), "<%q> error mismatch", tt.in)
		assert.Equal(t, tt.out, ss.String(), "<%q> serialization mismatch", tt.in)
	}
}

// Ensure that a list of rules can be parsed into an AST.
func TestParseRules(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo { padding: 10px; }`, out: `foo { padding: 10px; }`},
		{in: `@import url(/css/screen.css) screen, projection;`, out: `@import url(/css/screen.css) screen, projection;`},
		{in: `@xxx; foo { padding: 10 0; }`, out: `@xxx; foo { padding: 10 0; }`},
		{in: `<!-- comment --> foo { }`, out: `<!-- comment --> foo { }`},
	}

	for _, tt := range tests {
		v, err := parser.ParseRules(scan(tt.in))
		tt.Assert(t, v, err)
	}
}

// Ensure that a rule can be parsed into an AST.
func TestParseRule(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo { padding: 10px; }`, out: `foo { padding: 10px; }`},
		{in: `foo { padding: 10px; `, out: `foo { padding: 10px; }`, err: `unexpected EOF`},
		{in: `  #foo bar, .baz bat {}  `, out: `#foo bar, .baz bat {}`},
		{in: `@media (max-width: 600px) { .nav { display: none; }}`, out: `@media (max-width: 600px) { .nav { display: none; }}`},
		{in: `@import url(screen.css);`, out: `@import url(screen.css);`},

		{in: ``, err: `unexpected EOF`},
		{in: `  `, err: `unexpected EOF`},
		{in: `foo {} bar`, err: `expected EOF, got "bar"`},
	}

	for _, tt := range tests {
		v, err := parser.ParseRule(scan(tt.in))
		tt.Assert(t, v, err)
	}
}

// Ensure that a declaration can be parsed into an AST.
func TestParseDeclaration(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo: bar`, out: `foo: bar`},
		{in: `foo:bar`, out: `foo:bar`},
		{in: `margin: 0 auto`, out: `margin: 0 auto`},
		{in: `color: red !important`, out: `color: red !important`},
		{in: `color: red ! IMPORTANT `, out: `color: red !important`},
		{in: `color: red !important extra`, out: `color: red !important extra`},

		{in: ``, err: `expected ident, got "EOF"`},
		{in: ` foo bar`, err: `expected colon, got "bar"`},
	}

	for _, tt := range tests {
		v, err := parser.ParseDeclaration(scan(tt.in))
		if v == nil {
			tt.Assert(t, nil, err)
		} else {
			tt.Assert(t, v, err)
		}
	}
}

// Ensure the !important marker and trailing whitespace are stripped from
// declaration values.
func TestParseDeclaration_Important(t *testing.T) {
	d, err := parser.ParseDeclaration(scan(`color: red !important `))
	require.NoError(t, err)
	require.True(t, d.Important)
	require.Equal(t, ast.ComponentValues{
		&ast.Token{Token: &token.Whitespace{Value: " ", Pos: token.Pos{Char: 6}}},
		&ast.Token{Token: &token.Ident{Value: "red", Pos: token.Pos{Char: 7}}},
	}, d.Values)
}

// Ensure that a list of declarations can be parsed into an AST.
func TestParseDeclarations(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo: bar`, out: `foo: bar;`},
		{in: `font-size: 20px; font-weight:bold`, out: `font-size: 20px; font-weight:bold;`},
		{in: `a:1; @page x; b:2`, out: `a:1; @page x; b:2;`},
		{in: `4px; color: red`, out: `color: red;`, err: `unexpected 4px`},
		{in: `color`, out: ``, err: `expected colon, got "EOF"`},
	}

	for _, tt := range tests {
		v, err := parser.ParseDeclarations(scan(tt.in))
		tt.Assert(t, v, err)
	}
}

// Ensure that component values can be parsed into the correct AST.
func TestParseComponentValue(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo`, out: `foo`},
		{in: `  :`, out: `:`},
		{in: `  :   `, out: `:`},
		{in: `{}`, out: `{}`},
		{in: `{foo: bar}`, out: `{foo: bar}`},
		{in: `{foo: {bar}}`, out: `{foo: {bar}}`},
		{in: ` [12.34]`, out: `[12.34]`},
		{in: ` fun(12, 34, "foo")`, out: `fun(12, 34, "foo")`},
		{in: ` fun("hello"`, out: `fun("hello")`, err: `unexpected EOF`},

		{in: ``, err: `unexpected EOF`},
		{in: ` foo bar`, err: `expected EOF, got "bar"`},
	}

	for _, tt := range tests {
		v, err := parser.ParseComponentValue(scan(tt.in))
		tt.Assert(t, v, err)
	}
}

// Ensure that a list of component values can be parsed into the correct AST.
func TestParseComponentValues(t *testing.T) {
	var tests = []ParserTest{
		{in: `foo bar`, out: `foo bar`},
		{in: `foo func(bar) { baz }`, out: `foo func(bar) { baz }`},
	}

	for _, tt := range tests {
		v, err := parser.ParseComponentValues(scan(tt.in))
		tt.Assert(t, v, err)
	}
}

// Ensure that component values split on top-level commas.
func TestParseCommaSeparatedComponentValues(t *testing.T) {
	var tests = []struct {
		in     string
		groups []string
	}{
		{in: `a, b`, groups: []string{`a`, ` b`}},
		{in: `a`, groups: []string{`a`}},
		{in: ``, groups: []string{``}},
		{in: `a,`, groups: []string{`a`, ``}},
		{in: `f(x, y), z`, groups: []string{`f(x, y)`, ` z`}},
	}

	for _, tt := range tests {
		groups, err := parser.ParseCommaSeparatedComponentValues(scan(tt.in))
		require.NoError(t, err, "<%q>", tt.in)
		var a []string
		for _, g := range groups {
			a = append(a, g.String())
		}
		assert.Equal(t, tt.groups, a, "<%q> group mismatch", tt.in)
	}
}

// Ensure a rule's block can be reparsed as declarations without
// re-serialization.
func TestReparseBlock(t *testing.T) {
	r, err := parser.ParseRule(scan(`a { color: red; margin: 0 }`))
	require.NoError(t, err)

	qr := r.(*ast.QualifiedRule)
	decls, err := parser.ParseDeclarations(parser.NewComponentValueScanner(qr.Block.Values))
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, `color: red; margin: 0;`, decls.String())
}

// Ensure pre-built blocks survive reparsing a prelude-and-block rule from
// component values.
func TestReparseRuleFromComponentValues(t *testing.T) {
	values, err := parser.ParseComponentValues(scan(`a { color: red } `))
	require.NoError(t, err)

	rules, err := parser.ParseRules(parser.NewComponentValueScanner(values))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	qr := rules[0].(*ast.QualifiedRule)
	require.NotNil(t, qr.Block)
	assert.Equal(t, `a { color: red }`, qr.String())
}

// Ensure the token scanner replays a fixed token list.
func TestTokenScanner(t *testing.T) {
	s := parser.NewTokenScanner([]token.Token{
		&token.Ident{Value: "foo"},
		&token.Colon{},
		&token.Ident{Value: "bar"},
	})

	d, err := parser.ParseDeclaration(s)
	require.NoError(t, err)
	assert.Equal(t, "foo", d.Name)
	assert.Equal(t, `foo:bar`, d.String())
}

// Ensure that an error list can be properly formatted.
func TestErrorList_Error(t *testing.T) {
	var tests = []struct {
		in parser.ErrorList
		s  string
	}{
		{in: nil, s: "no errors"},
		{in: parser.ErrorList{}, s: "no errors"},
		{in: parser.ErrorList{&parser.Error{Message: "foo"}}, s: "foo"},
		{in: parser.ErrorList{&parser.Error{Message: "foo"}, &parser.Error{Message: "bar"}}, s: "foo (and 1 more errors)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.s, tt.in.Error())
	}
}
