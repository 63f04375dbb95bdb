package parser

import (
	"fmt"
	"strings"

	"github.com/Perelandric/css/ast"
	"github.com/Perelandric/css/token"
)

// ParseAnPlusB parses the An+B microsyntax used by :nth-* selector
// pseudo-classes, e.g. "2n+1", "-n+3", "odd". Only whitespace may surround
// the pattern, with one exception: no whitespace is permitted between a
// leading "+" and the identifier that follows it.
func ParseAnPlusB(s Scanner) (*ast.AnPlusB, error) {
	var p parser

	v := p.consumeAnPlusB(s)
	if v != nil {
		// Skip over trailing whitespace and require EOF.
		p.skipWhitespace(s)
		if _, ok := s.Scan().(*token.EOF); !ok {
			s.Unscan()
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected EOF, got %q", s.Current().String()), Pos: s.Current().Position()})
			v = nil
		}
	}
	if v == nil {
		return nil, p.error()
	}
	return v, nil
}

// consumeAnPlusB consumes the leading token of an An+B pattern and
// dispatches on its form.
func (p *parser) consumeAnPlusB(s Scanner) *ast.AnPlusB {
	p.skipWhitespace(s)

	tok := s.Scan()
	switch tok := tok.(type) {
	case *token.Delim:
		if tok.Value != "+" {
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unexpected %q", tok.String()), Pos: tok.Pos})
			return nil
		}

		// The identifier must follow the "+" immediately; whitespace here
		// is a syntax error.
		ident, ok := s.Scan().(*token.Ident)
		if !ok {
			p.errors = append(p.errors, &Error{Message: "expected identifier after +", Pos: tok.Pos})
			return nil
		}
		return p.consumeAnPlusBIdent(s, ident, true)

	case *token.Number:
		// A lone integer is the B value.
		if tok.Type != "integer" {
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected integer, got %q", tok.Value), Pos: tok.Pos})
			return nil
		}
		return &ast.AnPlusB{A: 0, B: int(tok.Number)}

	case *token.Dimension:
		// The A value with its "n" (or "n-", "n-<digits>") unit.
		if tok.Type != "integer" {
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected integer, got %q", tok.Value), Pos: tok.Pos})
			return nil
		}
		return p.consumeAnPlusBSuffix(s, int(tok.Number), strings.ToLower(tok.Unit))

	case *token.Ident:
		return p.consumeAnPlusBIdent(s, tok, false)
	}

	p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unexpected %q", tok.String()), Pos: tok.Position()})
	return nil
}

// consumeAnPlusBIdent handles the identifier forms: "odd", "even", "n",
// "-n", and their "-" / "-<digits>" suffixed variants. havePlus marks an
// identifier that followed a "+" delim, which excludes "odd", "even", and
// the negative forms.
func (p *parser) consumeAnPlusBIdent(s Scanner, tok *token.Ident, havePlus bool) *ast.AnPlusB {
	name := strings.ToLower(tok.Value)

	if !havePlus {
		switch name {
		case "odd":
			return &ast.AnPlusB{A: 2, B: 1}
		case "even":
			return &ast.AnPlusB{A: 2, B: 0}
		}
		if strings.HasPrefix(name, "-") {
			return p.consumeAnPlusBSuffix(s, -1, name[1:])
		}
	}
	return p.consumeAnPlusBSuffix(s, 1, name)
}

// consumeAnPlusBSuffix dispatches on the identifier or unit remainder once
// the A value is known: "n" allows an optional signed B, "n-" requires a
// signless B negated, and "n-<digits>" carries B in the name itself.
func (p *parser) consumeAnPlusBSuffix(s Scanner, a int, name string) *ast.AnPlusB {
	switch {
	case name == "n":
		return p.consumeAnPlusBSignedB(s, a)
	case name == "n-":
		return p.consumeAnPlusBSignlessB(s, a, -1)
	case strings.HasPrefix(name, "n-"):
		b, ok := parseDigits(name[2:])
		if !ok {
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("invalid An+B pattern %q", name)})
			return nil
		}
		return &ast.AnPlusB{A: a, B: -b}
	}
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf("invalid An+B pattern %q", name)})
	return nil
}

// consumeAnPlusBSignedB reads the optional B value after "n": either
// nothing, a signed integer, or a "+"/"-" delim followed by a signless
// integer.
func (p *parser) consumeAnPlusBSignedB(s Scanner, a int) *ast.AnPlusB {
	p.skipWhitespace(s)

	tok := s.Scan()
	switch tok := tok.(type) {
	case *token.EOF:
		return &ast.AnPlusB{A: a, B: 0}
	case *token.Number:
		// The number carries its own sign: "n+3" and "n -3" land here.
		if tok.Type != "integer" || signless(tok) {
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected signed integer, got %q", tok.Value), Pos: tok.Pos})
			return nil
		}
		return &ast.AnPlusB{A: a, B: int(tok.Number)}
	case *token.Delim:
		// A detached sign: "n + 3", "n - 3".
		if tok.Value != "+" && tok.Value != "-" {
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unexpected %q", tok.String()), Pos: tok.Pos})
			return nil
		}
		sign := 1
		if tok.Value == "-" {
			sign = -1
		}
		return p.consumeAnPlusBSignlessB(s, a, sign)
	}

	p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unexpected %q", tok.String()), Pos: tok.Position()})
	return nil
}

// consumeAnPlusBSignlessB reads a required signless integer for B and
// applies sign to it.
func (p *parser) consumeAnPlusBSignlessB(s Scanner, a, sign int) *ast.AnPlusB {
	p.skipWhitespace(s)

	tok, ok := s.Scan().(*token.Number)
	if !ok || tok.Type != "integer" || !signless(tok) {
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected signless integer, got %q", s.Current().String()), Pos: s.Current().Position()})
		return nil
	}
	return &ast.AnPlusB{A: a, B: sign * int(tok.Number)}
}

// signless returns true if the number's representation begins with a digit
// rather than an explicit sign.
func signless(tok *token.Number) bool {
	return len(tok.Value) > 0 && tok.Value[0] >= '0' && tok.Value[0] <= '9'
}

// parseDigits parses a non-empty run of decimal digits.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}
