package parser

import (
	"fmt"
	"strings"

	"github.com/Perelandric/css/ast"
	"github.com/Perelandric/css/token"
)

// parser represents a CSS3 parser.
type parser struct {
	errors ErrorList
}

// ParseStylesheet parses an input stream into a stylesheet.
// A leading @charset rule is dropped; it was already honored during decoding.
func ParseStylesheet(s Scanner) (*ast.Stylesheet, error) {
	var p parser
	ss := &ast.Stylesheet{Rules: p.consumeRules(s, true)}
	if len(ss.Rules) > 0 {
		if r, ok := ss.Rules[0].(*ast.AtRule); ok && strings.EqualFold(r.Name, "charset") {
			ss.Rules = ss.Rules[1:]
		}
	}
	return ss, p.error()
}

// ParseRules parses a list of rules.
func ParseRules(s Scanner) (ast.Rules, error) {
	var p parser
	a := p.consumeRules(s, false)
	return a, p.error()
}

// ParseRule parses a single qualified rule or at-rule.
// Only whitespace may surround the rule.
func ParseRule(s Scanner) (ast.Rule, error) {
	var p parser

	// Skip over initial whitespace.
	p.skipWhitespace(s)

	tok := s.Scan()
	if _, ok := tok.(*token.EOF); ok {
		p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: tok.Position()})
		return nil, p.error()
	}

	var r ast.Rule
	if _, ok := tok.(*token.AtKeyword); ok {
		r = p.consumeAtRule(s)
	} else {
		s.Unscan()
		qr := p.consumeQualifiedRule(s)
		if qr == nil {
			return nil, p.error()
		}
		r = qr
	}

	// Skip over trailing whitespace.
	p.skipWhitespace(s)

	// If we're not at EOF then return a syntax error.
	if _, ok := s.Scan().(*token.EOF); !ok {
		s.Unscan()
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected EOF, got %q", s.Current().String()), Pos: s.Current().Position()})
		return nil, p.error()
	}

	return r, p.error()
}

// ParseDeclaration parses a single name/value declaration.
func ParseDeclaration(s Scanner) (*ast.Declaration, error) {
	var p parser

	// Skip over initial whitespace.
	p.skipWhitespace(s)

	// If the next token is not an ident then return an error.
	if _, ok := s.Scan().(*token.Ident); !ok {
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected ident, got %q", s.Current().String()), Pos: s.Current().Position()})
		return nil, p.error()
	}
	s.Unscan()

	// Consume a declaration. If nothing is returned, return syntax error.
	d := p.consumeDeclaration(s)
	if d == nil {
		return nil, p.error()
	}

	return d, p.error()
}

// ParseDeclarations parses a list of declarations and at-rules.
func ParseDeclarations(s Scanner) (ast.Declarations, error) {
	var p parser
	a := p.consumeDeclarations(s)
	return a, p.error()
}

// ParseComponentValue parses a single component value.
// Only whitespace may surround the value.
func ParseComponentValue(s Scanner) (ast.ComponentValue, error) {
	var p parser

	// Skip over initial whitespace.
	p.skipWhitespace(s)

	// If the next token is EOF then return an error.
	if _, ok := s.Scan().(*token.EOF); ok {
		p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: s.Current().Position()})
		return nil, p.error()
	}
	s.Unscan()

	// Consume component value.
	v := p.consumeComponentValue(s)

	// Skip over any trailing whitespace.
	p.skipWhitespace(s)

	// If we're not at EOF then return a syntax error.
	if _, ok := s.Scan().(*token.EOF); !ok {
		s.Unscan()
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected EOF, got %q", s.Current().String()), Pos: s.Current().Position()})
		return nil, p.error()
	}

	return v, p.error()
}

// ParseComponentValues parses a list of component values.
func ParseComponentValues(s Scanner) (ast.ComponentValues, error) {
	var p parser
	var a ast.ComponentValues

	// Repeatedly consume a component value until EOF.
	for {
		v := p.consumeComponentValue(s)

		// If the value is an EOF, then exit.
		if v, ok := v.(*ast.Token); ok {
			if _, ok := v.Token.(*token.EOF); ok {
				break
			}
		}

		// Otherwise append to list of component values.
		a = append(a, v)
	}

	return a, p.error()
}

// ParseCommaSeparatedComponentValues parses a list of component values,
// split into groups on top-level commas.
func ParseCommaSeparatedComponentValues(s Scanner) ([]ast.ComponentValues, error) {
	var p parser
	var groups []ast.ComponentValues
	var cur ast.ComponentValues

	for {
		v := p.consumeComponentValue(s)
		if v, ok := v.(*ast.Token); ok {
			switch v.Token.(type) {
			case *token.EOF:
				groups = append(groups, cur)
				return groups, p.error()
			case *token.Comma:
				groups = append(groups, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, v)
	}
}

// error returns the accumulated errors on the parser.
// Returns nil if there are no errors.
func (p *parser) error() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors
}

// consumeRules consumes a list of rules from a token stream. (§5.4.1)
func (p *parser) consumeRules(s Scanner, toplevel bool) ast.Rules {
	var a ast.Rules
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Whitespace:
			// nop
		case *token.EOF:
			return a
		case *token.CDO, *token.CDC:
			if !toplevel {
				s.Unscan()
				if r := p.consumeQualifiedRule(s); r != nil {
					a = append(a, r)
				}
			}
		case *token.AtKeyword:
			a = append(a, p.consumeAtRule(s))
		default:
			s.Unscan()
			if r := p.consumeQualifiedRule(s); r != nil {
				a = append(a, r)
			}
		}
	}
}

// consumeAtRule consumes a single at-rule. (§5.4.2)
// The current token must be the at-keyword.
func (p *parser) consumeAtRule(s Scanner) *ast.AtRule {
	atkeyword := s.Current().(*token.AtKeyword)
	r := &ast.AtRule{Name: atkeyword.Value, Pos: atkeyword.Pos}

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok := tok.(type) {
		case *token.Semicolon:
			return r
		case *token.EOF:
			p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: tok.Pos})
			return r
		case *token.LBrace:
			// A pre-built {}-block from a component value list is adopted
			// as-is; a live {-token opens a simple block.
			if b, ok := currentValue(s).(*ast.SimpleBlock); ok {
				r.Block = b
			} else {
				r.Block = p.consumeSimpleBlock(s)
			}
			return r
		default:
			s.Unscan()
			r.Prelude = append(r.Prelude, p.consumeComponentValue(s))
		}
	}
}

// consumeQualifiedRule consumes a single qualified rule. (§5.4.3)
// Returns nil if the rule's block never arrives.
func (p *parser) consumeQualifiedRule(s Scanner) *ast.QualifiedRule {
	r := &ast.QualifiedRule{Pos: s.Current().Position()}

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok := tok.(type) {
		case *token.EOF:
			p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: tok.Pos})
			return nil
		case *token.LBrace:
			if b, ok := currentValue(s).(*ast.SimpleBlock); ok {
				r.Block = b
			} else {
				r.Block = p.consumeSimpleBlock(s)
			}
			return r
		default:
			s.Unscan()
			r.Prelude = append(r.Prelude, p.consumeComponentValue(s))
		}
	}
}

// consumeDeclarations consumes a list of declarations and at-rules. (§5.4.4)
func (p *parser) consumeDeclarations(s Scanner) ast.Declarations {
	var a ast.Declarations

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok := tok.(type) {
		case *token.Whitespace, *token.Semicolon:
			// nop
		case *token.EOF:
			return a
		case *token.AtKeyword:
			a = append(a, p.consumeAtRule(s))
		case *token.Ident:
			// Gather the component values up to the next semicolon or EOF,
			// then consume a declaration from the temporary list.
			s.Unscan()
			values := p.consumeDeclarationValues(s)
			if d := p.consumeDeclaration(NewComponentValueScanner(values)); d != nil {
				a = append(a, d)
			}
		default:
			// Any other token is a parse error.
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unexpected %s", tok.String()), Pos: tok.Position()})

			// Repeatedly consume a component value until semicolon or EOF.
			p.skipComponentValues(s)
		}
	}
}

// consumeDeclaration consumes a single declaration. (§5.4.5)
// The next token must be an ident.
func (p *parser) consumeDeclaration(s Scanner) *ast.Declaration {
	ident := s.Scan().(*token.Ident)
	d := &ast.Declaration{Name: ident.Value, Pos: ident.Pos}

	// Skip over whitespace.
	p.skipWhitespace(s)

	// The next token must be a colon.
	if _, ok := s.Scan().(*token.Colon); !ok {
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected colon, got %q", s.Current().String()), Pos: s.Current().Position()})
		return nil
	}

	// Consume the declaration value until EOF.
	for {
		tok := s.Scan()
		if _, ok := tok.(*token.EOF); ok {
			break
		}
		s.Unscan()
		d.Values = append(d.Values, p.consumeComponentValue(s))
	}

	// Check the last two non-whitespace values for "!important" and strip
	// trailing whitespace.
	d.Values, d.Important = cleanImportantFlag(d.Values)

	return d
}

// cleanImportantFlag checks if the last two non-whitespace values are a
// case-insensitive "!important". If so it removes them and returns the
// "important" flag set to true. Trailing whitespace is always removed.
func cleanImportantFlag(values ast.ComponentValues) (ast.ComponentValues, bool) {
	var important bool

	i := lastNonWhitespace(values, len(values)-1)
	if i > 0 && isIdent(values[i], "important") {
		if j := lastNonWhitespace(values, i-1); j >= 0 && isDelim(values[j], "!") {
			values = values[:j]
			important = true
		}
	}

	if end := lastNonWhitespace(values, len(values)-1); end < len(values)-1 {
		values = values[:end+1]
	}
	return values, important
}

// lastNonWhitespace returns the index of the last non-whitespace value at
// or before i, or -1.
func lastNonWhitespace(values ast.ComponentValues, i int) int {
	for ; i >= 0; i-- {
		if tok, ok := values[i].(*ast.Token); ok {
			if _, ok := tok.Token.(*token.Whitespace); ok {
				continue
			}
		}
		return i
	}
	return -1
}

// isIdent returns true if v is an ident token matching name
// case-insensitively.
func isIdent(v ast.ComponentValue, name string) bool {
	if tok, ok := v.(*ast.Token); ok {
		if ident, ok := tok.Token.(*token.Ident); ok {
			return strings.EqualFold(ident.Value, name)
		}
	}
	return false
}

// isDelim returns true if v is a delim token with the given value.
func isDelim(v ast.ComponentValue, value string) bool {
	if tok, ok := v.(*ast.Token); ok {
		if delim, ok := tok.Token.(*token.Delim); ok {
			return delim.Value == value
		}
	}
	return false
}

// consumeComponentValue consumes a single component value. (§5.4.6)
func (p *parser) consumeComponentValue(s Scanner) ast.ComponentValue {
	tok := s.Scan()

	// A scanner replaying component values surfaces pre-built blocks and
	// functions directly.
	if v := currentValue(s); v != nil {
		return v
	}

	switch tok.(type) {
	case *token.LBrace, *token.LBrack, *token.LParen:
		return p.consumeSimpleBlock(s)
	case *token.Function:
		return p.consumeFunction(s)
	default:
		return &ast.Token{Token: tok}
	}
}

// consumeSimpleBlock consumes a simple block. (§5.4.7)
// The current token must be the opening token.
func (p *parser) consumeSimpleBlock(s Scanner) *ast.SimpleBlock {
	b := &ast.SimpleBlock{Token: s.Current(), Pos: s.Current().Position()}

	for {
		tok := s.Scan()

		// If this token is EOF or the mirror of the starting token then return.
		switch tok := tok.(type) {
		case *token.EOF:
			p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: tok.Pos})
			return b
		case *token.RBrace:
			if _, ok := b.Token.(*token.LBrace); ok {
				return b
			}
		case *token.RBrack:
			if _, ok := b.Token.(*token.LBrack); ok {
				return b
			}
		case *token.RParen:
			if _, ok := b.Token.(*token.LParen); ok {
				return b
			}
		}

		// Otherwise consume a component value.
		s.Unscan()
		b.Values = append(b.Values, p.consumeComponentValue(s))
	}
}

// consumeFunction consumes a function. (§5.4.8)
// The current token must be the function token.
func (p *parser) consumeFunction(s Scanner) *ast.Function {
	fn := s.Current().(*token.Function)
	f := &ast.Function{Name: fn.Value, Pos: fn.Pos}

	for {
		tok := s.Scan()

		// If this token is EOF or a right parenthesis then return.
		switch tok := tok.(type) {
		case *token.EOF:
			p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: tok.Pos})
			return f
		case *token.RParen:
			return f
		}

		// Otherwise consume a component value.
		s.Unscan()
		f.Values = append(f.Values, p.consumeComponentValue(s))
	}
}

// consumeDeclarationValues collects contiguous component values up to, but
// not including, the next top-level semicolon or EOF.
func (p *parser) consumeDeclarationValues(s Scanner) ast.ComponentValues {
	var a ast.ComponentValues
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Semicolon, *token.EOF:
			s.Unscan()
			return a
		}
		s.Unscan()
		a = append(a, p.consumeComponentValue(s))
	}
}

// skipComponentValues consumes all component values until a semicolon or EOF.
func (p *parser) skipComponentValues(s Scanner) {
	for {
		v := p.consumeComponentValue(s)
		if tok, ok := v.(*ast.Token); ok {
			switch tok.Token.(type) {
			case *token.Semicolon, *token.EOF:
				return
			}
		}
	}
}

// skipWhitespace skips over all contiguous whitespace tokens.
func (p *parser) skipWhitespace(s Scanner) {
	for {
		if _, ok := s.Scan().(*token.Whitespace); !ok {
			s.Unscan()
			return
		}
	}
}

// Error represents a syntax error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// ErrorList represents a list of syntax errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}
