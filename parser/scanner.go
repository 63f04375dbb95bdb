package parser

import (
	"github.com/Perelandric/css/ast"
	"github.com/Perelandric/css/token"
)

// Scanner represents a type that can retrieve the next token.
// Implementations return EOF tokens indefinitely once exhausted.
type Scanner interface {
	// Current returns the most recently scanned token.
	Current() token.Token

	// Scan returns the next token.
	Scan() token.Token

	// Unscan makes the next Scan return the current token again.
	Unscan()
}

// ValueScanner is implemented by scanners whose input is a list of
// pre-parsed component values. CurrentValue returns the value underlying
// the current token when it is a pre-built block or function, nil otherwise.
type ValueScanner interface {
	Scanner
	CurrentValue() ast.ComponentValue
}

// currentValue returns the pre-built component value under the scanner's
// current token, if any.
func currentValue(s Scanner) ast.ComponentValue {
	if vs, ok := s.(ValueScanner); ok {
		return vs.CurrentValue()
	}
	return nil
}

// TokenScanner represents a scanner for a fixed list of tokens.
type TokenScanner struct {
	i      int // number of scanned tokens
	tokens []token.Token
	unscan bool
}

// NewTokenScanner returns a new instance of TokenScanner.
func NewTokenScanner(tokens []token.Token) *TokenScanner {
	return &TokenScanner{tokens: tokens}
}

// Current returns the current token.
func (s *TokenScanner) Current() token.Token {
	if s.i == 0 || s.i > len(s.tokens) {
		return &token.EOF{}
	}
	return s.tokens[s.i-1]
}

// Scan returns the next token.
func (s *TokenScanner) Scan() token.Token {
	if s.unscan {
		s.unscan = false
		return s.Current()
	}
	if s.i <= len(s.tokens) {
		s.i++
	}
	return s.Current()
}

// Unscan makes the next Scan return the current token again.
func (s *TokenScanner) Unscan() {
	s.unscan = true
}

// ComponentValueScanner replays a list of component values as a token
// stream. Preserved tokens come back as themselves; blocks and functions
// come back as their opening token and are surfaced whole through
// CurrentValue.
type ComponentValueScanner struct {
	i      int // number of scanned values
	values ast.ComponentValues
	unscan bool
}

// NewComponentValueScanner returns a new instance of ComponentValueScanner.
func NewComponentValueScanner(values ast.ComponentValues) *ComponentValueScanner {
	return &ComponentValueScanner{values: values}
}

// Current returns the current token.
func (s *ComponentValueScanner) Current() token.Token {
	switch v := s.current().(type) {
	case *ast.Token:
		return v.Token
	case *ast.SimpleBlock:
		if v.Token != nil {
			return v.Token
		}
		return &token.LBrace{Pos: v.Pos}
	case *ast.Function:
		return &token.Function{Value: v.Name, Pos: v.Pos}
	}
	return &token.EOF{}
}

// CurrentValue returns the current value if it is a pre-built block or
// function.
func (s *ComponentValueScanner) CurrentValue() ast.ComponentValue {
	switch v := s.current().(type) {
	case *ast.SimpleBlock:
		return v
	case *ast.Function:
		return v
	}
	return nil
}

// Scan returns the next token.
func (s *ComponentValueScanner) Scan() token.Token {
	if s.unscan {
		s.unscan = false
		return s.Current()
	}
	if s.i <= len(s.values) {
		s.i++
	}
	return s.Current()
}

// Unscan makes the next Scan return the current token again.
func (s *ComponentValueScanner) Unscan() {
	s.unscan = true
}

func (s *ComponentValueScanner) current() ast.ComponentValue {
	if s.i == 0 || s.i > len(s.values) {
		return nil
	}
	return s.values[s.i-1]
}
