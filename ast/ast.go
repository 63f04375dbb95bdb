package ast

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Perelandric/css/token"
)

// Node represents a node in the CSS3 abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *Stylesheet) node()     {}
func (_ Rules) node()           {}
func (_ *AtRule) node()         {}
func (_ *QualifiedRule) node()  {}
func (_ Declarations) node()    {}
func (_ *Declaration) node()    {}
func (_ ComponentValues) node() {}
func (_ *SimpleBlock) node()    {}
func (_ *Function) node()       {}
func (_ *Token) node()          {}

// Stylesheet represents a top-level CSS3 stylesheet.
type Stylesheet struct {
	Rules Rules
}

func (s *Stylesheet) String() string {
	var buf bytes.Buffer
	for _, r := range s.Rules {
		buf.WriteString(r.String())
		buf.WriteString("\n")
	}
	return buf.String()
}

// Rules represents a list of rules.
type Rules []Rule

func (a Rules) String() string {
	var buf bytes.Buffer
	for i, r := range a {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(r.String())
	}
	return buf.String()
}

// Rule represents a qualified rule or at-rule.
type Rule interface {
	Node
	rule()
}

func (_ *AtRule) rule()        {}
func (_ *QualifiedRule) rule() {}

// AtRule represents a rule starting with an "@" symbol.
// Block is nil when the rule was terminated by a semicolon.
type AtRule struct {
	Name    string
	Prelude ComponentValues
	Block   *SimpleBlock
	Pos     token.Pos
}

func (r *AtRule) String() string {
	var buf bytes.Buffer
	buf.WriteString("@" + r.Name)
	if len(r.Prelude) > 0 {
		buf.WriteString(r.Prelude.String())
	}
	if r.Block != nil {
		buf.WriteString(r.Block.String())
	} else {
		buf.WriteString(";")
	}
	return buf.String()
}

// QualifiedRule represents an unnamed rule that includes a prelude and block.
type QualifiedRule struct {
	Prelude ComponentValues
	Block   *SimpleBlock
	Pos     token.Pos
}

func (r *QualifiedRule) String() string {
	return r.Prelude.String() + r.Block.String()
}

// Declarations represents a list of declarations and at-rules.
type Declarations []Node

func (a Declarations) String() string {
	var buf bytes.Buffer
	for i, d := range a {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(d.String())
		if _, ok := d.(*Declaration); ok {
			buf.WriteString(";")
		}
	}
	return buf.String()
}

// Declaration represents a name/value pair.
// Trailing whitespace and any "!important" marker are stripped from Values;
// the marker sets Important instead.
type Declaration struct {
	Name      string
	Values    ComponentValues
	Important bool
	Pos       token.Pos
}

func (d *Declaration) String() string {
	s := d.Name + ":" + d.Values.String()
	if d.Important {
		s += " !important"
	}
	return s
}

// ComponentValues represents a list of component values.
type ComponentValues []ComponentValue

func (a ComponentValues) String() string {
	var buf bytes.Buffer
	for _, v := range a {
		buf.WriteString(v.String())
	}
	return buf.String()
}

// ComponentValue represents a component value.
type ComponentValue interface {
	Node
	componentValue()
}

func (_ *SimpleBlock) componentValue() {}
func (_ *Function) componentValue()    {}
func (_ *Token) componentValue()       {}

// SimpleBlock represents a {-block, [-block, or (-block.
// Token is the opening token.
type SimpleBlock struct {
	Token  token.Token
	Values ComponentValues
	Pos    token.Pos
}

func (b *SimpleBlock) String() string {
	switch b.Token.(type) {
	case *token.LBrace:
		return "{" + b.Values.String() + "}"
	case *token.LBrack:
		return "[" + b.Values.String() + "]"
	case *token.LParen:
		return "(" + b.Values.String() + ")"
	}
	return "<>"
}

// Function represents a function call with a list of arguments.
type Function struct {
	Name   string
	Values ComponentValues
	Pos    token.Pos
}

func (f *Function) String() string {
	return fmt.Sprintf("%s(%s)", f.Name, f.Values.String())
}

// Token represents a single preserved token in the AST.
type Token struct {
	token.Token
}

func (t *Token) String() string {
	return t.Token.String()
}

// AnPlusB represents the a and b values of the An+B microsyntax used by
// :nth-* selector pseudo-classes.
type AnPlusB struct {
	A int
	B int
}

func (v *AnPlusB) String() string {
	s := strconv.Itoa(v.A) + "n"
	if v.B >= 0 {
		s += "+"
	}
	return s + strconv.Itoa(v.B)
}

// Position returns the position of the first code point of a node.
// For empty lists it returns the zero position.
func Position(n Node) token.Pos {
	switch n := n.(type) {
	case *Stylesheet:
		return Position(n.Rules)
	case Rules:
		if len(n) > 0 {
			return Position(n[0])
		}
	case *AtRule:
		return n.Pos
	case *QualifiedRule:
		return n.Pos
	case Declarations:
		if len(n) > 0 {
			return Position(n[0])
		}
	case *Declaration:
		return n.Pos
	case ComponentValues:
		if len(n) > 0 {
			return Position(n[0])
		}
	case *SimpleBlock:
		return n.Pos
	case *Function:
		return n.Pos
	case *Token:
		return n.Token.Position()
	}
	return token.Pos{}
}
