// Package token defines Token, which represents a lexical token of the Lox
// programming language, and Kind, the set of token kinds that the scanner and
// parser agree on.
package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -linecomment

// Kind is the kind of a lexical token of Lox source code.
type Kind uint8

// The list of all token kinds.
const (
	Illegal Kind = iota // illegal token

	// Single-character tokens.
	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	Comma      // ,
	Dot        // .
	Minus      // -
	Plus       // +
	Semicolon  // ;
	Slash      // /
	Star       // *

	// One or two character tokens.
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=

	// Literals.
	Ident  // identifier
	String // string
	Number // number

	// Keywords.
	keywordsStart
	And    // and
	Class  // class
	Else   // else
	False  // false
	Fun    // fun
	For    // for
	If     // if
	Nil    // nil
	Or     // or
	Print  // print
	Return // return
	Super  // super
	This   // this
	True   // true
	Var    // var
	While  // while
	keywordsEnd

	EOF // EOF
)

var keywordsByIdent = func() map[string]Kind {
	m := make(map[string]Kind, keywordsEnd-keywordsStart-1)
	for k := keywordsStart + 1; k < keywordsEnd; k++ {
		m[k.String()] = k
	}
	return m
}()

// LookupIdent returns the keyword Kind associated with ident if it names a
// keyword, and Ident otherwise.
func LookupIdent(ident string) Kind {
	if kind, ok := keywordsByIdent[ident]; ok {
		return kind
	}
	return Ident
}

// Token is a lexical token of Lox source code.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any // float64 for Number, string for String, nil otherwise
	Line    int
}

// String returns a debug representation of the token, used in test failure
// output.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%q, %v)", t.Kind, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}
