// Package scanner implements lexical scanning of Lox source code into a flat
// sequence of tokens.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/marcuscaisey/loxygen/token"
)

// Error is a single scanning error, tied to the source line it occurred on.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

var keywordless = map[byte]token.Kind{
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
	'.': token.Dot,
	'-': token.Minus,
	'+': token.Plus,
	';': token.Semicolon,
	'*': token.Star,
}

// Scanner scans Lox source code into a sequence of tokens.
type Scanner struct {
	src    string
	start  int // start of the lexeme currently being scanned
	pos    int // current position in src
	line   int
	tokens []token.Token
	errs   []*Error
}

// New constructs a Scanner over the given source text.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan scans the whole source and returns the resulting tokens, terminated
// by exactly one EOF token, along with any errors encountered. Scanning
// never stops early: an unexpected character is reported and scanning
// continues from the next character, per spec.md §4.1.
func Scan(src string) ([]token.Token, []*Error) {
	s := New(src)
	return s.ScanTokens()
}

// ScanTokens runs the scanner to completion.
func (s *Scanner) ScanTokens() ([]token.Token, []*Error) {
	for !s.atEnd() {
		s.start = s.pos
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: s.line})
	return s.tokens, s.errs
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) peekNext() byte {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

func (s *Scanner) match(c byte) bool {
	if s.atEnd() || s.src[s.pos] != c {
		return false
	}
	s.pos++
	return true
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addTokenLiteral(kind, nil)
}

func (s *Scanner) addTokenLiteral(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  s.src[s.start:s.pos],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) errorf(line int, format string, args ...any) {
	s.errs = append(s.errs, &Error{Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (s *Scanner) scanToken() {
	c := s.advance()

	if kind, ok := keywordless[c]; ok {
		s.addToken(kind)
		return
	}

	switch c {
	case ' ', '\r', '\t':
		// Ignore whitespace.
	case '\n':
		s.line++
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case '!':
		if s.match('=') {
			s.addToken(token.BangEqual)
		} else {
			s.addToken(token.Bang)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EqualEqual)
		} else {
			s.addToken(token.Equal)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LessEqual)
		} else {
			s.addToken(token.Less)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GreaterEqual)
		} else {
			s.addToken(token.Greater)
		}
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdent()
		default:
			s.errorf(s.line, "Unexpected character.")
		}
	}
}

func (s *Scanner) scanString() {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.errorf(startLine, "Unterminated string.")
		return
	}

	s.advance() // the closing '"'

	value := s.src[s.start+1 : s.pos-1]
	s.tokens = append(s.tokens, token.Token{
		Kind:    token.String,
		Lexeme:  s.src[s.start:s.pos],
		Literal: value,
		Line:    startLine,
	})
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lexeme := s.src[s.start:s.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		// Unreachable: the lexeme is always a valid float literal by construction.
		panic(err)
	}
	s.addTokenLiteral(token.Number, value)
}

func (s *Scanner) scanIdent() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := s.src[s.start:s.pos]
	s.addToken(token.LookupIdent(lexeme))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
