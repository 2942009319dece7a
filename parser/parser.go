// Package parser implements a recursive-descent, precedence-climbing parser
// which turns a token stream into a Lox abstract syntax tree, per the
// grammar in spec.md §4.2.
package parser

import (
	"github.com/marcuscaisey/loxygen/ast"
	"github.com/marcuscaisey/loxygen/loxerr"
	"github.com/marcuscaisey/loxygen/token"
)

const maxArgs = 255

// parseError is the sentinel used to unwind to the nearest declaration
// boundary on a syntax error (spec.md §4.2, "Error handling"). It is not a
// Go error in the io/fmt sense: it only ever travels through a panic/recover
// pair internal to the parser.
type parseError struct{}

// Parser parses a sequence of tokens into an AST, accumulating syntax
// errors rather than stopping at the first one (spec.md §7).
type Parser struct {
	tokens []token.Token
	pos    int
	errs   loxerr.List
}

// New constructs a Parser over tokens, which must end with an EOF token
// (as produced by the scanner package).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens as a full program, parsing declarations until EOF.
// It returns the accumulated syntax errors, if any.
func Parse(tokens []token.Token) (*ast.Program, loxerr.List) {
	p := New(tokens)
	return p.ParseProgram()
}

// ParseProgram parses a whole program: declaration* EOF.
func (p *Parser) ParseProgram() (*ast.Program, loxerr.List) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return &ast.Program{Stmts: stmts}, p.errs
}

// Expression parses a single expression, exposed for the AST-printer
// diagnostic tool described in spec.md §1 and §4.2.
func (p *Parser) Expression() (ast.Expr, loxerr.List) {
	expr := p.expression()
	return expr, p.errs
}

// --- token stream helpers ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, format string, args ...any) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), format, args...))
}

func (p *Parser) errorAt(tok token.Token, format string, args ...any) parseError {
	p.errs = append(p.errs, loxerr.NewAtToken(tok, format, args...))
	return parseError{}
}

// synchronize advances the token stream until just past a statement
// boundary, per spec.md §4.2/§7.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// --- declarations & statements ---

func (p *Parser) declaration() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			stmt, ok = nil, false
		}
	}()

	switch {
	case p.match(token.Class):
		return p.classDecl(), true
	case p.match(token.Fun):
		return p.funDecl("function"), true
	case p.match(token.Var):
		return p.varDecl(), true
	default:
		return p.statement(), true
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Ident, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superName := p.consume(token.Ident, "Expect superclass name.")
		superclass = &ast.VariableExpr{Name: superName}
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionDecl
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.funDecl("method"))
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")

	return &ast.ClassDecl{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) funDecl(kind string) *ast.FunctionDecl {
	name := p.consume(token.Ident, "Expect %s name.", kind)
	p.consume(token.LeftParen, "Expect '(' after %s name.", kind)

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than %d parameters.", maxArgs)
			}
			params = append(params, p.consume(token.Ident, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	p.consume(token.LeftBrace, "Expect '{' before %s body.", kind)
	body := p.block()

	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Ident, "Expect variable name.")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initialiser: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{LeftBrace: p.previous(), Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

// forStmt desugars a for loop into a (possibly block-wrapped) WhileStmt, per
// spec.md §4.2.
func (p *Parser) forStmt() ast.Stmt {
	forTok := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initialiser
	case p.match(token.Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{LeftBrace: forTok, Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: increment}}}
	}

	if cond == nil {
		cond = &ast.LiteralExpr{Value: true, Tok: forTok}
	}
	body = &ast.WhileStmt{While: forTok, Cond: cond, Body: body}

	if init != nil {
		body = &ast.BlockStmt{LeftBrace: forTok, Stmts: []ast.Stmt{init, body}}
	}

	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	ifTok := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return &ast.IfStmt{If: ifTok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) printStmt() ast.Stmt {
	printTok := p.previous()
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Print: printTok, Expr: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	whileTok := p.previous()
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{While: whileTok, Cond: cond, Body: body}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}

// --- expressions ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as a normal expression and, if it's
// followed by '=', rewrites VariableExpr -> AssignExpr and GetExpr ->
// SetExpr. Any other left-hand side is a reported (non-throwing) error, per
// spec.md §4.2.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()
		return p.rewriteAssignTarget(expr, equals, value)
	}

	return expr
}

func (p *Parser) rewriteAssignTarget(expr ast.Expr, equals token.Token, value ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		return &ast.AssignExpr{Name: e.Name, Value: value}
	case *ast.GetExpr:
		return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value}
	default:
		p.errorAt(equals, "Invalid assignment target.")
		return expr
	}
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Ident, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than %d arguments.", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.LiteralExpr{Value: false, Tok: p.previous()}
	case p.match(token.True):
		return &ast.LiteralExpr{Value: true, Tok: p.previous()}
	case p.match(token.Nil):
		return &ast.LiteralExpr{Value: nil, Tok: p.previous()}
	case p.match(token.Number, token.String):
		tok := p.previous()
		return &ast.LiteralExpr{Value: tok.Literal, Tok: tok}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Ident, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(token.This):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(token.Ident):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.GroupingExpr{Inner: expr}
	default:
		panic(p.errorAt(p.peek(), "Expect expression."))
	}
}
