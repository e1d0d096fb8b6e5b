// Package parser implements a Pratt parser that turns a Luma token stream
// into the ast package's tree. Lexing/parsing are external collaborators
// to the semantic core (spec'd only by the AST shape they must hand off);
// this package is the concrete implementation that exercises that contract
// end to end.
package parser

import (
	"fmt"

	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/lexer"
	"github.com/cwbudde/luma/internal/token"
)

// ParseError is a single parser-level diagnostic.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e ParseError) String() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = (right-assoc)
	NULLCOALESCE // ?? (right-assoc)
	LOGICOR
	LOGICAND
	EQUALITY
	RELATIONAL
	BITOR
	BITXOR
	BITAND
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX        // as, ., ?., [], ()
	NULLABLESUFFIX // ? (type-only postfix, binds tighter than call/member)
)

var precedences = map[token.Type]int{
	token.ASSIGN:            ASSIGN,
	token.QUESTION_QUESTION: NULLCOALESCE,
	token.OR:                LOGICOR,
	token.AND:               LOGICAND,
	token.EQ:                EQUALITY,
	token.NEQ:               EQUALITY,
	token.LT:                RELATIONAL,
	token.LTE:               RELATIONAL,
	token.GT:                RELATIONAL,
	token.GTE:               RELATIONAL,
	token.PIPE:              BITOR,
	token.CARET:             BITXOR,
	token.AMP:               BITAND,
	token.SHL:               SHIFT,
	token.SHR:               SHIFT,
	token.PLUS:              ADDITIVE,
	token.MINUS:             ADDITIVE,
	token.STAR:              MULTIPLICATIVE,
	token.SLASH:             MULTIPLICATIVE,
	token.PERCENT:           MULTIPLICATIVE,
	token.AS:                POSTFIX,
	token.DOT:               POSTFIX,
	token.QUESTION_DOT:      POSTFIX,
	token.LBRACKET:          POSTFIX,
	token.LPAREN:            POSTFIX,
	token.QUESTION:          NULLABLESUFFIX,
}

// rightAssoc holds the infix operators that bind right-to-left.
var rightAssoc = map[token.Type]bool{
	token.ASSIGN:            true,
	token.QUESTION_QUESTION: true,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser is a single-use recursive-descent/Pratt parser over one Lexer.
type Parser struct {
	l      *lexer.Lexer
	errors []ParseError

	cur  token.Token
	peek token.Token

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.INT:       p.parseIntLiteral,
		token.FLOAT:     p.parseFloatLiteral,
		token.STRING:    p.parseStringLiteral,
		token.CHAR:      p.parseCharLiteral,
		token.TRUE:      p.parseBoolLiteral,
		token.FALSE:     p.parseBoolLiteral,
		token.NULL:      p.parseNullLiteral,
		token.THIS:      p.parseThisExpr,
		token.LPAREN:    p.parseGroupedExpr,
		token.LBRACKET:  p.parseListExpr,
		token.MINUS:     p.parseUnaryExpr,
		token.BANG:      p.parseUnaryExpr,
		token.PLUS:      p.parseUnaryExpr,
		token.BOOL:      p.parsePrimTypeExpr,
		token.INTK:      p.parsePrimTypeExpr,
		token.FLOATK:    p.parsePrimTypeExpr,
		token.STRINGK:   p.parsePrimTypeExpr,
		token.VOID:      p.parsePrimTypeExpr,
		token.LIST:      p.parseParamExpr,
		token.FUNCTIONK: p.parseParamExpr,
	}
	p.infixFns = map[token.Type]infixParseFn{
		token.ASSIGN:            p.parseBinaryExpr,
		token.QUESTION_QUESTION: p.parseBinaryExpr,
		token.OR:                p.parseBinaryExpr,
		token.AND:                p.parseBinaryExpr,
		token.EQ:                p.parseBinaryExpr,
		token.NEQ:               p.parseBinaryExpr,
		token.LT:                p.parseBinaryExpr,
		token.LTE:               p.parseBinaryExpr,
		token.GT:                p.parseBinaryExpr,
		token.GTE:               p.parseBinaryExpr,
		token.PIPE:              p.parseBinaryExpr,
		token.CARET:             p.parseBinaryExpr,
		token.AMP:               p.parseBinaryExpr,
		token.SHL:               p.parseBinaryExpr,
		token.SHR:               p.parseBinaryExpr,
		token.PLUS:              p.parseBinaryExpr,
		token.MINUS:             p.parseBinaryExpr,
		token.STAR:              p.parseBinaryExpr,
		token.SLASH:             p.parseBinaryExpr,
		token.PERCENT:           p.parseBinaryExpr,
		token.AS:                p.parseCastExpr,
		token.DOT:               p.parseMemberExpr,
		token.QUESTION_DOT:      p.parseMemberExpr,
		token.LBRACKET:          p.parseIndexExpr,
		token.LPAREN:            p.parseCallExpr,
		token.QUESTION:          p.parseNullableTypeExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parser-level diagnostics accumulated so far.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Pos: p.cur.Pos})
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(tt token.Type) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt token.Type) bool { return p.peek.Type == tt }

func (p *Parser) expect(tt token.Type) bool {
	if p.peekIs(tt) {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %s", tt, p.peek.Type)
	return false
}

func peekPrecedence(p *Parser) int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseModule parses the entire token stream as a single translation unit.
// The lexer's own errors are appended to Errors() once the stream is read.
func (p *Parser) ParseModule() *ast.Module {
	body := &ast.Block{TokPos: p.cur.Pos}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body.Statements = append(body.Statements, stmt)
		}
		p.nextToken()
	}
	for _, le := range p.l.Errors() {
		p.errors = append(p.errors, ParseError{Message: le.Message, Pos: le.Pos})
	}
	return &ast.Module{Body: body}
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{TokPos: p.cur.Pos}
	if !p.curIs(token.LBRACE) {
		p.addError("expected '{', got %s", p.cur.Type)
		return block
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	if !p.curIs(token.RBRACE) {
		p.addError("expected '}', got %s", p.cur.Type)
	}
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.EXTERNAL:
		return p.parseExternal()
	case token.CLASS:
		return p.parseClassDef(false)
	case token.STATIC:
		p.nextToken()
		return p.parseStaticMember()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.VAR:
		return p.parseInferredVar()
	default:
		return p.parseTypedDeclOrExprStmt()
	}
}

func (p *Parser) parseStaticMember() ast.Stmt {
	if p.curIs(token.CLASS) {
		cd := p.parseClassDef(true)
		return cd
	}
	stmt := p.parseTypedDeclOrExprStmt()
	switch n := stmt.(type) {
	case *ast.FuncDef:
		n.IsStatic = true
	case *ast.VarDef:
		n.IsStatic = true
	}
	return stmt
}

func (p *Parser) parseExternal() ast.Stmt {
	pos := p.cur.Pos
	p.nextToken()
	body := p.parseBlock()
	return &ast.ExternalStmt{TokPos: pos, Body: body}
}

func (p *Parser) parseClassDef(isStatic bool) ast.Stmt {
	pos := p.cur.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.cur.Literal
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.ClassDef{TokPos: pos, Name: name, Body: body}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur.Pos
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.LBRACE) {
		return nil
	}
	then := p.parseBlock()
	stmt := &ast.IfStmt{TokPos: pos, Cond: cond, Then: then}
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			elseIf := p.parseIf()
			stmt.Else = &ast.Block{TokPos: p.cur.Pos, Statements: []ast.Stmt{elseIf}}
		} else {
			if !p.expect(token.LBRACE) {
				return stmt
			}
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur.Pos
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.WhileStmt{TokPos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.cur.Pos
	stmt := &ast.ReturnStmt{TokPos: pos}
	if canStartExpression(p.peek.Type) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseInferredVar() ast.Stmt {
	pos := p.cur.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.cur.Literal
	vd := &ast.VarDef{TokPos: pos, Name: name, IsInferred: true}
	if p.expect(token.ASSIGN) {
		p.nextToken()
		vd.Value = p.parseExpression(LOWEST)
	}
	return vd
}

// parseTypedDeclOrExprStmt resolves the "type-expression IDENT" vs.
// "expression statement" ambiguity. There are no statement terminators, so
// a greedy full-expression parse is wrong: "print(1) print(1.0)" is two
// call-expression statements back to back, and a greedy parse of the first
// call would see the second statement's leading IDENT and mistake the call
// just parsed for a type expression.
//
// Instead this parses only a restricted type-expression (stopping before
// any POSTFIX operator — call, member access, indexing, cast — but still
// consuming a chained nullable '?' suffix, which sits above POSTFIX for
// exactly this reason). If an identifier follows that restricted parse,
// the restricted expression was in type position and this commits to a
// variable or function definition. Otherwise the restricted expression is
// only the prefix of a larger expression statement, and parsing resumes
// from where it stopped.
func (p *Parser) parseTypedDeclOrExprStmt() ast.Stmt {
	pos := p.cur.Pos
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.addError("unexpected token %s in expression", p.cur.Type)
		return nil
	}
	typeExpr := p.parseExpressionFrom(prefix(), POSTFIX)
	if p.peekIs(token.IDENT) {
		p.nextToken()
		name := p.cur.Literal
		if p.peekIs(token.LPAREN) {
			return p.parseFuncDefTail(pos, typeExpr, name)
		}
		vd := &ast.VarDef{TokPos: pos, Name: name, TypeExpr: typeExpr}
		if p.peekIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			vd.Value = p.parseExpression(LOWEST)
		}
		return vd
	}
	expr := p.parseExpressionFrom(typeExpr, LOWEST)
	return &ast.ExpressionStmt{TokPos: pos, X: expr}
}

func (p *Parser) parseFuncDefTail(pos token.Position, retType ast.Expr, name string) ast.Stmt {
	p.nextToken() // consume '('
	fd := &ast.FuncDef{TokPos: pos, Name: name, ReturnType: retType}
	if p.peekIs(token.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		fd.Params = append(fd.Params, p.parseParam())
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			fd.Params = append(fd.Params, p.parseParam())
		}
		if !p.expect(token.RPAREN) {
			return fd
		}
	}
	if p.peekIs(token.LBRACE) {
		p.nextToken()
		fd.Body = p.parseBlock()
	}
	return fd
}

func (p *Parser) parseParam() *ast.Param {
	pos := p.cur.Pos
	typeExpr := p.parseExpression(LOWEST)
	if !p.expect(token.IDENT) {
		return &ast.Param{TokPos: pos, TypeExpr: typeExpr}
	}
	return &ast.Param{TokPos: pos, TypeExpr: typeExpr, Name: p.cur.Literal}
}

func canStartExpression(tt token.Type) bool {
	switch tt {
	case token.RBRACE, token.EOF:
		return false
	default:
		return true
	}
}

// parseExpression is the Pratt-parser entry point.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.addError("unexpected token %s in expression", p.cur.Type)
		return nil
	}
	return p.parseExpressionFrom(prefix(), precedence)
}

// parseExpressionFrom continues the Pratt infix loop starting from an
// already-parsed left operand. It backs both the ordinary expression
// parser and the type-expression/expression-statement disambiguation in
// parseTypedDeclOrExprStmt, which needs to parse a prefix, decide what it
// was, and then optionally keep going from the same point.
func (p *Parser) parseExpressionFrom(left ast.Expr, precedence int) ast.Expr {
	for !p.peekIs(token.EOF) && precedence < peekPrecedence(p) {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	return &ast.Identifier{TokPos: p.cur.Pos, Name: p.cur.Literal}
}

func (p *Parser) parseThisExpr() ast.Expr {
	return &ast.ThisExpr{TokPos: p.cur.Pos}
}

func (p *Parser) parseNullLiteral() ast.Expr {
	return &ast.NullLiteral{TokPos: p.cur.Pos}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	return &ast.BoolLiteral{TokPos: p.cur.Pos, Value: p.cur.Type == token.TRUE}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseListExpr() ast.Expr {
	pos := p.cur.Pos
	list := &ast.ListExpr{TokPos: pos}
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list.Items = append(list.Items, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list.Items = append(list.Items, p.parseExpression(LOWEST))
	}
	p.expect(token.RBRACKET)
	return list
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	pos := p.cur.Pos
	op := p.cur.Type
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpr{TokPos: pos, Op: op, Operand: operand}
}

func (p *Parser) parsePrimTypeExpr() ast.Expr {
	return &ast.PrimTypeExpr{TokPos: p.cur.Pos, Prim: p.cur.Type}
}

func (p *Parser) parseParamExpr() ast.Expr {
	pos := p.cur.Pos
	base := p.cur.Literal
	if base == "" {
		base = p.cur.Type.String()
	}
	pe := &ast.ParamExpr{TokPos: pos, Base: base}
	if !p.expect(token.LT) {
		return pe
	}
	p.nextToken()
	pe.TypeParams = append(pe.TypeParams, p.parseExpression(UNARY))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		pe.TypeParams = append(pe.TypeParams, p.parseExpression(UNARY))
	}
	if !p.expect(token.GT) {
		return pe
	}
	return pe
}

func (p *Parser) parseNullableTypeExpr(left ast.Expr) ast.Expr {
	return &ast.NullableTypeExpr{TokPos: p.cur.Pos, Inner: left}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	op := p.cur.Type
	prec := precedences[op]
	p.nextToken()
	nextPrec := prec
	if rightAssoc[op] {
		nextPrec--
	}
	right := p.parseExpression(nextPrec)
	return &ast.BinaryExpr{TokPos: pos, Op: op, Left: left, Right: right}
}

func (p *Parser) parseCastExpr(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.nextToken()
	target := p.parseExpression(UNARY)
	return &ast.CastExpr{TokPos: pos, Value: left, TargetType: target}
}

func (p *Parser) parseMemberExpr(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	safe := p.cur.Type == token.QUESTION_DOT
	if !p.expect(token.IDENT) {
		return &ast.MemberExpr{TokPos: pos, Object: left, Safe: safe}
	}
	return &ast.MemberExpr{TokPos: pos, Object: left, Name: p.cur.Literal, Safe: safe}
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.nextToken()
	index := p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return &ast.IndexExpr{TokPos: pos, Object: left, Index: index}
}

func (p *Parser) parseCallExpr(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	call := &ast.CallExpr{TokPos: pos, Callee: left}
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return call
	}
	p.nextToken()
	call.Args = append(call.Args, p.parseExpression(ASSIGN))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		call.Args = append(call.Args, p.parseExpression(ASSIGN))
	}
	p.expect(token.RPAREN)
	return call
}

func (p *Parser) parseIntLiteral() ast.Expr {
	pos := p.cur.Pos
	var v int64
	for _, ch := range p.cur.Literal {
		v = v*10 + int64(ch-'0')
	}
	return &ast.IntLiteral{TokPos: pos, Value: v}
}

func (p *Parser) parseCharLiteral() ast.Expr {
	pos := p.cur.Pos
	var v int64
	for _, ch := range p.cur.Literal {
		v = v*10 + int64(ch-'0')
	}
	return &ast.IntLiteral{TokPos: pos, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	pos := p.cur.Pos
	var v float64
	fmt.Sscanf(p.cur.Literal, "%g", &v)
	return &ast.FloatLiteral{TokPos: pos, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return &ast.StringLiteral{TokPos: p.cur.Pos, Value: p.cur.Literal}
}
