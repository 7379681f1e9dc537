// Package parser implements the recursive-descent parser that turns a token
// stream into an *ast.Program. It is grounded on the teacher's asm.parser in
// shape (a struct wrapping the token stream plus an error helper) but
// produces a single terminal ParseError rather than an accumulated list —
// the language's error surface is "parser raises a parse error", singular.
package parser

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/ast"
	"github.com/Yemiez/ysen/lexer"
	"github.com/Yemiez/ysen/token"
)

// ParseError is the recoverable error surfaced to the host: a message plus
// the offending token.
type ParseError struct {
	Msg   string
	Token token.Token
}

func (e *ParseError) Error() string {
	return e.Msg + ": " + e.Token.String()
}

// Parser consumes a non-trivia token stream and builds an AST.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over an already-lexed token stream. Callers normally
// use Parse, which lexes with the Ignore/Ignore trivia policies the grammar
// assumes.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse lexes src with whitespace and comments ignored, then parses the
// resulting token stream into a Program.
func Parse(src string) (*ast.Program, error) {
	toks := lexer.New(src, lexer.Ignore, lexer.Ignore).Lex()
	return New(toks).ParseProgram()
}

func (p *Parser) eof() bool { return p.pos >= len(p.toks) }

func (p *Parser) cur() token.Token {
	if p.eof() {
		if len(p.toks) > 0 {
			last := p.toks[len(p.toks)-1]
			return token.Token{Range: token.Range{Start: last.Range.End, End: last.Range.End}, Kind: token.None}
		}
		return token.Token{Kind: token.None}
	}
	return p.toks[p.pos]
}

func (p *Parser) kind() token.Kind { return p.cur().Kind }

func (p *Parser) peekKind(offset int) token.Kind {
	i := p.pos + offset
	if i < 0 || i >= len(p.toks) {
		return token.None
	}
	return p.toks[i].Kind
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if !p.eof() {
		p.pos++
	}
	return t
}

func (p *Parser) errAt(tok token.Token, msg string) *ParseError {
	return &ParseError{Msg: msg, Token: tok}
}

func (p *Parser) fail(msg string) error {
	return p.errAt(p.cur(), msg)
}

func (p *Parser) expect(k token.Kind, what string) (token.Token, error) {
	if p.kind() != k {
		return token.Token{}, p.fail("expected " + what)
	}
	return p.advance(), nil
}

// ParseProgram parses the whole token stream as a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.cur().Range.Start
	var children []ast.Node
	for !p.eof() {
		n, err := p.stmtOrExpr()
		if err != nil {
			return nil, errors.Wrap(err, "parsing program")
		}
		if n != nil {
			children = append(children, n)
		}
	}
	end := start
	if len(p.toks) > 0 {
		end = p.toks[len(p.toks)-1].Range.End
	}
	return &ast.Program{Children: children, Rng: token.Range{Start: start, End: end}}, nil
}

// stmtOrExpr parses one top-level or block-level production. It returns a
// nil node (and nil error) for a bare ';', which callers skip.
func (p *Parser) stmtOrExpr() (ast.Node, error) {
	switch {
	case p.kind() == token.SemiColon:
		p.advance()
		return nil, nil
	case p.isKeyword("var"):
		return p.varDecl()
	case p.isKeyword("fun"):
		return p.function()
	case p.isKeyword("for"):
		return p.forStmt()
	case p.isKeyword("if"):
		return p.ifStmt()
	case p.kind() == token.Identifier && p.peekKind(1) == token.Equals:
		return p.assignment()
	default:
		return p.expression()
	}
}

func (p *Parser) isKeyword(word string) bool {
	t := p.cur()
	return t.Kind == token.Keyword && t.Content == word
}

// varDecl parses `var IDENT ( '=' expression )? ( ';' | ':' )?`.
func (p *Parser) varDecl() (ast.Node, error) {
	kw, err := p.expect(token.Keyword, "'var'")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Identifier, "identifier after 'var'")
	if err != nil {
		return nil, err
	}
	end := nameTok.Range.End
	var init ast.Node
	if p.kind() == token.Equals {
		p.advance()
		init, err = p.expression()
		if err != nil {
			return nil, errors.Wrap(err, "parsing var initializer")
		}
		end = init.NodeRange().End
	}
	if p.kind() == token.SemiColon || p.kind() == token.Colon {
		end = p.cur().Range.End
		p.advance()
	}
	return &ast.VarDeclaration{Name: nameTok.Content, Init: init, Rng: token.Range{Start: kw.Range.Start, End: end}}, nil
}

// assignment parses `IDENT '=' expression`.
func (p *Parser) assignment() (ast.Node, error) {
	nameTok, err := p.expect(token.Identifier, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equals, "'='"); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, errors.Wrap(err, "parsing assignment body")
	}
	return &ast.Assignment{Target: nameTok.Content, Body: body, Rng: token.Range{Start: nameTok.Range.Start, End: body.NodeRange().End}}, nil
}

// forStmt parses `for '(' var_decl expression ')' stmt_or_expr`.
func (p *Parser) forStmt() (ast.Node, error) {
	kw, err := p.expect(token.Keyword, "'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenOpen, "'(' after 'for'"); err != nil {
		return nil, err
	}
	declNode, err := p.varDecl()
	if err != nil {
		return nil, errors.Wrap(err, "parsing for-loop declaration")
	}
	decl, ok := declNode.(*ast.VarDeclaration)
	if !ok {
		return nil, p.errAt(kw, "for-loop declaration must be a var declaration")
	}
	rangeExpr, err := p.expression()
	if err != nil {
		return nil, errors.Wrap(err, "parsing for-loop range")
	}
	if _, err := p.expect(token.ParenClose, "')' closing for-loop header"); err != nil {
		return nil, err
	}
	body, err := p.stmtOrExpr()
	if err != nil {
		return nil, errors.Wrap(err, "parsing for-loop body")
	}
	return &ast.RangedLoop{Decl: decl, Range: rangeExpr, Body: body, Rng: token.Range{Start: kw.Range.Start, End: body.NodeRange().End}}, nil
}

// ifStmt parses `if '(' var_decl? expression ')' stmt_or_expr ( 'else' ('if' ... | stmt_or_expr) )?`.
func (p *Parser) ifStmt() (ast.Node, error) {
	kw, err := p.expect(token.Keyword, "'if'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenOpen, "'(' after 'if'"); err != nil {
		return nil, err
	}
	var decl *ast.VarDeclaration
	if p.isKeyword("var") {
		declNode, err := p.varDecl()
		if err != nil {
			return nil, errors.Wrap(err, "parsing if-condition declaration")
		}
		decl = declNode.(*ast.VarDeclaration)
	}
	cond, err := p.expression()
	if err != nil {
		return nil, errors.Wrap(err, "parsing if-condition")
	}
	if _, err := p.expect(token.ParenClose, "')' closing if-condition"); err != nil {
		return nil, err
	}
	then, err := p.stmtOrExpr()
	if err != nil {
		return nil, errors.Wrap(err, "parsing if-branch body")
	}
	end := then.NodeRange().End
	var elseNode ast.Node
	if p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			elseNode, err = p.ifStmt()
		} else {
			elseNode, err = p.stmtOrExpr()
		}
		if err != nil {
			return nil, errors.Wrap(err, "parsing else-branch")
		}
		end = elseNode.NodeRange().End
	}
	return &ast.If{Decl: decl, Cond: cond, Then: then, Else: elseNode, Rng: token.Range{Start: kw.Range.Start, End: end}}, nil
}

// function parses `'fun' IDENT? '(' param_list ')' stmt_or_expr`, used both
// as a statement (named) and as a factor (anonymous).
func (p *Parser) function() (ast.Node, error) {
	kw, err := p.expect(token.Keyword, "'fun'")
	if err != nil {
		return nil, err
	}
	var name string
	if p.kind() == token.Identifier {
		name = p.advance().Content
	}
	if _, err := p.expect(token.ParenOpen, "'(' after 'fun'"); err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenClose, "')' closing parameter list"); err != nil {
		return nil, err
	}
	body, err := p.stmtOrExpr()
	if err != nil {
		return nil, errors.Wrap(err, "parsing function body")
	}
	rng := token.Range{Start: kw.Range.Start, End: body.NodeRange().End}
	if name != "" {
		return &ast.FunctionDeclaration{Name: name, Params: params, Body: body, Rng: rng}, nil
	}
	return &ast.FunctionExpression{Params: params, Body: body, Rng: rng}, nil
}

// paramList parses `( IDENT ( ':' (IDENT|KEYWORD) )? ( ',' ... )* )?`.
func (p *Parser) paramList() ([]*ast.FunctionParameter, error) {
	var params []*ast.FunctionParameter
	for p.kind() == token.Identifier {
		nameTok := p.advance()
		param := &ast.FunctionParameter{Name: nameTok.Content, Rng: nameTok.Range}
		if p.kind() == token.Colon {
			p.advance()
			if p.kind() != token.Identifier && p.kind() != token.Keyword {
				return nil, p.fail("expected type name after ':'")
			}
			typeTok := p.advance()
			param.Type = typeTok.Content
			param.Rng = token.Range{Start: param.Rng.Start, End: typeTok.Range.End}
		}
		params = append(params, param)
		if p.kind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	return params, nil
}

// expression := term ( ('+'|'-'|comparison) term )*
//
// Comparison operators are folded into this same precedence tier as '+'/'-'
// rather than a separate tier above it — see the open question in
// spec.md §9, preserved as written.
func (p *Parser) expression() (ast.Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.kind() == token.BinOp {
		op := p.cur().Content
		kind, ok := exprLevelOp(op)
		if !ok {
			break
		}
		opTok := p.advance()
		right, err := p.term()
		if err != nil {
			return nil, errors.Wrap(err, "parsing right operand of "+opTok.Content)
		}
		left = &ast.BinOp{Left: left, Right: right, Op: kind, Rng: token.Range{Start: left.NodeRange().Start, End: right.NodeRange().End}}
	}
	return left, nil
}

func exprLevelOp(s string) (ast.BinOpKind, bool) {
	switch s {
	case "+":
		return ast.Add, true
	case "-":
		return ast.Sub, true
	case ">":
		return ast.Greater, true
	case ">=":
		return ast.GreaterEqual, true
	case "<":
		return ast.Less, true
	case "<=":
		return ast.LessEqual, true
	default:
		return 0, false
	}
}

// term := factor ( ('*'|'/') factor )*
func (p *Parser) term() (ast.Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.kind() == token.BinOp && (p.cur().Content == "*" || p.cur().Content == "/") {
		opTok := p.advance()
		kind := ast.Mul
		if opTok.Content == "/" {
			kind = ast.Div
		}
		right, err := p.factor()
		if err != nil {
			return nil, errors.Wrap(err, "parsing right operand of "+opTok.Content)
		}
		left = &ast.BinOp{Left: left, Right: right, Op: kind, Rng: token.Range{Start: left.NodeRange().Start, End: right.NodeRange().End}}
	}
	return left, nil
}

// parenInner parses the content of a parenthesized factor. The grammar
// names this `expression`, but `var a = (b = 5)` is explicitly preserved
// (spec.md §9 open question) so an assignment is accepted here too.
func (p *Parser) parenInner() (ast.Node, error) {
	if p.kind() == token.Identifier && p.peekKind(1) == token.Equals {
		return p.assignment()
	}
	return p.expression()
}

// factor parses a single atom per the grammar's factor production.
func (p *Parser) factor() (ast.Node, error) {
	t := p.cur()
	switch t.Kind {
	case token.Integer:
		p.advance()
		n, _ := parseInt(t.Content)
		if p.kind() == token.Dot && p.peekKind(1) == token.Dot {
			p.advance()
			p.advance()
			maxTok, err := p.expect(token.Integer, "integer after '..'")
			if err != nil {
				return nil, err
			}
			m, _ := parseInt(maxTok.Content)
			return &ast.NumericRange{Min: n, Max: m, Rng: token.Range{Start: t.Range.Start, End: maxTok.Range.End}}, nil
		}
		return &ast.Integer{Value: n, Rng: t.Range}, nil
	case token.FloatingPointNumber:
		p.advance()
		f, _ := parseFloat(t.Content)
		return &ast.Float{Value: f, Rng: t.Range}, nil
	case token.String:
		p.advance()
		return &ast.String{Value: t.Content, Rng: t.Range}, nil
	case token.ParenOpen:
		p.advance()
		inner, err := p.parenInner()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.expect(token.ParenClose, "')'")
		if err != nil {
			return nil, err
		}
		return withRange(inner, token.Range{Start: t.Range.Start, End: closeTok.Range.End}), nil
	case token.Identifier:
		p.advance()
		switch {
		case p.kind() == token.ParenOpen:
			return p.callArgs(t)
		case p.kind() == token.Dot:
			p.advance()
			fieldTok, err := p.expect(token.Identifier, "field name after '.'")
			if err != nil {
				return nil, err
			}
			return &ast.Access{Object: t.Content, Field: fieldTok.Content, Rng: token.Range{Start: t.Range.Start, End: fieldTok.Range.End}}, nil
		default:
			return &ast.Identifier{Name: t.Content, Rng: t.Range}, nil
		}
	case token.SquigglyOpen:
		return p.scopeExpr()
	case token.BracketOpen:
		return p.arrayOrObject()
	case token.Keyword:
		switch t.Content {
		case "ret":
			p.advance()
			inner, err := p.expression()
			if err != nil {
				return nil, errors.Wrap(err, "parsing return expression")
			}
			return &ast.Return{Inner: inner, Rng: token.Range{Start: t.Range.Start, End: inner.NodeRange().End}}, nil
		case "fun":
			return p.function()
		}
	}
	return nil, p.fail("unexpected token in expression")
}

// callArgs parses `'(' (expression (',' expression)*)? ')'` after an
// identifier already consumed as the callee.
func (p *Parser) callArgs(callee token.Token) (ast.Node, error) {
	if _, err := p.expect(token.ParenOpen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Node
	for p.kind() != token.ParenClose {
		arg, err := p.expression()
		if err != nil {
			return nil, errors.Wrap(err, "parsing call argument")
		}
		args = append(args, arg)
		if p.kind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	closeTok, err := p.expect(token.ParenClose, "')' closing call arguments")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Callee: callee.Content, Args: args, Rng: token.Range{Start: callee.Range.Start, End: closeTok.Range.End}}, nil
}

// scopeExpr parses `'{' stmt_or_expr* '}'`.
func (p *Parser) scopeExpr() (ast.Node, error) {
	open, err := p.expect(token.SquigglyOpen, "'{'")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for p.kind() != token.SquigglyClose {
		if p.eof() {
			return nil, p.fail("unterminated block, expected '}'")
		}
		n, err := p.stmtOrExpr()
		if err != nil {
			return nil, err
		}
		if n != nil {
			stmts = append(stmts, n)
		}
	}
	close, err := p.expect(token.SquigglyClose, "'}'")
	if err != nil {
		return nil, err
	}
	return &ast.ScopeStatement{Statements: stmts, Rng: token.Range{Start: open.Range.Start, End: close.Range.End}}, nil
}

// arrayOrObject parses `'[' array_or_object ']'`, disambiguating arrays
// from objects as described in §4.2: the first `:` following an element
// locks the literal into object mode; mixing is a parse error.
func (p *Parser) arrayOrObject() (ast.Node, error) {
	open, err := p.expect(token.BracketOpen, "'['")
	if err != nil {
		return nil, err
	}
	isObject := false
	var elems []ast.Node
	var pairs []*ast.KeyValue
	for p.kind() != token.BracketClose {
		if p.eof() {
			return nil, p.fail("unterminated array/object literal, expected ']'")
		}
		first, err := p.expression()
		if err != nil {
			return nil, errors.Wrap(err, "parsing array/object element")
		}
		if p.kind() == token.Colon {
			if len(elems) > 0 {
				return nil, p.fail("cannot mix array elements with key:value pairs")
			}
			isObject = true
			p.advance()
			val, err := p.expression()
			if err != nil {
				return nil, errors.Wrap(err, "parsing object value")
			}
			pairs = append(pairs, &ast.KeyValue{Key: first, Value: val, Rng: token.Range{Start: first.NodeRange().Start, End: val.NodeRange().End}})
		} else {
			if isObject {
				return nil, p.fail("cannot mix key:value pairs with array elements")
			}
			elems = append(elems, first)
		}
		if p.kind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	close, err := p.expect(token.BracketClose, "']'")
	if err != nil {
		return nil, err
	}
	rng := token.Range{Start: open.Range.Start, End: close.Range.End}
	if isObject {
		return &ast.Object{Pairs: pairs, Rng: rng}, nil
	}
	return &ast.Array{Elements: elems, Rng: rng}, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// withRange returns a shallow copy of n with its range overridden — used so
// a parenthesized expression reports the parens' full span. Only Integer,
// Float, String, Identifier and BinOp nodes are copied; any other node is
// returned unchanged, keeping its own range.
func withRange(n ast.Node, rng token.Range) ast.Node {
	switch v := n.(type) {
	case *ast.Integer:
		c := *v
		c.Rng = rng
		return &c
	case *ast.Float:
		c := *v
		c.Rng = rng
		return &c
	case *ast.String:
		c := *v
		c.Rng = rng
		return &c
	case *ast.Identifier:
		c := *v
		c.Rng = rng
		return &c
	case *ast.BinOp:
		c := *v
		c.Rng = rng
		return &c
	default:
		return n
	}
}
