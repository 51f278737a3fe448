package evaluator

const endOfInput = "end of input"

type parser struct {
	tokens []Token
	pos    int
	end    int
}

// Parse - построение дерева выражения методом рекурсивного спуска.
//
//	Expr    := Term (('+'|'-') Term)*
//	Term    := Unary (('*'|'/') Unary)*
//	Unary   := '-' Unary | Power
//	Power   := Primary ('^' Unary)?
//	Primary := Number | '(' Expr ')' | 'sqrt(' Expr ')'
func Parse(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, &Error{Kind: EmptyExpression, Pos: -1}
	}
	if err := checkBalance(tokens); err != nil {
		return nil, err
	}

	last := tokens[len(tokens)-1]
	p := &parser{tokens: tokens, end: last.Pos + 1}

	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.unexpected("operator or end of input", tok)
	}
	return root, nil
}

// checkBalance validates grouping depth over the whole stream: a function
// token opens a group just like "(".
func checkBalance(tokens []Token) error {
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLeftParen, TokenFunction:
			depth++
		case TokenRightParen:
			depth--
			if depth < 0 {
				return &Error{Kind: UnbalancedParentheses, Pos: tok.Pos}
			}
		}
	}
	if depth != 0 {
		return &Error{Kind: UnbalancedParentheses, Pos: -1}
	}
	return nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) peekOperator(symbols ...string) (string, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != TokenOperator {
		return "", false
	}
	for _, s := range symbols {
		if tok.Symbol == s {
			return s, true
		}
	}
	return "", false
}

func (p *parser) unexpected(expected string, tok Token) *Error {
	return &Error{Kind: UnexpectedToken, Pos: tok.Pos, Expected: expected, Found: tok.describe()}
}

func (p *parser) unexpectedEnd(expected string) *Error {
	return &Error{Kind: UnexpectedToken, Pos: p.end, Expected: expected, Found: endOfInput}
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator("+", "-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op[0], Left: left, Right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator("*", "/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op[0], Left: left, Right: right}
	}
}

func (p *parser) unary() (Node, error) {
	if _, ok := p.peekOperator("-"); ok {
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: '-', Operand: operand}, nil
	}
	return p.power()
}

// power is right-associative: the exponent is parsed as a Unary, which
// itself reaches another power.
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peekOperator("^"); !ok {
		return base, nil
	}
	p.pos++
	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}
	return BinaryOp{Op: '^', Left: base, Right: exponent}, nil
}

func (p *parser) primary() (Node, error) {
	const expected = "number, \"(\" or sqrt"

	tok, ok := p.peek()
	if !ok {
		return nil, p.unexpectedEnd(expected)
	}

	switch tok.Kind {
	case TokenNumber:
		p.pos++
		return Literal{Value: tok.Value}, nil

	case TokenLeftParen:
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.closeGroup(); err != nil {
			return nil, err
		}
		return inner, nil

	case TokenFunction:
		p.pos++
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.closeGroup(); err != nil {
			return nil, err
		}
		return FunctionCall{Name: tok.Symbol, Argument: arg}, nil
	}

	return nil, p.unexpected(expected, tok)
}

func (p *parser) closeGroup() error {
	tok, ok := p.peek()
	if !ok {
		return &Error{Kind: UnbalancedParentheses, Pos: p.end}
	}
	if tok.Kind != TokenRightParen {
		return p.unexpected(`")"`, tok)
	}
	p.pos++
	return nil
}
