package evaluator

import (
	"fmt"
	"strconv"
)

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
	TokenLeftParen
	TokenRightParen
	TokenFunction
)

type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// Token - элемент потока лексем. Value заполнен только для чисел,
// Symbol для операторов и функций.
type Token struct {
	Kind       TokenKind
	Value      float64
	Symbol     string
	Precedence int
	Assoc      Associativity
	Pos        int
}

type operatorInfo struct {
	precedence int
	assoc      Associativity
}

var operatorTable = map[rune]operatorInfo{
	'+': {1, LeftAssoc},
	'-': {1, LeftAssoc},
	'*': {2, LeftAssoc},
	'/': {2, LeftAssoc},
	'^': {3, RightAssoc},
}

// describe renders a token for UnexpectedToken messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokenNumber:
		return "number " + strconv.FormatFloat(t.Value, 'g', -1, 64)
	case TokenOperator:
		return fmt.Sprintf("operator %q", t.Symbol)
	case TokenLeftParen:
		return `"("`
	case TokenRightParen:
		return `")"`
	case TokenFunction:
		return fmt.Sprintf("function %q", t.Symbol)
	}
	return "token"
}
