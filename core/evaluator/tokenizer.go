package evaluator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

const sqrtCall = "sqrt("

// Tokenize - разбиение нормализованного выражения на токены
func Tokenize(normalized string) ([]Token, error) {
	rs := []rune(normalized)
	tokens := make([]Token, 0, len(rs))

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case isNumberRune(r):
			j := i
			for j < len(rs) && isNumberRune(rs[j]) {
				j++
			}
			literal := string(rs[i:j])
			value, err := parseLiteral(literal)
			if errors.Is(err, strconv.ErrRange) {
				return nil, &Error{Kind: NumericOverflow, Pos: i, Found: literal}
			}
			if err != nil {
				return nil, &Error{Kind: MalformedNumber, Pos: i, Found: literal}
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Value: value, Pos: i})
			i = j

		case r == '(':
			tokens = append(tokens, Token{Kind: TokenLeftParen, Symbol: "(", Pos: i})
			i++

		case r == ')':
			tokens = append(tokens, Token{Kind: TokenRightParen, Symbol: ")", Pos: i})
			i++

		case r == 's' && strings.HasPrefix(string(rs[i:]), sqrtCall):
			tokens = append(tokens, Token{Kind: TokenFunction, Symbol: "sqrt", Pos: i})
			i += len(sqrtCall)

		default:
			info, ok := operatorTable[r]
			if !ok {
				return nil, &Error{Kind: InvalidCharacter, Pos: i, Char: r}
			}
			tokens = append(tokens, Token{
				Kind:       TokenOperator,
				Symbol:     string(r),
				Precedence: info.precedence,
				Assoc:      info.assoc,
				Pos:        i,
			})
			i++
		}
	}

	return tokens, nil
}

// parseLiteral accepts digits with at most one decimal point.
func parseLiteral(literal string) (float64, error) {
	if strings.Count(literal, ".") > 1 || literal == "." {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(literal, 64)
}
