package handler

import "strings"

const rootSign = '√'

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// numberStart returns the index where the run of number runes ending the
// display begins, len(rs) when the display does not end in a number.
func numberStart(rs []rune) int {
	i := len(rs)
	for i > 0 && isNumberRune(rs[i-1]) {
		i--
	}
	return i
}

// operandStart finds the trailing operand: a number or a parenthesised group,
// together with any root signs in front of it.
func operandStart(rs []rune) int {
	n := len(rs)
	if n == 0 {
		return 0
	}

	start := n
	switch {
	case isNumberRune(rs[n-1]):
		start = numberStart(rs)
	case rs[n-1] == ')':
		depth := 0
		for i := n - 1; i >= 0; i-- {
			if rs[i] == ')' {
				depth++
			} else if rs[i] == '(' {
				depth--
				if depth == 0 {
					start = i
					break
				}
			}
		}
		if start == n {
			// unmatched, treat as no operand
			return n
		}
	default:
		return n
	}

	for start > 0 && rs[start-1] == rootSign {
		start--
	}
	return start
}

// isUnaryMinus reports whether the '-' at i negates what follows rather
// than subtracting.
func isUnaryMinus(rs []rune, i int) bool {
	if i == 0 {
		return true
	}
	return strings.ContainsRune("+-*/^(×÷√", rs[i-1])
}

// adjacentToValue reports whether inserting at i would follow a number or a
// closing parenthesis, where a bare sign would turn into subtraction.
func adjacentToValue(rs []rune, i int) bool {
	return i > 0 && (isNumberRune(rs[i-1]) || rs[i-1] == ')')
}

// toggleSign flips the sign of the trailing operand of display.
func toggleSign(display string) string {
	rs := []rune(display)
	start := operandStart(rs)
	operand := rs[start:]

	if inner, ok := unwrapNegation(operand); ok {
		return string(rs[:start]) + string(inner)
	}
	if start > 0 && rs[start-1] == '-' && isUnaryMinus(rs, start-1) {
		return string(rs[:start-1]) + string(operand)
	}
	if adjacentToValue(rs, start) {
		return string(rs[:start]) + "(-" + string(operand) + ")"
	}
	return string(rs[:start]) + "-" + string(operand)
}

// unwrapNegation matches "(-X)" where X is one complete operand.
func unwrapNegation(operand []rune) ([]rune, bool) {
	n := len(operand)
	if n < 4 || operand[0] != '(' || operand[1] != '-' || operand[n-1] != ')' {
		return nil, false
	}
	inner := operand[2 : n-1]
	if len(inner) == 0 || operandStart(inner) != 0 {
		return nil, false
	}
	return inner, true
}
