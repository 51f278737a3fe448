package evaluator

import (
	"errors"
	"fmt"
)

// Placeholder is what the display shows for any failed evaluation.
const Placeholder = "Error"

// Kind - категория ошибки вычисления
type Kind int

const (
	KindUnknown Kind = iota
	InvalidCharacter
	MalformedNumber
	UnexpectedToken
	UnbalancedParentheses
	EmptyExpression
	DivisionByZero
	DomainError
	NumericOverflow
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	InvalidCharacter:      "InvalidCharacter",
	MalformedNumber:       "MalformedNumber",
	UnexpectedToken:       "UnexpectedToken",
	UnbalancedParentheses: "UnbalancedParentheses",
	EmptyExpression:       "EmptyExpression",
	DivisionByZero:        "DivisionByZero",
	DomainError:           "DomainError",
	NumericOverflow:       "NumericOverflow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type produced by every stage of the pipeline.
// Pos is a rune offset into the normalized expression, or -1 when the
// failure has no position (evaluation-time errors).
type Error struct {
	Kind     Kind
	Pos      int
	Char     rune
	Expected string
	Found    string
	Detail   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
	case MalformedNumber:
		return fmt.Sprintf("malformed number %q at position %d", e.Found, e.Pos)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected %s at position %d, expected %s", e.Found, e.Pos, e.Expected)
	case UnbalancedParentheses:
		if e.Pos >= 0 {
			return fmt.Sprintf("unbalanced parentheses at position %d", e.Pos)
		}
		return "unbalanced parentheses"
	case EmptyExpression:
		return "empty expression"
	case DivisionByZero:
		return "division by zero"
	case DomainError:
		if e.Detail != "" {
			return "domain error: " + e.Detail
		}
		return "domain error"
	case NumericOverflow:
		return "numeric overflow"
	}
	if e.Detail != "" {
		return e.Detail
	}
	return "evaluation failed"
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below work with errors.Is regardless of position details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCharacter      = &Error{Kind: InvalidCharacter, Pos: -1}
	ErrMalformedNumber       = &Error{Kind: MalformedNumber, Pos: -1}
	ErrUnexpectedToken       = &Error{Kind: UnexpectedToken, Pos: -1}
	ErrUnbalancedParentheses = &Error{Kind: UnbalancedParentheses, Pos: -1}
	ErrEmptyExpression       = &Error{Kind: EmptyExpression, Pos: -1}
	ErrDivisionByZero        = &Error{Kind: DivisionByZero, Pos: -1}
	ErrDomainError           = &Error{Kind: DomainError, Pos: -1}
	ErrNumericOverflow       = &Error{Kind: NumericOverflow, Pos: -1}
)

// KindOf - извлечение категории из произвольной ошибки
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func evalError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Pos: -1, Detail: detail}
}
