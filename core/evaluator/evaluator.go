package evaluator

import (
	"math"
)

type binaryFunc func(a, b float64) (float64, error)

// Evaluator holds only its operator table, which is never written after
// NewEvaluator returns; a single value can serve concurrent callers.
type Evaluator struct {
	operators map[byte]binaryFunc
	functions map[string]func(float64) (float64, error)
}

func NewEvaluator() *Evaluator {
	calc := &Evaluator{
		operators: make(map[byte]binaryFunc),
		functions: make(map[string]func(float64) (float64, error)),
	}

	// Инициализация операторов
	calc.operators['+'] = func(a, b float64) (float64, error) { return a + b, nil }
	calc.operators['-'] = func(a, b float64) (float64, error) { return a - b, nil }
	calc.operators['*'] = func(a, b float64) (float64, error) { return a * b, nil }
	calc.operators['/'] = func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, evalError(DivisionByZero, "")
		}
		return a / b, nil
	}
	calc.operators['^'] = power

	calc.functions["sqrt"] = func(x float64) (float64, error) {
		if x < 0 {
			return 0, evalError(DomainError, "square root of a negative number")
		}
		return math.Sqrt(x), nil
	}

	return calc
}

func power(base, exp float64) (float64, error) {
	if base < 0 && exp != math.Trunc(exp) {
		return 0, evalError(DomainError, "negative base with a non-integer exponent")
	}
	if base == 0 && exp < 0 {
		return 0, evalError(DivisionByZero, "")
	}
	return math.Pow(base, exp), nil
}

var defaultEvaluator = NewEvaluator()

// Evaluate - вычисление выражения с экрана через общий вычислитель
func Evaluate(input string) (string, error) {
	return defaultEvaluator.Evaluate(input)
}

// Compute - то же, что Evaluate, но без форматирования результата
func Compute(input string) (float64, error) {
	return defaultEvaluator.Compute(input)
}

// Evaluate runs the whole pipeline and formats the result the way the
// display shows numbers.
func (c *Evaluator) Evaluate(input string) (string, error) {
	value, err := c.Compute(input)
	if err != nil {
		return "", err
	}
	return FormatNumber(value), nil
}

func (c *Evaluator) Compute(input string) (float64, error) {
	tokens, err := Tokenize(Normalize(input))
	if err != nil {
		return 0, err
	}
	tree, err := Parse(tokens)
	if err != nil {
		return 0, err
	}
	return c.Eval(tree)
}

// Eval - обход дерева в обратном порядке (сначала потомки)
func (c *Evaluator) Eval(node Node) (float64, error) {
	value, err := c.eval(node)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, evalError(NumericOverflow, "")
	}
	return value, nil
}

func (c *Evaluator) eval(node Node) (float64, error) {
	switch n := node.(type) {
	case Literal:
		return n.Value, nil

	case UnaryOp:
		operand, err := c.eval(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op != '-' {
			return 0, evalError(KindUnknown, "unknown unary operator "+string(n.Op))
		}
		return -operand, nil

	case BinaryOp:
		left, err := c.eval(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := c.eval(n.Right)
		if err != nil {
			return 0, err
		}
		op, exists := c.operators[n.Op]
		if !exists {
			return 0, evalError(KindUnknown, "unknown operator "+string(n.Op))
		}
		return finite(op(left, right))

	case FunctionCall:
		arg, err := c.eval(n.Argument)
		if err != nil {
			return 0, err
		}
		fn, exists := c.functions[n.Name]
		if !exists {
			return 0, evalError(KindUnknown, "unknown function "+n.Name)
		}
		return finite(fn(arg))
	}

	return 0, evalError(KindUnknown, "unsupported node")
}

// finite turns an overflowing intermediate result into NumericOverflow at
// the node that produced it.
func finite(v float64, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, evalError(NumericOverflow, "")
	}
	return v, nil
}
