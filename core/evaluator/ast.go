package evaluator

import (
	"fmt"
	"strconv"
)

// Node is an expression tree node. Trees are built bottom-up by the parser
// and never mutated afterwards.
type Node interface {
	fmt.Stringer
	node()
}

type Literal struct {
	Value float64
}

type BinaryOp struct {
	Op          byte
	Left, Right Node
}

type UnaryOp struct {
	Op      byte
	Operand Node
}

type FunctionCall struct {
	Name     string
	Argument Node
}

func (Literal) node()      {}
func (BinaryOp) node()     {}
func (UnaryOp) node()      {}
func (FunctionCall) node() {}

func (n Literal) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n BinaryOp) String() string {
	return fmt.Sprintf("(%s %c %s)", n.Left, n.Op, n.Right)
}

func (n UnaryOp) String() string {
	return fmt.Sprintf("(%c%s)", n.Op, n.Operand)
}

func (n FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, n.Argument)
}
