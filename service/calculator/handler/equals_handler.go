package handler

import (
	"mycalculator/core/evaluator"
	"strconv"
	"strings"
)

const KeyEquals = "="

// EqualsHandler evaluates the display. A blank display never reaches the
// engine; a failure shows the placeholder and leaves history untouched.
type EqualsHandler struct {
	BaseHandler
}

func NewEqualsHandler() *EqualsHandler {
	return &EqualsHandler{BaseHandler: newBase(KeyEquals)}
}

func (h *EqualsHandler) Handle(s *State, _ string) error {
	s.Resume()

	input := s.Display
	if strings.TrimSpace(input) == "" {
		return evaluator.ErrEmptyExpression
	}

	result, err := s.Engine.Evaluate(input)
	if err != nil {
		return s.Fail(err)
	}

	if s.History != nil {
		s.History.Add(input, result)
	}

	// results are shortest round-trip text, so this recovers the exact value
	value, err := strconv.ParseFloat(result, 64)
	if err != nil {
		s.Display = result
		return nil
	}
	s.ShowResult(result, value)
	return nil
}
