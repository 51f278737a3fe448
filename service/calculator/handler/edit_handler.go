package handler

import "strconv"

const (
	KeySquare  = "x²"
	KeySign    = "+/-"
	KeyPercent = "%"
)

// EditHandler rewrites the trailing operand: square, sign toggle, percent.
type EditHandler struct {
	BaseHandler
}

func NewEditHandler() *EditHandler {
	return &EditHandler{BaseHandler: newBase(KeySquare, KeySign, KeyPercent)}
}

func (h *EditHandler) Handle(s *State, key string) error {
	s.Resume()

	switch key {
	case KeySquare:
		s.Display += "^2"
	case KeySign:
		s.Display = toggleSign(s.Display)
	case KeyPercent:
		s.Display = percent(s.Display)
	}
	return nil
}

// percent divides the trailing number by 100; other displays are left as is.
func percent(display string) string {
	rs := []rune(display)
	start := numberStart(rs)
	if start == len(rs) {
		return display
	}

	value, err := strconv.ParseFloat(string(rs[start:]), 64)
	if err != nil {
		return display
	}
	return string(rs[:start]) + formatPlain(value/100)
}
