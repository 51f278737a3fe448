package handler

import "strings"

const (
	KeyMemoryAdd    = "M+"
	KeyMemoryRecall = "MR"
	KeyMemoryClear  = "MC"
)

type MemoryHandler struct {
	BaseHandler
}

func NewMemoryHandler() *MemoryHandler {
	return &MemoryHandler{BaseHandler: newBase(KeyMemoryAdd, KeyMemoryRecall, KeyMemoryClear)}
}

func (h *MemoryHandler) Handle(s *State, key string) error {
	switch key {
	case KeyMemoryAdd:
		if s.Errored || strings.TrimSpace(s.Display) == "" {
			return nil
		}
		value, ok := s.shownResult()
		if !ok {
			var err error
			if value, err = s.Engine.Compute(s.Display); err != nil {
				return s.Fail(err)
			}
		}
		s.Memory.Add(value)

	case KeyMemoryRecall:
		s.Resume()
		s.Display = recall(s.Display, s.Memory.Recall())

	case KeyMemoryClear:
		s.Memory.Clear()
	}
	return nil
}

// recall puts value in place of a trailing number, or appends it.
// Negative values are parenthesised so they never read as subtraction.
func recall(display string, value float64) string {
	text := formatPlain(value)
	if value < 0 {
		text = "(" + text + ")"
	}

	rs := []rune(display)
	return string(rs[:numberStart(rs)]) + text
}
