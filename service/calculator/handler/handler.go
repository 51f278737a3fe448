package handler

import (
	"mycalculator/core/evaluator"
	"mycalculator/core/history"
	"mycalculator/core/memory"
	"strconv"
)

// Engine evaluates display text.
type Engine interface {
	Evaluate(input string) (string, error)
	Compute(input string) (float64, error)
}

type Handler interface {
	CanHandle(key string) bool
	Handle(s *State, key string) error
}

// State is the keypad session a handler works on. Errored is set while the
// display shows the error placeholder.
type State struct {
	Display string
	Errored bool
	Memory  *memory.Register
	History *history.HistoryManager
	Engine  Engine

	// result shown by the last "=", valid while the display is unedited
	resultText  string
	resultValue float64
	hasResult   bool
}

// ShowResult puts an evaluation result on the display and keeps its value.
func (s *State) ShowResult(text string, value float64) {
	s.Display = text
	s.resultText = text
	s.resultValue = value
	s.hasResult = true
}

// shownResult returns the value behind the display when it still shows the
// last result unchanged.
func (s *State) shownResult() (float64, bool) {
	if !s.hasResult || s.Errored || s.Display != s.resultText {
		return 0, false
	}
	return s.resultValue, true
}

// Resume drops the error placeholder before new input is applied.
func (s *State) Resume() {
	if s.Errored {
		s.Display = ""
		s.Errored = false
	}
}

// Fail shows the placeholder and passes err through.
func (s *State) Fail(err error) error {
	s.Display = evaluator.Placeholder
	s.Errored = true
	return err
}

// BaseHandler matches a fixed key set.
type BaseHandler struct {
	Keys map[string]bool
}

func newBase(keys ...string) BaseHandler {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return BaseHandler{Keys: set}
}

func (h *BaseHandler) CanHandle(key string) bool {
	return h.Keys[key]
}

// formatPlain renders a number in plain decimal notation so the display
// text stays re-enterable.
func formatPlain(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
