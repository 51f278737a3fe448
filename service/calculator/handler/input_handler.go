package handler

// InputHandler appends digits, operators, parentheses and the root sign.
type InputHandler struct {
	BaseHandler
}

func NewInputHandler() *InputHandler {
	return &InputHandler{
		BaseHandler: newBase(
			"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".",
			"+", "-", "*", "/", "×", "÷", "^", "(", ")", "√",
		),
	}
}

func (h *InputHandler) Handle(s *State, key string) error {
	s.Resume()
	s.Display += key
	return nil
}

// ClearHandler empties the display.
type ClearHandler struct {
	BaseHandler
}

func NewClearHandler() *ClearHandler {
	return &ClearHandler{BaseHandler: newBase("C")}
}

func (h *ClearHandler) Handle(s *State, _ string) error {
	s.Display = ""
	s.Errored = false
	s.hasResult = false
	return nil
}
