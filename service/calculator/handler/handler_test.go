package handler

import (
	"mycalculator/core/evaluator"
	"mycalculator/core/history"
	"mycalculator/core/memory"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEngine struct {
	*evaluator.Evaluator
	calls int
}

func (e *countingEngine) Evaluate(input string) (string, error) {
	e.calls++
	return e.Evaluator.Evaluate(input)
}

func newState(display string) (*State, *countingEngine) {
	engine := &countingEngine{Evaluator: evaluator.NewEvaluator()}
	return &State{
		Display: display,
		Memory:  memory.NewRegister(),
		History: history.NewHistoryManager(),
		Engine:  engine,
	}, engine
}

func TestToggleSign(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"", "-"},
		{"-", ""},
		{"3", "-3"},
		{"-3", "3"},
		{"12+3", "12+-3"},
		{"12+-3", "12+3"},
		{"12-3", "12--3"},
		{"12--3", "12-3"},
		{"5*", "5*-"},
		{"5*-", "5*"},
		{"2^3", "2^-3"},
		{"(1+2)", "-(1+2)"},
		{"2*(1+2)", "2*-(1+2)"},
		{"√9", "-√9"},
		{"2√9", "2(-√9)"},
		{"2(-√9)", "2√9"},
		{"2*(-3)", "2*3"},
		{"(-1+2)", "-(-1+2)"},
		{"1.5", "-1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			assert.Equal(t, tt.want, toggleSign(tt.display))
		})
	}
}

func TestToggleSignKeepsMeaning(t *testing.T) {
	for _, display := range []string{"7", "2√9", "4*(1+2)", "10-3", "2^3", "(2)(3)"} {
		t.Run(display, func(t *testing.T) {
			before, err := evaluator.Compute(display)
			require.NoError(t, err)
			after, err := evaluator.Compute(toggleSign(display))
			require.NoError(t, err)

			// only the trailing operand changes sign
			twice, err := evaluator.Compute(toggleSign(toggleSign(display)))
			require.NoError(t, err)
			assert.Equal(t, before, twice)
			assert.NotEqual(t, before, after)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.5", percent("50"))
	assert.Equal(t, "200+0.1", percent("200+10"))
	assert.Equal(t, "-0.025", percent("-2.5"))
	assert.Equal(t, "(2)", percent("(2)"))
	assert.Equal(t, "", percent(""))
	assert.Equal(t, "1.2.3", percent("1.2.3"))
}

func TestRecall(t *testing.T) {
	assert.Equal(t, "5", recall("", 5))
	assert.Equal(t, "2*5", recall("2*", 5))
	assert.Equal(t, "2*5", recall("2*37", 5))
	assert.Equal(t, "2*(-5)", recall("2*", -5))
	assert.Equal(t, "(1)(-5)", recall("(1)", -5))
	assert.Equal(t, "1000000000000000000000", recall("", 1e21))
}

func TestEqualsHandler(t *testing.T) {
	h := NewEqualsHandler()
	require.True(t, h.CanHandle("="))

	s, engine := newState("2(3)+1")
	require.NoError(t, h.Handle(s, "="))
	assert.Equal(t, "7", s.Display)
	last, ok := s.History.Last()
	require.True(t, ok)
	assert.Equal(t, "2(3)+1 = 7", last.String())
	assert.Equal(t, 1, engine.calls)
}

func TestEqualsBlankShortCircuits(t *testing.T) {
	h := NewEqualsHandler()
	s, engine := newState("   ")

	err := h.Handle(s, "=")
	assert.ErrorIs(t, err, evaluator.ErrEmptyExpression)
	assert.Zero(t, engine.calls)
	assert.False(t, s.Errored)
	assert.Zero(t, s.History.Count())
}

func TestEqualsFailureShowsPlaceholder(t *testing.T) {
	h := NewEqualsHandler()
	s, _ := newState("5/0")

	err := h.Handle(s, "=")
	assert.ErrorIs(t, err, evaluator.ErrDivisionByZero)
	assert.Equal(t, evaluator.Placeholder, s.Display)
	assert.True(t, s.Errored)
	assert.Zero(t, s.History.Count())
}

func TestInputResumesAfterError(t *testing.T) {
	h := NewInputHandler()
	s, _ := newState("")
	s.Fail(evaluator.ErrDomainError)

	require.NoError(t, h.Handle(s, "4"))
	assert.Equal(t, "4", s.Display)
	assert.False(t, s.Errored)
}

func TestMemoryHandler(t *testing.T) {
	h := NewMemoryHandler()
	s, _ := newState("2+3")

	require.NoError(t, h.Handle(s, KeyMemoryAdd))
	assert.Equal(t, 5.0, s.Memory.Recall())
	assert.Equal(t, "2+3", s.Display)

	s.Display = "10*"
	require.NoError(t, h.Handle(s, KeyMemoryRecall))
	assert.Equal(t, "10*5", s.Display)

	require.NoError(t, h.Handle(s, KeyMemoryAdd))
	assert.Equal(t, 55.0, s.Memory.Recall())

	require.NoError(t, h.Handle(s, KeyMemoryClear))
	assert.False(t, s.Memory.Stored())

	s.Display = "2+"
	err := h.Handle(s, KeyMemoryAdd)
	assert.ErrorIs(t, err, evaluator.ErrUnexpectedToken)
	assert.Equal(t, evaluator.Placeholder, s.Display)
	assert.False(t, s.Memory.Stored())
}

func TestMemoryAddUsesShownResult(t *testing.T) {
	equals, mem := NewEqualsHandler(), NewMemoryHandler()
	s, engine := newState("10^21")

	require.NoError(t, equals.Handle(s, KeyEquals))
	require.Equal(t, "1e+21", s.Display)

	// the exponent form is not valid input, the stored value is used instead
	require.NoError(t, mem.Handle(s, KeyMemoryAdd))
	assert.Equal(t, 1e21, s.Memory.Recall())
	assert.Equal(t, "1e+21", s.Display)
	assert.False(t, s.Errored)
	assert.Equal(t, 1, engine.calls)

	require.NoError(t, NewInputHandler().Handle(s, "+"))
	err := mem.Handle(s, KeyMemoryAdd)
	assert.ErrorIs(t, err, evaluator.ErrInvalidCharacter)
	assert.Equal(t, evaluator.Placeholder, s.Display)
	assert.Equal(t, 1e21, s.Memory.Recall())
}

func TestClearForgetsShownResult(t *testing.T) {
	s, _ := newState("0.1*3")
	require.NoError(t, NewEqualsHandler().Handle(s, KeyEquals))
	_, ok := s.shownResult()
	require.True(t, ok)

	require.NoError(t, NewClearHandler().Handle(s, "C"))
	_, ok = s.shownResult()
	assert.False(t, ok)
}

func TestEditHandler(t *testing.T) {
	h := NewEditHandler()
	s, _ := newState("3")

	require.NoError(t, h.Handle(s, KeySquare))
	assert.Equal(t, "3^2", s.Display)
	require.NoError(t, h.Handle(s, KeySign))
	assert.Equal(t, "3^-2", s.Display)
	require.NoError(t, h.Handle(s, KeyPercent))
	assert.Equal(t, "3^-0.02", s.Display)
}

func TestCanHandle(t *testing.T) {
	handlers := []Handler{
		NewClearHandler(), NewEqualsHandler(), NewMemoryHandler(), NewEditHandler(), NewInputHandler(),
	}
	for _, key := range []string{"C", "=", "M+", "MR", "MC", "x²", "+/-", "%", "7", ".", "÷", "√", "("} {
		matched := 0
		for _, h := range handlers {
			if h.CanHandle(key) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "key %q", key)
	}
	for _, h := range handlers {
		assert.False(t, h.CanHandle("sin"))
	}
}
