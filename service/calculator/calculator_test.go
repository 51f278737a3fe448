package calculator

import (
	"mycalculator/core/evaluator"
	"mycalculator/core/history"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressSequence(t *testing.T) {
	calc := NewCalculator(nil)

	display, err := calc.PressAll("2", "(", "3", ")", "+", "1")
	require.NoError(t, err)
	assert.Equal(t, "2(3)+1", display)

	display, err = calc.Press("=")
	require.NoError(t, err)
	assert.Equal(t, "7", display)

	entries := calc.History().Recent(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "2(3)+1 = 7", entries[0].String())
}

func TestResultKeepsAppending(t *testing.T) {
	calc := NewCalculator(nil)

	display, err := calc.PressAll("2", "×", "4", "=", "÷", "2", "=")
	require.NoError(t, err)
	assert.Equal(t, "4", display)
	assert.Equal(t, 2, calc.History().Count())
}

func TestErrorPlaceholder(t *testing.T) {
	calc := NewCalculator(nil)

	display, err := calc.PressAll("√", "-", "4", "=")
	assert.ErrorIs(t, err, evaluator.ErrDomainError)
	assert.Equal(t, evaluator.Placeholder, display)
	assert.Zero(t, calc.History().Count())

	display, err = calc.Press("9")
	require.NoError(t, err)
	assert.Equal(t, "9", display)
}

func TestEqualsOnBlankDisplay(t *testing.T) {
	calc := NewCalculator(nil)

	display, err := calc.Press("=")
	assert.ErrorIs(t, err, evaluator.ErrEmptyExpression)
	assert.Empty(t, display)
	assert.Zero(t, calc.History().Count())
}

func TestClear(t *testing.T) {
	calc := NewCalculator(nil)

	display, err := calc.PressAll("1", "2", "C")
	require.NoError(t, err)
	assert.Empty(t, display)
}

func TestUnknownKey(t *testing.T) {
	calc := NewCalculator(nil)
	calc.Press("5")

	display, err := calc.Press("sin")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, "5", display)
}

func TestKeypadExtras(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"square", []string{"3", "x²", "="}, "9"},
		{"sign toggle", []string{"8", "+/-", "="}, "-8"},
		{"sign toggle after operator", []string{"5", "*", "3", "+/-", "="}, "-15"},
		{"percent", []string{"2", "0", "0", "+", "1", "0", "%", "="}, "200.1"},
		{"root", []string{"√", "1", "6", "+", "1", "="}, "5"},
		{"power", []string{"2", "^", "0", ".", "5", "="}, "1.4142135623730951"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(nil)
			display, err := calc.PressAll(tt.keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, display)
		})
	}
}

func TestMemoryKeys(t *testing.T) {
	calc := NewCalculator(nil)

	_, err := calc.PressAll("6", "M+", "C", "4", "M+", "C")
	require.NoError(t, err)
	value, stored := calc.Memory()
	assert.True(t, stored)
	assert.Equal(t, 10.0, value)

	display, err := calc.PressAll("2", "*", "MR", "=")
	require.NoError(t, err)
	assert.Equal(t, "20", display)

	_, err = calc.Press("MC")
	require.NoError(t, err)
	_, stored = calc.Memory()
	assert.False(t, stored)
}

func TestMemoryAddOnExponentResult(t *testing.T) {
	calc := NewCalculator(nil)

	display, err := calc.PressAll("1", "0", "^", "2", "1", "=", "M+")
	require.NoError(t, err)
	assert.Equal(t, "1e+21", display)

	value, stored := calc.Memory()
	assert.True(t, stored)
	assert.Equal(t, 1e21, value)
}

func TestEvaluate(t *testing.T) {
	hm := history.NewHistoryManager()
	calc := NewCalculator(hm)

	result, err := calc.Evaluate("2+3*4")
	require.NoError(t, err)
	assert.Equal(t, "14", result)

	_, err = calc.Evaluate("5/0")
	assert.ErrorIs(t, err, evaluator.ErrDivisionByZero)

	_, err = calc.Evaluate("")
	assert.ErrorIs(t, err, evaluator.ErrEmptyExpression)

	assert.Equal(t, 1, hm.Count())
	assert.Empty(t, calc.Display())
}

func TestSharedHistory(t *testing.T) {
	hm := history.NewHistoryManager()
	a := NewCalculator(hm)
	b := NewCalculator(hm)

	a.PressAll("1", "+", "1", "=")
	b.PressAll("2", "+", "2", "=")

	assert.Equal(t, 2, hm.Count())
	assert.Equal(t, "2", a.Display())
	assert.Equal(t, "4", b.Display())
}

func TestConcurrentPresses(t *testing.T) {
	calc := NewCalculator(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			calc.Press("1")
		}()
	}
	wg.Wait()

	assert.Len(t, calc.Display(), 20)
}
