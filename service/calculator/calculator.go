package calculator

import (
	"errors"
	"fmt"
	"log/slog"
	"mycalculator/core/evaluator"
	"mycalculator/core/history"
	"mycalculator/core/memory"
	"mycalculator/metrics"
	"mycalculator/service/calculator/handler"
	"strings"
	"sync"
	"time"
)

var ErrUnknownKey = errors.New("unknown key")

// Calculator is one keypad session: a display, a memory register and the
// handler chain that interprets key presses. History may be shared between
// sessions.
type Calculator struct {
	mu       sync.Mutex
	state    handler.State
	handlers []handler.Handler
}

func NewCalculator(hm *history.HistoryManager) *Calculator {
	if hm == nil {
		hm = history.NewHistoryManager()
	}

	calc := &Calculator{
		state: handler.State{
			Memory:  memory.NewRegister(),
			History: hm,
			Engine:  newEngine(evaluator.NewEvaluator()),
		},
		handlers: make([]handler.Handler, 0),
	}

	calc.registerHandlers()

	return calc
}

func (c *Calculator) registerHandlers() {
	c.handlers = append(c.handlers,
		handler.NewClearHandler(),
		handler.NewEqualsHandler(),
		handler.NewMemoryHandler(),
		handler.NewEditHandler(),
		handler.NewInputHandler(),
	)
}

// Press applies one key and returns the resulting display.
func (c *Calculator) Press(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, h := range c.handlers {
		if h.CanHandle(key) {
			err := h.Handle(&c.state, key)
			if err == nil && key == handler.KeyEquals {
				metrics.UpdateHistorySize(c.state.History.Count())
			}
			return c.state.Display, err
		}
	}

	return c.state.Display, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// PressAll applies keys in order and stops at the first error.
func (c *Calculator) PressAll(keys ...string) (string, error) {
	display := c.Display()
	for _, key := range keys {
		var err error
		if display, err = c.Press(key); err != nil {
			return display, err
		}
	}
	return display, nil
}

// Evaluate computes a complete expression outside the keypad display.
// Successful results are appended to history.
func (c *Calculator) Evaluate(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", evaluator.ErrEmptyExpression
	}

	result, err := c.state.Engine.Evaluate(input)
	if err != nil {
		return "", err
	}

	c.state.History.Add(input, result)
	metrics.UpdateHistorySize(c.state.History.Count())
	return result, nil
}

func (c *Calculator) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Display
}

func (c *Calculator) Memory() (float64, bool) {
	return c.state.Memory.Recall(), c.state.Memory.Stored()
}

func (c *Calculator) History() *history.HistoryManager {
	return c.state.History
}

// engine instruments the evaluator with metrics and debug logging.
type engine struct {
	eval   *evaluator.Evaluator
	logger *slog.Logger
}

func newEngine(eval *evaluator.Evaluator) *engine {
	return &engine{eval: eval, logger: slog.Default().With("component", "calculator")}
}

func (e *engine) Compute(input string) (float64, error) {
	start := time.Now()
	value, err := e.eval.Compute(input)

	kind := ""
	if err != nil {
		kind = evaluator.KindOf(err).String()
		e.logger.Debug("evaluation failed", "input", input, "kind", kind, "error", err)
	}
	metrics.ObserveEvaluation(time.Since(start).Seconds(), kind)

	return value, err
}

func (e *engine) Evaluate(input string) (string, error) {
	value, err := e.Compute(input)
	if err != nil {
		return "", err
	}
	return evaluator.FormatNumber(value), nil
}
