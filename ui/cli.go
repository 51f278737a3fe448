package ui

import (
	"bufio"
	"fmt"
	"io"
	"mycalculator/core/evaluator"
	"mycalculator/service/calculator"
	"strings"

	"github.com/fatih/color"
)

// ConsoleInterface представляет консольный интерфейс
type ConsoleInterface struct {
	calculator *calculator.Calculator
	scanner    *bufio.Scanner
	out        io.Writer

	prompt  *color.Color
	success *color.Color
	failure *color.Color
	muted   *color.Color
}

// NewConsoleInterface создает новый консольный интерфейс
func NewConsoleInterface(calc *calculator.Calculator, in io.Reader, out io.Writer) *ConsoleInterface {
	return &ConsoleInterface{
		calculator: calc,
		scanner:    bufio.NewScanner(in),
		out:        out,
		prompt:     color.New(color.FgCyan, color.Bold),
		success:    color.New(color.FgGreen),
		failure:    color.New(color.FgRed),
		muted:      color.New(color.Faint),
	}
}

// Run запускает главный цикл интерфейса
func (c *ConsoleInterface) Run() error {
	c.showWelcome()

	for {
		c.prompt.Fprint(c.out, "calc> ")

		if !c.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(c.scanner.Text())
		if input == "" {
			continue
		}

		// Проверяем команды выхода
		if input == "/quit" || input == "/exit" {
			break
		}

		c.processCommand(input)
	}

	fmt.Fprintln(c.out, "Bye!")
	return c.scanner.Err()
}

func (c *ConsoleInterface) showWelcome() {
	fmt.Fprintln(c.out, "Calculator. Type an expression, /help for commands.")
}

// processCommand обрабатывает введенную команду
func (c *ConsoleInterface) processCommand(input string) {
	switch input {
	case "/history":
		c.showHistory()
		return
	case "/clear-history":
		n := c.calculator.History().Clear()
		c.muted.Fprintf(c.out, "history cleared (%d entries)\n", n)
		return
	case "/memory":
		value, stored := c.calculator.Memory()
		if !stored {
			c.muted.Fprintln(c.out, "memory is empty")
			return
		}
		fmt.Fprintf(c.out, "M = %s\n", evaluator.FormatNumber(value))
		return
	case "/help":
		c.showHelp()
		return
	}

	result, err := c.calculator.Evaluate(input)
	if err != nil {
		c.failure.Fprintf(c.out, "%s: %s (%v)\n", evaluator.Placeholder, evaluator.KindOf(err), err)
		return
	}
	c.success.Fprintf(c.out, "= %s\n", result)
}

func (c *ConsoleInterface) showHistory() {
	entries := c.calculator.History().Recent(0)
	if len(entries) == 0 {
		c.muted.Fprintln(c.out, "history is empty")
		return
	}

	for i, entry := range entries {
		fmt.Fprintf(c.out, "%3d. %s\n", i+1, entry)
	}
}

func (c *ConsoleInterface) showHelp() {
	fmt.Fprintln(c.out, "  2+3*4, 2(3), √9+1, 6÷3×2, 2^0.5   expressions")
	fmt.Fprintln(c.out, "  /history                         show history")
	fmt.Fprintln(c.out, "  /clear-history                   clear history")
	fmt.Fprintln(c.out, "  /memory                          show memory register")
	fmt.Fprintln(c.out, "  /quit, /exit                     leave")
}
