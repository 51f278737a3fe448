package evaluator

import (
	"regexp"
	"strings"
)

const rootSign = '√'

var operatorGlyphs = strings.NewReplacer("÷", "/", "×", "*")

// Правила неявного умножения, применяются по порядку.
// Пробелы между операндами и висящая точка ("2.(3)") допускаются.
var implicitMultiplication = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(\d\.?)\s*\(`), "$1*("},
	{regexp.MustCompile(`\)\s*([\d.])`), ")*$1"},
	{regexp.MustCompile(`\)\s*\(`), ")*("},
	{regexp.MustCompile(`(\d\.?)\s*sqrt\(`), "$1*sqrt("},
	{regexp.MustCompile(`\)\s*sqrt\(`), ")*sqrt("},
}

// Normalize - перевод записи с экрана калькулятора в каноническую форму.
// Функция тотальна: некорректный ввод отлавливается токенизатором и парсером.
func Normalize(input string) string {
	out := expandRoots(input)
	out = operatorGlyphs.Replace(out)
	for _, rule := range implicitMultiplication {
		out = rule.re.ReplaceAllString(out, rule.repl)
	}
	return out
}

func expandRoots(s string) string {
	if !strings.ContainsRune(s, rootSign) {
		return s
	}

	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); {
		if rs[i] != rootSign {
			b.WriteRune(rs[i])
			i++
			continue
		}
		call, next, _ := rootCall(rs, i+1)
		b.WriteString(call)
		i = next
	}
	return b.String()
}

// rootCall renders the sqrt call for a root sign whose operand starts at i.
// closed is false when the operand could not be delimited; the bare "sqrt("
// is then left for the parser to reject.
func rootCall(rs []rune, i int) (call string, next int, closed bool) {
	start := i
	sign := ""
	if i < len(rs) && rs[i] == '-' {
		sign = "-"
		i++
	}

	switch {
	case i < len(rs) && rs[i] == '(':
		end := matchingParen(rs, i)
		if end < 0 {
			break
		}
		inner := expandRoots(string(rs[i+1 : end]))
		if sign == "" {
			return "sqrt(" + inner + ")", end + 1, true
		}
		return "sqrt(-(" + inner + "))", end + 1, true

	case i < len(rs) && rs[i] == rootSign:
		inner, next, closed := rootCall(rs, i+1)
		if !closed {
			return "sqrt(" + sign + inner, next, false
		}
		return "sqrt(" + sign + inner + ")", next, true
	}

	j := i
	for j < len(rs) && isNumberRune(rs[j]) {
		j++
	}
	if j == i {
		return "sqrt(", start, false
	}
	return "sqrt(" + sign + string(rs[i:j]) + ")", j, true
}

func matchingParen(rs []rune, open int) int {
	depth := 0
	for i := open; i < len(rs); i++ {
		switch rs[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}
