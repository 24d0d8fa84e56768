package lib

import (
	"math"
	"strconv"
)

// Evaluate tokenizes and evaluates a single line. The whole line has to be
// one expression.
func Evaluate(line string, opts ...ParserOption) (float64, error) {
	return NewParser(NewLexer(line), opts...).Parse()
}

// EvaluatePrefix evaluates the leading expression of line and ignores
// whatever comes after it, so "1 2" gives 1.
func EvaluatePrefix(line string, opts ...ParserOption) (float64, error) {
	return NewParser(NewLexer(line), opts...).ParseExpression()
}

// FormatResult renders a result for display: shortest decimal that round
// trips, never in exponent form.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
