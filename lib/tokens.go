package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenNumber TokenType = iota
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenLParen
	TokenRParen
	TokenUnknown
)

// Token is a single lexical unit. Value is only meaningful for TokenNumber
// and Char only for TokenUnknown.
type Token struct {
	Type  TokenType
	Value float64
	Char  rune
}

func NumberToken(v float64) Token {
	return Token{Type: TokenNumber, Value: v}
}

func UnknownToken(ch rune) Token {
	return Token{Type: TokenUnknown, Char: ch}
}

func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return fmt.Sprintf("Number(%s)", debugFloat(t.Value))
	case TokenPlus:
		return "Plus"
	case TokenMinus:
		return "Minus"
	case TokenAsterisk:
		return "Asterisk"
	case TokenSlash:
		return "Slash"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenUnknown:
		return "Unknown('" + debugRune(t.Char) + "')"
	default:
		return "?"
	}
}

// debugRune escapes r for a single-quoted char literal. Control, format and
// combining runes are written as \u{hex}.
func debugRune(r rune) string {
	switch r {
	case 0:
		return `\0`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	case '\\':
		return `\\`
	case '\'':
		return `\'`
	}
	if !unicode.IsPrint(r) || unicode.In(r, unicode.Mn, unicode.Me) {
		return fmt.Sprintf(`\u{%x}`, r)
	}
	return string(r)
}

// debugFloat renders v the way token debug output shows numbers: integral
// values keep a ".0" and very large or very small magnitudes switch to
// exponent form.
func debugFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := ""
		if strings.HasPrefix(exp, "-") {
			sign = "-"
		}
		exp = strings.TrimLeft(exp, "+-")
		exp = strings.TrimLeft(exp, "0")
		return mantissa + "e" + sign + exp
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
