package lib

import (
	"strconv"
	"unicode"
)

// Lex runs a lexer over input to exhaustion, passing every token to emit.
func Lex(input string, emit func(Token)) {
	l := NewLexer(input)
	for {
		tok, done, _ := l.Next()
		if done {
			return
		}
		emit(tok)
	}
}

// Lexer turns a line of text into tokens one at a time. It never fails:
// characters it does not recognize come out as TokenUnknown and are left
// for the parser to reject.
type Lexer struct {
	src              []rune
	length           int
	currentCharIndex int
}

func NewLexer(input string) *Lexer {
	src := []rune(input)
	return &Lexer{
		src:              src,
		length:           len(src),
		currentCharIndex: 0,
	}
}

func (l *Lexer) peek(offset int) (rune, bool) {
	i := l.currentCharIndex + offset
	if i >= l.length {
		return 0, false
	}
	return l.src[i], true
}

func (l *Lexer) advance() (rune, bool) {
	ch, ok := l.peek(0)
	if ok {
		l.currentCharIndex++
	}
	return ch, ok
}

// Next returns the next token, or done once the input is used up. The
// error is always nil; it is there so a Lexer satisfies TokenSource.
func (l *Lexer) Next() (tok Token, done bool, err error) {
	l.eatWhitespace()

	ch, ok := l.peek(0)
	if !ok {
		return Token{}, true, nil
	}

	if isDigit(ch) {
		return l.scanNumber(), false, nil
	}

	_, _ = l.advance()
	switch ch {
	case '+':
		return Token{Type: TokenPlus}, false, nil
	case '-':
		return Token{Type: TokenMinus}, false, nil
	case '*':
		return Token{Type: TokenAsterisk}, false, nil
	case '/':
		return Token{Type: TokenSlash}, false, nil
	case '(':
		return Token{Type: TokenLParen}, false, nil
	case ')':
		return Token{Type: TokenRParen}, false, nil
	default:
		return UnknownToken(ch), false, nil
	}
}

func (l *Lexer) eatWhitespace() {
	for {
		ch, ok := l.peek(0)
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		_, _ = l.advance()
	}
}

func (l *Lexer) scanDigits() string {
	start := l.currentCharIndex
	for {
		ch, ok := l.peek(0)
		if !ok || !isDigit(ch) {
			break
		}
		_, _ = l.advance()
	}
	return string(l.src[start:l.currentCharIndex])
}

func (l *Lexer) scanNumber() Token {
	num := l.scanDigits()

	// A trailing dot with no digits after it still belongs to the number,
	// so "12." reads as 12.
	if ch, ok := l.peek(0); ok && ch == '.' {
		_, _ = l.advance()
		if frac := l.scanDigits(); frac != "" {
			num = num + "." + frac
		}
	}

	// Only digit runs reach here, so the one possible error is ErrRange and
	// the value that comes back with it (+Inf) is the one we want.
	v, _ := strconv.ParseFloat(num, 64)
	return NumberToken(v)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
