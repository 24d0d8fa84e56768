package lib

import "fmt"

// DefaultMaxDepth is how deeply parentheses may nest before the parser
// gives up.
const DefaultMaxDepth = 256

// SyntaxError is returned for any input the grammar rejects.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

func invalidToken(tok Token) error {
	return &SyntaxError{Msg: fmt.Sprintf("Invalid token %s", tok)}
}

var (
	errInvalidSyntax  = &SyntaxError{Msg: "Invalid syntax"}
	errRParenNotFound = &SyntaxError{Msg: "RParen not found"}
)

type ParserOption func(*Parser)

// WithMaxDepth limits parenthesis nesting. Zero or less means no limit.
func WithMaxDepth(depth int) ParserOption {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser evaluates arithmetic as it parses it:
//
//	expression := term ( ('+'|'-') term )*
//	term       := factor ( ('*'|'/') factor )*
//	factor     := NUMBER | '(' expression ')'
//
// Both binary levels fold left to right. Division by zero is not an error;
// it gives whatever IEEE-754 says (Inf or NaN).
type Parser struct {
	reader   TokenReader
	maxDepth int
	depth    int
}

func NewParser(src TokenSource, opts ...ParserOption) *Parser {
	p := &Parser{
		reader:   newTokenReader(src),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse evaluates one expression and fails if any token is left over.
func (p *Parser) Parse() (float64, error) {
	value, err := p.ParseExpression()
	if err != nil {
		return 0, err
	}

	tok, done, err := p.reader.Next()
	if err != nil {
		return 0, err
	}
	if !done {
		return 0, invalidToken(tok)
	}
	return value, nil
}

// ParseExpression evaluates one expression and stops at the first token
// that cannot continue it, leaving that token unread.
func (p *Parser) ParseExpression() (float64, error) {
	left, err := p.scanTerm()
	if err != nil {
		return 0, err
	}

	for {
		op, found, err := p.checkToken(TokenPlus, TokenMinus)
		if err != nil {
			return 0, err
		}
		if !found {
			break
		}

		right, err := p.scanTerm()
		if err != nil {
			return 0, err
		}

		if op.Type == TokenPlus {
			left += right
		} else {
			left -= right
		}
	}

	return left, nil
}

func (p *Parser) scanTerm() (float64, error) {
	left, err := p.scanFactor()
	if err != nil {
		return 0, err
	}

	for {
		op, found, err := p.checkToken(TokenAsterisk, TokenSlash)
		if err != nil {
			return 0, err
		}
		if !found {
			break
		}

		right, err := p.scanFactor()
		if err != nil {
			return 0, err
		}

		if op.Type == TokenAsterisk {
			left *= right
		} else {
			left /= right
		}
	}

	return left, nil
}

func (p *Parser) scanFactor() (float64, error) {
	tok, done, err := p.reader.Next()
	if err != nil {
		return 0, err
	}
	if done {
		return 0, errInvalidSyntax
	}

	switch tok.Type {
	case TokenLParen:
		return p.scanParenthetical()
	case TokenNumber:
		return tok.Value, nil
	default:
		return 0, invalidToken(tok)
	}
}

// Reads after "("
func (p *Parser) scanParenthetical() (float64, error) {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return 0, &SyntaxError{Msg: fmt.Sprintf("Maximum nesting depth %d exceeded", p.maxDepth)}
	}
	p.depth++
	defer func() { p.depth-- }()

	value, err := p.ParseExpression()
	if err != nil {
		return 0, err
	}

	_, found, err := p.checkToken(TokenRParen)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errRParenNotFound
	}
	return value, nil
}

// checkToken consumes the next token if it has one of the given types.
func (p *Parser) checkToken(types ...TokenType) (Token, bool, error) {
	next, done, err := p.reader.Peek()
	if err != nil || done {
		return Token{}, false, err
	}
	for _, typ := range types {
		if next.Type == typ {
			_, _, err = p.reader.Next()
			return next, err == nil, err
		}
	}
	return Token{}, false, nil
}
