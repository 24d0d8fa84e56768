package lib

// TokenSource is anything that hands out tokens one at a time. Once done is
// true the source is exhausted and stays that way.
type TokenSource interface {
	Next() (tok Token, done bool, err error)
}

// TokenReader is a TokenSource that can also look at the next token
// without consuming it.
type TokenReader interface {
	TokenSource
	Peek() (tok Token, done bool, err error)
}

type peekResult struct {
	tok  Token
	done bool
	err  error
}

type tokenReader struct {
	src    TokenSource
	peeked *peekResult
}

func newTokenReader(src TokenSource) TokenReader {
	if r, ok := src.(TokenReader); ok {
		return r
	}
	return &tokenReader{src: src}
}

func (tr *tokenReader) Next() (tok Token, done bool, err error) {
	if tr.peeked != nil {
		res := tr.peeked
		tr.peeked = nil
		return res.tok, res.done, res.err
	}
	return tr.src.Next()
}

func (tr *tokenReader) Peek() (Token, bool, error) {
	if tr.peeked != nil {
		return tr.peeked.tok, tr.peeked.done, tr.peeked.err
	}
	tok, done, err := tr.src.Next()
	tr.peeked = &peekResult{tok: tok, done: done, err: err}
	return tok, done, err
}

type sliceSource struct {
	tokens []Token
	pos    int
}

// NewSliceSource returns a TokenSource over a fixed list of tokens.
func NewSliceSource(tokens ...Token) TokenSource {
	return &sliceSource{tokens: tokens}
}

func (s *sliceSource) Next() (Token, bool, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, true, nil
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, false, nil
}
