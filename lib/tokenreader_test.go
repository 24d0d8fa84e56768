package lib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingSource struct {
	tokens []Token
	err    error
}

func (s *failingSource) Next() (Token, bool, error) {
	if len(s.tokens) == 0 {
		return Token{}, false, s.err
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, false, nil
}

func TestNext(t *testing.T) {
	reader := newTokenReader(NewSliceSource(NumberToken(1)))

	tok, done, err := reader.Next()
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, NumberToken(1), tok)
}

func TestNextDoneMulti(t *testing.T) {
	reader := newTokenReader(NewSliceSource(NumberToken(1)))

	_, done, err := reader.Next()
	require.NoError(t, err)
	require.False(t, done)

	for i := 0; i < 3; i++ {
		_, done, err = reader.Next()
		require.NoError(t, err)
		require.True(t, done)
	}
}

func TestPeek(t *testing.T) {
	reader := newTokenReader(NewSliceSource(NumberToken(1), Token{Type: TokenPlus}))

	tok, done, err := reader.Peek()
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, NumberToken(1), tok)

	// peeking twice does not move
	tok, _, _ = reader.Peek()
	require.Equal(t, NumberToken(1), tok)

	tok, done, err = reader.Next()
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, NumberToken(1), tok)

	tok, _, _ = reader.Next()
	require.Equal(t, TokenPlus, tok.Type)

	_, done, err = reader.Peek()
	require.NoError(t, err)
	require.True(t, done)

	_, done, err = reader.Next()
	require.NoError(t, err)
	require.True(t, done)
}

func TestPeekError(t *testing.T) {
	boom := errors.New("boom")
	reader := newTokenReader(&failingSource{err: boom})

	_, _, err := reader.Peek()
	require.ErrorIs(t, err, boom)

	_, _, err = reader.Next()
	require.ErrorIs(t, err, boom)
}

func TestReaderIsNotWrappedTwice(t *testing.T) {
	reader := newTokenReader(NewLexer("1"))
	require.Same(t, reader, newTokenReader(reader))
}
