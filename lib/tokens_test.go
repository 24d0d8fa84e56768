package lib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{NumberToken(2), "Number(2.0)"},
		{NumberToken(78.901), "Number(78.901)"},
		{NumberToken(0), "Number(0.0)"},
		{NumberToken(1e16), "Number(1e16)"},
		{NumberToken(1.5e-7), "Number(1.5e-7)"},
		{NumberToken(123456789), "Number(123456789.0)"},
		{NumberToken(math.Inf(1)), "Number(inf)"},
		{Token{Type: TokenPlus}, "Plus"},
		{Token{Type: TokenMinus}, "Minus"},
		{Token{Type: TokenAsterisk}, "Asterisk"},
		{Token{Type: TokenSlash}, "Slash"},
		{Token{Type: TokenLParen}, "LParen"},
		{Token{Type: TokenRParen}, "RParen"},
		{UnknownToken('a'), "Unknown('a')"},
		{UnknownToken('\''), `Unknown('\'')`},
		{UnknownToken('\\'), `Unknown('\\')`},
		{UnknownToken('é'), "Unknown('é')"},
		{UnknownToken(0), `Unknown('\0')`},
		{UnknownToken(0x01), `Unknown('\u{1}')`},
		{UnknownToken(0x7f), `Unknown('\u{7f}')`},
		{UnknownToken(0x200b), `Unknown('\u{200b}')`},
		{UnknownToken(0x301), `Unknown('\u{301}')`},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.tok.String())
	}
}
