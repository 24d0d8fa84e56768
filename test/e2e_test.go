package test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/graeme-hill/calcstuff-go/lib/history"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(ctx, "sqlite3", dsn)
	require.NoError(t, err)

	input := strings.Join([]string{
		"1",
		"2.1 + 6 / 2",
		"(6.4 + 3.6) * (10 - 2)",
		"1 2.0",
		"3 + ",
		"4- / ",
		"(12 + 345",
		"",
		"99",
	}, "\n")

	out := &bytes.Buffer{}
	repl := lib.NewREPL(lib.DefaultConfig(), strings.NewReader(input), out)
	repl.Recorder = store
	require.NoError(t, repl.Run(ctx))
	require.NoError(t, store.Close())

	require.Equal(t,
		"> 1\n"+
			"> 5.1\n"+
			"> 80\n"+
			"> ERROR: Invalid token Number(2.0)\n"+
			"> ERROR: Invalid syntax\n"+
			"> ERROR: Invalid token Slash\n"+
			"> ERROR: RParen not found\n"+
			"> ",
		out.String())

	store, err = history.Open(ctx, "sqlite3", dsn)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	require.Equal(t, "(12 + 345", entries[0].Input)
	require.Equal(t, "RParen not found", entries[0].Error)
	require.Nil(t, entries[0].Result)

	require.Equal(t, "1", entries[6].Input)
	require.Equal(t, 1.0, *entries[6].Result)
}
