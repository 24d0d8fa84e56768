package lib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadBatchArithmetic(t *testing.T) {
	batch, err := ReadBatchFromFile("../test/basic/batches/01_arithmetic.calc")
	require.NoError(t, err)
	require.Equal(t, "01_arithmetic", batch.Name)
	require.Len(t, batch.Lines, 4)
	require.Equal(t, 0, batch.Failed())

	require.Equal(t, 2, batch.Lines[0].Number)
	require.Equal(t, "1", batch.Lines[0].Text)
	require.Equal(t, 1.0, batch.Lines[0].Value)

	require.Equal(t, 3, batch.Lines[1].Number)
	require.Equal(t, 5.1, batch.Lines[1].Value)

	require.Equal(t, 5, batch.Lines[2].Number)
	require.Equal(t, 80.0, batch.Lines[2].Value)

	require.Equal(t, 6, batch.Lines[3].Number)
	require.Equal(t, 3.0, batch.Lines[3].Value)
}

func TestReadBatchErrors(t *testing.T) {
	batch, err := ReadBatchFromFile("../test/basic/batches/02_errors.calc")
	require.NoError(t, err)
	require.Len(t, batch.Lines, 5)
	require.Equal(t, 4, batch.Failed())

	require.EqualError(t, batch.Lines[0].Err, "Invalid token Number(2.0)")
	require.EqualError(t, batch.Lines[1].Err, "Invalid syntax")
	require.EqualError(t, batch.Lines[2].Err, "Invalid token Slash")
	require.EqualError(t, batch.Lines[3].Err, "RParen not found")
	require.NoError(t, batch.Lines[4].Err)
	require.Equal(t, 2.0, batch.Lines[4].Value)
}

func TestReadBatchesFromDir(t *testing.T) {
	batches, err := ReadBatchesFromDir("../test/basic/batches")
	require.NoError(t, err)
	require.Len(t, batches, 2)
	require.Equal(t, "01_arithmetic", batches[0].Name)
	require.Equal(t, "02_errors", batches[1].Name)
}

func TestReadBatchPassesParserOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.calc")
	require.NoError(t, os.WriteFile(path, []byte("((1))\n(((1)))\n"), 0644))

	batch, err := ReadBatchFromFile(path, WithMaxDepth(2))
	require.NoError(t, err)
	require.Len(t, batch.Lines, 2)
	require.NoError(t, batch.Lines[0].Err)
	require.EqualError(t, batch.Lines[1].Err, "Maximum nesting depth 2 exceeded")
}

func TestReadBatchLongLine(t *testing.T) {
	long := strings.Repeat("1 + ", 20000) + "1"
	path := filepath.Join(t.TempDir(), "long.calc")
	require.NoError(t, os.WriteFile(path, []byte("2 + 2\n"+long+"\n3"), 0644))

	batch, err := ReadBatchFromFile(path)
	require.NoError(t, err)
	require.Len(t, batch.Lines, 3)
	require.Equal(t, 4.0, batch.Lines[0].Value)
	require.Equal(t, 2, batch.Lines[1].Number)
	require.NoError(t, batch.Lines[1].Err)
	require.Equal(t, 20001.0, batch.Lines[1].Value)
	require.Equal(t, 3, batch.Lines[2].Number)
	require.Equal(t, 3.0, batch.Lines[2].Value)
}

func TestReadBatchMissingFile(t *testing.T) {
	_, err := ReadBatchFromFile("../test/basic/batches/nope.calc")
	require.Error(t, err)
}
