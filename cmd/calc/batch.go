package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/graeme-hill/calcstuff-go/lib/history"
)

// runBatches evaluates files (or every file in a directory) and prints one
// line per expression. It fails if any expression did not evaluate.
func runBatches(ctx context.Context, cfg lib.Config, store *history.Store, paths []string, out io.Writer) error {
	failed := 0

	for _, path := range paths {
		batches, err := readBatches(path, cfg.ParserOptions()...)
		if err != nil {
			return err
		}

		for _, batch := range batches {
			for _, line := range batch.Lines {
				entry := history.Entry{Input: line.Text}
				if line.Err != nil {
					failed++
					entry.Error = line.Err.Error()
					fmt.Fprintf(out, "%s:%d: ERROR: %s\n", batch.Name, line.Number, line.Err)
				} else {
					value := line.Value
					entry.Result = &value
					fmt.Fprintf(out, "%s:%d: %s\n", batch.Name, line.Number, lib.FormatResult(line.Value))
				}

				if store != nil {
					if err := store.Record(ctx, entry); err != nil {
						log.WithError(err).Warn("failed to record history")
					}
				}
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}

func readBatches(path string, opts ...lib.ParserOption) ([]lib.Batch, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return lib.ReadBatchesFromDir(path, opts...)
	}
	batch, err := lib.ReadBatchFromFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return []lib.Batch{batch}, nil
}
