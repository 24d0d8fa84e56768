package lib

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type BatchLine struct {
	Number int
	Text   string
	Value  float64
	Err    error
}

type Batch struct {
	Name  string
	Lines []BatchLine
}

// Failed counts the lines that did not evaluate.
func (b Batch) Failed() int {
	n := 0
	for _, line := range b.Lines {
		if line.Err != nil {
			n++
		}
	}
	return n
}

// ReadBatchesFromDir evaluates every regular file in dir, in name order.
func ReadBatchesFromDir(dir string, opts ...ParserOption) ([]Batch, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	batches := []Batch{}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := filepath.Join(dir, file.Name())
		b, err := ReadBatchFromFile(filePath, opts...)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// ReadBatchFromFile evaluates each line of a file on its own. Blank lines
// and lines starting with '#' are skipped but still count towards line
// numbers.
func ReadBatchFromFile(filePath string, opts ...ParserOption) (Batch, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Batch{}, err
	}
	batch := Batch{
		Name:  batchNameFromPath(filePath),
		Lines: []BatchLine{},
	}

	reader := bufio.NewReader(bytes.NewReader(data))
	number := 0
	for {
		line, err := reader.ReadString('\n')
		if line == "" && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return Batch{}, err
		}
		number++

		text := strings.TrimSpace(line)
		if text != "" && !strings.HasPrefix(text, "#") {
			value, evalErr := Evaluate(text, opts...)
			batch.Lines = append(batch.Lines, BatchLine{
				Number: number,
				Text:   text,
				Value:  value,
				Err:    evalErr,
			})
		}

		if err == io.EOF {
			break
		}
	}

	log.WithField("batch", batch.Name).
		WithField("lines", len(batch.Lines)).
		WithField("failed", batch.Failed()).
		Debug("evaluated batch")

	return batch, nil
}

func batchNameFromPath(filePath string) string {
	fileName := filepath.Base(filePath)
	parts := strings.Split(fileName, ".")
	return parts[0]
}
