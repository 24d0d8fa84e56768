package lib

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/graeme-hill/calcstuff-go/lib/history"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Recorder receives every line the REPL evaluates. *history.Store is one.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

type lineReader interface {
	ReadLine() (string, error)
}

type plainLineReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string
}

func (p *plainLineReader) ReadLine() (string, error) {
	if p.prompt != "" {
		if _, err := io.WriteString(p.out, p.prompt); err != nil {
			return "", err
		}
	}
	return p.r.ReadString('\n')
}

// REPL reads a line, evaluates it and prints the result until it reads a
// blank line or runs out of input. Bad lines print an error and the loop
// carries on.
type REPL struct {
	Config   Config
	In       io.Reader
	Out      io.Writer
	Recorder Recorder
}

func NewREPL(cfg Config, in io.Reader, out io.Writer) *REPL {
	return &REPL{Config: cfg, In: in, Out: out}
}

func (r *REPL) Run(ctx context.Context) error {
	lines, out, restore, err := r.openLineReader()
	if err != nil {
		return err
	}
	defer restore()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := lines.ReadLine()
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return fmt.Errorf("failed to read line: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		if err := r.evalLine(ctx, out, line); err != nil {
			return err
		}

		if eof {
			return nil
		}
	}
}

func (r *REPL) evalLine(ctx context.Context, out io.Writer, line string) error {
	eval := Evaluate
	if r.Config.Lenient {
		eval = EvaluatePrefix
	}

	entry := history.Entry{Input: line}
	value, err := eval(line, r.Config.ParserOptions()...)
	if err != nil {
		entry.Error = err.Error()
		log.WithError(err).WithField("input", line).Debug("evaluation failed")
		_, err = fmt.Fprintf(out, "ERROR: %s\n", err)
	} else {
		entry.Result = &value
		log.WithFields(logrus.Fields{
			"input":  line,
			"result": value,
		}).Debug("evaluated line")
		_, err = fmt.Fprintln(out, FormatResult(value))
	}
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if r.Recorder != nil {
		if err := r.Recorder.Record(ctx, entry); err != nil {
			log.WithError(err).WithField("input", line).Warn("failed to record history")
		}
	}
	return nil
}

// openLineReader picks how lines are read. A terminal with line editing
// enabled goes through term.Terminal in raw mode; everything else is read
// plainly with the prompt written to Out.
func (r *REPL) openLineReader() (lineReader, io.Writer, func(), error) {
	fd, isTerm := terminalFd(r.In)

	prompt := r.Config.Prompt
	switch r.Config.PromptMode {
	case PromptNever:
		prompt = ""
	case PromptAuto:
		if !isTerm {
			prompt = ""
		}
	}

	if isTerm && r.Config.LineEditing {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to enter raw mode: %w", err)
		}
		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{r.In, r.Out}, prompt)
		restore := func() {
			if err := term.Restore(fd, state); err != nil {
				log.WithError(err).Warn("failed to restore terminal")
			}
		}
		return t, t, restore, nil
	}

	lines := &plainLineReader{
		r:      bufio.NewReader(r.In),
		out:    r.Out,
		prompt: prompt,
	}
	return lines, r.Out, func() {}, nil
}

func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
