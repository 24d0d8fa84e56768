package lib

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// logger instance
	log = logrus.New()
)

func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

func GetLogLevel() logrus.Level {
	return log.GetLevel()
}

func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}

// ConfigureLogging applies the logging part of cfg and returns where log
// messages now go, so other loggers can share it. Closing it releases the
// log file, if one was opened.
func ConfigureLogging(cfg Config) (io.WriteCloser, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	SetLogLevel(level)

	if cfg.LogFile == "" {
		SetLogOutput(os.Stderr)
		return nopCloser{os.Stderr}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	SetLogOutput(f)
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
