package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/graeme-hill/calcstuff-go/lib/history"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	// logger instance
	log = logrus.New()
)

// customized via ldflags
var (
	Version = "development"
)

type cli struct {
	app        *kingpin.Application
	configPath string
	debug      bool

	repl         *kingpin.CmdClause
	run          *kingpin.CmdClause
	runPaths     *[]string
	history      *kingpin.CmdClause
	historyLimit *int
}

// newCLI declares the command line, binding flags straight into cfg.
func newCLI(cfg *lib.Config) *cli {
	c := &cli{}

	app := kingpin.New("calc", "Evaluates arithmetic expressions.")
	app.Version(Version)
	app.Flag("config", "Configuration in YML format.").Short('c').StringVar(&c.configPath)
	app.Flag("debug", "Debug mode (more log messages).").Short('d').BoolVar(&c.debug)
	app.Flag("log-level", "Logging level.").StringVar(&cfg.LogLevel)
	app.Flag("log-file", "Write log messages to this file instead of stderr.").StringVar(&cfg.LogFile)
	app.Flag("lenient", "Ignore anything after the first complete expression.").BoolVar(&cfg.Lenient)
	app.Flag("max-depth", "Maximum parenthesis nesting, 0 for no limit.").IntVar(&cfg.MaxDepth)
	app.Flag("history-driver", "History database driver: postgres or sqlite3.").StringVar(&cfg.History.Driver)
	app.Flag("history-dsn", "History database connection string.").StringVar(&cfg.History.DSN)

	c.repl = app.Command("repl", "Read and evaluate lines interactively.").Default()
	c.repl.Flag("prompt", "Prompt text.").StringVar(&cfg.Prompt)
	c.repl.Flag("prompt-mode", "When to show the prompt: always, never, auto.").EnumVar(&cfg.PromptMode, lib.PromptAlways, lib.PromptNever, lib.PromptAuto)
	c.repl.Flag("line-editing", "Use line editing when reading from a terminal.").BoolVar(&cfg.LineEditing)

	c.run = app.Command("run", "Evaluate every line of files or directories of files.")
	c.runPaths = c.run.Arg("path", "File or directory to evaluate.").Required().Strings()

	c.history = app.Command("history", "Show recently evaluated lines.")
	c.historyLimit = c.history.Flag("limit", "How many entries to show.").Short('n').Default("20").Int()

	c.app = app
	return c
}

// parseArgs builds the configuration from defaults, then the config file,
// then flags. The first pass over args only finds the config file; the
// second applies flags on top of it regardless of their order.
func parseArgs(args []string) (lib.Config, *cli, string, error) {
	scratch := lib.DefaultConfig()
	first := newCLI(&scratch)
	if _, err := first.app.Parse(args); err != nil {
		return lib.Config{}, nil, "", err
	}

	cfg := lib.DefaultConfig()
	if err := cfg.ParseConfig(first.configPath); err != nil {
		return lib.Config{}, nil, "", err
	}

	c := newCLI(&cfg)
	command, err := c.app.Parse(args)
	if err != nil {
		return lib.Config{}, nil, "", err
	}
	if c.debug {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	return cfg, c, command, nil
}

func main() {
	cfg, c, command, err := parseArgs(os.Args[1:])
	kingpin.FatalIfError(err, "")
	app := c.app

	if err := cfg.Validate(); err != nil {
		app.FatalUsage("%s", err)
	}

	logOutput, err := lib.ConfigureLogging(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}
	defer logOutput.Close()
	log.SetLevel(lib.GetLogLevel())
	log.SetOutput(logOutput)
	history.SetLogLevel(lib.GetLogLevel())
	history.SetLogOutput(logOutput)

	log.WithFields(logrus.Fields{
		"version":        Version,
		"command":        command,
		"lenient":        cfg.Lenient,
		"max-depth":      cfg.MaxDepth,
		"history-driver": cfg.History.Driver,
	}).Debug("starting")

	ctx := context.Background()

	store, err := openHistory(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open history")
	}
	if store != nil {
		defer store.Close()
	}

	switch command {
	case c.repl.FullCommand():
		err = runREPL(ctx, cfg, store)
	case c.run.FullCommand():
		err = runBatches(ctx, cfg, store, *c.runPaths, os.Stdout)
	case c.history.FullCommand():
		if store == nil {
			app.FatalUsage("history needs --history-driver and --history-dsn")
		}
		err = showHistory(ctx, store, *c.historyLimit, os.Stdout)
	}

	if err != nil {
		if store != nil {
			store.Close()
		}
		log.WithError(err).Error(command + " failed")
		os.Exit(1)
	}
}

func openHistory(ctx context.Context, cfg lib.Config) (*history.Store, error) {
	if cfg.History.Driver == "" {
		return nil, nil
	}
	return history.Open(ctx, cfg.History.Driver, cfg.History.DSN)
}

func runREPL(ctx context.Context, cfg lib.Config, store *history.Store) error {
	repl := lib.NewREPL(cfg, os.Stdin, os.Stdout)
	if store != nil {
		repl.Recorder = store
	}
	return repl.Run(ctx)
}

func showHistory(ctx context.Context, store *history.Store, limit int, out io.Writer) error {
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		result := "ERROR: " + e.Error
		if e.Result != nil {
			result = lib.FormatResult(*e.Result)
		} else if e.Error == "" {
			result = "NaN"
		}
		fmt.Fprintf(out, "%5d  %s  %s = %s\n",
			e.ID, e.EvaluatedAt.Local().Format("2006-01-02 15:04:05"), e.Input, result)
	}
	return nil
}
