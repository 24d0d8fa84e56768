package lib

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	PromptAlways = "always"
	PromptNever  = "never"
	PromptAuto   = "auto"
)

type HistoryConfig struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

type Config struct {
	Prompt      string `yaml:"prompt,omitempty"`
	PromptMode  string `yaml:"prompt-mode,omitempty"`
	LineEditing bool   `yaml:"line-editing,omitempty"`
	Lenient     bool   `yaml:"lenient,omitempty"`
	MaxDepth    int    `yaml:"max-depth,omitempty"`

	LogLevel string `yaml:"log-level,omitempty"`
	LogFile  string `yaml:"log-file,omitempty"`

	History HistoryConfig `yaml:"history,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:     "> ",
		PromptMode: PromptAlways,
		MaxDepth:   DefaultMaxDepth,
		LogLevel:   "warning",
	}
}

// ParseConfig reads a YAML file over the current values, so anything the
// file leaves out keeps its previous setting.
func (c *Config) ParseConfig(fileName string) error {
	if len(fileName) == 0 {
		return nil // OK
	}

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read configuration from %q: %w", fileName, err)
	}

	if err := yaml.Unmarshal(buf, c); err != nil {
		return fmt.Errorf("failed to parse configuration from %q: %w", fileName, err)
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.PromptMode {
	case PromptAlways, PromptNever, PromptAuto:
	default:
		return fmt.Errorf("unknown prompt mode %q", c.PromptMode)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth cannot be negative")
	}

	switch c.History.Driver {
	case "", "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported history driver %q", c.History.Driver)
	}
	if c.History.Driver != "" && c.History.DSN == "" {
		return fmt.Errorf("history driver %q needs a dsn", c.History.Driver)
	}

	return nil
}

// ParserOptions translates the config into options for NewParser.
func (c Config) ParserOptions() []ParserOption {
	return []ParserOption{WithMaxDepth(c.MaxDepth)}
}
