package main

import (
	"os"

	"github.com/urfave/cli"
	"golang.org/x/term"
	"golang.org/x/xerrors"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// Config is everything yieldcheck is told on the command line or through the environment.
type Config struct {
	Dir      string
	Tags     []string
	Tests    bool
	Format   string
	Color    string
	Patterns []string
}

func configFromContext(c *cli.Context) (*Config, error) {
	config := &Config{
		Dir:      c.String("dir"),
		Tags:     c.StringSlice("tags"),
		Tests:    c.BoolT("tests"),
		Format:   c.String("format"),
		Color:    c.String("color"),
		Patterns: c.Args(),
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) validate() error {
	switch config.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return xerrors.Errorf("--color must be %s, %s or %s, got %q", colorAuto, colorAlways, colorNever, config.Color)
	}
	if config.Format == "" {
		config.Format = defaultFormat
	}
	return nil
}

func (config *Config) useColor() bool {
	switch config.Color {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
