// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package config collects the command line options.
package config

import (
	"flag"
	"io"

	"github.com/pkg/errors"

	"picovga/hardware/clocks"
)

// Mode is the way the machine is presented.
type Mode int

const (
	Window Mode = iota
	Dashboard
	Headless
)

func (m Mode) String() string {
	switch m {
	case Window:
		return "window"
	case Dashboard:
		return "dashboard"
	case Headless:
		return "headless"
	}
	return "unknown"
}

// Config holds all application configuration values.
type Config struct {
	Overclock bool
	TUI       bool

	// run for this many frames without a window. zero means run
	// interactively
	Frames int

	Snapshot string
	Scale    int

	Capture      string
	CaptureEvery int

	// echo the log to stderr
	Log bool
}

// New creates a Config populated from args, which should not include the
// program name. Usage and parse errors are written to output.
func New(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("picovga", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cfg.Overclock, "overclock", false, "Run the core at 250MHz instead of 125MHz")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show a terminal dashboard instead of a window")
	fs.IntVar(&cfg.Frames, "frames", 0, "Run for this many frames without a window and exit")
	fs.StringVar(&cfg.Snapshot, "snapshot", "", "Save snapshots to this file (.png or .bmp, %d is replaced by a counter)")
	fs.IntVar(&cfg.Scale, "scale", 1, "Scale factor for the window and snapshots (1-8)")
	fs.StringVar(&cfg.Capture, "capture", "", "Record the output pins to this WAV file")
	fs.IntVar(&cfg.CaptureEvery, "capture-every", 5, "Sample the pins every this many system clocks")
	fs.BoolVar(&cfg.Log, "log", false, "Echo log messages to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Frames < 0 {
		return errors.Errorf("frames must not be negative: %d", cfg.Frames)
	}
	if cfg.Scale < 1 || cfg.Scale > 8 {
		return errors.Errorf("scale must be between 1 and 8: %d", cfg.Scale)
	}
	if cfg.CaptureEvery < 1 {
		return errors.Errorf("capture-every must be at least 1: %d", cfg.CaptureEvery)
	}
	if cfg.TUI && cfg.Frames > 0 {
		return errors.New("-tui and -frames can't be used together")
	}
	if cfg.Capture != "" && cfg.Frames == 0 {
		return errors.New("-capture needs -frames")
	}
	return nil
}

// Profile is the timing profile selected by the options.
func (cfg *Config) Profile() clocks.Profile {
	if cfg.Overclock {
		return clocks.Overclocked
	}
	return clocks.Standard
}

// Mode is the front end selected by the options.
func (cfg *Config) Mode() Mode {
	switch {
	case cfg.Frames > 0:
		return Headless
	case cfg.TUI:
		return Dashboard
	}
	return Window
}
