// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"picovga/capture"
	"picovga/config"
	"picovga/dashboard"
	"picovga/framebuffer"
	"picovga/gui"
	"picovga/logger"
	"picovga/session"
	"picovga/vga"
)

func main() {
	log.SetFlags(0)

	cfg, err := config.New(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Printf("picovga: %v", err)
		os.Exit(2)
	}
	if cfg.Log {
		logger.SetEcho(os.Stderr)
	}

	err = run(cfg)
	if err != nil {
		log.Printf("picovga: %v", err)
		if !cfg.Log {
			logger.Tail(os.Stderr, 10)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	m := vga.NewMachine(cfg.Profile())
	if err := m.Boot(); err != nil {
		return err
	}

	logger.Logf("main", "frame buffer: %d words, %d bits (%d usable), %.3f kB",
		framebuffer.Words, framebuffer.Words*32, framebuffer.Words*framebuffer.UsableBits,
		float64(framebuffer.Words*4)/1024)

	s := session.New(m, cfg.Snapshot, cfg.Scale)

	var rec *capture.Recorder
	if cfg.Capture != "" {
		var err error
		rate := m.PLL.Frequency() / cfg.CaptureEvery
		rec, err = capture.New(cfg.Capture, cfg.CaptureEvery, rate, 0)
		if err != nil {
			return err
		}
		m.AddProbe(rec)
	}

	// output runs while the picture is drawn, the same as on hardware
	if err := m.Controller.Start(); err != nil {
		return err
	}
	m.Frame.TestPattern()

	switch cfg.Mode() {
	case config.Headless:
		return headless(cfg, s, rec)
	case config.Dashboard:
		return dashboard.Run(dashboard.New(s))
	}
	return window(cfg, s)
}

func headless(cfg *config.Config, s *session.Session, rec *capture.Recorder) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := s.Machine
	for i := 0; i < cfg.Frames; i++ {
		if err := m.Run(ctx, m.TicksPerFrame()); err != nil {
			logger.Logf("main", "interrupted after %d frames", i)
			break
		}
	}

	if rec != nil {
		if err := rec.End(m.Ticks()); err != nil {
			return err
		}
	}
	if cfg.Snapshot != "" {
		if _, err := s.Snapshot(); err != nil {
			return err
		}
	}

	st := s.Status()
	fmt.Printf("%d frames, %d lines of %d pixels, %d DMA words, %d underruns\n",
		st.Display.Frames, st.Display.Lines, st.Display.Pixels/max(st.Display.Lines, 1),
		st.Transfers, st.Underruns)
	return nil
}

func window(cfg *config.Config, s *session.Session) error {
	w := gui.New(s)

	oldState, err := SetRawConsole()
	if err != nil {
		logger.Logf("main", "no console keys: %v", err)
	} else {
		defer RestoreConsole(oldState)

		ch := make(chan byte)
		go func(ch chan byte) {
			for {
				buf := make([]byte, 1)
				n, err := ConsoleRead(buf)
				if err != nil {
					close(ch)
					return
				}
				if n > 0 {
					ch <- buf[0]
				}
			}
		}(ch)
		w.Console = ch
	}

	return gui.Run(w, cfg.Scale)
}
