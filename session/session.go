// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package session ties a running machine to the decoder watching it and to
// the controls offered to the user: start/stop, snapshot and quit. Every
// front end (window, dashboard, console) drives the machine through a
// Session.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"picovga/display"
	"picovga/logger"
	"picovga/snapshot"
	"picovga/vga"
)

// Quit is returned by Key when the user asks to leave.
var Quit = errors.New("quit")

// Key codes understood by Key. Upper case letters are accepted too.
const (
	KeyStartStop = 's'
	KeySnapshot  = 'p'
	KeyQuit      = 'q'
	KeyEscape    = 27
	KeyInterrupt = 3
)

// Status is a summary of the machine for display by a front end.
type Status struct {
	Running bool
	Profile string
	Clock   int
	Ticks   uint64
	Display display.Stats

	Transfers   uint64
	Completions uint64
	Underruns   uint64

	LastSnapshot string
}

// Session is a machine with a display attached.
type Session struct {
	Machine *vga.Machine
	Display *display.Display

	// snapshot file name. a %d verb is replaced by a sequence number
	SnapshotPath  string
	SnapshotScale int

	snapshots    int
	lastSnapshot string
}

// New is the preferred method of initialisation for the Session type. The
// machine should already have been booted.
func New(m *vga.Machine, snapshotPath string, scale int) *Session {
	s := &Session{
		Machine:       m,
		Display:       display.New(),
		SnapshotPath:  snapshotPath,
		SnapshotScale: scale,
	}
	m.AddProbe(s.Display)
	return s
}

// Running returns true while video output is enabled.
func (s *Session) Running() bool {
	return s.Machine.Controller.Running()
}

// Toggle starts video output if it is stopped and stops it otherwise.
func (s *Session) Toggle() error {
	if s.Running() {
		logger.Log("session", "stop")
		return s.Machine.Controller.Stop()
	}
	logger.Log("session", "start")
	return s.Machine.Controller.Start()
}

// Step runs the machine for n system clocks. Nothing happens while output
// is stopped.
func (s *Session) Step(ctx context.Context, n int) error {
	if !s.Running() {
		return nil
	}
	return s.Machine.Run(ctx, n)
}

// Snapshot saves the last complete frame and returns the file name used.
func (s *Session) Snapshot() (string, error) {
	if s.SnapshotPath == "" {
		return "", errors.New("snapshot: no file name")
	}

	path := s.SnapshotPath
	if strings.Contains(path, "%") {
		path = fmt.Sprintf(path, s.snapshots)
	}
	s.snapshots++

	caption := fmt.Sprintf("%s frame %d", s.Machine.Profile.Name, s.Display.Stats().Frames)
	err := snapshot.Save(path, s.Display.Frame(), snapshot.Options{
		Scale:   s.SnapshotScale,
		Caption: caption,
	})
	if err != nil {
		return "", err
	}

	logger.Logf("session", "snapshot saved to %s", path)
	s.lastSnapshot = path
	return path, nil
}

// Key performs the action for key k. Unknown keys are ignored. Quit is
// returned for the keys that end the session.
func (s *Session) Key(k byte) error {
	switch k {
	case KeyStartStop, KeyStartStop - 'a' + 'A':
		return s.Toggle()
	case KeySnapshot, KeySnapshot - 'a' + 'A':
		_, err := s.Snapshot()
		return err
	case KeyQuit, KeyQuit - 'a' + 'A', KeyEscape, KeyInterrupt:
		return Quit
	}
	return nil
}

// Status summarises the machine.
func (s *Session) Status() Status {
	m := s.Machine
	inner := m.DMA.Channel(vga.InnerChannel)
	return Status{
		Running:      s.Running(),
		Profile:      m.Profile.Name,
		Clock:        m.PLL.Frequency(),
		Ticks:        m.Ticks(),
		Display:      s.Display.Stats(),
		Transfers:    inner.Transfers,
		Completions:  inner.Completions,
		Underruns:    m.PIO.StateMachine(vga.SMSerializer).Starved,
		LastSnapshot: s.lastSnapshot,
	}
}
