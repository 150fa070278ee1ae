// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package gui shows the decoded video signal in a window.
package gui

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"picovga/framebuffer"
	"picovga/logger"
	"picovga/session"
)

// Terminated is returned by Update to close the window.
var Terminated = errors.New("terminated")

var keys = []struct {
	key  ebiten.Key
	code byte
}{
	{ebiten.KeyS, session.KeyStartStop},
	{ebiten.KeyP, session.KeySnapshot},
	{ebiten.KeyQ, session.KeyQuit},
	{ebiten.KeyEscape, session.KeyEscape},
}

// Window implements the ebiten.Game interface.
type Window struct {
	session *session.Session

	// system clocks simulated per update
	StepsPerUpdate int

	// draw the status line
	ShowStatus bool

	// keys typed on the console, if any
	Console <-chan byte

	image  *ebiten.Image
	pixels []byte
	lut    [framebuffer.PaletteSlots][4]byte

	lastUpdateDuration time.Duration
}

// New is the preferred method of initialisation for the Window type.
func New(s *session.Session) *Window {
	w := &Window{
		session:        s,
		StepsPerUpdate: s.Machine.TicksPerFrame(),
		ShowStatus:     true,
		image:          ebiten.NewImage(framebuffer.ScreenWidth, framebuffer.ScreenHeight),
		pixels:         make([]byte, framebuffer.ScreenWidth*framebuffer.ScreenHeight*4),
	}
	for i := range w.lut {
		c := framebuffer.Color(i).ToRGBA()
		w.lut[i] = [4]byte{c.R, c.G, c.B, c.A}
	}
	return w
}

func (w *Window) key(code byte) error {
	err := w.session.Key(code)
	if errors.Is(err, session.Quit) {
		return Terminated
	}
	if err != nil {
		logger.Log("gui", err.Error())
	}
	return nil
}

func (w *Window) Update() error {
	startTime := time.Now()

	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			if err := w.key(k.code); err != nil {
				return err
			}
		}
	}

	if w.Console != nil {
	drain:
		for {
			select {
			case c, ok := <-w.Console:
				if !ok {
					w.Console = nil
					break drain
				}
				if err := w.key(c); err != nil {
					return err
				}
			default:
				break drain
			}
		}
	}

	err := w.session.Step(context.Background(), w.StepsPerUpdate)
	if err != nil {
		return err
	}

	w.lastUpdateDuration = time.Since(startTime)
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	frame := w.session.Display.Frame()
	for i, c := range frame.Pix {
		copy(w.pixels[i*4:], w.lut[c&framebuffer.PixelMask][:])
	}
	w.image.WritePixels(w.pixels)
	screen.DrawImage(w.image, nil)

	if w.ShowStatus {
		st := w.session.Status()
		state := "stopped"
		if st.Running {
			state = "running"
		}
		buf := fmt.Sprintf("%s %d MHz  frame %d  %s  %v", st.Profile, st.Clock/1_000_000,
			st.Display.Frames, state, w.lastUpdateDuration.Round(time.Millisecond))
		ebitenutil.DebugPrint(screen, buf)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return framebuffer.ScreenWidth, framebuffer.ScreenHeight
}

// Run opens the window and returns once it is closed.
func Run(w *Window, scale int) error {
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(framebuffer.ScreenWidth*scale, framebuffer.ScreenHeight*scale)
	ebiten.SetWindowTitle("picovga")

	err := ebiten.RunGame(w)
	if err != nil && !errors.Is(err, Terminated) {
		return err
	}
	return nil
}
