// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package capture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"picovga/capture"
	"picovga/hardware/bus"
	"picovga/hardware/pio"
	"picovga/test"
)

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.wav")
	r, err := capture.New(path, 10, 1000, 0)
	test.DemandSuccess(t, err)

	// both syncs high from the start, hsync pulsing low between 25 and 45
	r.PinsChanged(0, 1<<pio.PinHSync|1<<pio.PinVSync)
	r.PinsChanged(25, 1<<pio.PinVSync)
	r.PinsChanged(45, 1<<pio.PinHSync|1<<pio.PinVSync|1<<pio.PinRed)

	// samples at ticks 0, 10, ... 60
	test.DemandSuccess(t, r.End(60))
	test.ExpectEquality(t, r.Samples(), 7)

	f, err := os.Open(path)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandEquality(t, dec.IsValidFile(), true)
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.NumChans), len(capture.Pins))
	test.ExpectEquality(t, int(dec.SampleRate), 1000)
	test.DemandEquality(t, len(buf.Data), 7*len(capture.Pins))

	level := func(sample int, channel int) bool {
		return buf.Data[sample*len(capture.Pins)+channel] != 0
	}

	// channel 3 is hsync, channel 4 vsync and channel 0 red
	hsync := []bool{true, true, true, false, false, true, true}
	for i, h := range hsync {
		test.ExpectEquality(t, level(i, 3), h, "hsync sample ", i)
		test.ExpectEquality(t, level(i, 4), true, "vsync sample ", i)
		test.ExpectEquality(t, level(i, 0), i > 4, "red sample ", i)
	}
}

func TestLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.wav")
	r, err := capture.New(path, 1, 1000, 5)
	test.DemandSuccess(t, err)

	r.PinsChanged(100, bus.Word(1<<pio.PinVSync))
	test.ExpectEquality(t, r.Samples(), 5)
	test.DemandSuccess(t, r.End(200))
	test.ExpectEquality(t, r.Samples(), 5)
}

func TestBadInterval(t *testing.T) {
	_, err := capture.New("pins.wav", 0, 1000, 0)
	test.ExpectFailure(t, err)
	_, err = capture.New("pins.wav", 1, 0, 0)
	test.ExpectFailure(t, err)
}
