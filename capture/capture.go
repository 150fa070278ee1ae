// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package capture records the video output pins to a WAV file, one channel
// per pin, so the signal can be inspected with any audio editor the way it
// would be with a logic analyser. Samples are buffered in memory and
// written when recording ends.
package capture

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"picovga/hardware/bus"
	"picovga/hardware/pio"
	"picovga/logger"
)

// Pins lists the recorded pins in channel order.
var Pins = []int{pio.PinRed, pio.PinGreen, pio.PinBlue, pio.PinHSync, pio.PinVSync}

// sample values for the two pin levels
const (
	low  = 0
	high = 0x7fff

	bitDepth = 16

	// WAVE_FORMAT_PCM
	formatPCM = 1
)

// DefaultLimit is the number of samples per channel kept by a Recorder
// created with a zero limit.
const DefaultLimit = 1 << 22

// Recorder implements the pio.Probe interface.
type Recorder struct {
	filename string
	every    uint64
	rate     int
	limit    int

	pins    bus.Word
	next    uint64
	count   int
	full    bool
	samples []int
}

// New is the preferred method of initialisation for the Recorder type. The
// pins are sampled every n system clocks; rate is the sample rate written
// to the file header, normally the system clock divided by n.
func New(filename string, n int, rate int, limit int) (*Recorder, error) {
	if n < 1 {
		return nil, errors.Errorf("capture: bad sample interval %d", n)
	}
	if rate < 1 {
		return nil, errors.Errorf("capture: bad sample rate %d", rate)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recorder{
		filename: filename,
		every:    uint64(n),
		rate:     rate,
		limit:    limit,
		samples:  make([]int, 0, len(Pins)*1024),
	}, nil
}

// advance takes every sample due before tick
func (r *Recorder) advance(tick uint64) {
	for r.next < tick {
		if r.count >= r.limit {
			if !r.full {
				logger.Logf("capture", "sample limit of %d reached", r.limit)
				r.full = true
			}
			return
		}
		for _, p := range Pins {
			if r.pins&(1<<p) != 0 {
				r.samples = append(r.samples, high)
			} else {
				r.samples = append(r.samples, low)
			}
		}
		r.count++
		r.next += r.every
	}
}

// PinsChanged implements the pio.Probe interface.
func (r *Recorder) PinsChanged(tick uint64, pins bus.Word) {
	r.advance(tick)
	r.pins = pins
}

// PinsOut implements the pio.Probe interface.
func (r *Recorder) PinsOut(tick uint64, pins bus.Word) {
}

// Samples is the number of samples per channel taken so far.
func (r *Recorder) Samples() int {
	return r.count
}

// End takes the samples due up to and including tick and writes the file.
func (r *Recorder) End(tick uint64) (rerr error) {
	r.advance(tick + 1)

	f, err := os.Create(r.filename)
	if err != nil {
		return errors.Wrap(err, "capture")
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = errors.Wrap(err, "capture")
		}
	}()

	enc := wav.NewEncoder(f, r.rate, bitDepth, len(Pins), formatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(Pins),
			SampleRate:  r.rate,
		},
		Data:           r.samples,
		SourceBitDepth: bitDepth,
	}
	err = enc.Write(buf)
	if err != nil {
		return errors.Wrap(err, "capture")
	}
	err = enc.Close()
	if err != nil {
		return errors.Wrap(err, "capture")
	}

	logger.Logf("capture", "wrote %d samples to %s", r.count, r.filename)
	return nil
}
