// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

// Package snapshot writes decoded frames to image files.
package snapshot

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/bmp"
)

// ErrFormat is the cause of the error returned by Save for a file
// extension it can't write.
var ErrFormat = errors.New("unsupported image format")

// Options control how a frame is rendered.
type Options struct {
	// each pixel becomes a Scale x Scale block. zero is the same as one
	Scale int

	// drawn in the bottom left corner when not empty
	Caption string
}

// Render scales img without smoothing and draws the caption.
func Render(img image.Image, opts Options) image.Image {
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)

	if opts.Caption == "" {
		return out
	}

	dc := gg.NewContextForRGBA(out)
	_, h := dc.MeasureString(opts.Caption)
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(0, float64(out.Bounds().Dy())-h-6, float64(out.Bounds().Dx()), h+6)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(opts.Caption, 3, float64(out.Bounds().Dy())-3, 0, 0)
	return dc.Image()
}

// Save renders img and writes it to path. The format is chosen by the file
// extension, either .png or .bmp.
func Save(path string, img image.Image, opts Options) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".bmp":
	default:
		return errors.Wrapf(ErrFormat, "%s", path)
	}

	out := Render(img, opts)

	if ext == ".png" {
		return errors.Wrap(gg.SavePNG(path, out), "snapshot")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	err = bmp.Encode(f, out)
	if err != nil {
		f.Close()
		return errors.Wrap(err, "snapshot")
	}
	return errors.Wrap(f.Close(), "snapshot")
}
