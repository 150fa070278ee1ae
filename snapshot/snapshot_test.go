// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package snapshot_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"picovga/framebuffer"
	"picovga/snapshot"
	"picovga/test"
)

func checker() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, 8, 6), framebuffer.Palette())
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetColorIndex(x, y, uint8((x+y)%framebuffer.PaletteSlots))
		}
	}
	return img
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2
}

func TestRender(t *testing.T) {
	src := checker()
	out := snapshot.Render(src, snapshot.Options{Scale: 3})
	test.ExpectEquality(t, out.Bounds(), image.Rect(0, 0, 24, 18))

	// no smoothing between neighbours
	for y := 0; y < 18; y++ {
		for x := 0; x < 24; x++ {
			if !sameColor(out.At(x, y), src.At(x/3, y/3)) {
				t.Fatalf("pixel %d,%d differs from source %d,%d", x, y, x/3, y/3)
			}
		}
	}

	out = snapshot.Render(src, snapshot.Options{})
	test.ExpectEquality(t, out.Bounds(), src.Bounds())
}

func TestCaption(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 200, 100), framebuffer.Palette())
	out := snapshot.Render(src, snapshot.Options{Scale: 1, Caption: "frame 1"})
	test.ExpectEquality(t, out.Bounds(), src.Bounds())

	// the top of the picture is untouched
	test.ExpectEquality(t, sameColor(out.At(100, 10), framebuffer.Black.ToRGBA()), true)

	// something white was drawn along the bottom
	var lit bool
	for y := 80; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if sameColor(out.At(x, y), framebuffer.White.ToRGBA()) {
				lit = true
			}
		}
	}
	test.ExpectEquality(t, lit, true)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	src := checker()

	path := filepath.Join(dir, "frame.png")
	test.DemandSuccess(t, snapshot.Save(path, src, snapshot.Options{Scale: 2}))
	f, err := os.Open(path)
	test.DemandSuccess(t, err)
	img, err := png.Decode(f)
	f.Close()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds(), image.Rect(0, 0, 16, 12))
	test.ExpectEquality(t, sameColor(img.At(3, 1), src.At(1, 0)), true)

	path = filepath.Join(dir, "frame.BMP")
	test.DemandSuccess(t, snapshot.Save(path, src, snapshot.Options{}))
	f, err = os.Open(path)
	test.DemandSuccess(t, err)
	img, err = bmp.Decode(f)
	f.Close()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds(), src.Bounds())
	test.ExpectEquality(t, sameColor(img.At(7, 5), src.At(7, 5)), true)

	err = snapshot.Save(filepath.Join(dir, "frame.gif"), src, snapshot.Options{})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, errors.Cause(err), snapshot.ErrFormat)
}
