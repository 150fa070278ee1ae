// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package framebuffer_test

import (
	"math/rand"
	"testing"

	"picovga/framebuffer"
	"picovga/test"
)

func words(fb *framebuffer.Framebuffer) []uint32 {
	w := make([]uint32, fb.Len())
	for i := range w {
		w[i] = fb.Word(i)
	}
	return w
}

func expectSame(t *testing.T, a, b *framebuffer.Framebuffer, tags ...any) {
	t.Helper()
	wa := words(a)
	wb := words(b)
	for i := range wa {
		if wa[i] != wb[i] {
			t.Fatalf("%v: word %d differs: %08x != %08x", tags, i, wa[i], wb[i])
		}
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// reference horizontal line made from single pixels
func slowHLine(fb *framebuffer.Framebuffer, x1, x2, y int, c framebuffer.Color) {
	x1 = clampInt(x1, 0, framebuffer.ScreenWidth-1)
	x2 = clampInt(x2, 0, framebuffer.ScreenWidth-1)
	y = clampInt(y, 0, framebuffer.ScreenHeight-1)
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		fb.SetPixel(x, y, c)
	}
}

func TestHLineAgainstPixels(t *testing.T) {
	rnd := rand.New(rand.NewSource(2600))
	fast := framebuffer.New()
	slow := framebuffer.New()
	fast.Fill(framebuffer.Blue)
	slow.Fill(framebuffer.Blue)

	for i := 0; i < 2000; i++ {
		x1 := rnd.Intn(720) - 40
		x2 := rnd.Intn(720) - 40
		y := rnd.Intn(500) - 10
		c := framebuffer.Color(rnd.Intn(framebuffer.PaletteSlots))
		fast.HLine(x1, x2, y, c)
		slowHLine(slow, x1, x2, y, c)
		expectSame(t, fast, slow, x1, x2, y)
	}
}

func TestHLineSwapSymmetry(t *testing.T) {
	rnd := rand.New(rand.NewSource(525))
	for i := 0; i < 200; i++ {
		a := framebuffer.New()
		b := framebuffer.New()
		x1 := rnd.Intn(800) - 80
		x2 := rnd.Intn(800) - 80
		y := rnd.Intn(480)
		a.HLine(x1, x2, y, framebuffer.Magenta)
		b.HLine(x2, x1, y, framebuffer.Magenta)
		expectSame(t, a, b, x1, x2, y)
	}
}

func TestHLineClamped(t *testing.T) {
	for _, y := range []int{10, 0, framebuffer.ScreenHeight - 1} {
		fb := framebuffer.New()
		fb.HLine(-5, 700, y, framebuffer.Green)
		for yy := 0; yy < framebuffer.ScreenHeight; yy++ {
			for x := 0; x < framebuffer.ScreenWidth; x++ {
				want := framebuffer.Black
				if yy == y {
					want = framebuffer.Green
				}
				if got := fb.Pixel(x, yy); got != want {
					t.Fatalf("row %d: (%d, %d) got %v want %v", y, x, yy, got, want)
				}
			}
		}
	}
}

func TestHLineWithinWord(t *testing.T) {
	fb := framebuffer.New()
	fb.HLine(12, 15, 3, framebuffer.Red)
	for x := 10; x < 20; x++ {
		want := framebuffer.Black
		if x >= 12 && x <= 15 {
			want = framebuffer.Red
		}
		test.ExpectEquality(t, fb.Pixel(x, 3), want, x)
	}

	// single pixel line
	fb.HLine(0, 0, 0, framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(0, 0), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(1, 0), framebuffer.Black)
}

func TestVLine(t *testing.T) {
	fb := framebuffer.New()
	fb.VLine(5, 700, -3, framebuffer.Cyan)
	for y := 0; y < framebuffer.ScreenHeight; y++ {
		want := framebuffer.Cyan
		if y == framebuffer.ScreenHeight-1 {
			want = framebuffer.Black
		}
		test.ExpectEquality(t, fb.Pixel(5, y), want, y)
		test.ExpectEquality(t, fb.Pixel(4, y), framebuffer.Black, y)
		test.ExpectEquality(t, fb.Pixel(6, y), framebuffer.Black, y)
	}

	fb = framebuffer.New()
	fb.VLine(300, 100, 50, framebuffer.Yellow)
	for y := 0; y < framebuffer.ScreenHeight; y++ {
		want := framebuffer.Black
		if y >= 50 && y < 100 {
			want = framebuffer.Yellow
		}
		test.ExpectEquality(t, fb.Pixel(300, y), want, y)
	}
}

func TestRect(t *testing.T) {
	fb := framebuffer.New()
	fb.Rect(500, 50, 620, 70, framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(500, 50), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(620, 50), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(500, 70), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(620, 70), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(560, 50), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(500, 60), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(620, 60), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(560, 60), framebuffer.Black)
	test.ExpectEquality(t, fb.Pixel(499, 60), framebuffer.Black)
	test.ExpectEquality(t, fb.Pixel(621, 60), framebuffer.Black)
}

func TestFillRect(t *testing.T) {
	fb := framebuffer.New()
	fb.FillRect(200, 205, 205, 150, framebuffer.White)
	for y := 140; y < 215; y++ {
		for x := 190; x < 215; x++ {
			want := framebuffer.Black
			if x >= 200 && x <= 205 && y >= 150 && y < 205 {
				want = framebuffer.White
			}
			test.ExpectEquality(t, fb.Pixel(x, y), want, x, y)
		}
	}
}

func TestCircleOffScreen(t *testing.T) {
	fb := framebuffer.New()
	fb.Fill(framebuffer.White)
	fb.FillRect(20, 20, 150, 150, framebuffer.Black)
	before := framebuffer.New()
	for i := 0; i < fb.Len(); i++ {
		before.SetWord(i, fb.Word(i))
	}

	fb.Circle(-10, -10, 5, framebuffer.Red)
	fb.FillDisk(-10, -10, 5, framebuffer.Red)
	fb.Circle(640, 100, 5, framebuffer.Red)
	fb.FillDisk(100, 480, 5, framebuffer.Red)
	fb.Circle(100, 100, -5, framebuffer.Red)
	expectSame(t, fb, before)
}

func TestCircle(t *testing.T) {
	fb := framebuffer.New()
	fb.Circle(150, 150, 98, framebuffer.Cyan)
	test.ExpectEquality(t, fb.Pixel(150+98, 150), framebuffer.Cyan)
	test.ExpectEquality(t, fb.Pixel(150-98, 150), framebuffer.Cyan)
	test.ExpectEquality(t, fb.Pixel(150, 150+98), framebuffer.Cyan)
	test.ExpectEquality(t, fb.Pixel(150, 150-98), framebuffer.Cyan)
	test.ExpectEquality(t, fb.Pixel(150, 150), framebuffer.Black)

	// every plotted pixel is close to the radius
	for y := 0; y < framebuffer.ScreenHeight; y++ {
		for x := 0; x < framebuffer.ScreenWidth; x++ {
			if fb.Pixel(x, y) != framebuffer.Cyan {
				continue
			}
			dx, dy := x-150, y-150
			d := dx*dx + dy*dy
			if d < 97*97 || d > 99*99 {
				t.Fatalf("(%d, %d) is not on the circle", x, y)
			}
		}
	}

	// radius zero is the centre alone
	fb = framebuffer.New()
	fb.Circle(10, 10, 0, framebuffer.Red)
	test.ExpectEquality(t, fb.Pixel(10, 10), framebuffer.Red)
	test.ExpectEquality(t, fb.Pixel(11, 10), framebuffer.Black)
}

func TestFillDisk(t *testing.T) {
	fb := framebuffer.New()
	fb.FillDisk(320, 240, 50, framebuffer.White)
	fb.FillDisk(320, 240, 30, framebuffer.Red)

	for y := 240 - 60; y <= 240+60; y++ {
		for x := 320 - 60; x <= 320+60; x++ {
			dx, dy := x-320, y-240
			d := dx*dx + dy*dy
			got := fb.Pixel(x, y)
			switch {
			case d <= 29*29:
				test.DemandEquality(t, got, framebuffer.Red, x, y)
			case d >= 31*31 && d <= 49*49:
				test.DemandEquality(t, got, framebuffer.White, x, y)
			case d >= 51*51:
				test.DemandEquality(t, got, framebuffer.Black, x, y)
			}
		}
	}

	test.ExpectEquality(t, fb.Pixel(320+30, 240), framebuffer.Red)
	test.ExpectEquality(t, fb.Pixel(320-30, 240), framebuffer.Red)
	test.ExpectEquality(t, fb.Pixel(320+50, 240), framebuffer.White)
	test.ExpectEquality(t, fb.Pixel(320, 240+50), framebuffer.White)
}

func TestTestPattern(t *testing.T) {
	f := framebuffer.New()
	f.TestPattern()

	for _, p := range []struct {
		x, y int
		c    framebuffer.Color
	}{
		// checker squares
		{5, 5, framebuffer.Black},
		{85, 5, framebuffer.Red},
		{5, 65, framebuffer.Red},
		{630, 5, framebuffer.White},
		{630, 475, framebuffer.Cyan},

		// rectangles
		{50, 50, framebuffer.Black},
		{100, 300, framebuffer.Blue},

		// concentric disks
		{320, 240, framebuffer.White},
		{380, 240, framebuffer.Green},
		{420, 240, framebuffer.Red},
		{455, 240, framebuffer.Black},
	} {
		test.ExpectEquality(t, f.Pixel(p.x, p.y), p.c, p.x, ",", p.y)
	}
}
