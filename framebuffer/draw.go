// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package framebuffer

// The drawing primitives never fail. Coordinates are clamped or dropped so
// that no word outside the framebuffer is ever touched, even when the
// result on screen is not what the caller intended.

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pattern is c repeated in every pixel slot of a word.
func pattern(c Color) uint32 {
	var w uint32
	for i := 0; i < PixelPerWord; i++ {
		w |= uint32(c&PixelMask) << (BitsPerPixel * i)
	}
	return w
}

// slots is the mask covering pixel slots from to to, inclusive.
func slots(from, to int) uint32 {
	var m uint32
	for i := from; i <= to; i++ {
		m |= PixelMask << (BitsPerPixel * i)
	}
	return m
}

func onScreen(x, y int) bool {
	return x >= 0 && y >= 0 && x < ScreenWidth && y < ScreenHeight
}

// SetPixel sets the pixel at (x, y). Coordinates are not clamped: an x
// beyond the edge of a row lands on the neighbouring row. A position
// outside the frame altogether is ignored.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	n := y*RowBits + x*BitsPerPixel
	if n < 0 || n >= ScreenHeight*RowBits {
		return
	}
	k, p := f.index(n)
	f.vmem[k] = f.vmem[k]&^(PixelMask<<p) | uint32(c&PixelMask)<<p
}

// Fill sets every pixel to c.
func (f *Framebuffer) Fill(c Color) {
	w := pattern(c)
	for i := range f.vmem {
		f.vmem[i] = w
	}
}

// HLine draws a horizontal line from x1 to x2 inclusive on row y. All
// coordinates are clamped to the screen.
func (f *Framebuffer) HLine(x1, x2, y int, c Color) {
	x1 = clamp(x1, 0, ScreenWidth-1)
	x2 = clamp(x2, 0, ScreenWidth-1)
	y = clamp(y, 0, ScreenHeight-1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}

	k1, p1 := f.index(y*RowBits + x1*BitsPerPixel)
	k2, p2 := f.index(y*RowBits + x2*BitsPerPixel)

	if k1 == k2 {
		for x := x1; x <= x2; x++ {
			f.SetPixel(x, y, c)
		}
		return
	}

	w := pattern(c)
	m1 := slots(p1/BitsPerPixel, PixelPerWord-1)
	m2 := slots(0, p2/BitsPerPixel)
	f.vmem[k1] = f.vmem[k1]&^m1 | w&m1
	f.vmem[k2] = f.vmem[k2]&^m2 | w&m2

	// whole words in between. the first word of the frame is the last word
	// of the buffer so the run continues from zero
	i := k1 + 1
	if i > len(f.vmem)-1 {
		i = 0
	}
	for ; i < k2; i++ {
		f.vmem[i] = w
	}
}

// VLine draws a vertical line in column x from y1 up to but not including
// y2. All coordinates are clamped to the screen.
func (f *Framebuffer) VLine(x, y1, y2 int, c Color) {
	x = clamp(x, 0, ScreenWidth-1)
	y1 = clamp(y1, 0, ScreenHeight-1)
	y2 = clamp(y2, 0, ScreenHeight-1)
	if y2 < y1 {
		y1, y2 = y2, y1
	}

	k1, p1 := f.PixelIndex(x, y1)
	nword := len(f.vmem) / ScreenHeight
	mask := uint32(PixelMask) << p1
	col := uint32(c&PixelMask) << p1
	for i := 0; i < y2-y1; i++ {
		k := (k1 + i*nword) % len(f.vmem)
		f.vmem[k] = f.vmem[k]&^mask | col
	}
}

// Rect draws the outline of the rectangle with corners (x1, y1) and
// (x2, y2).
func (f *Framebuffer) Rect(x1, y1, x2, y2 int, c Color) {
	f.HLine(x1, x2, y1, c)
	f.HLine(x1, x2, y2, c)
	f.VLine(x1, y1, y2, c)
	f.VLine(x2, y1, y2, c)
}

// FillRect fills the rows from the smaller of y1 and y2 up to but not
// including the larger.
func (f *Framebuffer) FillRect(x1, y1, x2, y2 int, c Color) {
	top, bottom := y1, y2
	if bottom < top {
		top, bottom = bottom, top
	}
	for j := top; j < bottom; j++ {
		f.HLine(x1, x2, j, c)
	}
}

// midpoint walks one quadrant of a circle of radius r, calling plot with
// an offset for every step. xp runs from -r up to 0.
func midpoint(r int, plot func(xp, yp int)) {
	xp := -r
	yp := 0
	err := 2 - 2*r
	for {
		plot(xp, yp)
		e2 := err
		if e2 <= yp {
			yp++
			err += yp*2 + 1
			if -xp == yp && e2 <= xp {
				e2 = 0
			}
		}
		if e2 > xp {
			xp++
			err += xp*2 + 1
		}
		if xp > 0 {
			return
		}
	}
}

// Circle draws the outline of a circle centred on (x, y). Nothing is drawn
// if the centre is off screen or r is negative.
func (f *Framebuffer) Circle(x, y, r int, c Color) {
	if !onScreen(x, y) || r < 0 {
		return
	}
	midpoint(r, func(xp, yp int) {
		f.SetPixel(x-xp, y+yp, c)
		f.SetPixel(x-xp, y-yp, c)
		f.SetPixel(x+xp, y+yp, c)
		f.SetPixel(x+xp, y-yp, c)
	})
}

// FillDisk draws a filled circle centred on (x, y). Nothing is drawn if
// the centre is off screen or r is negative.
func (f *Framebuffer) FillDisk(x, y, r int, c Color) {
	if !onScreen(x, y) || r < 0 {
		return
	}
	midpoint(r, func(xp, yp int) {
		f.HLine(x-xp, x+xp, y+yp, c)
		f.HLine(x-xp, x+xp, y-yp, c)
	})
}
