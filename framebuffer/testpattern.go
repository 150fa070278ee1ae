// Copyright 2021-2024 Sebastian Lederer. See the file LICENSE.md for details

package framebuffer

// TestPattern draws an eight colour checker of 80x60 squares with a few
// rectangles, circles and concentric disks on top.
func (f *Framebuffer) TestPattern() {
	const (
		squareWidth  = ScreenWidth / PaletteSlots
		squareHeight = ScreenHeight / PaletteSlots
	)
	for row := 0; row < PaletteSlots; row++ {
		for i := 0; i < squareHeight; i++ {
			for col := 0; col < PaletteSlots; col++ {
				c := Color((row + col) % PaletteSlots)
				f.HLine(col*squareWidth, col*squareWidth+squareWidth-1, row*squareHeight+i, c)
			}
		}
	}

	f.FillRect(20, 20, 150, 150, Black)
	f.FillRect(20, 200, 150, 400, Blue)
	f.FillRect(200, 205, 205, 150, White)
	f.FillRect(300, 415, 350, 300, Yellow)
	f.FillRect(550, 450, 640, 150, Cyan)
	f.Circle(100, 400, 75, Yellow)
	f.Circle(150, 150, 98, Cyan)
	f.FillDisk(320, 240, 150, Black)
	f.FillDisk(320, 240, 120, Red)
	f.FillDisk(320, 240, 80, Green)
	f.FillDisk(320, 240, 50, White)
	f.Rect(500, 50, 620, 70, Black)
	f.Rect(100, 390, 600, 480, Red)
}
