package renderer

import (
	"image/color"
	"sync"
)

const (
	cursorWidthPx  = 10
	cursorHeightPx = 14
)

var (
	cursorOnce sync.Once
	cursorPix  []byte
)

// cursorGlyph lazily builds a small arrow-shaped RGBA cursor overlay,
// built once and reused across frames since the glyph never changes.
func cursorGlyph() []byte {
	cursorOnce.Do(func() {
		img := newCanvas(cursorWidthPx, cursorHeightPx, color.RGBA{})
		white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		black := color.RGBA{A: 0xff}
		// A simple filled-triangle arrow, outlined for visibility over
		// both light and dark page backgrounds.
		for y := 0; y < cursorHeightPx; y++ {
			width := y + 1
			if width > cursorWidthPx {
				width = cursorWidthPx
			}
			for x := 0; x < width; x++ {
				c := white
				if x == width-1 || y == cursorHeightPx-1 {
					c = black
				}
				img.Set(x, y, c)
			}
		}
		cursorPix = img.Pix
	})
	return cursorPix
}

// CursorInput places the cursor overlay at a terminal cell with
// sub-cell pixel precision.
type CursorInput struct {
	Visible  bool
	Col, Row int // 1-based terminal cell, same convention as Sink.MoveCursor
	SubXPx   int
	SubYPx   int
}
