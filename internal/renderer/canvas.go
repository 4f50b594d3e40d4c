// Package renderer owns the terminal image-protocol byte stream per
// §4.10: it emits the content, cursor, toolbar, and blank-page draws
// and coordinates their dirty flags. Step ordering, fixed image ids,
// the frame-resize delete-before-redraw rule, and the single
// flush-per-pass discipline are all grounded directly on §4.10 and
// §5's "exclusive to the renderer" resource policy, since no donor
// package owns an image-protocol byte stream; the buffered-writer
// shape is carried over from internal/termimg/sink.go.
package renderer

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// newCanvas allocates an RGBA image filled with bg.
func newCanvas(widthPx, heightPx int, bg color.RGBA) *image.RGBA {
	if widthPx < 1 {
		widthPx = 1
	}
	if heightPx < 1 {
		heightPx = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// drawText draws s with its baseline at (x, y) using a fixed-width
// bitmap font; good enough for a toolbar label or a blank-page legend
// line, not a general text layout engine.
func drawText(img *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth returns the pixel width s would occupy when drawn with
// drawText, for centering.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

// fillRect fills a sub-rectangle of img with col.
func fillRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// rectAt builds an image.Rectangle from a top-left point and size.
func rectAt(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
