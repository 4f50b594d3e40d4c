package renderer

import "image/color"

var (
	blankBackground = color.RGBA{R: 0x14, G: 0x14, B: 0x18, A: 0xff}
	blankLegendText = color.RGBA{R: 0xc0, G: 0xc4, B: 0xcc, A: 0xff}
)

// blankLegendLines is the centered shortcut legend shown over the
// dark background while the current URL is about:blank, about:newtab,
// or empty, per §4.10's blank-page handling.
var blankLegendLines = []string{
	"termweb",
	"",
	"mod+l   focus address bar",
	"mod+t   tab picker",
	"mod+h   hint mode",
	"mod+q   quit",
}

const lineHeightPx = 18

// BuildBlankPlaceholder renders the blank-page placeholder as raw RGBA
// pixel bytes ready for termimg.DrawParams.Data with FormatRGBA.
func BuildBlankPlaceholder(widthPx, heightPx int) []byte {
	img := newCanvas(widthPx, heightPx, blankBackground)

	totalHeight := len(blankLegendLines) * lineHeightPx
	startY := (heightPx-totalHeight)/2 + lineHeightPx
	for i, line := range blankLegendLines {
		if line == "" {
			continue
		}
		w := textWidth(line)
		x := (widthPx - w) / 2
		if x < 0 {
			x = 0
		}
		drawText(img, x, startY+i*lineHeightPx, line, blankLegendText)
	}

	return img.Pix
}
