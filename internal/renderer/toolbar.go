package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/termweb/termweb/internal/termimg"
)

var (
	toolbarBackground   = color.RGBA{R: 0x22, G: 0x24, B: 0x2a, A: 0xff}
	toolbarFieldBg      = color.RGBA{R: 0x33, G: 0x36, B: 0x3e, A: 0xff}
	toolbarText         = color.RGBA{R: 0xe8, G: 0xe8, B: 0xec, A: 0xff}
	toolbarTextDisabled = color.RGBA{R: 0x60, G: 0x62, B: 0x68, A: 0xff}
	toolbarCaret        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ToolbarState is everything the toolbar needs to redraw itself. Its
// zero value is a blank address bar with back and forward disabled;
// the reload button is always drawn enabled.
type ToolbarState struct {
	URL          string
	EditingURL   bool // true in UrlPrompt mode
	CursorRune   int  // caret position within URL/EditingURL, in runes
	CanGoBack    bool
	CanGoForward bool
	IsLoading    bool
	InHintMode   bool
	ActiveTabIdx int
	TabCount     int
}

const (
	buttonColW = 4 * 7 // four 7px-wide glyph cells per button label
	fieldPadPx = 6
)

// BuildToolbarImage renders the toolbar bar as raw RGBA bytes sized
// widthPx x heightPx (normally one terminal row tall).
func BuildToolbarImage(s ToolbarState, widthPx, heightPx int) []byte {
	img := newCanvas(widthPx, heightPx, toolbarBackground)

	baseline := heightPx - heightPx/3
	x := fieldPadPx

	back := "<"
	fwd := ">"
	reload := "⟳"
	if s.IsLoading {
		reload = "x"
	}

	drawButton(img, &x, back, s.CanGoBack, baseline)
	drawButton(img, &x, fwd, s.CanGoForward, baseline)
	drawButton(img, &x, reload, true, baseline)

	fieldX := x + fieldPadPx
	fieldW := widthPx - fieldX - fieldPadPx
	if fieldW < 0 {
		fieldW = 0
	}
	fillRect(img, rectAt(fieldX, 2, fieldW, heightPx-4), toolbarFieldBg)

	label := s.URL
	if label == "" {
		label = "about:blank"
	}
	drawText(img, fieldX+fieldPadPx, baseline, label, toolbarText)

	if s.EditingURL {
		caretX := fieldX + fieldPadPx + textWidth(runesUpTo(s.URL, s.CursorRune))
		fillRect(img, rectAt(caretX, 4, 1, heightPx-8), toolbarCaret)
	}

	if s.TabCount > 1 {
		tabLabel := fmt.Sprintf("%d/%d", s.ActiveTabIdx+1, s.TabCount)
		w := textWidth(tabLabel)
		drawText(img, widthPx-fieldPadPx-w, baseline, tabLabel, toolbarText)
	}

	return img.Pix
}

func drawButton(img *image.RGBA, x *int, label string, enabled bool, baseline int) {
	col := toolbarText
	if !enabled {
		col = toolbarTextDisabled
	}
	drawText(img, *x, baseline, label, col)
	*x += buttonColW
}

func runesUpTo(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}

// DrawParams returns the termimg draw command for this toolbar image,
// positioned to occupy row 1 at the given cell geometry.
func (s ToolbarState) DrawParams(widthPx, heightPx, cols int) termimg.DrawParams {
	return termimg.DrawParams{
		ImageID:     toolbarImageID,
		PlacementID: toolbarPlacementID,
		Format:      termimg.FormatRGBA,
		Rows:        1,
		Cols:        uint32(cols),
		WidthPx:     uint32(widthPx),
		HeightPx:    uint32(heightPx),
		ZIndex:      5,
		Data:        BuildToolbarImage(s, widthPx, heightPx),
	}
}

const (
	toolbarImageID     uint32 = 102
	toolbarPlacementID uint32 = 1
)
