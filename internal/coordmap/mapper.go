// Package coordmap implements §4.6: the pure mapping between terminal
// cell/pixel space, the displayed content rectangle, and the browser's
// logical viewport.
package coordmap

// Mapper is recomputed on each frame and on terminal resize; all fields
// are derived, matching §3's CoordMapper invariant of no independent
// mutation.
type Mapper struct {
	Cols, Rows        int
	WidthPx, HeightPx int
	PixelMode         bool // true: SGR-1016 (pixels); false: SGR-1006 (cells)

	FrameW, FrameH int
	ChromeW, ChromeH int

	ToolbarHeightPx int

	CellW, CellH float64

	DisplayCols int
	DisplayW    float64
	DisplayH    float64

	// baselineFrameH records the tallest frame height seen, so a
	// shrink (e.g. a download bar appearing) can be detected and
	// compensated per §4.6's download-bar adjustment.
	baselineFrameH int
}

// New computes a Mapper from the current terminal/frame/viewport
// dimensions. chromeW/chromeH fall back to the frame extent when the
// browser's logical window dimensions are unknown (0).
func New(cols, rows, widthPx, heightPx int, pixelMode bool, frameW, frameH, chromeW, chromeH, toolbarHeightPx int) Mapper {
	if chromeW <= 0 {
		chromeW = frameW
	}
	if chromeH <= 0 {
		chromeH = frameH
	}

	m := Mapper{
		Cols: cols, Rows: rows,
		WidthPx: widthPx, HeightPx: heightPx,
		PixelMode: pixelMode,
		FrameW:    frameW, FrameH: frameH,
		ChromeW: chromeW, ChromeH: chromeH,
		ToolbarHeightPx: toolbarHeightPx,
	}

	if cols > 0 {
		m.CellW = float64(widthPx) / float64(cols)
	}
	if rows > 0 {
		m.CellH = float64(heightPx) / float64(rows)
	}

	availableH := float64(heightPx - toolbarHeightPx)
	if availableH < 0 {
		availableH = 0
	}

	if frameW > 0 && frameH > 0 {
		aspect := float64(frameH) / float64(frameW)
		displayW := float64(widthPx)
		displayH := displayW * aspect
		if displayH > availableH {
			displayH = availableH
			displayW = displayH / aspect
		}
		m.DisplayW = displayW
		m.DisplayH = displayH
		if m.CellW > 0 {
			m.DisplayCols = int(displayW / m.CellW)
		}
	}

	return m
}

// ContentTopPx is the displayed content rectangle's top edge.
func (m Mapper) ContentTopPx() float64 { return float64(m.ToolbarHeightPx) }

// TerminalToBrowser maps a terminal pixel coordinate to browser-space
// coordinates, per §4.6's mapping contract. Returns ok=false when
// (x, y) falls outside the displayed content rectangle (toolbar or
// letterbox).
func (m Mapper) TerminalToBrowser(x, y float64) (bx, by float64, ok bool) {
	top := m.ContentTopPx()
	if x < 0 || y < top || m.DisplayW <= 0 || m.DisplayH <= 0 {
		return 0, 0, false
	}
	if x >= m.DisplayW || y >= top+m.DisplayH {
		return 0, 0, false
	}

	scaleX := float64(m.ChromeW) / m.DisplayW
	scaleY := float64(m.ChromeH) / m.DisplayH

	bx = x * scaleX
	by = (y - top) * scaleY
	return bx, by, true
}

// CellToPixel converts a (col, row) cell coordinate to terminal pixel
// space, for mouse events arriving in SGR-1006 cell mode.
func (m Mapper) CellToPixel(col, row int) (px, py float64) {
	return float64(col) * m.CellW, float64(row) * m.CellH
}

// PixelToCell is the inverse of CellToPixel.
func (m Mapper) PixelToCell(px, py float64) (col, row int) {
	if m.CellW <= 0 || m.CellH <= 0 {
		return 0, 0
	}
	return int(px / m.CellW), int(py / m.CellH)
}

// DownloadYOffset implements §4.6's download-bar adjustment: if the
// current frame height shrank versus the recorded baseline (a download
// bar appeared), content is drawn offset to keep alignment stable.
func (m *Mapper) DownloadYOffset() float64 {
	if m.FrameH > m.baselineFrameH {
		m.baselineFrameH = m.FrameH
	}
	if m.baselineFrameH == 0 || m.FrameH >= m.baselineFrameH {
		return 0
	}
	return float64(m.baselineFrameH - m.FrameH)
}
