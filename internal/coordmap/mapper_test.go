package coordmap

import "testing"

func TestColdOpenLayoutMatchesScenario1(t *testing.T) {
	// 80x24 cells, 1120x720 pixels, pixel-mode mouse, frame matches
	// viewport, one toolbar row tall.
	m := New(80, 24, 1120, 720, true, 1104, 672, 1104, 672, 30)

	if m.CellH <= 0 || m.CellW <= 0 {
		t.Fatalf("expected positive cell dimensions, got %fx%f", m.CellW, m.CellH)
	}
	rows := m.DisplayH / m.CellH
	if rows < 22 || rows > 24 {
		t.Fatalf("expected roughly 23 content rows, got %f", rows)
	}
}

func TestTerminalToBrowserOutsideContentRectangleIsNone(t *testing.T) {
	m := New(80, 24, 1120, 720, true, 1104, 672, 1104, 672, 30)

	// Inside the toolbar row.
	if _, _, ok := m.TerminalToBrowser(10, 5); ok {
		t.Fatal("expected toolbar coordinate to map to none")
	}
}

func TestTerminalToBrowserInsideContentIsWithinViewport(t *testing.T) {
	m := New(80, 24, 1120, 720, true, 1104, 672, 1104, 672, 30)

	bx, by, ok := m.TerminalToBrowser(m.DisplayW/2, m.ContentTopPx()+m.DisplayH/2)
	if !ok {
		t.Fatal("expected midpoint to map inside viewport")
	}
	if bx < 0 || bx >= float64(m.ChromeW) {
		t.Fatalf("bx out of range: %f", bx)
	}
	if by < 0 || by >= float64(m.ChromeH) {
		t.Fatalf("by out of range: %f", by)
	}
}

func TestCellToPixelAndBackRoundTrips(t *testing.T) {
	m := New(80, 24, 1120, 720, false, 1104, 672, 1104, 672, 30)

	px, py := m.CellToPixel(10, 5)
	col, row := m.PixelToCell(px, py)
	if col != 10 || row != 5 {
		t.Fatalf("expected round-trip to (10,5), got (%d,%d)", col, row)
	}
}

func TestDownloadYOffsetTracksShrink(t *testing.T) {
	m := New(80, 24, 1120, 720, true, 1104, 672, 1104, 672, 30)
	if off := m.DownloadYOffset(); off != 0 {
		t.Fatalf("expected zero offset at baseline, got %f", off)
	}

	m.FrameH = 600 // a download bar appeared, shrinking the frame
	if off := m.DownloadYOffset(); off != 72 {
		t.Fatalf("expected offset 72 after shrink, got %f", off)
	}
}
