package renderer

import (
	"github.com/termweb/termweb/internal/coordmap"
	"github.com/termweb/termweb/internal/termimg"
)

// FrameInput is one screencast frame (or the blank-page signal) ready
// to draw.
type FrameInput struct {
	Blank                     bool
	Data                      []byte
	SHMName                   string
	Format                    termimg.Format
	DeviceWidth, DeviceHeight int
}

// Renderer owns the terminal image-protocol byte stream. It is not
// safe for concurrent use; the main (viewer) loop is its sole caller,
// per §5's resource policy.
type Renderer struct {
	sink *termimg.Sink

	lastFrameW, lastFrameH  int
	contentDrawn            bool
	showingBlankPlaceholder bool
	hintMode                bool
	uiDirty                 bool
}

// New constructs a Renderer over sink. The toolbar is drawn on the
// first RenderFrame call regardless of MarkUIDirty, since nothing has
// been drawn yet.
func New(sink *termimg.Sink) *Renderer {
	return &Renderer{sink: sink, uiDirty: true}
}

// MarkUIDirty requests that the toolbar be redrawn on the next
// RenderFrame call.
func (r *Renderer) MarkUIDirty() { r.uiDirty = true }

// SetHintMode toggles whether the content image is pushed below the
// hint-badge overlay's z-index.
func (r *Renderer) SetHintMode(on bool) { r.hintMode = on }

// RenderFrame executes §4.10's six render steps and flushes exactly
// once.
func (r *Renderer) RenderFrame(m coordmap.Mapper, frame FrameInput, cursor CursorInput, toolbar ToolbarState) error {
	// Step 1: position cursor at row 2, column 1 (row 1 is the toolbar).
	r.sink.MoveCursor(2, 1)

	r.drawContent(m, frame)
	r.drawCursor(cursor)
	r.drawToolbarIfDirty(m, toolbar)

	// Step 6: flush exactly once.
	return r.sink.Flush()
}

func (r *Renderer) drawContent(m coordmap.Mapper, frame FrameInput) {
	if frame.Blank {
		if r.showingBlankPlaceholder {
			return // single-clear-point discipline: leave the placeholder alone
		}
		if r.contentDrawn {
			r.sink.Delete(termimg.DeleteByIDWithData, termimg.ContentImageID)
		}
		contentH := m.HeightPx - m.ToolbarHeightPx
		r.sink.Draw(termimg.DrawParams{
			ImageID:     termimg.ContentImageID,
			PlacementID: termimg.ContentPlacementID,
			Format:      termimg.FormatRGBA,
			Rows:        uint32(max(m.Rows-1, 0)),
			Cols:        uint32(m.Cols),
			WidthPx:     uint32(m.WidthPx),
			HeightPx:    uint32(max(contentH, 0)),
			Data:        BuildBlankPlaceholder(m.WidthPx, contentH),
		})
		r.showingBlankPlaceholder = true
		r.contentDrawn = true
		return
	}

	if r.showingBlankPlaceholder {
		r.sink.Delete(termimg.DeleteByIDWithData, termimg.ContentImageID)
		r.contentDrawn = false
		r.showingBlankPlaceholder = false
	}

	if r.frameSizeChanged(frame) && r.contentDrawn {
		r.sink.Delete(termimg.DeleteByIDWithData, termimg.ContentImageID)
		r.contentDrawn = false
	}
	r.lastFrameW, r.lastFrameH = frame.DeviceWidth, frame.DeviceHeight

	zIndex := int32(0)
	if r.hintMode {
		zIndex = -1 // hint badges draw above the content layer
	}
	yOffset := int(float64(m.ToolbarHeightPx) - m.CellH)
	if yOffset < 0 {
		yOffset = 0
	}

	r.sink.Draw(termimg.DrawParams{
		ImageID:     termimg.ContentImageID,
		PlacementID: termimg.ContentPlacementID,
		Format:      frame.Format,
		Rows:        uint32(max(m.Rows-1, 0)),
		Cols:        uint32(m.DisplayCols),
		WidthPx:     uint32(m.DisplayW),
		HeightPx:    uint32(m.DisplayH),
		YOffsetPx:   uint32(yOffset),
		ZIndex:      zIndex,
		Data:        frame.Data,
		SHMName:     frame.SHMName,
	})
	r.contentDrawn = true
}

func (r *Renderer) frameSizeChanged(frame FrameInput) bool {
	return r.lastFrameW != 0 && (r.lastFrameW != frame.DeviceWidth || r.lastFrameH != frame.DeviceHeight)
}

func (r *Renderer) drawCursor(cursor CursorInput) {
	if !cursor.Visible {
		return
	}
	r.sink.MoveCursor(cursor.Row, cursor.Col)
	r.sink.Draw(termimg.DrawParams{
		ImageID:     termimg.CursorImageID,
		PlacementID: termimg.CursorPlacementID,
		Format:      termimg.FormatRGBA,
		WidthPx:     cursorWidthPx,
		HeightPx:    cursorHeightPx,
		XOffsetPx:   uint32(cursor.SubXPx),
		YOffsetPx:   uint32(cursor.SubYPx),
		ZIndex:      10,
		Data:        cursorGlyph(),
	})
}

func (r *Renderer) drawToolbarIfDirty(m coordmap.Mapper, toolbar ToolbarState) {
	if !r.uiDirty {
		return
	}
	r.sink.MoveCursor(1, 1)
	r.sink.Draw(toolbar.DrawParams(m.WidthPx, m.ToolbarHeightPx, m.Cols))
	r.uiDirty = false
}
