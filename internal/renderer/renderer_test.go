package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/termweb/termweb/internal/coordmap"
	"github.com/termweb/termweb/internal/termimg"
)

func testMapper() coordmap.Mapper {
	return coordmap.New(80, 24, 1120, 720, true, 1120, 680, 0, 0, 30)
}

func TestRenderFrameFlushesExactlyOnceAndDrawsToolbarFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))

	err := r.RenderFrame(testMapper(), FrameInput{Data: []byte{1, 2, 3, 4}, Format: termimg.FormatRGBA}, CursorInput{}, ToolbarState{})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	s := buf.String()
	if !strings.Contains(s, "i=100") {
		t.Fatalf("expected content draw, got %q", s)
	}
	if !strings.Contains(s, "i=102") {
		t.Fatalf("expected toolbar drawn on first frame, got %q", s)
	}
}

func TestRenderFrameSkipsToolbarWhenNotDirty(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))
	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA}, CursorInput{}, ToolbarState{})
	buf.Reset()

	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA}, CursorInput{}, ToolbarState{})
	if strings.Contains(buf.String(), "i=102") {
		t.Fatalf("expected no toolbar redraw without MarkUIDirty, got %q", buf.String())
	}
}

func TestRenderFrameRedrawsToolbarAfterMarkUIDirty(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))
	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA}, CursorInput{}, ToolbarState{})
	buf.Reset()

	r.MarkUIDirty()
	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA}, CursorInput{}, ToolbarState{})
	if !strings.Contains(buf.String(), "i=102") {
		t.Fatalf("expected toolbar redraw after MarkUIDirty")
	}
}

func TestRenderFrameDeletesContentOnResize(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))
	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA, DeviceWidth: 1120, DeviceHeight: 680}, CursorInput{}, ToolbarState{})
	buf.Reset()

	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA, DeviceWidth: 800, DeviceHeight: 600}, CursorInput{}, ToolbarState{})
	s := buf.String()
	if !strings.Contains(s, "a=d") {
		t.Fatalf("expected a delete command on frame resize, got %q", s)
	}
}

func TestRenderFrameBlankPlaceholderSingleClearPoint(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))
	r.RenderFrame(testMapper(), FrameInput{Blank: true}, CursorInput{}, ToolbarState{})
	buf.Reset()

	// Second blank frame in a row must not redraw the placeholder.
	r.RenderFrame(testMapper(), FrameInput{Blank: true}, CursorInput{}, ToolbarState{})
	s := buf.String()
	if strings.Contains(s, "i=100") {
		t.Fatalf("expected no repeated placeholder draw while still blank, got %q", s)
	}
}

func TestRenderFrameClearsPlaceholderWhenPageLoads(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))
	r.RenderFrame(testMapper(), FrameInput{Blank: true}, CursorInput{}, ToolbarState{})
	buf.Reset()

	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA}, CursorInput{}, ToolbarState{})
	s := buf.String()
	if !strings.Contains(s, "a=d") {
		t.Fatalf("expected placeholder delete before the real content draw, got %q", s)
	}
	if !strings.Contains(s, "i=100") {
		t.Fatalf("expected content draw after placeholder clear, got %q", s)
	}
}

func TestRenderFrameDrawsCursorOverlayWhenVisible(t *testing.T) {
	var buf bytes.Buffer
	r := New(termimg.NewSink(&buf))
	r.RenderFrame(testMapper(), FrameInput{Data: []byte{1}, Format: termimg.FormatRGBA}, CursorInput{Visible: true, Col: 10, Row: 5}, ToolbarState{})
	if !strings.Contains(buf.String(), "i=101") {
		t.Fatalf("expected cursor overlay draw, got %q", buf.String())
	}
}
