package termimg

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDrawInlineContainsFixedIDs(t *testing.T) {
	out := EncodeDraw(DrawParams{
		ImageID:     ContentImageID,
		PlacementID: ContentPlacementID,
		Format:      FormatRGBA,
		Rows:        24,
		Cols:        80,
		WidthPx:     1120,
		HeightPx:    680,
		YOffsetPx:   4,
		Data:        []byte{1, 2, 3, 4},
	})
	s := string(out)
	if !strings.HasPrefix(s, "\x1b_G") || !strings.HasSuffix(s, "\x1b\\") {
		t.Fatalf("expected APC envelope, got %q", s)
	}
	if !strings.Contains(s, "i=100") || !strings.Contains(s, "p=1") {
		t.Fatalf("expected fixed image/placement ids, got %q", s)
	}
	if !strings.Contains(s, "a=T") || !strings.Contains(s, "t=d") {
		t.Fatalf("expected transmit-and-display over direct transmission, got %q", s)
	}
}

func TestEncodeDrawSHMUsesSharedMemTransmission(t *testing.T) {
	out := EncodeDraw(DrawParams{
		ImageID:     ContentImageID,
		PlacementID: ContentPlacementID,
		SHMName:     "/termweb-frame-0",
	})
	s := string(out)
	if !strings.Contains(s, "a=p") || !strings.Contains(s, "t=s") {
		t.Fatalf("expected display-only action with shared-mem transmission, got %q", s)
	}
	if strings.Contains(s, "f=") {
		t.Fatalf("shared-mem draws should not carry a format parameter, got %q", s)
	}
}

func TestEncodeDeleteByIDWithData(t *testing.T) {
	out := EncodeDelete(DeleteByIDWithData, CursorImageID)
	s := string(out)
	if !strings.Contains(s, "a=d") || !strings.Contains(s, "d=I") || !strings.Contains(s, "i=101") {
		t.Fatalf("got %q", s)
	}
}

func TestSinkBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.MoveCursor(2, 1)
	sink.Draw(DrawParams{ImageID: ContentImageID, PlacementID: ContentPlacementID, Data: []byte{0}})
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written before Flush, got %d bytes", buf.Len())
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected buffered commands to be written after Flush")
	}
}
