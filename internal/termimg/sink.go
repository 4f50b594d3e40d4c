package termimg

import (
	"bufio"
	"fmt"
	"io"
)

// Sink is the minimal terminal image protocol surface §6 requires: draw
// (transmit/update an image placement), delete, and cursor positioning,
// all buffered and flushed exactly once per render pass per §4.10 step 6.
type Sink struct {
	w *bufio.Writer
}

// NewSink wraps out in a buffered writer. The caller owns out and is
// responsible for not writing to it concurrently.
func NewSink(out io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(out)}
}

// MoveCursor positions the cursor at the given 1-based row/column
// before a draw, matching the Kitty protocol's convention that images
// are placed at the current cursor cell.
func (s *Sink) MoveCursor(row, col int) {
	fmt.Fprintf(s.w, "\x1b[%d;%dH", row, col)
}

// Draw emits a draw/update command.
func (s *Sink) Draw(p DrawParams) {
	s.w.Write(EncodeDraw(p))
}

// Delete emits a delete command.
func (s *Sink) Delete(mode DeleteMode, imageID uint32) {
	s.w.Write(EncodeDelete(mode, imageID))
}

// HideCursor and ShowCursor toggle the terminal's own text cursor,
// used while the renderer draws its own cursor overlay image.
func (s *Sink) HideCursor() {
	s.w.WriteString("\x1b[?25l")
}

func (s *Sink) ShowCursor() {
	s.w.WriteString("\x1b[?25h")
}

// Flush writes all buffered commands to the underlying writer exactly
// once, per §4.10 step 6 and §5's "serializes all image-protocol
// writes with a buffered writer flushed once per render pass" policy.
func (s *Sink) Flush() error {
	return s.w.Flush()
}
