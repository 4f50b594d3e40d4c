// Package termio is the ambient terminal plumbing spec.md's interfaces
// assume but don't specify: raw-mode entry/exit, resize notification,
// and a non-blocking stdin reader feeding the input pipeline. Adapted
// from the donor's internal/terminal/terminal.go PTY session manager —
// same read-loop/close lifecycle, repurposed from "spawn a shell and
// pump its PTY" to "read our own controlling terminal's raw byte
// stream and expose resize events", since termweb is the terminal
// client, not a PTY host.
package termio

import (
	"io"
	"os"
	"sync"

	"github.com/termweb/termweb/internal/logging"
)

var log = logging.L("termio")

// Size is the terminal's cell and pixel extent, as reported by
// TIOCGWINSZ (or the platform equivalent).
type Size struct {
	Cols, Rows        int
	WidthPx, HeightPx int
}

// Terminal owns stdin/stdout raw-mode lifecycle and feeds decoded byte
// chunks and resize events to the caller.
type Terminal struct {
	in  *os.File
	out *os.File

	onInput  func(data []byte)
	onResize func(Size)

	mu       sync.Mutex
	closed   bool
	restore  func() error
	stopSize func()
}

// Open puts the controlling terminal into raw mode and starts the
// stdin read loop and resize watcher. onInput is called from the read
// loop goroutine; onResize from the platform-specific resize watcher
// goroutine. Both must not block.
func Open(onInput func(data []byte), onResize func(Size)) (*Terminal, error) {
	t := &Terminal{
		in:       os.Stdin,
		out:      os.Stdout,
		onInput:  onInput,
		onResize: onResize,
	}

	restore, err := enterRawMode(t.in.Fd())
	if err != nil {
		return nil, err
	}
	t.restore = restore

	t.stopSize = watchResize(t.in.Fd(), t.handleResize)

	go t.readLoop()

	log.Info("terminal opened in raw mode")
	return t, nil
}

// Out returns the writer the renderer should use for all output.
func (t *Terminal) Out() io.Writer { return t.out }

// Size returns the current terminal extent.
func (t *Terminal) Size() (Size, error) {
	return querySize(t.in.Fd())
}

func (t *Terminal) handleResize() {
	sz, err := querySize(t.in.Fd())
	if err != nil {
		log.Warn("resize query failed", "error", err)
		return
	}
	if t.onResize != nil {
		t.onResize(sz)
	}
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := t.in.Read(buf)
		if n > 0 && t.onInput != nil {
			data := make([]byte, n)
			copy(data, buf[:n])
			t.onInput(data)
		}
		if err != nil {
			if err != io.EOF {
				log.Warn("stdin read error", "error", err)
			}
			return
		}
	}
}

// Close restores the terminal's original mode and stops the resize
// watcher. Idempotent.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	if t.stopSize != nil {
		t.stopSize()
	}
	if t.restore != nil {
		return t.restore()
	}
	return nil
}
