//go:build linux || darwin

package termio

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// enterRawMode puts fd into cbreak/raw mode (no echo, no line buffering,
// no signal generation from control characters) and returns a closure
// that restores the original termios.
func enterRawMode(fd uintptr) (func() error, error) {
	orig, err := unix.IoctlGetTermios(int(fd), ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(fd), ioctlSetTermios, &raw); err != nil {
		return nil, err
	}

	return func() error {
		return unix.IoctlSetTermios(int(fd), ioctlSetTermios, orig)
	}, nil
}

// querySize reads TIOCGWINSZ for fd.
func querySize(fd uintptr) (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{
		Cols:    int(ws.Col),
		Rows:    int(ws.Row),
		WidthPx: int(ws.Xpixel),
		HeightPx: int(ws.Ypixel),
	}, nil
}

// watchResize starts a SIGWINCH watcher goroutine and returns a
// function that stops it.
func watchResize(fd uintptr, onResize func()) func() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				onResize()
			case <-done:
				signal.Stop(ch)
				return
			}
		}
	}()
	return func() { close(done) }
}
