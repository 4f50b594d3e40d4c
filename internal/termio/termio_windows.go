//go:build windows

package termio

import (
	"time"

	"golang.org/x/sys/windows"
)

// enterRawMode switches the console into virtual-terminal input mode
// with line/echo processing disabled, the Windows analogue of Unix
// cbreak mode.
func enterRawMode(fd uintptr) (func() error, error) {
	h := windows.Handle(fd)

	var orig uint32
	if err := windows.GetConsoleMode(h, &orig); err != nil {
		return nil, err
	}

	raw := orig &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	raw |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(h, raw); err != nil {
		return nil, err
	}

	return func() error {
		return windows.SetConsoleMode(h, orig)
	}, nil
}

// querySize reads the console screen buffer's window size. Pixel
// dimensions are not exposed by the console API, so WidthPx/HeightPx
// are left zero.
func querySize(fd uintptr) (Size, error) {
	h := windows.Handle(fd)
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return Size{}, err
	}
	cols := int(info.Window.Right-info.Window.Left) + 1
	rows := int(info.Window.Bottom-info.Window.Top) + 1
	return Size{Cols: cols, Rows: rows}, nil
}

// watchResize polls the console size, since Windows has no SIGWINCH
// equivalent.
func watchResize(fd uintptr, onResize func()) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		last, _ := querySize(fd)
		for {
			select {
			case <-ticker.C:
				cur, err := querySize(fd)
				if err == nil && cur != last {
					last = cur
					onResize()
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
