package main

import "github.com/termweb/termweb/internal/termio"

// enableTerminalModes turns on bracketed paste and SGR mouse tracking
// (button, drag, and motion reporting) so the terminal hands termweb
// both raw mouse movement and clipboard paste boundaries instead of
// leaving it to guess them from plain key bytes.
func enableTerminalModes(term *termio.Terminal) {
	term.Out().Write([]byte(
		"\x1b[?1006h" + // SGR extended mouse coordinates
			"\x1b[?1003h" + // any-event mouse tracking (motion + drag + click)
			"\x1b[?2004h", // bracketed paste
	))
}

// disableTerminalModes reverses enableTerminalModes, in the opposite
// order, before the terminal is restored to cooked mode.
func disableTerminalModes(term *termio.Terminal) {
	term.Out().Write([]byte(
		"\x1b[?2004l" +
			"\x1b[?1003l" +
			"\x1b[?1006l",
	))
}
