// Package inputnorm implements §4.8 and the terminal-input half of §6:
// decoding raw terminal byte sequences (CSI-u and legacy xterm key
// sequences, SGR-1006/1016 mouse sequences, bracketed paste) into the
// normalized KeyEvent/MouseEvent/PasteEvent types of §3, plus the
// shortcut table and platform "shortcut mod" resolution of §4.8.
// Internal event-flow idiom grounded on
// other_examples/87831b06_badu-term__mouse-dispatcher.go.go's
// channel-based dispatcher; the SGR/CSI-u decoding itself is inherent
// protocol-parsing logic §4.8/§6 name explicitly, with no donor or
// pack analogue to ground it on beyond that.
package inputnorm

// NamedKey enumerates the non-character keys of §4.8's base_key set.
type NamedKey string

const (
	KeyEscape    NamedKey = "escape"
	KeyEnter     NamedKey = "enter"
	KeyBackspace NamedKey = "backspace"
	KeyTab       NamedKey = "tab"
	KeyDelete    NamedKey = "delete"
	KeyLeft      NamedKey = "left"
	KeyRight     NamedKey = "right"
	KeyUp        NamedKey = "up"
	KeyDown      NamedKey = "down"
	KeyHome      NamedKey = "home"
	KeyEnd       NamedKey = "end"
	KeyPageUp    NamedKey = "page_up"
	KeyPageDown  NamedKey = "page_down"
	KeyInsert    NamedKey = "insert"
	KeyF1        NamedKey = "f1"
	KeyF2        NamedKey = "f2"
	KeyF3        NamedKey = "f3"
	KeyF4        NamedKey = "f4"
	KeyF5        NamedKey = "f5"
	KeyF6        NamedKey = "f6"
	KeyF7        NamedKey = "f7"
	KeyF8        NamedKey = "f8"
	KeyF9        NamedKey = "f9"
	KeyF10       NamedKey = "f10"
	KeyF11       NamedKey = "f11"
	KeyF12       NamedKey = "f12"
)

// Wire modifier bits per §4.8: alt=1, ctrl=2, meta=4, shift=8.
const (
	WireAlt   = 1
	WireCtrl  = 2
	WireMeta  = 4
	WireShift = 8
)

// Modifiers is the decoded modifier-flag set.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// WireMask packs the modifiers into §4.8's browser input dispatch
// bitmask.
func (m Modifiers) WireMask() int {
	mask := 0
	if m.Alt {
		mask |= WireAlt
	}
	if m.Ctrl {
		mask |= WireCtrl
	}
	if m.Meta {
		mask |= WireMeta
	}
	if m.Shift {
		mask |= WireShift
	}
	return mask
}

// KeyEvent is §3's normalized KeyEvent entity. Exactly one of Char/Named
// is set.
type KeyEvent struct {
	Char        rune
	Named       NamedKey
	Mods        Modifiers
	ShortcutMod bool // platform "command key": meta on macOS, ctrl elsewhere
}

// IsNamed reports whether this event carries a named key rather than a
// character.
func (k KeyEvent) IsNamed() bool { return k.Named != "" }

// MouseKind enumerates §3's MouseEvent.kind values.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMove
	MouseDrag
	MouseWheel
)

// MouseButton mirrors the CDP button vocabulary used downstream.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseEvent is §3's normalized MouseEvent entity. Coordinates are
// always pixels post-decode, per §8's testable property; the decoder
// converts cell-mode (SGR-1006) coordinates before returning.
type MouseEvent struct {
	Kind   MouseKind
	Button MouseButton
	X, Y   float64
	DeltaX float64
	DeltaY float64
	Mods   Modifiers
}

// PasteEvent carries a bracketed-paste payload, captured intact per
// §4.8's paste semantics; callers filter to printable characters when
// inserting into the URL prompt buffer.
type PasteEvent struct {
	Text string
}
