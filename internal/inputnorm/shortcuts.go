package inputnorm

import "runtime"

// Shortcut enumerates the viewer-level actions bound in §4.8's
// shortcut table.
type Shortcut string

const (
	ShortcutQuit         Shortcut = "quit"
	ShortcutFocusAddress Shortcut = "focus_address_bar"
	ShortcutReload       Shortcut = "reload"
	ShortcutBack         Shortcut = "back"
	ShortcutForward      Shortcut = "forward"
	ShortcutStop         Shortcut = "stop"
	ShortcutTabPicker    Shortcut = "tab_picker"
	ShortcutCopy         Shortcut = "copy"
	ShortcutCut          Shortcut = "cut"
	ShortcutPaste        Shortcut = "paste"
	ShortcutSelectAll    Shortcut = "select_all"
	ShortcutHintMode     Shortcut = "hint_mode"
	ShortcutScrollDown   Shortcut = "scroll_down"
	ShortcutScrollUp     Shortcut = "scroll_up"
	ShortcutDevConsole   Shortcut = "dev_console"
)

// ScrollStepPx is the fixed pixel step used by the mod+j/mod+k scroll
// shortcuts.
const ScrollStepPx = 120.0

// IsAppleShortcutMod reports whether the platform's shortcut modifier
// is Meta (macOS's Command key) rather than Ctrl.
func IsAppleShortcutMod() bool {
	return runtime.GOOS == "darwin"
}

// shortcutByChar maps a lowercase shortcut-mod+char chord to its
// action. F12 is handled separately since it is a named key.
var shortcutByChar = map[rune]Shortcut{
	'q': ShortcutQuit,
	'l': ShortcutFocusAddress,
	'r': ShortcutReload,
	't': ShortcutTabPicker,
	'c': ShortcutCopy,
	'x': ShortcutCut,
	'v': ShortcutPaste,
	'a': ShortcutSelectAll,
	'h': ShortcutHintMode,
	'j': ShortcutScrollDown,
	'k': ShortcutScrollUp,
}

// MatchShortcut resolves a decoded key event to a bound shortcut, or
// ("", false) if the event isn't bound. The platform shortcut modifier
// (Meta on macOS, Ctrl elsewhere) must be held; ev.Mods.Shift and Alt
// are not consulted. Without the shortcut modifier, only Ctrl+F12
// matches (the dev console).
func MatchShortcut(ev KeyEvent) (Shortcut, bool) {
	if !ev.ShortcutMod {
		if ev.Named == KeyF12 && ev.Mods.Ctrl {
			return ShortcutDevConsole, true
		}
		return "", false
	}

	if ev.IsNamed() {
		if ev.Named == KeyF12 {
			return ShortcutDevConsole, true
		}
		return "", false
	}

	switch ev.Char {
	case '[':
		return ShortcutBack, true
	case ']':
		return ShortcutForward, true
	case '.':
		return ShortcutStop, true
	}

	if act, ok := shortcutByChar[ev.Char]; ok {
		return act, true
	}
	return "", false
}

// TranslateCtrlShiftP rewrites Ctrl+Shift+P to the equivalent
// meta-based chord (Meta+Shift+P) before a forwarded keystroke is
// dispatched to the browser, per §4.8's translation quirk: this keeps
// editor/devtools command-palette muscle memory ("Ctrl+Shift+P" on
// Linux/Windows, "Cmd+Shift+P" on macOS) portable regardless of which
// chord the terminal emulator actually sent. Events that don't match
// pass through unchanged.
func TranslateCtrlShiftP(ev KeyEvent) KeyEvent {
	if ev.Mods.Ctrl && ev.Mods.Shift && (ev.Char == 'p' || ev.Char == 'P') {
		ev.Mods.Ctrl = false
		ev.Mods.Meta = true
	}
	return ev
}

// ResolveShortcutMod sets ev.ShortcutMod according to the platform
// convention: Meta on macOS, Ctrl elsewhere. Call this once per
// decoded KeyEvent before matching shortcuts.
func ResolveShortcutMod(ev KeyEvent) KeyEvent {
	if IsAppleShortcutMod() {
		ev.ShortcutMod = ev.Mods.Meta
	} else {
		ev.ShortcutMod = ev.Mods.Ctrl
	}
	return ev
}
