package browser

import (
	"context"

	"github.com/termweb/termweb/internal/inputnorm"
)

// cdpKey is the (key, code, windowsVirtualKeyCode) triple Input.dispatchKeyEvent
// expects for a named, non-character key.
type cdpKey struct {
	key    string
	code   string
	vkCode int
}

// namedKeyTable maps the normalizer's platform-independent NamedKey
// vocabulary to the CDP/DOM key names and virtual-key codes Chrome's
// Input domain expects, per §4.3's key dispatch requirement.
var namedKeyTable = map[inputnorm.NamedKey]cdpKey{
	inputnorm.KeyEscape:    {"Escape", "Escape", 27},
	inputnorm.KeyEnter:     {"Enter", "Enter", 13},
	inputnorm.KeyBackspace: {"Backspace", "Backspace", 8},
	inputnorm.KeyTab:       {"Tab", "Tab", 9},
	inputnorm.KeyDelete:    {"Delete", "Delete", 46},
	inputnorm.KeyLeft:      {"ArrowLeft", "ArrowLeft", 37},
	inputnorm.KeyRight:     {"ArrowRight", "ArrowRight", 39},
	inputnorm.KeyUp:        {"ArrowUp", "ArrowUp", 38},
	inputnorm.KeyDown:      {"ArrowDown", "ArrowDown", 40},
	inputnorm.KeyHome:      {"Home", "Home", 36},
	inputnorm.KeyEnd:       {"End", "End", 35},
	inputnorm.KeyPageUp:    {"PageUp", "PageUp", 33},
	inputnorm.KeyPageDown:  {"PageDown", "PageDown", 34},
	inputnorm.KeyInsert:    {"Insert", "Insert", 45},
	inputnorm.KeyF1:        {"F1", "F1", 112},
	inputnorm.KeyF2:        {"F2", "F2", 113},
	inputnorm.KeyF3:        {"F3", "F3", 114},
	inputnorm.KeyF4:        {"F4", "F4", 115},
	inputnorm.KeyF5:        {"F5", "F5", 116},
	inputnorm.KeyF6:        {"F6", "F6", 117},
	inputnorm.KeyF7:        {"F7", "F7", 118},
	inputnorm.KeyF8:        {"F8", "F8", 119},
	inputnorm.KeyF9:        {"F9", "F9", 120},
	inputnorm.KeyF10:       {"F10", "F10", 121},
	inputnorm.KeyF11:       {"F11", "F11", 122},
	inputnorm.KeyF12:       {"F12", "F12", 123},
}

// DispatchNormalizedKey translates one decoded inputnorm.KeyEvent into
// the keyDown/char/keyUp sequence §4.3 requires and dispatches it. A
// named key gets keyDown+keyUp with no char event; a printable
// character gets keyDown+char+keyUp so Chrome's own input handlers
// (which listen for "input"/"keypress") see it the way a real keyboard
// would produce it.
func (s *Session) DispatchNormalizedKey(ctx context.Context, ev inputnorm.KeyEvent) error {
	mods := ev.Mods.WireMask()

	if ev.IsNamed() {
		k, ok := namedKeyTable[ev.Named]
		if !ok {
			return nil
		}
		if err := s.DispatchKeyDown(ctx, k.key, k.code, k.vkCode, mods); err != nil {
			return err
		}
		return s.DispatchKeyUp(ctx, k.key, k.code, k.vkCode, mods)
	}

	key := string(ev.Char)
	if err := s.DispatchKeyDown(ctx, key, "", 0, mods); err != nil {
		return err
	}
	if err := s.DispatchChar(ctx, key, mods); err != nil {
		return err
	}
	return s.DispatchKeyUp(ctx, key, "", 0, mods)
}
